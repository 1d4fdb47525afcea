package cmd

import (
	"fmt"
	"strings"

	"unbudget/internal/cli"
	"unbudget/internal/lollipop"
	"unbudget/internal/view"

	"github.com/spf13/cobra"
)

var flagChartExpand []string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the budget as a lollipop chart",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringSliceVarP(&flagChartExpand, "expand", "e", nil, `Nodes to expand (e.g. "Part I" or "Part I/5")`)
	rootCmd.AddCommand(chartCmd)
}

const (
	chartTrackWidth = 50
	chartNameWidth  = 38
)

func runChart(cmd *cobra.Command, _ []string) error {
	result, err := loadBudget(cmd.Context())
	if err != nil {
		return err
	}
	tree := result.Tree

	expanded := view.ExpandSet{}
	for _, id := range flagChartExpand {
		if id = strings.TrimSpace(id); id != "" {
			expanded = view.Toggle(expanded, id)
		}
	}

	rows := lollipop.BuildRows(tree, expanded)
	if len(rows) == 0 {
		fmt.Println("\n  No budget parts found in the dataset.")
		return nil
	}

	ticks := lollipop.TickValues(lollipop.MaxValue(tree))

	fmt.Println()
	fmt.Println(cli.RenderTitle("UN BUDGET 2026  Approved ○ vs Revised ●"))
	fmt.Println()

	// Tick ruler aligned under the tracks
	var ruler strings.Builder
	last := ticks[len(ticks)-1]
	trackStart := 2 + chartNameWidth + 2
	for _, t := range ticks {
		pos := int(t / last * float64(chartTrackWidth-1))
		label := cli.FormatMoney(t)
		if t == 0 {
			label = "0"
		}
		pad := trackStart + pos - ruler.Len()
		if pad < 1 && ruler.Len() > 0 {
			continue // label would overlap its neighbor
		}
		if pad > 0 {
			ruler.WriteString(strings.Repeat(" ", pad))
		}
		ruler.WriteString(label)
	}
	fmt.Println(ruler.String())

	for _, r := range rows {
		name := strings.Repeat("  ", r.Level) + r.Name
		if nameRunes := []rune(name); len(nameRunes) > chartNameWidth {
			name = string(nameRunes[:chartNameWidth-1]) + "…"
		}
		track := cli.RenderLollipopTrack(chartTrackWidth,
			lollipop.Scale(r.Approved, ticks),
			lollipop.Scale(r.Revised, ticks))
		fmt.Printf("  %-*s  %s  %s\n", chartNameWidth, name, track, cli.FormatMoney(r.Revised))
	}
	fmt.Println()
	return nil
}
