package cmd

import (
	"fmt"

	"unbudget/internal/cli"

	"github.com/spf13/cobra"
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Per-part budget breakdown",
	RunE:  runParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)
}

func runParts(cmd *cobra.Command, _ []string) error {
	result, err := loadBudget(cmd.Context())
	if err != nil {
		return err
	}
	tree := result.Tree

	if len(tree.Parts) == 0 {
		fmt.Println("\n  No budget parts found in the dataset.")
		return nil
	}

	total := tree.TotalBudget()
	rows := make([][]string, 0, len(tree.Parts))
	for _, p := range tree.Parts {
		share := ""
		if total > 0 {
			share = fmt.Sprintf("%4.1f%% %s",
				p.TotalBudget/total*100,
				cli.RenderHorizontalBar(p.TotalBudget, total, 16))
		}
		rows = append(rows, []string{
			p.ID + "  " + p.Name,
			cli.FormatMoney(p.TotalBudget),
			cli.FormatMoney(p.Approved2025),
			cli.FormatVariance(p.VarianceVsApproved),
			share,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Part", "Revised 2026", "Approved 2025", "Variance", "Share"},
		Rows:    rows,
	}))
	return nil
}
