package cmd

import (
	"fmt"

	"unbudget/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget totals at a glance",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	result, err := loadBudget(cmd.Context())
	if err != nil {
		return err
	}
	tree := result.Tree

	if len(tree.Parts) == 0 {
		fmt.Println("\n  No budget parts found in the dataset.")
		return nil
	}

	var sections, entities, synthetic int
	for _, p := range tree.Parts {
		sections += len(p.Sections)
		for _, s := range p.Sections {
			entities += len(s.Entities)
			if s.Synthetic {
				synthetic++
			}
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("UN BUDGET 2026  Proposed Programme Budget"))
	fmt.Println()

	rows := [][]string{
		{"Parts", fmt.Sprintf("%d", len(tree.Parts))},
		{"Sections", fmt.Sprintf("%d", sections)},
		{"Entities", fmt.Sprintf("%d", entities)},
		{"---"},
		{"Revised 2026", cli.FormatMoneyFull(tree.TotalBudget())},
		{"Approved 2025", cli.FormatMoneyFull(tree.GrandApproved2025)},
	}
	if tree.GrandApproved2025 > 0 {
		pct := (tree.TotalBudget() - tree.GrandApproved2025) / tree.GrandApproved2025 * 100
		rows = append(rows, []string{"Variance", cli.FormatVariance(pct)})
	}
	if synthetic > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Single-line sections", fmt.Sprintf("%d", synthetic)})
	}
	if result.Malformed > 0 {
		rows = append(rows, []string{"Skipped rows", fmt.Sprintf("%d", result.Malformed)})
	}

	fmt.Println(cli.RenderTable(cli.Table{Rows: rows}))
	return nil
}
