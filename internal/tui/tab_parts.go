package tui

import (
	"fmt"

	"unbudget/internal/cli"
	"unbudget/internal/model"
	"unbudget/internal/tui/components"
)

func (a App) renderPartsTab(w int) string {
	barW := w - 70
	if barW < 8 {
		barW = 8
	}
	var maxBudget float64
	for i := range a.tree.Parts {
		if a.tree.Parts[i].TotalBudget > maxBudget {
			maxBudget = a.tree.Parts[i].TotalBudget
		}
	}

	total := a.tree.TotalBudget()
	variance := 0.0
	if a.tree.GrandApproved2025 > 0 {
		variance = (total - a.tree.GrandApproved2025) / a.tree.GrandApproved2025 * 100
	}
	cardW := w - 2
	if cardW > 90 {
		cardW = 90
	}
	cards := components.MetricStrip([]components.Metric{
		{Label: "Revised 2026", Value: cli.FormatMoney(total), Note: cli.FormatVariance(variance)},
		{Label: "Approved 2025", Value: cli.FormatMoney(a.tree.GrandApproved2025)},
		{Label: "Parts", Value: fmt.Sprintf("%d", len(a.tree.Parts))},
		{Label: "Sections", Value: fmt.Sprintf("%d", countSections(a.tree))},
	}, cardW)

	tbl := cli.Table{
		Headers: []string{"Part", "Revised 2026", "Approved 2025", "Variance", "Share"},
	}
	for i := range a.tree.Parts {
		p := &a.tree.Parts[i]
		tbl.Rows = append(tbl.Rows, []string{
			fmt.Sprintf("%s  %s", p.ID, p.Name),
			cli.FormatMoney(p.TotalBudget),
			cli.FormatMoney(p.Approved2025),
			cli.FormatVariance(p.VarianceVsApproved),
			cli.RenderHorizontalBar(p.TotalBudget, maxBudget, barW),
		})
	}
	return cards + "\n" + cli.RenderTable(tbl)
}

func countSections(tree *model.BudgetTree) int {
	n := 0
	for i := range tree.Parts {
		n += len(tree.Parts[i].Sections)
	}
	return n
}
