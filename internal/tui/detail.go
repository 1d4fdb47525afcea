package tui

import (
	"fmt"
	"strings"

	"unbudget/internal/cli"
	"unbudget/internal/details"
	"unbudget/internal/lollipop"
	"unbudget/internal/model"
	"unbudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// openDetail opens the narrative overlay for a treemap leaf. The narrative
// dataset is fetched lazily on the first selection.
func (a App) openDetail(b tmBlock) (tea.Model, tea.Cmd) {
	if b.entity == nil {
		return a, nil
	}
	return a.openDetailFor(b.name, b.entity.Row)
}

// openDetailRow opens the overlay from a chart row (entity or synthetic
// section leaf).
func (a App) openDetailRow(row lollipop.Row) (tea.Model, tea.Cmd) {
	switch {
	case row.Entity != nil:
		return a.openDetailFor(row.Name, row.Entity.Row)
	case row.Section != nil && len(row.Section.Entities) == 1:
		e := &row.Section.Entities[0]
		return a.openDetailFor(e.Name, e.Row)
	}
	return a, nil
}

func (a App) openDetailFor(name string, row model.BudgetRow) (tea.Model, tea.Cmd) {
	a.detailOpen = true
	a.detailName = name
	a.detailRow = row
	a.detailRec = nil
	a.detailErr = nil
	a.sizeDetailView()

	if a.records == nil {
		a.detailWait = true
		a.refreshDetailContent()
		return a, tea.Batch(a.spinner.Tick, a.fetchDetailsCmd())
	}
	a.resolveDetail()
	return a, nil
}

// resolveDetail matches the loaded records against the selected row's
// candidate names.
func (a *App) resolveDetail() {
	if !a.detailOpen || a.records == nil {
		return
	}
	r := a.detailRow
	a.detailRec = details.Match(a.records, r.EntityName, r.Entity, r.ChapterTitle)
	a.refreshDetailContent()
}

func (a *App) sizeDetailView() {
	w := a.width - 6
	h := a.height - 8
	if w < 30 {
		w = 30
	}
	if h < 5 {
		h = 5
	}
	a.detailView = viewport.New(w, h)
	a.refreshDetailContent()
}

func (a App) updateDetail(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		a.detailOpen = false
		return a, nil
	case "j", "down":
		a.detailView.LineDown(1)
		return a, nil
	case "k", "up":
		a.detailView.LineUp(1)
		return a, nil
	case "ctrl+d":
		a.detailView.HalfViewDown()
		return a, nil
	case "ctrl+u":
		a.detailView.HalfViewUp()
		return a, nil
	case "r":
		// Retry the narrative fetch after a failure
		if a.detailErr != nil && !a.detailWait {
			a.detailWait = true
			a.detailErr = nil
			a.refreshDetailContent()
			return a, tea.Batch(a.spinner.Tick, a.fetchDetailsCmd())
		}
		return a, nil
	}
	return a, nil
}

func (a *App) refreshDetailContent() {
	a.detailView.SetContent(a.detailContent(a.detailView.Width))
}

// detailContent renders the overlay body: budget figures for the selected
// line, then its narrative chapter when one matches.
func (a App) detailContent(w int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	para := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(w)

	r := a.detailRow

	var b strings.Builder
	line := func(name, val string) {
		b.WriteString(label.Render(fmt.Sprintf("%-26s", name)))
		b.WriteString(value.Render(val))
		b.WriteString("\n")
	}

	line("Revised 2026", cli.FormatMoneyFull(r.Revised2026))
	line("Proposed 2026", cli.FormatMoneyFull(r.Proposed2026))
	line("Approved 2025", cli.FormatMoneyFull(r.Approved2025))
	line("Variance vs approved", cli.FormatMaybePercent(r.VarianceVsApprovedPct))
	b.WriteString("\n")
	line("UN80 relocation", cli.FormatMaybe(r.UN80Relocation))
	line("UN80 consolidation", cli.FormatMaybe(r.UN80Consolidation))
	line("UN80 other", cli.FormatMaybe(r.UN80Other))
	line("UN80 total", cli.FormatMaybe(r.UN80Total))
	line("Transitional capacities", cli.FormatMaybe(r.TransitionalCapacities))
	if r.Footnotes != "" {
		line("Footnotes", r.Footnotes)
	}
	b.WriteString("\n")

	switch {
	case a.detailWait:
		b.WriteString(dim.Render("Loading narrative..."))
	case a.detailErr != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render("Narrative unavailable."))
		b.WriteString("\n")
		b.WriteString(dim.Render(a.detailErr.Error()))
		b.WriteString("\n")
		b.WriteString(dim.Render("Press [r] to retry."))
	case a.detailRec == nil:
		b.WriteString(dim.Render("No narrative available for this budget line."))
	default:
		b.WriteString(renderNarratives(a.detailRec, para, dim, w))
	}

	return b.String()
}

func renderNarratives(rec *details.Record, para, dim lipgloss.Style, w int) string {
	var b strings.Builder
	for _, n := range rec.Narratives {
		indent := strings.Repeat("  ", n.Level)
		prefix := ""
		if n.Prefix != "" {
			if n.Level > 0 {
				prefix = "(" + n.Prefix + ") "
			} else {
				prefix = n.Prefix + ". "
			}
		}
		b.WriteString(para.Width(w - len(indent)).Render(indent + prefix + n.Text))
		b.WriteString("\n\n")
	}

	if rt := rec.ResourceTable; rt != nil {
		b.WriteString(dim.Render("Proposed resource changes by object of expenditure"))
		b.WriteString("\n")
		b.WriteString(cli.RenderTable(cli.Table{Headers: rt.Headers, Rows: rt.Rows}))
	}
	return b.String()
}

func (a App) renderDetail() string {
	t := theme.Active

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(" " + a.detailName)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(" [esc]close  [j/k]scroll")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(0, 1)

	return "\n" + title + "\n\n" + frame.Render(a.detailView.View()) + "\n" + hint
}
