package tui

import (
	"strings"

	"unbudget/internal/cli"
	"unbudget/internal/lollipop"
	"unbudget/internal/tui/components"
	"unbudget/internal/tui/theme"
	"unbudget/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateChartKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.chartCursor < len(a.chartRows)-1 {
			a.chartCursor++
		}
		return a, nil

	case "k", "up":
		if a.chartCursor > 0 {
			a.chartCursor--
		}
		return a, nil

	case "enter":
		if a.chartCursor >= len(a.chartRows) {
			return a, nil
		}
		row := a.chartRows[a.chartCursor]
		res := view.Click(a.state, row.ID, row.HasChildren)
		a.state = res.State
		if res.Selected == "" {
			a.recompute()
			return a, nil
		}
		return a.openDetailRow(row)

	case "esc":
		// Collapse everything
		if len(a.state.Expanded) > 0 {
			a.state.Expanded = view.ExpandSet{}
			a.chartCursor = 0
			a.recompute()
		}
		return a, nil
	}
	return a, nil
}

// chart layout: name column, track, value column
const (
	chartNameWidth  = 34
	chartValueWidth = 9
)

func (a App) renderChartTab(w, h int) string {
	t := theme.Active

	trackW := w - chartNameWidth - chartValueWidth - 4
	if trackW < 12 {
		trackW = 12
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	// Tick ruler, aligned under the track column
	positions := make([]float64, len(a.chartTicks))
	labels := make([]string, len(a.chartTicks))
	for i, tick := range a.chartTicks {
		positions[i] = lollipop.Scale(tick, a.chartTicks)
		labels[i] = cli.FormatMoney(tick)
	}
	ruler := components.RenderTickRuler(positions, labels, trackW)

	var b strings.Builder
	b.WriteString(dimStyle.Render(" ○ approved 2025   ● revised 2026"))
	b.WriteString("\n\n")
	for _, line := range strings.Split(ruler, "\n") {
		b.WriteString(strings.Repeat(" ", chartNameWidth+2))
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Window the rows to the available height
	visible := h - 5
	if visible < 3 {
		visible = 3
	}
	start := 0
	if a.chartCursor >= visible {
		start = a.chartCursor - visible + 1
	}
	end := start + visible
	if end > len(a.chartRows) {
		end = len(a.chartRows)
	}

	for i := start; i < end; i++ {
		row := a.chartRows[i]
		selected := i == a.chartCursor

		marker := "  "
		if row.HasChildren {
			marker = "▸ "
			if a.state.Expanded.Has(row.ID) {
				marker = "▾ "
			}
		}
		name := strings.Repeat("  ", row.Level) + marker + row.Name
		if nr := []rune(name); len(nr) > chartNameWidth {
			name = string(nr[:chartNameWidth-1]) + "…"
		}

		style := nameStyle
		if selected {
			style = selStyle
		}
		b.WriteString(" ")
		b.WriteString(style.Render(padRight(name, chartNameWidth)))
		b.WriteString(" ")
		b.WriteString(components.RenderLollipopTrack(
			lollipop.Scale(row.Approved, a.chartTicks),
			lollipop.Scale(row.Revised, a.chartTicks),
			trackW,
			selected,
		))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(padLeft(cli.FormatMoney(row.Revised), chartValueWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

func padRight(s string, w int) string {
	if n := w - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := w - len([]rune(s)); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
