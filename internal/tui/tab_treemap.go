package tui

import (
	"fmt"

	"unbudget/internal/cli"
	"unbudget/internal/treemap"
	"unbudget/internal/tui/components"
	"unbudget/internal/tui/theme"
	"unbudget/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateTreemapKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "l", "down", "right", "tab":
		if a.cursor < len(a.blocks)-1 {
			a.cursor++
		}
		a.hoverCursor()
		return a, nil

	case "k", "h", "up", "left", "shift+tab":
		if a.cursor > 0 {
			a.cursor--
		}
		a.hoverCursor()
		return a, nil

	case "m":
		a.compact = !a.compact
		a.recompute()
		return a, nil

	case "enter":
		if a.cursor >= len(a.blocks) {
			return a, nil
		}
		b := a.blocks[a.cursor]
		res := view.Click(a.state, b.id, !b.leaf)
		a.state = res.State
		if res.Selected == "" {
			// Drilled into a part
			a.drill = b.id
			a.cursor = 0
			a.recompute()
			return a, nil
		}
		return a.openDetail(b)

	case "esc":
		if a.drill != "" {
			a.drill = ""
			a.cursor = 0
			a.recompute()
		}
		return a, nil
	}
	return a, nil
}

// hoverCursor mirrors pointer hover: moving the cursor updates the tooltip
// token through the interaction-state transition.
func (a *App) hoverCursor() {
	if a.cursor < len(a.blocks) {
		a.state = view.SetTooltip(a.state, a.blocks[a.cursor].id)
	}
}

func (a App) renderTreemapTab(w, h int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	title := " All parts"
	if a.drill != "" {
		if p := a.tree.Part(a.drill); p != nil {
			title = fmt.Sprintf(" %s — %s  %s", p.ID, p.Name, cli.FormatMoney(p.TotalBudget))
		}
	}
	mode := "  [m]ode: squarified"
	if a.policy == treemap.RowPacking {
		mode = "  [m]ode: rows"
	}

	gridH := h - 2
	if gridH < 3 {
		gridH = 3
	}

	palette := t.Palette()
	blocks := make([]components.Block, 0, len(a.blocks))
	for i, b := range a.blocks {
		blocks = append(blocks, components.Block{
			Rect:     b.rect,
			Label:    b.label,
			Sub:      b.sub,
			Color:    palette[b.colorIdx%len(palette)],
			Selected: i == a.cursor,
		})
	}

	return titleStyle.Render(title+mode) + "\n" +
		components.RenderTreemap(blocks, w, gridH)
}
