package tui

import (
	"fmt"
	"strings"
	"time"

	"unbudget/internal/config"
	"unbudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		// Cycle through themes and persist the choice (best-effort)
		next := 0
		for i, t := range theme.All {
			if t.Name == theme.Active.Name {
				next = (i + 1) % len(theme.All)
			}
		}
		theme.SetActive(theme.All[next].Name)

		cfg, err := config.Load()
		if err == nil {
			cfg.Appearance.Theme = theme.Active.Name
			_ = config.Save(cfg)
		}
		return a, nil

	case "m":
		a.compact = !a.compact
		a.recompute()
		return a, nil
	}
	return a, nil
}

func (a App) renderSettingsTab(_ int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	layoutMode := "squarified (auto row-packing under narrow widths)"
	if a.compact {
		layoutMode = "row-packing"
	}

	source := a.dataRef
	if a.fromCache {
		source += "  (served from cache)"
	}

	var b strings.Builder
	row := func(name, val string) {
		b.WriteString(" ")
		b.WriteString(label.Render(fmt.Sprintf("%-16s", name)))
		b.WriteString(value.Render(val))
		b.WriteString("\n")
	}
	row("Budget data", source)
	row("Narratives", a.detailsRef)
	row("Theme", theme.Active.Name)
	row("Layout", layoutMode)
	row("Load time", a.loadTime.Round(time.Millisecond).String())
	if a.malformed > 0 {
		row("Skipped rows", fmt.Sprintf("%d (malformed)", a.malformed))
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(" [enter] cycle theme   [m] toggle layout mode"))
	b.WriteString("\n")
	b.WriteString(dim.Render(" Config file: " + config.ConfigPath()))
	return b.String()
}
