// Package components provides reusable TUI widgets for the unbudget dashboard.
package components

import (
	"strings"

	"unbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one headline figure shown in the strip above a tab: a label, the
// formatted value, and an optional note such as a variance arrow.
type Metric struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// noteColor picks the note color from the variance arrows FormatVariance
// emits: increases render in the accent color, cuts in the muted one.
func noteColor(note string, t theme.Theme) lipgloss.TerminalColor {
	switch {
	case strings.HasPrefix(note, "▲"):
		return t.Accent
	case strings.HasPrefix(note, "▼"):
		return t.TextMuted
	default:
		return t.TextDim
	}
}

func renderMetric(m Metric, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border
	if contentWidth < 10 {
		contentWidth = 10
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(m.Value)

	content := label + "\n" + value
	if m.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(noteColor(m.Note, t)).Render(m.Note)
	}

	return box.Render(content)
}

// MetricStrip renders a row of metric cards side by side. totalWidth is the
// full row width; the cards sum to exactly that.
func MetricStrip(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))

	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = renderMetric(m, widths[i])
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ContentCard renders a bordered card with an optional title line.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	if title != "" {
		heading := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title)
		body = heading + "\n" + body
	}

	return box.Render(body)
}
