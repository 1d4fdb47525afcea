package components

import (
	"strings"

	"unbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderTickRuler renders the chart's tick axis: a line of the given width
// with tick marks at the given 0–100 positions and their labels above.
func RenderTickRuler(positions []float64, labels []string, width int) string {
	t := theme.Active
	if width < 4 || len(positions) == 0 {
		return ""
	}

	labelRow := make([]rune, width)
	axisRow := make([]rune, width)
	for i := range labelRow {
		labelRow[i] = ' '
		axisRow[i] = '─'
	}

	for i, pos := range positions {
		x := tickCell(pos, width)
		axisRow[x] = '┬'
		if i < len(labels) {
			placeLabel(labelRow, labels[i], x)
		}
	}

	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	return muted.Render(string(labelRow)) + "\n" + dim.Render(string(axisRow))
}

// RenderLollipopTrack renders one row's track: hollow marker at the approved
// position, filled marker at the revised position, both on the shared scale.
func RenderLollipopTrack(approvedPos, revisedPos float64, width int, selected bool) string {
	t := theme.Active
	if width < 4 {
		return ""
	}

	track := make([]rune, width)
	for i := range track {
		track[i] = '·'
	}
	ai := tickCell(approvedPos, width)
	ri := tickCell(revisedPos, width)
	track[ai] = '○'
	track[ri] = '●'

	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	approved := lipgloss.NewStyle().Foreground(t.TextMuted)
	revised := lipgloss.NewStyle().Foreground(t.Accent)
	if selected {
		revised = revised.Bold(true)
	}

	var b strings.Builder
	for i, r := range track {
		switch {
		case i == ri:
			b.WriteString(revised.Render(string(r)))
		case i == ai:
			b.WriteString(approved.Render(string(r)))
		default:
			b.WriteString(dim.Render(string(r)))
		}
	}
	return b.String()
}

func tickCell(pos float64, width int) int {
	x := int(pos / 100 * float64(width-1))
	if x < 0 {
		x = 0
	}
	if x >= width {
		x = width - 1
	}
	return x
}

// placeLabel writes label centered on x, clamped to the row bounds.
func placeLabel(row []rune, label string, x int) {
	r := []rune(label)
	start := x - len(r)/2
	if start < 0 {
		start = 0
	}
	if start+len(r) > len(row) {
		start = len(row) - len(r)
	}
	if start < 0 {
		return
	}
	copy(row[start:], r)
}
