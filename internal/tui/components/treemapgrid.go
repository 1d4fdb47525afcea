package components

import (
	"strings"

	"unbudget/internal/treemap"
	"unbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Block is one treemap rectangle prepared for terminal rendering. Rect uses
// the partitioner's 0–100 percentage coordinates; RenderTreemap maps it onto
// the cell grid.
type Block struct {
	Rect     treemap.Rect
	Label    string // first line, e.g. entity abbreviation or part id
	Sub      string // second line, e.g. formatted budget
	Color    lipgloss.Color
	Selected bool
}

// cellBlock is a Block snapped to integer cell coordinates.
type cellBlock struct {
	x, y, w, h int
	block      *Block
}

// RenderTreemap rasterizes blocks onto a width×height cell grid. Rounding to
// whole cells means tiny rectangles may collapse below their true share;
// every block keeps at least one cell of width and height when its rect is
// non-empty, so nothing vanishes entirely.
func RenderTreemap(blocks []Block, width, height int) string {
	t := theme.Active
	if width < 4 || height < 2 || len(blocks) == 0 {
		return ""
	}

	cells := make([]cellBlock, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		x0 := snap(b.Rect.X, width)
		x1 := snap(b.Rect.X+b.Rect.Width, width)
		y0 := snap(b.Rect.Y, height)
		y1 := snap(b.Rect.Y+b.Rect.Height, height)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}
		if x1 > width {
			x0, x1 = max(0, width-(x1-x0)), width
		}
		if y1 > height {
			y0, y1 = max(0, height-(y1-y0)), height
		}
		cells = append(cells, cellBlock{x: x0, y: y0, w: x1 - x0, h: y1 - y0, block: b})
	}

	gap := lipgloss.NewStyle().Background(t.Background)

	var out strings.Builder
	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			cb := blockAt(cells, x, y)
			if cb == nil {
				// Rounding gap; fill to the next block edge.
				next := nextEdge(cells, x, y, width)
				out.WriteString(gap.Render(strings.Repeat(" ", next-x)))
				x = next
				continue
			}
			out.WriteString(renderSpan(cb, y, t))
			x = cb.x + cb.w
		}
		if y < height-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// renderSpan renders one horizontal slice of a block.
func renderSpan(cb *cellBlock, y int, t theme.Theme) string {
	b := cb.block

	style := lipgloss.NewStyle().
		Background(b.Color).
		Foreground(t.Background)
	if b.Selected {
		style = style.Foreground(t.TextPrimary).Bold(true)
	}

	text := ""
	switch y {
	case cb.y:
		text = fitLabel(b.Label, cb.w)
	case cb.y + 1:
		text = fitLabel(b.Sub, cb.w)
	}
	if pad := cb.w - len([]rune(text)); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return style.Render(text)
}

// fitLabel pads the label with a leading space and truncates it to w cells.
func fitLabel(s string, w int) string {
	if s == "" || w < 3 {
		return ""
	}
	r := []rune(" " + s)
	if len(r) > w {
		r = append(r[:w-1], '…')
	}
	return string(r)
}

func blockAt(cells []cellBlock, x, y int) *cellBlock {
	for i := range cells {
		cb := &cells[i]
		if x >= cb.x && x < cb.x+cb.w && y >= cb.y && y < cb.y+cb.h {
			return cb
		}
	}
	return nil
}

// nextEdge finds the next x where a block starts on row y, or the grid edge.
func nextEdge(cells []cellBlock, x, y, width int) int {
	next := width
	for i := range cells {
		cb := &cells[i]
		if y >= cb.y && y < cb.y+cb.h && cb.x > x && cb.x < next {
			next = cb.x
		}
	}
	return next
}

func snap(pct float64, size int) int {
	v := int(pct/100*float64(size) + 0.5)
	if v < 0 {
		return 0
	}
	if v > size {
		return size
	}
	return v
}
