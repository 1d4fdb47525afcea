package components

import (
	"strings"
	"testing"

	"unbudget/internal/treemap"
)

func TestSnap(t *testing.T) {
	cases := []struct {
		pct  float64
		size int
		want int
	}{
		{0, 80, 0},
		{100, 80, 80},
		{50, 80, 40},
		{-5, 80, 0},
		{110, 80, 80},
	}
	for _, c := range cases {
		if got := snap(c.pct, c.size); got != c.want {
			t.Errorf("snap(%v, %d) = %d, want %d", c.pct, c.size, got, c.want)
		}
	}
}

func TestRenderTreemap_RowCount(t *testing.T) {
	blocks := []Block{
		{Rect: treemap.Rect{X: 0, Y: 0, Width: 60, Height: 100}, Label: "Part I"},
		{Rect: treemap.Rect{X: 60, Y: 0, Width: 40, Height: 100}, Label: "Part II"},
	}
	out := RenderTreemap(blocks, 40, 10)
	if got := len(strings.Split(out, "\n")); got != 10 {
		t.Errorf("rendered rows = %d, want 10", got)
	}
	if !strings.Contains(out, "Part I") || !strings.Contains(out, "Part II") {
		t.Error("labels missing from output")
	}
}

func TestRenderTreemap_TinyBlockKeepsACell(t *testing.T) {
	blocks := []Block{
		{Rect: treemap.Rect{X: 0, Y: 0, Width: 99.5, Height: 100}},
		{Rect: treemap.Rect{X: 99.5, Y: 0, Width: 0.5, Height: 100}},
	}
	out := RenderTreemap(blocks, 40, 6)
	if out == "" {
		t.Fatal("empty render")
	}

	// The sliver snaps to zero width but must still occupy one cell.
	x0 := snap(99.5, 40)
	x1 := snap(100, 40)
	if x1-x0 >= 1 {
		t.Skip("grid resolution keeps the sliver visible on its own")
	}
	// Covered by the min-width clamp in RenderTreemap; verify no panic and
	// full row output.
	if got := len(strings.Split(out, "\n")); got != 6 {
		t.Errorf("rendered rows = %d, want 6", got)
	}
}

func TestRenderTreemap_DegenerateGrid(t *testing.T) {
	blocks := []Block{{Rect: treemap.Rect{Width: 100, Height: 100}}}
	if out := RenderTreemap(blocks, 3, 10); out != "" {
		t.Error("too-narrow grid should render nothing")
	}
	if out := RenderTreemap(blocks, 40, 1); out != "" {
		t.Error("too-short grid should render nothing")
	}
	if out := RenderTreemap(nil, 40, 10); out != "" {
		t.Error("no blocks should render nothing")
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("DGACM", 10); got != " DGACM" {
		t.Errorf("fitLabel = %q, want leading space", got)
	}
	if got := fitLabel("Department for General Assembly", 8); len([]rune(got)) != 8 {
		t.Errorf("truncated label = %q, want 8 cells", got)
	}
	if got := fitLabel("X", 2); got != "" {
		t.Errorf("narrow fit = %q, want empty", got)
	}
}

func TestTickCell_Bounds(t *testing.T) {
	if got := tickCell(0, 50); got != 0 {
		t.Errorf("tickCell(0) = %d, want 0", got)
	}
	if got := tickCell(100, 50); got != 49 {
		t.Errorf("tickCell(100) = %d, want 49", got)
	}
	if got := tickCell(150, 50); got != 49 {
		t.Errorf("tickCell(150) = %d, want clamped to 49", got)
	}
}
