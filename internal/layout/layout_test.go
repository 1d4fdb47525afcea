package layout

import (
	"math"
	"testing"

	"unbudget/internal/model"
	"unbudget/internal/treemap"
)

func testTree() *model.BudgetTree {
	return &model.BudgetTree{
		Parts: []model.PartNode{
			{ID: "Part I", TotalBudget: 300, Sections: []model.SectionNode{
				{ID: "Part I/1", TotalBudget: 300, Entities: []model.EntityNode{
					{Name: "B", TotalBudget: 200},
					{Name: "A", TotalBudget: 100},
				}},
			}},
			{ID: "Part II", TotalBudget: 700, Sections: []model.SectionNode{
				{ID: "Part II/3", TotalBudget: 700},
			}},
		},
	}
}

func TestPartRects_SortedByBudget(t *testing.T) {
	placed := PartRects(testTree(), Unit, treemap.AspectThreshold)
	if len(placed) != 2 {
		t.Fatalf("placed = %d, want 2", len(placed))
	}
	// Larger part first regardless of tree order.
	if placed[0].Payload.ID != "Part II" {
		t.Errorf("first rect = %s, want Part II", placed[0].Payload.ID)
	}
	a0 := placed[0].Width * placed[0].Height
	a1 := placed[1].Width * placed[1].Height
	if a0 <= a1 {
		t.Errorf("areas = %.1f, %.1f; want descending", a0, a1)
	}
}

func TestEntityRects_PreserveTreeOrder(t *testing.T) {
	sec := &testTree().Parts[0].Sections[0]
	placed := EntityRects(sec, Unit, treemap.AspectThreshold)
	if len(placed) != 2 {
		t.Fatalf("placed = %d, want 2", len(placed))
	}
	// The aggregator already ordered entities; layout must not reorder them.
	if placed[0].Payload.Name != "B" || placed[1].Payload.Name != "A" {
		t.Errorf("order = %s, %s; want B, A", placed[0].Payload.Name, placed[1].Payload.Name)
	}
}

func TestCompose(t *testing.T) {
	outer := treemap.Rect{X: 10, Y: 20, Width: 50, Height: 40}
	inner := treemap.Rect{X: 50, Y: 25, Width: 50, Height: 50}

	got := Compose(outer, inner)
	want := treemap.Rect{X: 35, Y: 30, Width: 25, Height: 20}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
		math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
		t.Errorf("Compose = %+v, want %+v", got, want)
	}
}

func TestCompose_UnitIsIdentity(t *testing.T) {
	inner := treemap.Rect{X: 12.5, Y: 30, Width: 25, Height: 40}
	if got := Compose(Unit, inner); got != inner {
		t.Errorf("Compose(Unit, r) = %+v, want %+v", got, inner)
	}
}

func TestSectionRects_EmptySectionSuppressed(t *testing.T) {
	part := &model.PartNode{
		ID: "Part I",
		Sections: []model.SectionNode{
			{ID: "Part I/1", TotalBudget: 100},
			{ID: "Part I/2", TotalBudget: 0},
		},
	}
	placed := SectionRects(part, Unit, treemap.AspectThreshold)
	if len(placed) != 1 {
		t.Fatalf("placed = %d, want 1 (zero-budget section suppressed)", len(placed))
	}
	if placed[0].Payload.ID != "Part I/1" {
		t.Errorf("survivor = %s, want Part I/1", placed[0].Payload.ID)
	}
}
