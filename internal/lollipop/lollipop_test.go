package lollipop

import (
	"reflect"
	"testing"

	"unbudget/internal/model"
	"unbudget/internal/view"
)

func testTree() *model.BudgetTree {
	return &model.BudgetTree{
		Parts: []model.PartNode{
			{
				ID:           "Part I",
				Name:         "Overall policymaking",
				TotalBudget:  900,
				Approved2025: 950,
				Proposed2026: 920,
				Sections: []model.SectionNode{
					{
						ID:      "Part I/1",
						Section: "1",
						Name:    "Overall policymaking",
						Entities: []model.EntityNode{
							{Name: "DGACM", TotalBudget: 600, Approved2025: 620, Proposed2026: 610},
							{Name: "OPGA", TotalBudget: 300, Approved2025: 330, Proposed2026: 310},
						},
						TotalBudget: 900,
					},
				},
			},
			{
				ID:          "Part II",
				Name:        "Political affairs",
				TotalBudget: 450,
				Sections: []model.SectionNode{
					{
						ID:          "Part II/3",
						Section:     "3",
						Name:        "Political affairs",
						Synthetic:   true,
						Entities:    []model.EntityNode{{Name: "Political affairs", TotalBudget: 450}},
						TotalBudget: 450,
					},
				},
			},
		},
	}
}

func rowIDs(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestBuildRows_CollapsedShowsPartsOnly(t *testing.T) {
	rows := BuildRows(testTree(), view.ExpandSet{})
	want := []string{"Part I", "Part II"}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	for _, r := range rows {
		if r.Level != 0 || !r.HasChildren {
			t.Errorf("part row %s: level=%d hasChildren=%v, want 0/true", r.ID, r.Level, r.HasChildren)
		}
	}
}

func TestBuildRows_ExpandedPartShowsSections(t *testing.T) {
	expanded := view.ExpandSet{"Part I": true}
	rows := BuildRows(testTree(), expanded)
	want := []string{"Part I", "Part I/1", "Part II"}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}

	sec := rows[1]
	if sec.Level != 1 {
		t.Errorf("section level = %d, want 1", sec.Level)
	}
	// Section series sum its children.
	if sec.Approved != 950 || sec.Revised != 900 {
		t.Errorf("section series = (%.0f, %.0f), want (950, 900)", sec.Approved, sec.Revised)
	}
}

func TestBuildRows_ExpandedSectionShowsEntities(t *testing.T) {
	expanded := view.ExpandSet{"Part I": true, "Part I/1": true}
	rows := BuildRows(testTree(), expanded)
	want := []string{"Part I", "Part I/1", "Part I/1/DGACM", "Part I/1/OPGA", "Part II"}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if rows[2].Level != 2 || rows[2].HasChildren {
		t.Errorf("entity row: level=%d hasChildren=%v, want 2/false", rows[2].Level, rows[2].HasChildren)
	}
}

func TestBuildRows_SyntheticSectionNeverExpands(t *testing.T) {
	// Expanding a synthetic section is a no-op: it has no real children.
	expanded := view.ExpandSet{"Part II": true, "Part II/3": true}
	rows := BuildRows(testTree(), expanded)
	want := []string{"Part I", "Part II", "Part II/3"}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if rows[2].HasChildren {
		t.Error("synthetic section should report no children")
	}
}

func TestBuildRows_ToggleTwiceRoundTrips(t *testing.T) {
	tree := testTree()
	base := view.ExpandSet{}
	before := BuildRows(tree, base)

	once := view.Toggle(base, "Part I")
	twice := view.Toggle(once, "Part I")
	after := BuildRows(tree, twice)

	if !reflect.DeepEqual(before, after) {
		t.Error("toggle-toggle did not return to the original rows")
	}
}

func TestBuildRows_DoesNotMutateExpandSet(t *testing.T) {
	expanded := view.ExpandSet{"Part I": true}
	BuildRows(testTree(), expanded)
	if len(expanded) != 1 || !expanded.Has("Part I") {
		t.Errorf("expand set mutated: %v", expanded)
	}
}

func TestTickValues_SmallMax(t *testing.T) {
	got := TickValues(50_000_000)
	want := []float64{0, 100_000_000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TickValues(50M) = %v, want %v", got, want)
	}
}

func TestTickValues_Invariants(t *testing.T) {
	maxes := []float64{
		1, 50_000_000, 100_000_000, 240_000_000, 600_000_000,
		900_000_000, 1_000_000_000, 1_400_000_000, 3_700_000_000,
	}
	for _, max := range maxes {
		ticks := TickValues(max)
		if ticks[0] != 0 {
			t.Errorf("max %.0f: first tick = %.0f, want 0", max, ticks[0])
		}
		for i := 1; i < len(ticks); i++ {
			if ticks[i] <= ticks[i-1] {
				t.Errorf("max %.0f: ticks not strictly increasing: %v", max, ticks)
			}
		}
		last := ticks[len(ticks)-1]
		if last < 0.9*max {
			t.Errorf("max %.0f: last tick %.0f covers less than 90%%", max, last)
		}
	}
}

func TestTickValues_LargeMaxRoundsUp(t *testing.T) {
	// 3.7B exceeds every candidate, so the closing tick rounds up to the next
	// hundred-million boundary.
	ticks := TickValues(3_700_000_000)
	last := ticks[len(ticks)-1]
	if last != 3_700_000_000 {
		t.Errorf("last tick = %.0f, want 3700000000", last)
	}
}

func TestScale(t *testing.T) {
	ticks := []float64{0, 100, 200}
	if got := Scale(100, ticks); got != 50 {
		t.Errorf("Scale(100) = %.2f, want 50", got)
	}
	if got := Scale(0, ticks); got != 0 {
		t.Errorf("Scale(0) = %.2f, want 0", got)
	}
	if got := Scale(200, ticks); got != 100 {
		t.Errorf("Scale(200) = %.2f, want 100", got)
	}
	if got := Scale(50, nil); got != 0 {
		t.Errorf("Scale with no ticks = %.2f, want 0", got)
	}
}

func TestMaxValue_ConsidersAllSeries(t *testing.T) {
	tree := testTree()
	// Part I approved (950) is the largest value across all series.
	if got := MaxValue(tree); got != 950 {
		t.Errorf("MaxValue = %.0f, want 950", got)
	}
}
