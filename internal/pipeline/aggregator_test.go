package pipeline

import (
	"math"
	"reflect"
	"testing"

	"unbudget/internal/model"
)

func entityRow(part, section, entity string, revised float64) model.BudgetRow {
	return model.BudgetRow{
		RowType:     model.RowEntityTotal,
		Part:        part,
		Section:     section,
		Entity:      entity,
		Revised2026: revised,
	}
}

func sectionRow(part, section, name string, revised float64) model.BudgetRow {
	return model.BudgetRow{
		RowType:     model.RowSectionTotal,
		Part:        part,
		Section:     section,
		SectionName: name,
		Revised2026: revised,
	}
}

func TestBuildTree_EntitiesShadowSectionTotal(t *testing.T) {
	rows := []model.BudgetRow{
		sectionRow("Part I", "2", "General Assembly affairs", 999), // stale upstream total
		entityRow("Part I", "2", "DGACM", 600),
		entityRow("Part I", "2", "Office of the President", 300),
	}

	tree := BuildTree(rows)
	if len(tree.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(tree.Parts))
	}
	sec := tree.Parts[0].Sections[0]
	if sec.Synthetic {
		t.Error("section with entity rows should not be synthetic")
	}
	if len(sec.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(sec.Entities))
	}
	// Section total recomputed from children, not taken from the section row.
	if sec.TotalBudget != 900 {
		t.Errorf("section TotalBudget = %.0f, want 900", sec.TotalBudget)
	}
	if tree.Parts[0].TotalBudget != 900 {
		t.Errorf("part TotalBudget = %.0f, want 900", tree.Parts[0].TotalBudget)
	}
}

func TestBuildTree_SectionAsEntityFallback(t *testing.T) {
	rows := []model.BudgetRow{
		sectionRow("Part II", "3", "Political affairs", 450),
	}

	tree := BuildTree(rows)
	if len(tree.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(tree.Parts))
	}
	sec := tree.Parts[0].Sections[0]
	if !sec.Synthetic {
		t.Error("section without entity rows should be synthetic")
	}
	if len(sec.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(sec.Entities))
	}
	if sec.Entities[0].Name != "Political affairs" {
		t.Errorf("leaf name = %q, want section name", sec.Entities[0].Name)
	}
	if sec.TotalBudget != 450 {
		t.Errorf("section TotalBudget = %.0f, want 450", sec.TotalBudget)
	}
}

func TestBuildTree_DropsNonPositiveRevised(t *testing.T) {
	rows := []model.BudgetRow{
		entityRow("Part I", "1", "Kept", 100),
		entityRow("Part I", "1", "Zero", 0),
		entityRow("Part I", "1", "Negative", -50),
	}

	tree := BuildTree(rows)
	sec := tree.Parts[0].Sections[0]
	if len(sec.Entities) != 1 || sec.Entities[0].Name != "Kept" {
		t.Fatalf("retained entities = %+v, want only Kept", sec.Entities)
	}
}

func TestBuildTree_EmptySectionDropped(t *testing.T) {
	rows := []model.BudgetRow{
		sectionRow("Part I", "1", "Empty", 0),
		entityRow("Part I", "2", "Kept", 100),
	}

	tree := BuildTree(rows)
	if len(tree.Parts[0].Sections) != 1 {
		t.Fatalf("sections = %d, want 1 (empty section dropped)", len(tree.Parts[0].Sections))
	}
	if tree.Parts[0].Sections[0].Section != "2" {
		t.Errorf("surviving section = %q, want 2", tree.Parts[0].Sections[0].Section)
	}
}

func TestBuildTree_CanonicalPartOrder(t *testing.T) {
	rows := []model.BudgetRow{
		entityRow("Part IV", "11", "D", 10),
		entityRow("Part I", "1", "A", 10),
		entityRow("Part XIV", "36", "Z", 10),
		entityRow("Part II", "3", "B", 10),
	}

	tree := BuildTree(rows)
	var got []string
	for _, p := range tree.Parts {
		got = append(got, p.ID)
	}
	want := []string{"Part I", "Part II", "Part IV", "Part XIV"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("part order = %v, want %v", got, want)
	}
}

func TestBuildTree_EntitySortIsDeterministic(t *testing.T) {
	rows := []model.BudgetRow{
		entityRow("Part I", "1", "Bravo", 100),
		entityRow("Part I", "1", "Alpha", 100),
		entityRow("Part I", "1", "Charlie", 300),
	}

	tree := BuildTree(rows)
	ents := tree.Parts[0].Sections[0].Entities
	var got []string
	for _, e := range ents {
		got = append(got, e.Name)
	}
	want := []string{"Charlie", "Alpha", "Bravo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entity order = %v, want %v (desc by budget, name tiebreak)", got, want)
	}

	again := BuildTree(rows)
	if !reflect.DeepEqual(tree, again) {
		t.Error("BuildTree is not deterministic for identical input")
	}
}

func TestBuildTree_PartAnnotationsFromPartTotal(t *testing.T) {
	pct := -3.5
	rows := []model.BudgetRow{
		{
			RowType:               model.RowPartTotal,
			Part:                  "Part I",
			PartName:              "Overall policymaking",
			Approved2025:          1000,
			VarianceVsApprovedPct: &pct,
		},
		entityRow("Part I", "1", "A", 965),
	}

	tree := BuildTree(rows)
	p := tree.Parts[0]
	if p.Name != "Overall policymaking" {
		t.Errorf("part name = %q, want part_total name", p.Name)
	}
	if p.Approved2025 != 1000 {
		t.Errorf("Approved2025 = %.0f, want 1000", p.Approved2025)
	}
	// Reported variance wins over the computed one.
	if p.VarianceVsApproved != -3.5 {
		t.Errorf("VarianceVsApproved = %.1f, want -3.5", p.VarianceVsApproved)
	}
}

func TestBuildTree_ComputedVariance(t *testing.T) {
	rows := []model.BudgetRow{
		{RowType: model.RowPartTotal, Part: "Part I", Approved2025: 200},
		entityRow("Part I", "1", "A", 210),
	}

	tree := BuildTree(rows)
	got := tree.Parts[0].VarianceVsApproved
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("computed variance = %.2f, want 5.00", got)
	}
}

func TestBuildTree_GrandTotals(t *testing.T) {
	rows := []model.BudgetRow{
		{RowType: model.RowGrandTotal, Revised2026: 3_200, Approved2025: 3_500},
		entityRow("Part I", "1", "A", 100),
	}

	tree := BuildTree(rows)
	if tree.GrandRevised2026 != 3_200 || tree.GrandApproved2025 != 3_500 {
		t.Errorf("grand totals = (%.0f, %.0f), want (3200, 3500)",
			tree.GrandRevised2026, tree.GrandApproved2025)
	}
	// TotalBudget always derives from retained children.
	if tree.TotalBudget() != 100 {
		t.Errorf("TotalBudget = %.0f, want 100", tree.TotalBudget())
	}
}

func TestBuildTree_SkipsUnidentifiedRows(t *testing.T) {
	rows := []model.BudgetRow{
		{RowType: model.RowEntityTotal, Section: "1", Entity: "No part", Revised2026: 100},
		{RowType: model.RowSectionTotal, Part: "Part I", Revised2026: 100},
		{RowType: "unknown_type", Part: "Part I", Section: "1", Revised2026: 100},
		entityRow("Part I", "1", "Valid", 50),
	}

	tree := BuildTree(rows)
	if len(tree.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(tree.Parts))
	}
	if got := tree.Parts[0].TotalBudget; got != 50 {
		t.Errorf("TotalBudget = %.0f, want 50 (only the valid row)", got)
	}
}
