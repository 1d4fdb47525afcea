package model

// BudgetTree is the aggregated Part → Section → Entity hierarchy. It is built
// once per dataset load and never mutated afterwards; both layout engines read
// it concurrently-safe by virtue of immutability.
type BudgetTree struct {
	Parts []PartNode `json:"parts"`

	// Grand-total annotations from the grand_total row (display only; layout
	// areas always derive from the sum of retained children).
	GrandRevised2026  float64 `json:"grand_revised_2026"`
	GrandApproved2025 float64 `json:"grand_approved_2025"`
}

// TotalBudget returns the sum of the retained parts' budgets.
func (t *BudgetTree) TotalBudget() float64 {
	var sum float64
	for i := range t.Parts {
		sum += t.Parts[i].TotalBudget
	}
	return sum
}

// Part returns the part node with the given id, or nil.
func (t *BudgetTree) Part(id string) *PartNode {
	for i := range t.Parts {
		if t.Parts[i].ID == id {
			return &t.Parts[i]
		}
	}
	return nil
}

// PartNode is one budget part. TotalBudget is the sum of its sections'
// budgets; Approved2025 and VarianceVsApproved come straight from the
// part_total row because they annotate the display rather than drive areas.
type PartNode struct {
	ID                 string        `json:"id"` // canonical part id, e.g. "Part I"
	Name               string        `json:"name"`
	TotalBudget        float64       `json:"total_budget"`
	Approved2025       float64       `json:"approved_2025"`
	Proposed2026       float64       `json:"proposed_2026"`
	VarianceVsApproved float64       `json:"variance_vs_approved_pct"` // percent; 0 when approved is 0
	Sections           []SectionNode `json:"sections"`
}

// SectionNode is one budget section within a part. Synthetic reports whether
// the section had no qualifying entity rows and stands in for itself as a
// single leaf (section-as-entity fallback).
type SectionNode struct {
	ID          string       `json:"id"`      // composite id, e.g. "Part I/1"
	Section     string       `json:"section"` // section identifier from the dataset, e.g. "3A"
	Name        string       `json:"name"`
	TotalBudget float64      `json:"total_budget"`
	Synthetic   bool         `json:"synthetic,omitempty"`
	Entities    []EntityNode `json:"entities"`
}

// EntityNode is a leaf of the tree: a single budget line sized by its revised
// 2026 estimate.
type EntityNode struct {
	Name               string    `json:"name"`
	Abbreviation       string    `json:"abbreviation,omitempty"`
	TotalBudget        float64   `json:"total_budget"` // revised 2026 estimate
	Approved2025       float64   `json:"approved_2025"`
	Proposed2026       float64   `json:"proposed_2026"`
	VarianceVsApproved float64   `json:"variance_vs_approved_pct"`
	Row                BudgetRow `json:"row"` // source row, for detail lookups
}

// SectionID builds the composite node id for a section.
func SectionID(part, section string) string {
	return part + "/" + section
}
