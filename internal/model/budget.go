// Package model defines the budget dataset types shared across the pipeline,
// layout engines, and rendering shells.
package model

// RowType discriminates the four kinds of rows in the flat budget dataset.
type RowType string

const (
	RowGrandTotal   RowType = "grand_total"
	RowPartTotal    RowType = "part_total"
	RowSectionTotal RowType = "section_total"
	RowEntityTotal  RowType = "entity_total"
)

// BudgetRow is one record of the flat budget dataset (budget.json).
//
// Monetary fields are whole US dollars. Nullable fields use pointers: a nil
// value means "not reported", which aggregation treats as 0 and display
// treats as unknown.
type BudgetRow struct {
	RowType     RowType `json:"row_type"`
	Part        string  `json:"part"`
	PartName    string  `json:"part_name"`
	Section     string  `json:"section"`
	SectionName string  `json:"section_name"`

	// Entity is the raw name from the budget table; EntityName is the long
	// official name resolved through the UN entity list; Abbreviation is its
	// short form; ChapterTitle is the heading used in the narrative chapters.
	Entity       string `json:"entity"`
	EntityName   string `json:"entity_name"`
	Abbreviation string `json:"abbreviation"`
	ChapterTitle string `json:"chapter_title"`

	Approved2025 float64 `json:"approved_2025"`
	Proposed2026 float64 `json:"proposed_2026"`
	Revised2026  float64 `json:"revised_2026"`

	// UN80 reorganization change breakdown (deltas, nullable).
	UN80Relocation    *float64 `json:"un80_relocation"`
	UN80Consolidation *float64 `json:"un80_consolidation"`
	UN80Other         *float64 `json:"un80_other"`
	UN80Total         *float64 `json:"un80_total"`

	TransitionalCapacities *float64 `json:"transitional_capacities"`

	VarianceVsApprovedPct *float64 `json:"variance_vs_approved_pct"`
	VarianceVsProposedPct *float64 `json:"variance_vs_proposed_pct"`

	Footnotes string `json:"footnotes"`
}

// DisplayName returns the best display name for the row's budget line.
func (r BudgetRow) DisplayName() string {
	switch {
	case r.EntityName != "":
		return r.EntityName
	case r.Entity != "":
		return r.Entity
	case r.SectionName != "":
		return r.SectionName
	default:
		return r.PartName
	}
}

// Identified reports whether the row carries the identifying fields its
// row_type requires. Unidentified rows are skipped during aggregation.
func (r BudgetRow) Identified() bool {
	switch r.RowType {
	case RowGrandTotal:
		return true
	case RowPartTotal:
		return r.Part != ""
	case RowSectionTotal:
		return r.Part != "" && r.Section != ""
	case RowEntityTotal:
		return r.Part != "" && r.Section != "" && (r.Entity != "" || r.EntityName != "")
	default:
		return false
	}
}

// partOrder is the canonical display order of budget parts in report A/80/400.
// Input order is never trusted; parts absent from the dataset are skipped.
var partOrder = []string{
	"Part I",
	"Part II",
	"Part III",
	"Part IV",
	"Part V",
	"Part VI",
	"Part VII",
	"Part VIII",
	"Part IX",
	"Part X",
	"Part XI",
	"Part XII",
	"Part XIII",
	"Part XIV",
}

// PartOrder returns the canonical part sequence.
func PartOrder() []string {
	out := make([]string, len(partOrder))
	copy(out, partOrder)
	return out
}

// PartRank returns the canonical position of a part id, or -1 if unknown.
func PartRank(part string) int {
	for i, p := range partOrder {
		if p == part {
			return i
		}
	}
	return -1
}
