// Package lollipop flattens the budget tree into the row list behind the
// comparative lollipop chart, with a shared numeric scale and nice ticks.
package lollipop

import (
	"math"

	"unbudget/internal/model"
	"unbudget/internal/view"
)

// Row is one visible line of the chart. Level 0 is a part, 1 a section, 2 an
// entity. The three monetary values share one scale across all rows so the
// chart stays comparable between lines.
type Row struct {
	ID          string
	Name        string
	Level       int
	Approved    float64
	Proposed    float64
	Revised     float64
	HasChildren bool

	// Back-references for click-through; exactly one is non-nil.
	Part    *model.PartNode
	Section *model.SectionNode
	Entity  *model.EntityNode
}

// BuildRows walks the tree in canonical order and emits the rows whose
// ancestors are all in the expand set. Sections appear in section-id order,
// entities descending by revised estimate; both orderings come from the tree
// itself. The expand set is read only, never modified.
func BuildRows(tree *model.BudgetTree, expanded view.ExpandSet) []Row {
	var rows []Row
	for i := range tree.Parts {
		p := &tree.Parts[i]
		rows = append(rows, Row{
			ID:          p.ID,
			Name:        p.Name,
			Level:       0,
			Approved:    p.Approved2025,
			Proposed:    p.Proposed2026,
			Revised:     p.TotalBudget,
			HasChildren: true,
			Part:        p,
		})
		if !expanded.Has(p.ID) {
			continue
		}
		for j := range p.Sections {
			s := &p.Sections[j]
			rows = append(rows, sectionRow(s))
			if s.Synthetic || !expanded.Has(s.ID) {
				continue
			}
			for k := range s.Entities {
				e := &s.Entities[k]
				rows = append(rows, Row{
					ID:       s.ID + "/" + e.Name,
					Name:     e.Name,
					Level:    2,
					Approved: e.Approved2025,
					Proposed: e.Proposed2026,
					Revised:  e.TotalBudget,
					Entity:   e,
				})
			}
		}
	}
	return rows
}

// sectionRow sums the section's retained children for all three series. A
// synthetic section is its own single leaf, so it renders without children.
func sectionRow(s *model.SectionNode) Row {
	var approved, proposed float64
	for i := range s.Entities {
		approved += s.Entities[i].Approved2025
		proposed += s.Entities[i].Proposed2026
	}
	name := s.Name
	if name == "" {
		name = "Section " + s.Section
	}
	return Row{
		ID:          s.ID,
		Name:        name,
		Level:       1,
		Approved:    approved,
		Proposed:    proposed,
		Revised:     s.TotalBudget,
		HasChildren: !s.Synthetic,
		Section:     s,
	}
}

// tickCandidates are the nice axis magnitudes, in US dollars.
var tickCandidates = []float64{
	100_000_000,
	250_000_000,
	500_000_000,
	750_000_000,
	1_000_000_000,
}

// tickStep is the boundary the closing tick rounds up to.
const tickStep = 100_000_000

// TickValues returns the axis ticks for a dataset whose largest value is
// maxValue. The result always starts at 0, is strictly increasing, and its
// last tick covers at least 90% of maxValue. Pure function of maxValue.
func TickValues(maxValue float64) []float64 {
	ticks := []float64{0}
	for _, c := range tickCandidates {
		if c <= maxValue {
			ticks = append(ticks, c)
		}
	}
	last := ticks[len(ticks)-1]
	if maxValue > 0 && last < 0.9*maxValue {
		next := math.Ceil(maxValue/tickStep) * tickStep
		if next > last {
			ticks = append(ticks, next)
		}
	}
	return ticks
}

// Scale maps a value to a 0–100 position against the last tick. Used for all
// rows and all three series so cross-row comparison stays valid.
func Scale(v float64, ticks []float64) float64 {
	if len(ticks) == 0 {
		return 0
	}
	last := ticks[len(ticks)-1]
	if last <= 0 {
		return 0
	}
	return v / last * 100
}

// MaxValue returns the largest of the three series over all parts, the value
// the tick set is derived from.
func MaxValue(tree *model.BudgetTree) float64 {
	var max float64
	for i := range tree.Parts {
		p := &tree.Parts[i]
		for _, v := range []float64{p.Approved2025, p.Proposed2026, p.TotalBudget} {
			if v > max {
				max = v
			}
		}
	}
	return max
}
