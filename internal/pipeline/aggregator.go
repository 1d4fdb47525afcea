// Package pipeline turns the flat budget row list into the aggregated
// Part → Section → Entity tree consumed by the layout engines.
package pipeline

import (
	"sort"

	"unbudget/internal/model"
)

// BuildTree aggregates flat budget rows into a BudgetTree.
//
// Entity rows take priority for display: a section_total row becomes a leaf
// (section-as-entity) only when the section has no qualifying entity rows,
// since the section total and its entity rows describe the same money.
// Section and part totals are always recomputed from retained children so
// layout areas stay internally consistent even if upstream totals differ by
// rounding. Rows with a non-positive revised estimate, and rows missing their
// identifying fields, are dropped silently.
func BuildTree(rows []model.BudgetRow) *model.BudgetTree {
	partRows := make(map[string]model.BudgetRow)
	sectionRows := make(map[string]model.BudgetRow)      // keyed by part/section
	entityRows := make(map[string][]model.BudgetRow)     // keyed by part/section
	partSections := make(map[string]map[string]struct{}) // part -> section ids

	tree := &model.BudgetTree{}

	noteSection := func(part, section string) {
		if partSections[part] == nil {
			partSections[part] = make(map[string]struct{})
		}
		partSections[part][section] = struct{}{}
	}

	for _, r := range rows {
		if !r.Identified() {
			continue
		}
		switch r.RowType {
		case model.RowGrandTotal:
			tree.GrandRevised2026 = r.Revised2026
			tree.GrandApproved2025 = r.Approved2025
		case model.RowPartTotal:
			partRows[r.Part] = r
		case model.RowSectionTotal:
			key := model.SectionID(r.Part, r.Section)
			sectionRows[key] = r
			noteSection(r.Part, r.Section)
		case model.RowEntityTotal:
			key := model.SectionID(r.Part, r.Section)
			entityRows[key] = append(entityRows[key], r)
			noteSection(r.Part, r.Section)
		}
	}

	for _, partID := range model.PartOrder() {
		sectionIDs := make([]string, 0, len(partSections[partID]))
		for s := range partSections[partID] {
			sectionIDs = append(sectionIDs, s)
		}
		sort.Strings(sectionIDs)

		part := model.PartNode{ID: partID, Name: partID}
		if pr, ok := partRows[partID]; ok {
			if pr.PartName != "" {
				part.Name = pr.PartName
			}
			part.Approved2025 = pr.Approved2025
			part.Proposed2026 = pr.Proposed2026
			part.VarianceVsApproved = rowVariance(pr)
		}

		for _, sid := range sectionIDs {
			if sec, ok := buildSection(partID, sid, entityRows, sectionRows); ok {
				part.Sections = append(part.Sections, sec)
				part.TotalBudget += sec.TotalBudget
			}
		}

		if part.TotalBudget > 0 {
			tree.Parts = append(tree.Parts, part)
		}
	}

	return tree
}

// buildSection assembles one section node. Returns ok=false when the section
// has neither qualifying entities nor a qualifying section-total row.
func buildSection(partID, sid string, entityRows map[string][]model.BudgetRow, sectionRows map[string]model.BudgetRow) (model.SectionNode, bool) {
	key := model.SectionID(partID, sid)
	sec := model.SectionNode{
		ID:      key,
		Section: sid,
	}
	if sr, ok := sectionRows[key]; ok {
		sec.Name = sr.SectionName
	}

	for _, er := range entityRows[key] {
		if er.Revised2026 <= 0 {
			continue
		}
		if sec.Name == "" {
			sec.Name = er.SectionName
		}
		sec.Entities = append(sec.Entities, entityNode(er))
		sec.TotalBudget += er.Revised2026
	}

	if len(sec.Entities) > 0 {
		// Larger entities first; ties broken by name for determinism.
		sort.SliceStable(sec.Entities, func(i, j int) bool {
			if sec.Entities[i].TotalBudget != sec.Entities[j].TotalBudget {
				return sec.Entities[i].TotalBudget > sec.Entities[j].TotalBudget
			}
			return sec.Entities[i].Name < sec.Entities[j].Name
		})
		return sec, true
	}

	// Section-as-entity fallback: no entity rows, so the section total row
	// itself becomes the single leaf.
	sr, ok := sectionRows[key]
	if !ok || sr.Revised2026 <= 0 {
		return model.SectionNode{}, false
	}
	leaf := entityNode(sr)
	if leaf.Name == "" {
		leaf.Name = sr.SectionName
	}
	sec.Name = sr.SectionName
	sec.Synthetic = true
	sec.Entities = []model.EntityNode{leaf}
	sec.TotalBudget = sr.Revised2026
	return sec, true
}

func entityNode(r model.BudgetRow) model.EntityNode {
	return model.EntityNode{
		Name:               r.DisplayName(),
		Abbreviation:       r.Abbreviation,
		TotalBudget:        r.Revised2026,
		Approved2025:       r.Approved2025,
		Proposed2026:       r.Proposed2026,
		VarianceVsApproved: rowVariance(r),
		Row:                r,
	}
}

func rowVariance(r model.BudgetRow) float64 {
	if r.VarianceVsApprovedPct != nil {
		return *r.VarianceVsApprovedPct
	}
	return variance(r.Revised2026, r.Approved2025)
}

// variance returns the percentage change from approved to revised, or 0 when
// there is no approved baseline to compare against.
func variance(revised, approved float64) float64 {
	if approved <= 0 {
		return 0
	}
	return (revised - approved) / approved * 100
}
