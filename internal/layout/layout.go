// Package layout applies the treemap partitioner to the budget tree. Each
// level is laid out in its own 0–100 percentage coordinate system, so a
// renderer composes part → section → entity rectangles by nesting.
package layout

import (
	"sort"

	"unbudget/internal/model"
	"unbudget/internal/treemap"
)

// Unit is the full-container bounding box used at every nesting level.
var Unit = treemap.Rect{X: 0, Y: 0, Width: 100, Height: 100}

// PartRects places all parts of the tree within box, larger parts first.
func PartRects(tree *model.BudgetTree, box treemap.Rect, policy treemap.SplitPolicy) []treemap.Placed[*model.PartNode] {
	items := make([]treemap.Item[*model.PartNode], 0, len(tree.Parts))
	for i := range tree.Parts {
		p := &tree.Parts[i]
		items = append(items, treemap.Item[*model.PartNode]{Value: p.TotalBudget, Payload: p})
	}
	sortDesc(items)
	return treemap.Partition(items, box, policy)
}

// SectionRects places a part's sections within box, larger sections first.
func SectionRects(part *model.PartNode, box treemap.Rect, policy treemap.SplitPolicy) []treemap.Placed[*model.SectionNode] {
	items := make([]treemap.Item[*model.SectionNode], 0, len(part.Sections))
	for i := range part.Sections {
		s := &part.Sections[i]
		items = append(items, treemap.Item[*model.SectionNode]{Value: s.TotalBudget, Payload: s})
	}
	sortDesc(items)
	return treemap.Partition(items, box, policy)
}

// EntityRects places a section's entities within box. Entities are already
// sorted descending by budget in the tree; that ordering is a display policy
// (larger items top/left) and is preserved here.
func EntityRects(sec *model.SectionNode, box treemap.Rect, policy treemap.SplitPolicy) []treemap.Placed[*model.EntityNode] {
	items := make([]treemap.Item[*model.EntityNode], 0, len(sec.Entities))
	for i := range sec.Entities {
		e := &sec.Entities[i]
		items = append(items, treemap.Item[*model.EntityNode]{Value: e.TotalBudget, Payload: e})
	}
	return treemap.Partition(items, box, policy)
}

// Compose maps inner, expressed in percentages of outer, into outer's
// coordinate system. Renderers use it to flatten the nested part → section →
// entity rectangles into one plane.
func Compose(outer, inner treemap.Rect) treemap.Rect {
	return treemap.Rect{
		X:      outer.X + inner.X/100*outer.Width,
		Y:      outer.Y + inner.Y/100*outer.Height,
		Width:  inner.Width / 100 * outer.Width,
		Height: inner.Height / 100 * outer.Height,
	}
}

func sortDesc[T any](items []treemap.Item[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
}
