// Package treemap computes proportional-area rectangular partitions of
// weighted items. It is generic over the item payload and knows nothing about
// budget parts, sections, or entities.
package treemap

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle. Coordinates are in whatever unit the
// caller's bounding box uses; callers here use 0–100 percentages of a parent
// container.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is one weighted input to the partitioner.
type Item[T any] struct {
	Value   float64
	Payload T
}

// Placed is an output rectangle tagged with the payload it represents.
type Placed[T any] struct {
	Rect
	Payload T
}

// SplitPolicy selects how the partitioner divides space.
type SplitPolicy int

const (
	// AspectThreshold splits vertically when the box is wider than 0.7 of
	// its height, otherwise horizontally. Default policy.
	AspectThreshold SplitPolicy = iota
	// LongerAxis always splits along the box's longer axis.
	LongerAxis
	// RowPacking groups items into uniform rows of 2–4, trading strict
	// squarification for horizontal label space on narrow viewports.
	RowPacking
)

// aspectRatioCutoff is the width/height ratio above which AspectThreshold
// prefers a vertical (side-by-side) split.
const aspectRatioCutoff = 0.7

// Partition splits box among items proportionally to their values.
//
// Items with zero value are dropped; if the remaining value sum is zero (or
// items is empty) the result is nil and the caller suppresses the container.
// Every returned rectangle has strictly positive width and height and lies
// within box. A negative or non-finite value is a programmer error and
// panics rather than producing a corrupt rectangle.
func Partition[T any](items []Item[T], box Rect, policy SplitPolicy) []Placed[T] {
	kept := make([]Item[T], 0, len(items))
	var total float64
	for _, it := range items {
		if it.Value < 0 || math.IsNaN(it.Value) || math.IsInf(it.Value, 0) {
			panic(fmt.Sprintf("treemap: invalid item value %v", it.Value))
		}
		if it.Value == 0 {
			continue
		}
		kept = append(kept, it)
		total += it.Value
	}
	if total <= 0 || box.Width <= 0 || box.Height <= 0 {
		return nil
	}

	if policy == RowPacking && len(kept) >= 3 {
		if out, ok := packRows(kept, total, box); ok {
			return out
		}
		// A single packed row carries no benefit; use the binary split.
		policy = AspectThreshold
	}

	out := make([]Placed[T], 0, len(kept))
	return splitBinary(kept, total, box, policy, out)
}

// splitBinary recursively halves items at the value midpoint, splitting the
// box along the axis the policy picks. Both halves always receive at least
// one item and a strictly positive share of the total.
func splitBinary[T any](items []Item[T], total float64, box Rect, policy SplitPolicy, out []Placed[T]) []Placed[T] {
	if len(items) == 1 {
		return append(out, Placed[T]{Rect: box, Payload: items[0].Payload})
	}

	idx := splitIndex(items, total)
	var leftTotal float64
	for _, it := range items[:idx] {
		leftTotal += it.Value
	}
	frac := leftTotal / total

	var leftBox, rightBox Rect
	if splitVertical(box, policy) {
		w := box.Width * frac
		leftBox = Rect{X: box.X, Y: box.Y, Width: w, Height: box.Height}
		rightBox = Rect{X: box.X + w, Y: box.Y, Width: box.Width - w, Height: box.Height}
	} else {
		h := box.Height * frac
		leftBox = Rect{X: box.X, Y: box.Y, Width: box.Width, Height: h}
		rightBox = Rect{X: box.X, Y: box.Y + h, Width: box.Width, Height: box.Height - h}
	}

	out = splitBinary(items[:idx], leftTotal, leftBox, policy, out)
	return splitBinary(items[idx:], total-leftTotal, rightBox, policy, out)
}

// splitIndex finds the first prefix whose cumulative value reaches half the
// total, clamped so both sides stay non-empty.
func splitIndex[T any](items []Item[T], total float64) int {
	half := total / 2
	var cum float64
	for i, it := range items {
		cum += it.Value
		if cum >= half {
			if i+1 >= len(items) {
				return len(items) - 1
			}
			return i + 1
		}
	}
	return len(items) - 1
}

func splitVertical(box Rect, policy SplitPolicy) bool {
	if policy == LongerAxis {
		return box.Width >= box.Height
	}
	return box.Width/box.Height > aspectRatioCutoff
}

// packRows lays items out in rows of 2–4. Row size follows value uniformity:
// near-equal values pack densest. Returns ok=false when only one row would
// result, in which case the caller falls back to the binary split.
func packRows[T any](items []Item[T], total float64, box Rect) ([]Placed[T], bool) {
	minVal, maxVal := items[0].Value, items[0].Value
	for _, it := range items[1:] {
		if it.Value < minVal {
			minVal = it.Value
		}
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}
	ratio := minVal / maxVal

	perRow := 2
	switch {
	case ratio > 0.7 && len(items) >= 6:
		perRow = 4
	case ratio > 0.5 && len(items) >= 4:
		perRow = 3
	}
	if len(items) <= perRow {
		return nil, false
	}

	out := make([]Placed[T], 0, len(items))
	y := box.Y
	for start := 0; start < len(items); start += perRow {
		end := start + perRow
		if end > len(items) {
			end = len(items)
		}
		row := items[start:end]

		var rowTotal float64
		for _, it := range row {
			rowTotal += it.Value
		}
		rowH := rowTotal / total * box.Height

		x := box.X
		for _, it := range row {
			w := it.Value / rowTotal * box.Width
			out = append(out, Placed[T]{
				Rect:    Rect{X: x, Y: y, Width: w, Height: rowH},
				Payload: it.Payload,
			})
			x += w
		}
		y += rowH
	}
	return out, true
}
