// Package view holds the transient interaction state the layout engines read
// but do not own: which nodes are expanded and which node, if any, carries
// the tooltip or selection. State is explicit and passed in by callers;
// nothing here is ambient.
package view

// ExpandSet tracks the ids of currently expanded parts and sections.
type ExpandSet map[string]bool

// Has reports whether id is expanded.
func (s ExpandSet) Has(id string) bool { return s[id] }

// Toggle returns a copy of s with id's membership flipped. The receiver is
// never mutated, so callers can keep old sets for comparison or undo.
func Toggle(s ExpandSet, id string) ExpandSet {
	next := make(ExpandSet, len(s)+1)
	for k, v := range s {
		if v {
			next[k] = true
		}
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	return next
}

// PointerMode distinguishes hover-capable pointers from touch input, which
// gets click-to-toggle tooltips instead of hover.
type PointerMode int

const (
	PointerFine PointerMode = iota
	PointerTouch
)

// State is the full interaction state: the expand set, the active tooltip
// token (empty when none), and the input mode.
type State struct {
	Expanded ExpandSet
	Tooltip  string
	Mode     PointerMode
}

// NewState returns an empty interaction state for the given pointer mode.
func NewState(mode PointerMode) State {
	return State{Expanded: ExpandSet{}, Mode: mode}
}

// SetTooltip returns s with the tooltip token replaced. On touch input hover
// updates are suppressed; the token only changes through Click.
func SetTooltip(s State, token string) State {
	if s.Mode == PointerTouch {
		return s
	}
	s.Tooltip = token
	return s
}

// ClickResult describes the outcome of a click transition.
type ClickResult struct {
	State State
	// Selected is the id of a clicked leaf node, for the caller's detail
	// view. Empty when the click toggled an expandable node instead.
	Selected string
}

// Click applies a click on the node with the given id. Nodes with children
// toggle their expansion; leaves become the selection. Every input state has
// a defined next state and no transition is ever rolled back.
func Click(s State, id string, hasChildren bool) ClickResult {
	if hasChildren {
		s.Expanded = Toggle(s.Expanded, id)
		return ClickResult{State: s}
	}
	if s.Mode == PointerTouch {
		s.Tooltip = id
	}
	return ClickResult{State: s, Selected: id}
}
