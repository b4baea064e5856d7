// Package interact implements the hover and selection state machine of the
// flow diagram.
//
// Node hover is exclusive: entering a node replaces any previous hover, and
// while a node is hovered every other node is dimmed. Selection is an
// independent toggle that never changes opacity; it only decides which
// detail panel a surrounding UI shows. Ribbon hover is local to each ribbon
// and does not interact with node hover.
//
// A Machine is not safe for concurrent use. Every event resolves fully
// before the next one is processed, so callers that share a Machine across
// goroutines must serialize access.
package interact

import "slices"

// Opacity levels applied by the machine.
const (
	NodeDefaultOpacity = 0.9
	NodeDimmedOpacity  = 0.3
	NodeHoverOpacity   = 1.0

	LinkDefaultOpacity = 0.4
	LinkHoverOpacity   = 0.7
)

// State is the externally visible interaction state. Nil means none.
type State struct {
	Hovered  *int `json:"hovered"`
	Selected *int `json:"selected"`
	// Links holds the indices of hovered ribbons in ascending order.
	Links []int `json:"hovered_links,omitempty"`
}

// HoveredID returns the hovered node id, if any.
func (s State) HoveredID() (int, bool) { return deref(s.Hovered) }

// SelectedID returns the selected node id, if any.
func (s State) SelectedID() (int, bool) { return deref(s.Selected) }

// Idle reports whether no node is hovered.
func (s State) Idle() bool { return s.Hovered == nil }

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SelectFunc receives the new selection whenever it changes. ok is false
// when the selection was cleared.
type SelectFunc func(id int, ok bool)

// Machine tracks hover and selection.
type Machine struct {
	hovered  *int
	selected *int
	links    map[int]bool
	onSelect []SelectFunc
}

// New returns a Machine in the initial state: nothing hovered, nothing
// selected.
func New() *Machine {
	return &Machine{links: make(map[int]bool)}
}

// Restore returns a Machine in state s. No selection sink is called.
func Restore(s State) *Machine {
	m := New()
	if v, ok := s.HoveredID(); ok {
		m.hovered = &v
	}
	if v, ok := s.SelectedID(); ok {
		m.selected = &v
	}
	for _, i := range s.Links {
		m.links[i] = true
	}
	return m
}

// OnSelect registers fn to be called each time the selection changes.
// Selecting the already-selected node twice calls fn twice: once with the
// id and once with ok=false.
func (m *Machine) OnSelect(fn SelectFunc) {
	if fn != nil {
		m.onSelect = append(m.onSelect, fn)
	}
}

// EnterNode moves to Hovering(id), superseding any previous hover.
func (m *Machine) EnterNode(id int) { m.hovered = &id }

// LeaveNode clears the node hover.
func (m *Machine) LeaveNode() { m.hovered = nil }

// Click toggles selection of id.
func (m *Machine) Click(id int) {
	if m.selected != nil && *m.selected == id {
		m.setSelected(nil)
		return
	}
	m.setSelected(&id)
}

// Select sets the selection without toggling. It is a no-op when id is
// already selected.
func (m *Machine) Select(id int) {
	if m.selected != nil && *m.selected == id {
		return
	}
	m.setSelected(&id)
}

// Deselect clears the selection.
func (m *Machine) Deselect() {
	if m.selected != nil {
		m.setSelected(nil)
	}
}

func (m *Machine) setSelected(id *int) {
	m.selected = id
	v, ok := deref(id)
	for _, fn := range m.onSelect {
		fn(v, ok)
	}
}

// EnterLink highlights the ribbon with the given index.
func (m *Machine) EnterLink(index int) { m.links[index] = true }

// LeaveLink restores the ribbon with the given index.
func (m *Machine) LeaveLink(index int) { delete(m.links, index) }

// ClearLinks restores every ribbon to its resting opacity.
func (m *Machine) ClearLinks() { clear(m.links) }

// Reset returns to the initial state. A non-empty selection is cleared
// through the selection sink.
func (m *Machine) Reset() {
	m.hovered = nil
	clear(m.links)
	m.Deselect()
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	var s State
	if v, ok := deref(m.hovered); ok {
		s.Hovered = &v
	}
	if v, ok := deref(m.selected); ok {
		s.Selected = &v
	}
	if len(m.links) > 0 {
		s.Links = m.HoveredLinks()
	}
	return s
}

// HoveredLinks returns the indices of highlighted ribbons in ascending order.
func (m *Machine) HoveredLinks() []int {
	out := make([]int, 0, len(m.links))
	for i := range m.links {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// NodeOpacity returns the opacity of node id in the current state.
func (m *Machine) NodeOpacity(id int) float64 { return NodeOpacity(m.Snapshot(), id) }

// LinkOpacity returns the opacity of the ribbon with the given index.
func (m *Machine) LinkOpacity(index int) float64 {
	if m.links[index] {
		return LinkHoverOpacity
	}
	return LinkDefaultOpacity
}

// LinkOpacity derives a ribbon's opacity from a state.
func LinkOpacity(s State, index int) float64 {
	if slices.Contains(s.Links, index) {
		return LinkHoverOpacity
	}
	return LinkDefaultOpacity
}

// NodeOpacity derives a node's opacity from a state.
func NodeOpacity(s State, id int) float64 {
	h, ok := s.HoveredID()
	switch {
	case !ok:
		return NodeDefaultOpacity
	case h == id:
		return NodeHoverOpacity
	default:
		return NodeDimmedOpacity
	}
}
