// Package selection tracks the primary bubble and the ordered multi-select
// set.
package selection

// Model holds the primary selection and the multi-selection. Selected, when
// not -1, is always a member of Indices.
type Model struct {
	selected int
	indices  []int
}

// New returns an empty selection.
func New() *Model {
	return &Model{selected: -1}
}

// Selected returns the primary index, or -1 when nothing is selected.
func (m *Model) Selected() int { return m.selected }

// Indices returns a copy of the multi-selection in insertion order.
func (m *Model) Indices() []int {
	out := make([]int, len(m.indices))
	copy(out, m.indices)
	return out
}

// Len returns the number of selected bubbles.
func (m *Model) Len() int { return len(m.indices) }

// Contains reports whether i is in the multi-selection.
func (m *Model) Contains(i int) bool {
	return m.position(i) >= 0
}

// Select replaces the selection with the single index i. A negative index
// clears the selection.
func (m *Model) Select(i int) {
	if i < 0 {
		m.Clear()
		return
	}
	m.selected = i
	m.indices = append(m.indices[:0], i)
}

// Toggle adds or removes i from the multi-selection.
//
// Adding makes i primary only if nothing was selected. Removing the last
// member clears the primary; if exactly one member is left it becomes
// primary; if the primary was removed and several remain, the most
// recently added remaining member takes over.
func (m *Model) Toggle(i int) {
	if i < 0 {
		return
	}
	if pos := m.position(i); pos >= 0 {
		m.indices = append(m.indices[:pos], m.indices[pos+1:]...)
		switch {
		case len(m.indices) == 0:
			m.selected = -1
		case len(m.indices) == 1:
			m.selected = m.indices[0]
		case m.selected == i:
			m.selected = m.indices[len(m.indices)-1]
		}
		return
	}
	m.indices = append(m.indices, i)
	if m.selected < 0 {
		m.selected = i
	}
}

// Clear empties the selection.
func (m *Model) Clear() {
	m.selected = -1
	m.indices = m.indices[:0]
}

// Remove reacts to the bubble at index i being deleted from the list:
// i leaves the selection and higher indices shift down by one.
func (m *Model) Remove(i int) {
	if i < 0 {
		return
	}
	kept := m.indices[:0]
	for _, idx := range m.indices {
		switch {
		case idx == i:
			continue
		case idx > i:
			kept = append(kept, idx-1)
		default:
			kept = append(kept, idx)
		}
	}
	m.indices = kept
	switch {
	case m.selected == i:
		m.selected = -1
		if len(m.indices) > 0 {
			m.selected = m.indices[len(m.indices)-1]
		}
	case m.selected > i:
		m.selected--
	}
}

// Prune drops indices that are no longer valid for a list of count bubbles.
func (m *Model) Prune(count int) {
	kept := m.indices[:0]
	for _, idx := range m.indices {
		if idx < count {
			kept = append(kept, idx)
		}
	}
	m.indices = kept
	if m.selected >= count {
		m.selected = -1
		if len(m.indices) > 0 {
			m.selected = m.indices[len(m.indices)-1]
		}
	}
}

func (m *Model) position(i int) int {
	for pos, idx := range m.indices {
		if idx == i {
			return pos
		}
	}
	return -1
}
