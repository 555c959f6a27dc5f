package selection

import (
	"reflect"
	"testing"
)

func checkInvariant(t *testing.T, m *Model) {
	t.Helper()
	if s := m.Selected(); s >= 0 && !m.Contains(s) {
		t.Fatalf("primary %d not in %v", s, m.Indices())
	}
}

func TestMultiSelectScenario(t *testing.T) {
	m := New()
	m.Select(0)
	m.Toggle(2)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("indices = %v, want [0 2]", got)
	}
	if m.Selected() != 0 {
		t.Fatalf("primary = %d, want 0", m.Selected())
	}
	m.Toggle(0)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("indices = %v, want [2]", got)
	}
	if m.Selected() != 2 {
		t.Fatalf("primary = %d, want 2", m.Selected())
	}
	m.Toggle(2)
	if m.Selected() != -1 || m.Len() != 0 {
		t.Fatalf("got primary %d, indices %v; want empty", m.Selected(), m.Indices())
	}
}

func TestToggleRemovingPrimaryFromMany(t *testing.T) {
	m := New()
	m.Select(1)
	m.Toggle(4)
	m.Toggle(6)
	m.Toggle(1)
	if m.Selected() != 6 {
		t.Fatalf("primary = %d, want 6", m.Selected())
	}
	checkInvariant(t, m)
}

func TestToggleIntoEmptySetsPrimary(t *testing.T) {
	m := New()
	m.Toggle(3)
	if m.Selected() != 3 {
		t.Fatalf("primary = %d, want 3", m.Selected())
	}
}

func TestSelectReplaces(t *testing.T) {
	m := New()
	m.Select(1)
	m.Toggle(2)
	m.Select(5)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{5}) || m.Selected() != 5 {
		t.Fatalf("got %v primary %d", got, m.Selected())
	}
	m.Select(-1)
	if m.Selected() != -1 || m.Len() != 0 {
		t.Fatalf("negative select should clear")
	}
}

func TestRemoveShiftsIndices(t *testing.T) {
	m := New()
	m.Select(1)
	m.Toggle(3)
	m.Toggle(5)
	m.Remove(3)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("indices = %v, want [1 4]", got)
	}
	if m.Selected() != 1 {
		t.Fatalf("primary = %d, want 1", m.Selected())
	}
	m.Remove(0)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{0, 3}) || m.Selected() != 0 {
		t.Fatalf("got %v primary %d", got, m.Selected())
	}
	m.Remove(0)
	if m.Selected() != 2 {
		t.Fatalf("primary = %d, want 2", m.Selected())
	}
	checkInvariant(t, m)
}

func TestPrune(t *testing.T) {
	m := New()
	m.Select(7)
	m.Toggle(2)
	m.Prune(5)
	if got := m.Indices(); !reflect.DeepEqual(got, []int{2}) || m.Selected() != 2 {
		t.Fatalf("got %v primary %d", got, m.Selected())
	}
}
