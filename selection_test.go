package rowan

import "testing"

func buildSelection() (*Model, *RowCache, *Selection) {
	m := NewModel(
		NodeSpec{ID: 1},
		NodeSpec{ID: 2},
		NodeSpec{ID: 3},
		NodeSpec{ID: 4},
		NodeSpec{ID: 5},
		NodeSpec{ID: 6},
	)
	return m, NewRowCache(m), NewSelection()
}

// --- Plain click ---

func TestClickPlain(t *testing.T) {
	_, c, s := buildSelection()
	if !s.Click(2, 0, c) {
		t.Error("first click should change the selection")
	}
	assertSelected(t, s, 2)
	if a, ok := s.Anchor(); !ok || a != 2 {
		t.Errorf("Anchor = %d %v, want 2 true", a, ok)
	}
}

func TestClickPlainReplaces(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	s.Click(3, ModCtrl, c)
	s.Click(5, 0, c)
	assertSelected(t, s, 5)
}

func TestClickSameRowTwice(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	if s.Click(2, 0, c) {
		t.Error("re-clicking the sole selected row should report no change")
	}
}

// --- Ctrl/Cmd click ---

func TestClickToggle(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	s.Click(4, ModCtrl, c)
	assertSelected(t, s, 2, 4)
	s.Click(2, ModCtrl, c)
	assertSelected(t, s, 4)
	if a, ok := s.Anchor(); !ok || a != 2 {
		t.Errorf("toggle should leave the anchor alone, got %d %v", a, ok)
	}
}

func TestClickToggleMeta(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(3, ModMeta, c)
	assertSelected(t, s, 3)
}

// --- Shift click ---

func TestClickShiftRange(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	s.Click(5, ModShift, c)
	assertSelected(t, s, 2, 3, 4, 5)
	if a, _ := s.Anchor(); a != 2 {
		t.Errorf("anchor = %d, want 2 (shift must not move it)", a)
	}
}

func TestClickShiftRangeUpward(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(5, 0, c)
	s.Click(2, ModShift, c)
	assertSelected(t, s, 2, 3, 4, 5)
}

func TestClickShiftReplacesToggles(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(4, 0, c)
	s.Click(1, ModCtrl, c)
	s.Click(6, ModShift, c)
	// The range replaces everything, including the toggled 1.
	assertSelected(t, s, 4, 5, 6)
}

func TestClickShiftWithoutAnchor(t *testing.T) {
	_, c, s := buildSelection()
	if !s.Click(3, ModShift, c) {
		t.Error("shift-click without anchor should act as a plain click")
	}
	assertSelected(t, s, 3)
}

func TestClickShiftHiddenAnchor(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}}}, NodeSpec{ID: 3})
	c := NewRowCache(m)
	s := NewSelection()
	s.Click(2, 0, c)
	m.SetCollapsed(1, true)
	s.Click(3, ModShift, c)
	// Anchor row vanished, so the shift degrades to a plain click.
	assertSelected(t, s, 3)
}

// --- Empty click ---

func TestClickEmptyClears(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	if !s.ClickEmpty() {
		t.Error("clearing a non-empty selection should report a change")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if _, ok := s.Anchor(); ok {
		t.Error("anchor should be cleared")
	}
	if s.ClickEmpty() {
		t.Error("clearing an empty selection should report no change")
	}
}

// --- IDs and pruning ---

func TestIDsRowOrder(t *testing.T) {
	_, c, s := buildSelection()
	// Click order 5, 1, 3; row order must come back 1, 3, 5.
	s.Click(5, 0, c)
	s.Click(1, ModCtrl, c)
	s.Click(3, ModCtrl, c)
	ids := s.IDs(c)
	want := []NodeID{1, 3, 5}
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", ids, want)
		}
	}
}

func TestIDsIncludesHidden(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}}}, NodeSpec{ID: 3})
	c := NewRowCache(m)
	s := NewSelection()
	s.Click(2, 0, c)
	s.Click(3, ModCtrl, c)
	m.SetCollapsed(1, true)
	ids := s.IDs(c)
	if len(ids) != 2 {
		t.Fatalf("IDs = %v, want 2 entries", ids)
	}
	if ids[0] != 3 || ids[1] != 2 {
		t.Errorf("IDs = %v, want visible 3 first then hidden 2", ids)
	}
}

func TestPrune(t *testing.T) {
	m, c, s := buildSelection()
	s.Click(2, 0, c)
	s.Click(4, ModCtrl, c)
	m.Remove(2)
	s.Prune(m)
	assertSelected(t, s, 4)
	if _, ok := s.Anchor(); ok {
		t.Error("anchor pointing at a removed node should be cleared")
	}
}

// --- Keyboard toggle ---

func TestToggleKeepsAnchor(t *testing.T) {
	_, c, s := buildSelection()
	s.Click(2, 0, c)
	s.Toggle(4)
	assertSelected(t, s, 2, 4)
	s.Toggle(2)
	assertSelected(t, s, 4)
	if a, ok := s.Anchor(); !ok || a != 2 {
		t.Errorf("Anchor = %d %v, want 2 true", a, ok)
	}
}

// --- Helpers ---

func assertSelected(t *testing.T, s *Selection, want ...NodeID) {
	t.Helper()
	if s.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(want))
	}
	for _, id := range want {
		if !s.Contains(id) {
			t.Fatalf("node %d should be selected", id)
		}
	}
}
