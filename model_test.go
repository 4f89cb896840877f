package rowan

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// --- Construction ---

func TestNewModelFlattens(t *testing.T) {
	m := NewModel(
		NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}, {ID: 3, Children: []NodeSpec{{ID: 4}}}}},
		NodeSpec{ID: 5},
	)
	if m.Len() != 5 {
		t.Errorf("Len = %d, want 5", m.Len())
	}
	assertRoots(t, m, 1, 5)
	assertChildren(t, m, 1, 2, 3)
	assertChildren(t, m, 3, 4)
	assertParent(t, m, 4, 3)
	assertParent(t, m, 1, RootID)
}

func TestNewModelDuplicateIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate id")
		}
	}()
	NewModel(NodeSpec{ID: 1}, NodeSpec{ID: 1})
}

func TestNewModelZeroIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on id 0")
		}
	}()
	NewModel(NodeSpec{ID: 0})
}

func TestFindMissing(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	if _, ok := m.Find(99); ok {
		t.Error("Find(99) should report not found")
	}
}

func TestFindFlags(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Collapsed: true, AcceptsDrops: true, DragBlocked: true})
	info, ok := m.Find(1)
	if !ok {
		t.Fatal("node 1 missing")
	}
	if !info.Collapsed || !info.AcceptsDrops || !info.DragBlocked {
		t.Errorf("flags = %+v, want all true", info)
	}
}

// --- Insert ---

func TestInsertAtRoot(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1}, NodeSpec{ID: 2})
	if err := m.Insert(RootID, 1, NodeSpec{ID: 3}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	assertRoots(t, m, 1, 3, 2)
}

func TestInsertSubtree(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	err := m.Insert(1, 0, NodeSpec{ID: 2, Children: []NodeSpec{{ID: 3}}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	assertChildren(t, m, 1, 2)
	assertChildren(t, m, 2, 3)
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
}

func TestInsertMissingParent(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	err := m.Insert(42, 0, NodeSpec{ID: 2})
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != 42 {
		t.Errorf("err = %v, want NotFoundError{42}", err)
	}
	if m.Len() != 1 {
		t.Errorf("model changed on failed insert: Len = %d", m.Len())
	}
}

func TestInsertBumpsVersion(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	v := m.Version()
	m.Insert(RootID, 0, NodeSpec{ID: 2})
	if m.Version() == v {
		t.Error("Version should increase after Insert")
	}
}

// --- Remove ---

func TestRemoveReturnsSubtree(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{
		{ID: 2, Collapsed: true, Children: []NodeSpec{{ID: 3}}},
	}})
	spec, err := m.Remove(2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if spec.ID != 2 || !spec.Collapsed {
		t.Errorf("spec = %+v, want id 2 collapsed", spec)
	}
	if len(spec.Children) != 1 || spec.Children[0].ID != 3 {
		t.Errorf("spec.Children = %+v, want [{3}]", spec.Children)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if _, ok := m.Find(3); ok {
		t.Error("descendant 3 should be gone")
	}
	assertChildren(t, m, 1)
}

func TestRemoveReinsertRoundTrip(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2, Children: []NodeSpec{{ID: 3}}}}})
	spec, err := m.Remove(2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := m.Insert(RootID, 0, spec); err != nil {
		t.Fatalf("re-Insert: %v", err)
	}
	assertRoots(t, m, 2, 1)
	assertChildren(t, m, 2, 3)
}

func TestRemoveMissing(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	_, err := m.Remove(9)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

// --- Move ---

func TestMoveBetweenParents(t *testing.T) {
	m := NewModel(
		NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}}},
		NodeSpec{ID: 3},
	)
	if err := m.Move(2, 3, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertChildren(t, m, 1)
	assertChildren(t, m, 3, 2)
	assertParent(t, m, 2, 3)
}

func TestMoveToRoot(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}}})
	if err := m.Move(2, RootID, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertRoots(t, m, 2, 1)
}

func TestMoveWithinParentForward(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}, {ID: 3}, {ID: 4}}})
	// Index is interpreted after detach, so moving 2 to index 2 lands last.
	if err := m.Move(2, 1, 2); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertChildren(t, m, 1, 3, 4, 2)
}

func TestMoveIndexClamped(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1}, NodeSpec{ID: 2})
	if err := m.Move(2, RootID, 99); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertRoots(t, m, 1, 2)
	if err := m.Move(2, RootID, -5); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertRoots(t, m, 2, 1)
}

func TestMoveCycleRejected(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2, Children: []NodeSpec{{ID: 3}}}}})
	cases := []struct {
		name       string
		id, target NodeID
	}{
		{"under itself", 1, 1},
		{"under child", 1, 2},
		{"under grandchild", 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := m.Version()
			err := m.Move(tc.id, tc.target, 0)
			var ce CycleError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want CycleError", err)
			}
			if ce.ID != tc.id || ce.Target != tc.target {
				t.Errorf("CycleError = %+v, want {%d %d}", ce, tc.id, tc.target)
			}
			if m.Version() != v {
				t.Error("model changed on rejected move")
			}
		})
	}
}

func TestMoveSiblingNotCycle(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2}, {ID: 3}}})
	if err := m.Move(2, 3, 0); err != nil {
		t.Fatalf("Move under sibling: %v", err)
	}
	assertChildren(t, m, 3, 2)
}

func TestMoveMissing(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	var nf NotFoundError
	if err := m.Move(9, 1, 0); !errors.As(err, &nf) {
		t.Errorf("missing id: err = %v, want NotFoundError", err)
	}
	if err := m.Move(1, 9, 0); !errors.As(err, &nf) {
		t.Errorf("missing parent: err = %v, want NotFoundError", err)
	}
}

// --- Flags ---

func TestSetCollapsedRedundantNoBump(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	if err := m.SetCollapsed(1, true); err != nil {
		t.Fatalf("SetCollapsed: %v", err)
	}
	v := m.Version()
	if err := m.SetCollapsed(1, true); err != nil {
		t.Fatalf("SetCollapsed: %v", err)
	}
	if m.Version() != v {
		t.Error("redundant SetCollapsed should not bump version")
	}
	m.SetCollapsed(1, false)
	if m.Version() == v {
		t.Error("real SetCollapsed should bump version")
	}
}

func TestSetFlags(t *testing.T) {
	m := NewModel(NodeSpec{ID: 1})
	if err := m.SetAcceptsDrops(1, true); err != nil {
		t.Fatalf("SetAcceptsDrops: %v", err)
	}
	if err := m.SetDragBlocked(1, true); err != nil {
		t.Fatalf("SetDragBlocked: %v", err)
	}
	info, _ := m.Find(1)
	if !info.AcceptsDrops || !info.DragBlocked {
		t.Errorf("flags = %+v, want both set", info)
	}
}

// --- Properties ---

// Random mutation sequences must keep the arena a well-formed forest:
// every node reachable exactly once, parent links consistent, no cycles.
// Debug mode validates after every successful mutation and panics otherwise.
func TestModelRandomOps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := NewModel(NodeSpec{ID: 1}, NodeSpec{ID: 2}, NodeSpec{ID: 3})
		m.SetDebug(true)
		nextID := NodeID(4)

		ids := func() []NodeID {
			out := make([]NodeID, 0, m.Len())
			var walk func(id NodeID)
			walk = func(id NodeID) {
				out = append(out, id)
				info, _ := m.Find(id)
				for _, c := range info.Children {
					walk(c)
				}
			}
			for _, r := range m.Roots() {
				walk(r)
			}
			return out
		}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			all := ids()
			pickParent := func() NodeID {
				j := rapid.IntRange(0, len(all)).Draw(rt, "parent")
				if j == len(all) {
					return RootID
				}
				return all[j]
			}
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				parent := pickParent()
				siblings := len(m.childList(parent))
				idx := rapid.IntRange(0, siblings).Draw(rt, "idx")
				m.Insert(parent, idx, NodeSpec{ID: nextID})
				nextID++
			case 1:
				// Removing a root can take its whole subtree with it and
				// empty the model, so only the pick needs a node to exist.
				if len(all) > 0 {
					j := rapid.IntRange(0, len(all)-1).Draw(rt, "rm")
					m.Remove(all[j])
				}
			case 2:
				if len(all) >= 2 {
					a := all[rapid.IntRange(0, len(all)-1).Draw(rt, "mv")]
					target := pickParent()
					before := snapshot(m)
					err := m.Move(a, target, rapid.IntRange(0, 5).Draw(rt, "mi"))
					if err != nil && snapshot(m) != before {
						rt.Fatalf("failed Move(%d, %d) changed the model", a, target)
					}
				}
			case 3:
				if len(all) > 0 {
					j := rapid.IntRange(0, len(all)-1).Draw(rt, "cl")
					m.SetCollapsed(all[j], rapid.Bool().Draw(rt, "flag"))
				}
			}
		}
	})
}

// CycleError must fire exactly when the target is the node or a strict
// descendant of it.
func TestMoveCycleIffDescendant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		// A fixed chain plus a bystander gives both outcomes.
		m := NewModel(
			NodeSpec{ID: 1, Children: []NodeSpec{{ID: 2, Children: []NodeSpec{{ID: 3}}}}},
			NodeSpec{ID: 4},
		)
		all := []NodeID{1, 2, 3, 4}
		a := all[rapid.IntRange(0, 3).Draw(rt, "a")]
		b := all[rapid.IntRange(0, 3).Draw(rt, "b")]

		wantCycle := a == b || m.isDescendant(b, a)
		err := m.Move(a, b, 0)
		var ce CycleError
		gotCycle := errors.As(err, &ce)
		if gotCycle != wantCycle {
			rt.Errorf("Move(%d, %d): cycle = %v, want %v", a, b, gotCycle, wantCycle)
		}
	})
}

// --- Helpers ---

// snapshot captures a comparable string of the forest structure.
func snapshot(m *Model) string {
	var b strings.Builder
	var walk func(id NodeID)
	walk = func(id NodeID) {
		fmt.Fprintf(&b, "%d[", id)
		info, _ := m.Find(id)
		for _, c := range info.Children {
			walk(c)
		}
		b.WriteByte(']')
	}
	for _, r := range m.Roots() {
		walk(r)
	}
	return b.String()
}

func assertRoots(t *testing.T, m *Model, want ...NodeID) {
	t.Helper()
	got := m.Roots()
	if len(got) != len(want) {
		t.Fatalf("Roots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Roots = %v, want %v", got, want)
		}
	}
}

func assertChildren(t *testing.T, m *Model, parent NodeID, want ...NodeID) {
	t.Helper()
	info, ok := m.Find(parent)
	if !ok {
		t.Fatalf("node %d missing", parent)
	}
	if len(info.Children) != len(want) {
		t.Fatalf("children of %d = %v, want %v", parent, info.Children, want)
	}
	for i := range want {
		if info.Children[i] != want[i] {
			t.Fatalf("children of %d = %v, want %v", parent, info.Children, want)
		}
	}
}

func assertParent(t *testing.T, m *Model, id, parent NodeID) {
	t.Helper()
	info, ok := m.Find(id)
	if !ok {
		t.Fatalf("node %d missing", id)
	}
	if info.Parent != parent {
		t.Errorf("parent of %d = %d, want %d", id, info.Parent, parent)
	}
}
