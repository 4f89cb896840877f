package rowan

import "testing"

// --- Open/close ---

func TestCollapsibleStartsClosed(t *testing.T) {
	c := NewCollapsible(200)
	if c.IsOpen() {
		t.Error("should start closed")
	}
	if c.Fraction() != 0 {
		t.Errorf("Fraction = %v, want 0", c.Fraction())
	}
	if c.Height() != c.HeaderHeight {
		t.Errorf("Height = %v, want header only %v", c.Height(), c.HeaderHeight)
	}
}

func TestCollapsibleToggleAnimates(t *testing.T) {
	c := NewCollapsible(200)
	c.Toggle()
	if !c.IsOpen() {
		t.Fatal("should be open after toggle")
	}
	if c.Fraction() != 0 {
		t.Error("fraction should not jump before Update")
	}
	if !c.Update(0.1) {
		t.Error("animation should still be running")
	}
	f := c.Fraction()
	if f <= 0 || f >= 1 {
		t.Errorf("Fraction = %v, want mid-animation", f)
	}
	if c.Update(10) {
		t.Error("animation should finish")
	}
	if c.Fraction() != 1 {
		t.Errorf("Fraction = %v, want 1", c.Fraction())
	}
	if c.Height() != c.HeaderHeight+200 {
		t.Errorf("Height = %v, want %v", c.Height(), c.HeaderHeight+200)
	}
}

func TestCollapsibleCloseFromPartial(t *testing.T) {
	c := NewCollapsible(100)
	c.SetOpen(true)
	c.Update(0.1)
	mid := c.Fraction()
	c.SetOpen(false)
	c.Update(10)
	if c.Fraction() != 0 {
		t.Errorf("Fraction = %v, want 0 after closing from %v", c.Fraction(), mid)
	}
}

func TestCollapsibleSetOpenRedundant(t *testing.T) {
	c := NewCollapsible(100)
	fired := 0
	c.OnToggle = func(open bool) { fired++ }
	c.SetOpen(false)
	if fired != 0 {
		t.Error("redundant SetOpen must not fire OnToggle")
	}
	c.SetOpen(true)
	c.SetOpen(true)
	if fired != 1 {
		t.Errorf("OnToggle fired %d times, want 1", fired)
	}
}

func TestCollapsibleUpdateIdle(t *testing.T) {
	c := NewCollapsible(100)
	if c.Update(1) {
		t.Error("Update with no animation should report done")
	}
}

// --- Header pointer ---

func TestCollapsibleHeaderToggles(t *testing.T) {
	c := NewCollapsible(100)
	if !c.HandlePointer(press(10, 10)) {
		t.Error("header press should be consumed")
	}
	if !c.IsOpen() {
		t.Error("header press should toggle open")
	}
}

func TestCollapsibleBodyIgnored(t *testing.T) {
	c := NewCollapsible(100)
	if c.HandlePointer(press(10, c.HeaderHeight+10)) {
		t.Error("press below the header should pass through")
	}
	if c.HandlePointer(move(10, 10)) {
		t.Error("moves should pass through")
	}
	ev := press(10, 10)
	ev.Button = MouseButtonRight
	if c.HandlePointer(ev) {
		t.Error("right button should pass through")
	}
	if c.IsOpen() {
		t.Error("nothing should have toggled")
	}
}

// --- Accordion group ---

func TestGroupOpensOneAtATime(t *testing.T) {
	g := NewCollapsibleGroup()
	a := NewCollapsible(100)
	b := NewCollapsible(100)
	c := NewCollapsible(100)
	g.Add(a)
	g.Add(b)
	g.Add(c)

	a.SetOpen(true)
	if open, ok := g.Open(); !ok || open != a {
		t.Fatal("a should be the open member")
	}
	b.SetOpen(true)
	if a.IsOpen() {
		t.Error("opening b should close a")
	}
	if open, _ := g.Open(); open != b {
		t.Error("b should be the open member")
	}
	if c.IsOpen() {
		t.Error("c was never opened")
	}
}

func TestGroupAddOpenMember(t *testing.T) {
	g := NewCollapsibleGroup()
	a := NewCollapsible(100)
	a.SetOpen(true)
	b := NewCollapsible(100)
	b.SetOpen(true)
	g.Add(a)
	g.Add(b)
	if a.IsOpen() {
		t.Error("adding an open b should close a")
	}
	if open, _ := g.Open(); open != b {
		t.Error("b should be the open member")
	}
}

func TestGroupEmptyOpen(t *testing.T) {
	g := NewCollapsibleGroup()
	if _, ok := g.Open(); ok {
		t.Error("empty group has no open member")
	}
}

func TestGroupUpdateRunsAll(t *testing.T) {
	g := NewCollapsibleGroup()
	a := NewCollapsible(100)
	b := NewCollapsible(100)
	g.Add(a)
	g.Add(b)

	a.SetOpen(true)
	b.SetOpen(true) // closes a, so both animate
	if !g.Update(0.05) {
		t.Error("both animations should be running")
	}
	if g.Update(10) {
		t.Error("animations should finish")
	}
	if a.Fraction() != 0 || b.Fraction() != 1 {
		t.Errorf("fractions = %v, %v, want 0, 1", a.Fraction(), b.Fraction())
	}
}
