package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Collapsible animation defaults.
const (
	defaultCollapsibleDuration = 0.25 // seconds
	collapsibleHeaderHeight    = 32.0
)

// Collapsible is the animated open/closed container. The open fraction is a
// tween the host samples each frame to clip its content height; the
// collapsible itself only runs the presentational state machine.
//
// There is no global animation manager; the host calls Update each frame,
// the same way tweens work everywhere else in this family.
type Collapsible struct {
	open     bool
	fraction float64
	tween    *gween.Tween
	duration float32
	easing   ease.TweenFunc

	// HeaderHeight is the always-visible clickable strip.
	HeaderHeight float64
	// ContentHeight is the full height of the content when open.
	ContentHeight float64

	group   *CollapsibleGroup
	groupID int

	// OnToggle fires after the open state flips (before the animation
	// finishes; the fraction catches up over the duration).
	OnToggle func(open bool)
}

// NewCollapsible creates a closed collapsible with the given content height.
func NewCollapsible(contentHeight float64) *Collapsible {
	return &Collapsible{
		duration:      defaultCollapsibleDuration,
		easing:        ease.OutQuad,
		HeaderHeight:  collapsibleHeaderHeight,
		ContentHeight: contentHeight,
	}
}

// SetDuration sets the open/close animation duration in seconds.
func (c *Collapsible) SetDuration(seconds float32) {
	c.duration = seconds
}

// SetEasing sets the easing function applied to the open fraction.
func (c *Collapsible) SetEasing(fn ease.TweenFunc) {
	c.easing = fn
}

// IsOpen reports the logical open state (the animation may still be running).
func (c *Collapsible) IsOpen() bool {
	return c.open
}

// Fraction returns the current eased open fraction in [0, 1].
func (c *Collapsible) Fraction() float64 {
	return c.fraction
}

// Height returns the current outer height: header plus the open fraction of
// the content.
func (c *Collapsible) Height() float64 {
	return c.HeaderHeight + c.fraction*c.ContentHeight
}

// SetOpen sets the open state, animating the fraction toward it.
// Opening a group member closes the rest of its group.
func (c *Collapsible) SetOpen(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	target := float32(0)
	if open {
		target = 1
	}
	c.tween = gween.New(float32(c.fraction), target, c.duration, c.easing)
	if open && c.group != nil {
		c.group.opened(c.groupID)
	}
	if c.OnToggle != nil {
		c.OnToggle(open)
	}
}

// Toggle flips the open state.
func (c *Collapsible) Toggle() {
	c.SetOpen(!c.open)
}

// Update advances the animation by dt seconds.
// Returns true while the fraction is still changing.
func (c *Collapsible) Update(dt float32) bool {
	if c.tween == nil {
		return false
	}
	v, done := c.tween.Update(dt)
	c.fraction = float64(v)
	if done {
		c.tween = nil
	}
	return !done
}

// HandlePointer toggles on a press inside the header strip. Coordinates are
// local to the collapsible; returns true if the event was consumed.
func (c *Collapsible) HandlePointer(ev PointerEvent) bool {
	if ev.Phase != PointerPressed || ev.Button != MouseButtonLeft {
		return false
	}
	if ev.X < 0 || ev.Y < 0 || ev.Y > c.HeaderHeight {
		return false
	}
	c.Toggle()
	return true
}

// CollapsibleGroup turns a set of collapsibles into an accordion: opening one
// member closes the others. The group is an explicit controller holding the
// currently-open member, passed to each member at registration. There is no
// ambient shared state.
type CollapsibleGroup struct {
	members []*Collapsible
	openIdx int
	hasOpen bool
}

// NewCollapsibleGroup creates an empty accordion group.
func NewCollapsibleGroup() *CollapsibleGroup {
	return &CollapsibleGroup{}
}

// Add registers a collapsible as a group member. If it is already open it
// becomes the group's open member, closing any previous one.
func (g *CollapsibleGroup) Add(c *Collapsible) {
	c.group = g
	c.groupID = len(g.members)
	g.members = append(g.members, c)
	if c.open {
		g.opened(c.groupID)
	}
}

// Open returns the currently open member, if any.
func (g *CollapsibleGroup) Open() (*Collapsible, bool) {
	if !g.hasOpen {
		return nil, false
	}
	return g.members[g.openIdx], true
}

// Update advances all member animations. Returns true while any is running.
func (g *CollapsibleGroup) Update(dt float32) bool {
	running := false
	for _, c := range g.members {
		if c.Update(dt) {
			running = true
		}
	}
	return running
}

// opened records idx as the open member and closes the others.
func (g *CollapsibleGroup) opened(idx int) {
	g.openIdx = idx
	g.hasOpen = true
	for i, m := range g.members {
		if i != idx && m.open {
			m.SetOpen(false)
		}
	}
}
