package rowan

import "math"

// defaultDragThreshold is the pointer travel in pixels that turns a press
// into a drag. Below it, a release is a click.
const defaultDragThreshold = 5.0

type dragPhase uint8

const (
	dragIdle dragPhase = iota
	dragPressed
	dragActive
)

// HoverTarget is the row/zone a drag session currently resolves to. Root is
// true for the "after the last row, at top level" target, in which case ID
// is meaningless.
type HoverTarget struct {
	ID       NodeID
	Position DropPosition
	Root     bool
}

// DropResult reports the outcome of releasing a drag session.
type DropResult struct {
	Committed bool
	IDs       []NodeID // dragged ids in their preserved relative order
	Target    HoverTarget
}

// DragDrop is the press → threshold → drag → commit/cancel state machine.
// It owns the drag session exclusively; a session exists only between the
// threshold being exceeded and release or cancel.
type DragDrop struct {
	model *Model
	cache *RowCache
	hit   *HitTester

	threshold float64
	phase     dragPhase

	originX, originY   float64
	currentX, currentY float64
	pressedID          NodeID
	dragged            []NodeID

	hover    HoverTarget
	hasHover bool
}

// NewDragDrop creates the drag controller over the given model, row cache,
// and hit tester.
func NewDragDrop(model *Model, cache *RowCache, hit *HitTester) *DragDrop {
	return &DragDrop{
		model:     model,
		cache:     cache,
		hit:       hit,
		threshold: defaultDragThreshold,
	}
}

// SetThreshold sets the minimum pointer travel in pixels before a press
// becomes a drag.
func (d *DragDrop) SetThreshold(pixels float64) {
	d.threshold = pixels
}

// Press begins a potential drag on the node with the given id. Returns false
// (staying Idle) when the node is missing or drag-blocked. If the pressed
// node is part of the current multi-selection the whole selection is dragged,
// minus any id whose ancestor is also selected; otherwise just the node.
func (d *DragDrop) Press(id NodeID, x, y float64, sel *Selection) bool {
	info, ok := d.model.Find(id)
	if !ok || info.DragBlocked {
		return false
	}
	var dragged []NodeID
	if sel != nil && sel.Contains(id) && sel.Len() > 1 {
		dragged = d.filterRedundant(sel.IDs(d.cache))
	} else {
		dragged = []NodeID{id}
	}
	d.phase = dragPressed
	d.originX, d.originY = x, y
	d.currentX, d.currentY = x, y
	d.pressedID = id
	d.dragged = dragged
	d.hasHover = false
	return true
}

// Move advances the pointer. In the pressed phase it promotes to dragging
// once the travel distance exceeds the threshold; while dragging it
// recomputes the hover target. Returns true if the drag state changed in a
// way that needs a redraw.
func (d *DragDrop) Move(x, y float64) bool {
	switch d.phase {
	case dragPressed:
		d.currentX, d.currentY = x, y
		if math.Hypot(x-d.originX, y-d.originY) > d.threshold {
			d.phase = dragActive
			d.resolveHover(x, y)
			return true
		}
		return false
	case dragActive:
		d.currentX, d.currentY = x, y
		prev, had := d.hover, d.hasHover
		d.resolveHover(x, y)
		return d.hasHover != had || d.hover != prev
	default:
		return false
	}
}

// Release ends the session. A release while dragging with a resolved hover
// target commits: the dragged nodes are moved in the model, preserving their
// relative order. A release with no target, or before the threshold was
// crossed, cancels without touching the model.
func (d *DragDrop) Release() DropResult {
	defer d.reset()
	if d.phase != dragActive || !d.hasHover {
		return DropResult{}
	}
	ids := make([]NodeID, len(d.dragged))
	copy(ids, d.dragged)
	target := d.hover
	if !d.commit(ids, target) {
		return DropResult{}
	}
	return DropResult{Committed: true, IDs: ids, Target: target}
}

// Cancel aborts the session with no model mutation. Called on focus loss,
// Escape, or unmount.
func (d *DragDrop) Cancel() {
	d.reset()
}

// IsDragging reports whether the threshold has been crossed.
func (d *DragDrop) IsDragging() bool {
	return d.phase == dragActive
}

// IsActive reports whether a session is in progress, pressed or dragging.
// A pressed session still needs cancelling even though no drag has started.
func (d *DragDrop) IsActive() bool {
	return d.phase != dragIdle
}

// DraggedIDs returns the ids in the active session, in row order.
// The returned slice MUST NOT be mutated by the caller.
func (d *DragDrop) DraggedIDs() []NodeID {
	if d.phase == dragIdle {
		return nil
	}
	return d.dragged
}

// PrimaryID returns the node the press started on, valid outside Idle.
func (d *DragDrop) PrimaryID() NodeID {
	return d.pressedID
}

// Hover returns the current hover target, if the session resolves to one.
func (d *DragDrop) Hover() (HoverTarget, bool) {
	if d.phase != dragActive {
		return HoverTarget{}, false
	}
	return d.hover, d.hasHover
}

// Position returns the current pointer position of the session.
func (d *DragDrop) Position() (x, y float64) {
	return d.currentX, d.currentY
}

// Offset returns the pointer travel since the press, for drawing the drag
// image at the host's discretion.
func (d *DragDrop) Offset() (dx, dy float64) {
	return d.currentX - d.originX, d.currentY - d.originY
}

// --- Internals ---

func (d *DragDrop) reset() {
	d.phase = dragIdle
	d.pressedID = RootID
	d.dragged = nil
	d.hasHover = false
}

// resolveHover recomputes the hover target for the pointer position. A target
// is rejected (no hover) when it is a dragged node or a descendant of one, so
// a subtree can never be dropped into itself. Below the last row the target
// becomes "after the last row, at root level".
func (d *DragDrop) resolveHover(x, y float64) {
	d.hasHover = false
	hr, ok := d.hit.Classify(Vec2{X: x, Y: y})
	if !ok {
		inX := x >= 0 && (d.hit.Width <= 0 || x < d.hit.Width)
		if inX && y >= d.cache.TotalHeight() && d.cache.Len() > 0 {
			d.hover = HoverTarget{Root: true, Position: DropAfter}
			d.hasHover = true
		}
		return
	}
	for _, id := range d.dragged {
		if hr.Row.ID == id || d.model.isDescendant(hr.Row.ID, id) {
			return
		}
	}
	d.hover = HoverTarget{ID: hr.Row.ID, Position: hr.Position}
	d.hasHover = true
}

// filterRedundant drops every id whose ancestor is also in the set; moving
// the ancestor already moves the descendant.
func (d *DragDrop) filterRedundant(ids []NodeID) []NodeID {
	member := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}
	out := ids[:0]
	for _, id := range ids {
		redundant := false
		info, ok := d.model.Find(id)
		for ok && info.Parent != RootID {
			if _, sel := member[info.Parent]; sel {
				redundant = true
				break
			}
			info, ok = d.model.Find(info.Parent)
		}
		if !redundant {
			out = append(out, id)
		}
	}
	return out
}

// commit applies the resolved drop to the model, preserving the relative
// order of the dragged set. Returns false if any move is rejected; the moves
// already applied stand (each is individually valid).
func (d *DragDrop) commit(ids []NodeID, target HoverTarget) bool {
	if target.Root {
		for _, id := range ids {
			if d.model.Move(id, RootID, len(d.model.Roots())) != nil {
				return false
			}
		}
		return true
	}

	tinfo, ok := d.model.Find(target.ID)
	if !ok {
		return false
	}

	switch target.Position {
	case DropBefore:
		// Each insert lands directly before the target, so earlier dragged
		// ids end up earlier.
		for _, id := range ids {
			idx := d.model.indexIn(tinfo.Parent, target.ID)
			idx = adjustForDetach(d.model, tinfo.Parent, id, idx)
			if d.model.Move(id, tinfo.Parent, idx) != nil {
				return false
			}
		}
	case DropAfter:
		// Chain: first lands after the target, each next after the previous.
		anchor := target.ID
		for _, id := range ids {
			idx := d.model.indexIn(tinfo.Parent, anchor)
			idx = adjustForDetach(d.model, tinfo.Parent, id, idx)
			if d.model.Move(id, tinfo.Parent, idx+1) != nil {
				return false
			}
			anchor = id
		}
	case DropInto:
		for i, id := range ids {
			if d.model.Move(id, target.ID, i) != nil {
				return false
			}
		}
	}
	return true
}

// adjustForDetach corrects a precomputed sibling index for the shift caused
// by detaching id from the same child list at an earlier position. Move
// interprets indexes after detach.
func adjustForDetach(m *Model, parent, id NodeID, idx int) int {
	info, ok := m.Find(id)
	if !ok || info.Parent != parent {
		return idx
	}
	if cur := m.indexIn(parent, id); cur >= 0 && cur < idx {
		return idx - 1
	}
	return idx
}
