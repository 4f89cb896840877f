package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Tree layout defaults.
const (
	defaultIndent = 20.0 // horizontal shift per depth level
	arrowWidth    = 16.0 // expand/collapse arrow column
	contentGap    = 6.0  // gap between the arrow column and row content
)

// RowContent is host-supplied content for one row. Rows hold arbitrary
// widget content, not just text, so content is dispatched through this
// interface and stored by reference per node.
type RowContent interface {
	// Measure returns the content's preferred size within avail.
	Measure(avail Vec2) Vec2
	// Draw renders the content into bounds on dst.
	Draw(dst *ebiten.Image, bounds Rect)
	// HandleEvent offers a pointer event whose coordinates fall inside
	// bounds. Returning true consumes the event.
	HandleEvent(ev PointerEvent, bounds Rect) bool
}

// DropInfo reports a committed drop to the host.
type DropInfo struct {
	IDs          []NodeID // dragged ids, relative order preserved
	Target       NodeID   // resolved target node; meaningless when TargetIsRoot
	TargetIsRoot bool     // dropped after the last row, at top level
	Position     DropPosition
}

// Tree is the collapsible hierarchy widget: it routes host events to the
// selection, keyboard, and drag controllers, applies mutations to the model,
// and draws rows plus interaction chrome.
//
// Notification callbacks fire once per discrete state transition, after the
// transition has fully completed; a callback must not mutate this tree's
// model from within its own dispatch.
type Tree struct {
	model *Model
	cache *RowCache
	hit   *HitTester
	sel   *Selection
	nav   *Navigator
	drag  *DragDrop

	content map[NodeID]RowContent
	indent  float64
	width   float64

	// OnSelect fires when the selected set changes; ids are in row order.
	OnSelect func(ids []NodeID)
	// OnDrop fires after a drag commit has mutated the model.
	OnDrop func(info DropInfo)
	// OnCollapseChanged fires when a node's collapse flag flips.
	OnCollapseChanged func(id NodeID, collapsed bool)
	// OnCommit fires for Enter on a leaf row.
	OnCommit func(id NodeID)
}

// NewTree creates a tree widget over the given model.
func NewTree(model *Model) *Tree {
	cache := NewRowCache(model)
	hit := NewHitTester(model, cache)
	t := &Tree{
		model:   model,
		cache:   cache,
		hit:     hit,
		sel:     NewSelection(),
		nav:     NewNavigator(model, cache),
		drag:    NewDragDrop(model, cache, hit),
		content: make(map[NodeID]RowContent),
		indent:  defaultIndent,
	}
	cache.SetHeightFunc(t.rowHeight)
	return t
}

// Model returns the underlying hierarchy model.
func (t *Tree) Model() *Model { return t.model }

// Cache returns the row layout cache.
func (t *Tree) Cache() *RowCache { return t.cache }

// Selection returns the selection controller.
func (t *Tree) Selection() *Selection { return t.sel }

// Navigator returns the keyboard navigator.
func (t *Tree) Navigator() *Navigator { return t.nav }

// DragDrop returns the drag-and-drop controller.
func (t *Tree) DragDrop() *DragDrop { return t.drag }

// SetIndent sets the per-depth indentation in pixels.
func (t *Tree) SetIndent(px float64) { t.indent = px }

// SetDragThreshold sets the pointer travel before a press becomes a drag.
func (t *Tree) SetDragThreshold(px float64) { t.drag.SetThreshold(px) }

// SetRowContent attaches content to the row for id. Pass nil to detach.
func (t *Tree) SetRowContent(id NodeID, content RowContent) {
	if content == nil {
		delete(t.content, id)
	} else {
		t.content[id] = content
	}
	t.cache.Invalidate()
}

// rowHeight is the cache's height callback: content height, floored at the
// default row height.
func (t *Tree) rowHeight(id NodeID, depth int) float64 {
	c, ok := t.content[id]
	if !ok {
		return 0
	}
	avail := t.width - float64(depth)*t.indent - arrowWidth - contentGap
	if avail < 0 {
		avail = 0
	}
	h := c.Measure(Vec2{X: avail, Y: 0}).Y
	if h < defaultRowHeight {
		return defaultRowHeight
	}
	return h
}

// Measure returns the tree's size request for the given available space and
// records the width used for hit testing and content layout.
func (t *Tree) Measure(avail Vec2) Vec2 {
	if avail.X != t.width {
		t.width = avail.X
		t.cache.Invalidate()
	}
	t.hit.Width = avail.X
	return Vec2{X: avail.X, Y: t.cache.TotalHeight()}
}

// contentBounds is the rect a row's content occupies.
func (t *Tree) contentBounds(row Row) Rect {
	x := float64(row.Depth)*t.indent + arrowWidth + contentGap
	return Rect{X: x, Y: row.Top, Width: t.width - x, Height: row.Height}
}

// arrowBounds is the expand/collapse hit area of a row.
func (t *Tree) arrowBounds(row Row) Rect {
	return Rect{X: float64(row.Depth) * t.indent, Y: row.Top, Width: arrowWidth, Height: row.Height}
}

// HandlePointer routes one pointer event. Coordinates are in the tree's
// local space. Returns true if the event was consumed.
func (t *Tree) HandlePointer(ev PointerEvent) bool {
	switch ev.Phase {
	case PointerPressed:
		return t.pointerDown(ev)
	case PointerMoved:
		return t.drag.Move(ev.X, ev.Y)
	case PointerReleased:
		return t.pointerUp()
	}
	return false
}

func (t *Tree) pointerDown(ev PointerEvent) bool {
	if ev.Button != MouseButtonLeft {
		return false
	}
	row, ok := t.cache.RowAt(ev.Y)
	if !ok {
		// Empty space below the rows clears selection and anchor.
		if t.sel.ClickEmpty() {
			t.notifySelect()
		}
		t.nav.Blur()
		return false
	}

	info, found := t.model.Find(row.ID)
	if !found {
		return false
	}

	if len(info.Children) > 0 && t.arrowBounds(row).Contains(ev.X, ev.Y) {
		collapsed := !info.Collapsed
		if t.model.SetCollapsed(row.ID, collapsed) == nil {
			t.notifyCollapse(row.ID, collapsed)
		}
		return true
	}

	if c, ok := t.content[row.ID]; ok {
		cb := t.contentBounds(row)
		if cb.Contains(ev.X, ev.Y) && c.HandleEvent(ev, cb) {
			return true
		}
	}

	// Selection updates on press; the drag controller decides later whether
	// this press was a click or a drag start.
	t.nav.Focus(row.ID)
	pressDrag := t.sel.Contains(row.ID) && t.sel.Len() > 1
	if pressDrag {
		// Pressing inside a multi-selection must not collapse it before the
		// drag set is captured.
		t.drag.Press(row.ID, ev.X, ev.Y, t.sel)
		if t.sel.Click(row.ID, ev.Modifiers, t.cache) {
			t.notifySelect()
		}
	} else {
		if t.sel.Click(row.ID, ev.Modifiers, t.cache) {
			t.notifySelect()
		}
		t.drag.Press(row.ID, ev.X, ev.Y, t.sel)
	}
	return true
}

func (t *Tree) pointerUp() bool {
	res := t.drag.Release()
	if !res.Committed {
		return false
	}
	// The model mutation is already complete; expand a collapsed Into target
	// so the dropped nodes are visible, then notify.
	var expand NodeID
	if res.Target.Position == DropInto && !res.Target.Root {
		if info, ok := t.model.Find(res.Target.ID); ok && info.Collapsed {
			t.model.SetCollapsed(res.Target.ID, false)
			expand = res.Target.ID
		}
	}
	if t.OnDrop != nil {
		t.OnDrop(DropInfo{
			IDs:          res.IDs,
			Target:       res.Target.ID,
			TargetIsRoot: res.Target.Root,
			Position:     res.Target.Position,
		})
	}
	if expand != RootID {
		t.notifyCollapse(expand, false)
	}
	return true
}

// HandleKey routes one key event. Returns true if the event was consumed.
func (t *Tree) HandleKey(ev KeyEvent) bool {
	if ev.Key == KeyEscape {
		if t.drag.IsActive() {
			t.drag.Cancel()
			return true
		}
		return false
	}
	res := t.nav.Key(ev.Key, t.sel)
	switch res.Outcome {
	case NavNone:
		return false
	case NavCollapseChanged:
		t.notifyCollapse(res.Node, res.Collapsed)
	case NavSelectionToggled:
		t.notifySelect()
	case NavCommit:
		if t.OnCommit != nil {
			t.OnCommit(res.Node)
		}
	}
	return true
}

// CancelInteractions aborts any in-flight drag without mutating the model.
// Call on focus loss or before unmounting.
func (t *Tree) CancelInteractions() {
	t.drag.Cancel()
}

func (t *Tree) notifySelect() {
	t.sel.Prune(t.model)
	if t.OnSelect != nil {
		t.OnSelect(t.sel.IDs(t.cache))
	}
}

func (t *Tree) notifyCollapse(id NodeID, collapsed bool) {
	if t.OnCollapseChanged != nil {
		t.OnCollapseChanged(id, collapsed)
	}
}

// Draw renders the rows and interaction chrome into dst at the given origin.
// The drag image for an active drag is a translucent copy of the primary
// row at the pointer; richer drag visuals are the host's business.
func (t *Tree) Draw(dst *ebiten.Image, origin Vec2) {
	rows := t.cache.Rows()
	focusRow, hasFocus := t.nav.FocusedRow()
	hover, hasHover := t.drag.Hover()
	db := dst.Bounds()
	view := Rect{Width: float64(db.Dx()), Height: float64(db.Dy())}

	for i, row := range rows {
		bounds := Rect{X: origin.X, Y: origin.Y + row.Top, Width: t.width, Height: row.Height}
		if !view.Intersects(bounds) {
			continue
		}

		if t.sel.Contains(row.ID) {
			fillRect(dst, bounds, colorSelection)
		}
		if hasFocus && i == focusRow {
			strokeRect(dst, bounds, colorFocus)
		}

		if info, ok := t.model.Find(row.ID); ok && len(info.Children) > 0 {
			t.drawArrow(dst, origin, row, info.Collapsed)
		}
		if c, ok := t.content[row.ID]; ok {
			cb := t.contentBounds(row)
			cb.X += origin.X
			cb.Y += origin.Y
			c.Draw(dst, cb)
		}

		if hasHover && !hover.Root && hover.ID == row.ID {
			t.drawDropIndicator(dst, origin, row, hover.Position)
		}
	}

	if hasHover && hover.Root && len(rows) > 0 {
		last := rows[len(rows)-1]
		y := origin.Y + last.Top + last.Height
		fillRect(dst, Rect{X: origin.X, Y: y - 1, Width: t.width, Height: 2}, colorIndicator)
	}

	if t.drag.IsDragging() {
		x, y := t.drag.Position()
		if i, ok := t.cache.IndexOf(t.drag.PrimaryID()); ok {
			row := t.cache.At(i)
			ghost := Rect{X: origin.X + x + 4, Y: origin.Y + y + 4, Width: t.width / 2, Height: row.Height}
			fillRect(dst, ghost, colorSelection)
			strokeRect(dst, ghost, colorFocus)
		}
	}
}

// drawArrow renders the expand/collapse marker as a small quad; hosts that
// want glyph arrows draw over it.
func (t *Tree) drawArrow(dst *ebiten.Image, origin Vec2, row Row, collapsed bool) {
	a := t.arrowBounds(row)
	cx := origin.X + a.X + a.Width/2
	cy := origin.Y + a.Y + a.Height/2
	if collapsed {
		fillRect(dst, Rect{X: cx - 2, Y: cy - 5, Width: 4, Height: 10}, colorArrow)
	} else {
		fillRect(dst, Rect{X: cx - 5, Y: cy - 2, Width: 10, Height: 4}, colorArrow)
	}
}

// drawDropIndicator renders the insertion feedback for the hover target.
func (t *Tree) drawDropIndicator(dst *ebiten.Image, origin Vec2, row Row, pos DropPosition) {
	x := origin.X + float64(row.Depth)*t.indent
	w := t.width - float64(row.Depth)*t.indent
	switch pos {
	case DropBefore:
		fillRect(dst, Rect{X: x, Y: origin.Y + row.Top - 1, Width: w, Height: 2}, colorIndicator)
	case DropAfter:
		fillRect(dst, Rect{X: x, Y: origin.Y + row.Top + row.Height - 1, Width: w, Height: 2}, colorIndicator)
	case DropInto:
		strokeRect(dst, Rect{X: x, Y: origin.Y + row.Top, Width: w, Height: row.Height}, colorIndicator)
	}
}
