package rowan

// Overlay geometry defaults, matching the drag/resize chrome the widgets draw.
const (
	overlayHeaderHeight = 32.0  // draggable strip at the top of a modal
	resizeHandleSize    = 8.0   // edge thickness that counts as a resize grip
	minOverlaySize      = 100.0 // overlays can never be resized below this
)

// OverlayKind selects the dismissal and stacking behavior of an overlay.
type OverlayKind uint8

const (
	OverlayModal    OverlayKind = iota // dismiss on click-outside or explicit close
	OverlayDropdown                    // dismiss on click-outside; may nest
	OverlayTooltip                     // dismiss on hover-exit of its anchor
)

// ResizeMode controls whether an overlay can be resized by dragging its edges.
type ResizeMode uint8

const (
	ResizeNone     ResizeMode = iota // not resizable
	ResizeAlways                     // edges always act as grips
	ResizeWithCtrl                   // edges act as grips only while Ctrl is held
)

// ResizeEdge names the edge or corner a resize gesture grabs.
type ResizeEdge uint8

const (
	EdgeNone ResizeEdge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
	EdgeTopLeft
	EdgeTopRight
	EdgeBottomLeft
	EdgeBottomRight
)

// ResizeEdgeAt classifies a pointer position against the rect's resize grips.
// handle is the grip thickness in pixels.
func ResizeEdgeAt(p Vec2, bounds Rect, handle float64) ResizeEdge {
	if !bounds.Contains(p.X, p.Y) {
		return EdgeNone
	}
	onLeft := p.X <= bounds.X+handle
	onRight := p.X >= bounds.X+bounds.Width-handle
	onTop := p.Y <= bounds.Y+handle
	onBottom := p.Y >= bounds.Y+bounds.Height-handle

	switch {
	case onLeft && onTop:
		return EdgeTopLeft
	case onRight && onTop:
		return EdgeTopRight
	case onLeft && onBottom:
		return EdgeBottomLeft
	case onRight && onBottom:
		return EdgeBottomRight
	case onLeft:
		return EdgeLeft
	case onRight:
		return EdgeRight
	case onTop:
		return EdgeTop
	case onBottom:
		return EdgeBottom
	default:
		return EdgeNone
	}
}

// OverlayID identifies one open overlay within a stack.
type OverlayID uint64

// Overlay is one entry in the stack. Its z-order is its stack position
// (topmost last); Bounds is the solved, user-adjusted rect it occupies.
type Overlay struct {
	id        OverlayID
	Kind      OverlayKind
	Anchor    Rect
	Preferred Side
	Content   Vec2
	Bounds    Rect
	Resize    ResizeMode

	// Draggable overlays move by their header strip. Dragging or resizing
	// pins the overlay: it stops following anchor/viewport changes.
	Draggable bool

	// Anchored overlays re-solve placement when the viewport changes;
	// non-anchored (viewport-relative) ones keep their bounds, clamped.
	Anchored bool

	pinned   bool
	dragging bool
	dragOffX float64
	dragOffY float64
	resizing bool
	edge     ResizeEdge
	startB   Rect
	startX   float64
	startY   float64

	// UserData carries arbitrary host content for the overlay.
	UserData any
}

// ID returns the overlay's stack-unique id.
func (o *Overlay) ID() OverlayID { return o.id }

// OverlayStack owns the ordered stack of open overlays and resolves
// click-outside dismissal, nested cascading closure, and per-overlay drag and
// resize. The host forwards pointer events here first; a false return means
// the event was not consumed and should go to the underlying content.
type OverlayStack struct {
	viewport Rect
	entries  []*Overlay
	nextID   OverlayID
}

// NewOverlayStack creates an empty stack clamped to the given viewport.
func NewOverlayStack(viewport Rect) *OverlayStack {
	return &OverlayStack{viewport: viewport}
}

// SetViewport updates the clamping viewport. Anchored, unpinned overlays are
// re-solved against it; everything else is clamped in place.
func (s *OverlayStack) SetViewport(viewport Rect) {
	s.viewport = viewport
	for _, o := range s.entries {
		if o.Anchored && !o.pinned {
			o.Bounds = Solve(o.Anchor, o.Preferred, o.Content, viewport)
		} else {
			o.Bounds.Width = min(o.Bounds.Width, viewport.Width)
			o.Bounds.Height = min(o.Bounds.Height, viewport.Height)
			o.Bounds = clampRect(o.Bounds, viewport)
		}
	}
}

// Viewport returns the current clamping viewport.
func (s *OverlayStack) Viewport() Rect { return s.viewport }

// Open pushes a new overlay placed relative to anchor and returns it.
// Its z-order is the current stack depth.
func (s *OverlayStack) Open(kind OverlayKind, anchor Rect, preferred Side, content Vec2) *Overlay {
	s.nextID++
	o := &Overlay{
		id:        s.nextID,
		Kind:      kind,
		Anchor:    anchor,
		Preferred: preferred,
		Content:   content,
		Bounds:    Solve(anchor, preferred, content, s.viewport),
		Anchored:  true,
		Draggable: kind == OverlayModal,
	}
	s.entries = append(s.entries, o)
	return o
}

// Close removes the overlay with the given id and cascades: every entry
// pushed after it closes too. Returns the closed ids, outermost first.
// A missing id is a no-op.
func (s *OverlayStack) Close(id OverlayID) []OverlayID {
	for i, o := range s.entries {
		if o.id == id {
			closed := make([]OverlayID, 0, len(s.entries)-i)
			for j := len(s.entries) - 1; j >= i; j-- {
				closed = append(closed, s.entries[j].id)
			}
			s.entries = s.entries[:i]
			return closed
		}
	}
	return nil
}

// CloseTopmost closes the topmost dismissible (non-tooltip) overlay, e.g. on
// Escape. Returns the closed ids, if any.
func (s *OverlayStack) CloseTopmost() []OverlayID {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind != OverlayTooltip {
			return s.Close(s.entries[i].id)
		}
	}
	return nil
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int { return len(s.entries) }

// Top returns the topmost overlay, or nil when the stack is empty.
func (s *OverlayStack) Top() *Overlay {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// At returns the overlay at stack position i (0 = bottom).
func (s *OverlayStack) At(i int) *Overlay { return s.entries[i] }

// Find returns the open overlay with the given id.
func (s *OverlayStack) Find(id OverlayID) (*Overlay, bool) {
	for _, o := range s.entries {
		if o.id == id {
			return o, true
		}
	}
	return nil, false
}

// hitOverlay returns the topmost overlay containing the point.
func (s *OverlayStack) hitOverlay(p Vec2) *Overlay {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Bounds.Contains(p.X, p.Y) {
			return s.entries[i]
		}
	}
	return nil
}

// PointerDown routes a press into the stack.
//
// A press inside an overlay may start a resize (edge grip, when its mode
// allows) or a drag (header strip of a draggable overlay), and is always
// consumed. A press outside every overlay closes the topmost overlay whose
// kind permits click-outside dismissal; the press is consumed if it closed
// something. Returns the consumed flag and any closed ids.
func (s *OverlayStack) PointerDown(ev PointerEvent) (consumed bool, closed []OverlayID) {
	p := Vec2{X: ev.X, Y: ev.Y}
	if o := s.hitOverlay(p); o != nil {
		if edge := o.resizeEdge(p, ev.Modifiers); edge != EdgeNone {
			o.resizing = true
			o.pinned = true
			o.edge = edge
			o.startB = o.Bounds
			o.startX, o.startY = ev.X, ev.Y
			return true, nil
		}
		header := Rect{X: o.Bounds.X, Y: o.Bounds.Y, Width: o.Bounds.Width, Height: overlayHeaderHeight}
		if o.Draggable && header.Contains(ev.X, ev.Y) {
			o.dragging = true
			o.pinned = true
			o.dragOffX = ev.X - o.Bounds.X
			o.dragOffY = ev.Y - o.Bounds.Y
		}
		return true, nil
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind != OverlayTooltip {
			return true, s.Close(s.entries[i].id)
		}
	}
	return false, nil
}

// PointerMove advances any active drag or resize and closes tooltips whose
// anchor the pointer has left. Returns the consumed flag and any closed ids.
func (s *OverlayStack) PointerMove(ev PointerEvent) (consumed bool, closed []OverlayID) {
	p := Vec2{X: ev.X, Y: ev.Y}
	for _, o := range s.entries {
		if o.dragging {
			o.Bounds.X = ev.X - o.dragOffX
			o.Bounds.Y = ev.Y - o.dragOffY
			o.Bounds = clampRect(o.Bounds, s.viewport)
			return true, nil
		}
		if o.resizing {
			o.applyResize(ev.X, ev.Y, s.viewport)
			return true, nil
		}
	}
	// Hover-exit for tooltips: leaving both anchor and bubble closes it.
	for i := len(s.entries) - 1; i >= 0; i-- {
		o := s.entries[i]
		if o.Kind == OverlayTooltip &&
			!o.Anchor.Contains(p.X, p.Y) && !o.Bounds.Contains(p.X, p.Y) {
			closed = append(closed, s.Close(o.id)...)
		}
	}
	return s.hitOverlay(p) != nil, closed
}

// PointerUp ends any active drag or resize.
func (s *OverlayStack) PointerUp(ev PointerEvent) (consumed bool) {
	for _, o := range s.entries {
		if o.dragging || o.resizing {
			o.dragging = false
			o.resizing = false
			o.edge = EdgeNone
			return true
		}
	}
	return s.hitOverlay(Vec2{X: ev.X, Y: ev.Y}) != nil
}

// resizeEdge reports which grip (if any) a press at p grabs, honoring the
// overlay's resize mode.
func (o *Overlay) resizeEdge(p Vec2, mods KeyModifiers) ResizeEdge {
	switch o.Resize {
	case ResizeNone:
		return EdgeNone
	case ResizeWithCtrl:
		if mods&ModCtrl == 0 {
			return EdgeNone
		}
	}
	return ResizeEdgeAt(p, o.Bounds, resizeHandleSize)
}

// applyResize recomputes bounds from the gesture start, enforcing the minimum
// size and viewport containment.
func (o *Overlay) applyResize(x, y float64, viewport Rect) {
	dx := x - o.startX
	dy := y - o.startY
	b := o.startB

	switch o.edge {
	case EdgeLeft, EdgeTopLeft, EdgeBottomLeft:
		w := max(minOverlaySize, b.Width-dx)
		b.X = b.X + b.Width - w
		b.Width = w
	case EdgeRight, EdgeTopRight, EdgeBottomRight:
		b.Width = max(minOverlaySize, b.Width+dx)
	}
	switch o.edge {
	case EdgeTop, EdgeTopLeft, EdgeTopRight:
		h := max(minOverlaySize, b.Height-dy)
		b.Y = b.Y + b.Height - h
		b.Height = h
	case EdgeBottom, EdgeBottomLeft, EdgeBottomRight:
		b.Height = max(minOverlaySize, b.Height+dy)
	}

	b.Width = min(b.Width, viewport.Width)
	b.Height = min(b.Height, viewport.Height)
	o.Bounds = clampRect(b, viewport)
	o.Content = Vec2{X: b.Width, Y: b.Height}
}
