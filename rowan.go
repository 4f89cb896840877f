package rowan

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X &&
		other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// multiSelect reports whether the toggle-selection modifier is held.
// Ctrl on most platforms, Cmd (Meta) on macOS; both are accepted.
func (m KeyModifiers) multiSelect() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// Key identifies a keyboard key relevant to widget navigation.
type Key uint8

const (
	KeyNone       Key = iota
	KeyArrowUp        // move focus up one visible row
	KeyArrowDown      // move focus down one visible row
	KeyArrowLeft      // collapse the focused node, or move focus to its parent
	KeyArrowRight     // expand the focused node, or move focus to its first child
	KeyEnter          // toggle collapse, or commit the focused row
	KeySpace          // toggle selection of the focused row
	KeyEscape         // cancel an active drag, close the topmost overlay
)

// PointerPhase distinguishes press, move, and release pointer events.
type PointerPhase uint8

const (
	PointerPressed PointerPhase = iota
	PointerMoved
	PointerReleased
)

// PointerEvent is a single pointer input delivered by the host.
// Coordinates are in the widget's local space.
type PointerEvent struct {
	Phase     PointerPhase
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// KeyEvent is a single key press delivered by the host.
type KeyEvent struct {
	Key       Key
	Modifiers KeyModifiers
}
