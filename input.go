package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputAdapter polls Ebitengine mouse and keyboard state once per update tick
// and converts it into PointerEvent and KeyEvent values. It performs its own
// edge detection so hosts that cannot use it (tests, non-Ebiten embeddings)
// can feed events directly to Tree.HandlePointer and Tree.HandleKey instead.
//
// Offset shifts screen coordinates into the widget's local space; set it to
// the widget's top-left position on screen.
type InputAdapter struct {
	// Offset is subtracted from the cursor position before dispatch.
	Offset Vec2

	prevButtons [3]bool
	prevCursorX float64
	prevCursorY float64

	prevKeys map[ebiten.Key]bool
}

// NewInputAdapter creates an adapter with no offset.
func NewInputAdapter() *InputAdapter {
	return &InputAdapter{prevKeys: make(map[ebiten.Key]bool)}
}

// navKeys lists the Ebitengine keys the adapter watches and the navigation
// keys they map to.
var navKeys = []struct {
	eb  ebiten.Key
	key Key
}{
	{ebiten.KeyArrowUp, KeyArrowUp},
	{ebiten.KeyArrowDown, KeyArrowDown},
	{ebiten.KeyArrowLeft, KeyArrowLeft},
	{ebiten.KeyArrowRight, KeyArrowRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyEscape, KeyEscape},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// Poll reads the current input state and returns the events that occurred
// since the previous call. Call once per Ebitengine Update tick and feed the
// results to Tree.HandlePointer / Tree.HandleKey (and OverlayStack).
func (a *InputAdapter) Poll() ([]PointerEvent, []KeyEvent) {
	mods := readModifiers()

	var pointer []PointerEvent
	pointer = a.pollMouse(pointer, mods)

	var keys []KeyEvent
	keys = a.pollKeys(keys, mods)

	return pointer, keys
}

func (a *InputAdapter) pollMouse(out []PointerEvent, mods KeyModifiers) []PointerEvent {
	mx, my := ebiten.CursorPosition()
	x := float64(mx) - a.Offset.X
	y := float64(my) - a.Offset.Y

	buttons := [3]struct {
		eb ebiten.MouseButton
		rb MouseButton
	}{
		{ebiten.MouseButtonLeft, MouseButtonLeft},
		{ebiten.MouseButtonRight, MouseButtonRight},
		{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	}

	for i, b := range buttons {
		down := ebiten.IsMouseButtonPressed(b.eb)
		if down && !a.prevButtons[i] {
			out = append(out, PointerEvent{
				Phase: PointerPressed, X: x, Y: y,
				Button: b.rb, Modifiers: mods,
			})
		} else if !down && a.prevButtons[i] {
			out = append(out, PointerEvent{
				Phase: PointerReleased, X: x, Y: y,
				Button: b.rb, Modifiers: mods,
			})
		}
		a.prevButtons[i] = down
	}

	if x != a.prevCursorX || y != a.prevCursorY {
		// Moves carry the primary button so drag state machines can tell
		// button-held moves from hover moves.
		button := MouseButtonLeft
		out = append(out, PointerEvent{
			Phase: PointerMoved, X: x, Y: y,
			Button: button, Modifiers: mods,
		})
		a.prevCursorX = x
		a.prevCursorY = y
	}

	return out
}

func (a *InputAdapter) pollKeys(out []KeyEvent, mods KeyModifiers) []KeyEvent {
	for _, nk := range navKeys {
		down := ebiten.IsKeyPressed(nk.eb)
		if down && !a.prevKeys[nk.eb] {
			out = append(out, KeyEvent{Key: nk.key, Modifiers: mods})
		}
		a.prevKeys[nk.eb] = down
	}
	return out
}
