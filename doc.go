// Package rowan is a hierarchical tree-view interaction engine and overlay
// manager for [Ebitengine].
//
// Rowan provides the state machines behind an editor-style tree widget:
// visible-row layout, hit testing with drop-zone classification, anchored
// multi-selection, keyboard navigation, threshold-gated drag-and-drop with
// multi-node reparenting, and an overlay stack with anchored placement,
// dragging, and edge resizing. Rendering is intentionally thin; hosts can use
// the built-in chrome or draw rows and overlays themselves.
//
// # Quick start
//
// Build a [Model] from [NodeSpec] values, wrap it in a [Tree], and feed it
// input each tick:
//
//	model := rowan.NewModel(
//		rowan.NodeSpec{ID: 1, Children: []rowan.NodeSpec{{ID: 2}, {ID: 3}}},
//		rowan.NodeSpec{ID: 4, AcceptsDrops: true},
//	)
//	tree := rowan.NewTree(model)
//	tree.OnDrop = func(info rowan.DropInfo) { /* persist the move */ }
//
// Inside an [ebiten.Game]:
//
//	func (g *Game) Update() error {
//		pointer, keys := g.input.Poll()
//		for _, ev := range pointer {
//			g.tree.HandlePointer(ev)
//		}
//		for _, ev := range keys {
//			g.tree.HandleKey(ev)
//		}
//		return nil
//	}
//
//	func (g *Game) Draw(dst *ebiten.Image) { g.tree.Draw(dst, rowan.Vec2{}) }
//
// Hosts that are not Ebitengine games can skip [InputAdapter] and construct
// [PointerEvent] and [KeyEvent] values directly; the core state machines have
// no frame loop of their own.
//
// # Overlays
//
// [OverlayStack] manages modals, dropdowns, and tooltips above the tree.
// Placement tries the preferred side of the anchor, then its opposite, then
// the orthogonal sides, finally clamping into the viewport:
//
//	stack := rowan.NewOverlayStack(rowan.Rect{Width: 800, Height: 600})
//	stack.Open(rowan.OverlayDropdown, anchorRect, rowan.SideBottom, rowan.Vec2{X: 200, Y: 150})
//
// [Ebitengine]: https://ebitengine.org
package rowan
