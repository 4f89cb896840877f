package rowan

// Side names the side of an anchor rect an overlay prefers to appear on.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// opposite returns the facing side.
func (s Side) opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// fallbackOrder is the fixed side priority tried by Solve: the preferred
// side, its opposite, then the two orthogonal sides.
func fallbackOrder(preferred Side) [4]Side {
	if preferred == SideTop || preferred == SideBottom {
		return [4]Side{preferred, preferred.opposite(), SideRight, SideLeft}
	}
	return [4]Side{preferred, preferred.opposite(), SideBottom, SideTop}
}

// Solve places an overlay of contentSize next to anchor on the preferred
// side. If the candidate overflows the viewport the opposite side is tried,
// then the two orthogonal sides, in a fixed order; if every side overflows,
// the preferred-side candidate is clamped into the viewport. The result is
// always fully contained in the viewport (content larger than the viewport
// is shrunk to fit), and identical inputs always produce identical output.
func Solve(anchor Rect, preferred Side, contentSize Vec2, viewport Rect) Rect {
	w := min(contentSize.X, viewport.Width)
	h := min(contentSize.Y, viewport.Height)

	for _, side := range fallbackOrder(preferred) {
		cand := candidate(anchor, side, w, h)
		if viewport.ContainsRect(cand) {
			return cand
		}
	}
	return clampRect(candidate(anchor, preferred, w, h), viewport)
}

// candidate computes the overlay rect for one side: adjacent to the anchor on
// the main axis, aligned to the anchor's leading edge on the cross axis.
func candidate(anchor Rect, side Side, w, h float64) Rect {
	switch side {
	case SideTop:
		return Rect{X: anchor.X, Y: anchor.Y - h, Width: w, Height: h}
	case SideBottom:
		return Rect{X: anchor.X, Y: anchor.Y + anchor.Height, Width: w, Height: h}
	case SideLeft:
		return Rect{X: anchor.X - w, Y: anchor.Y, Width: w, Height: h}
	default:
		return Rect{X: anchor.X + anchor.Width, Y: anchor.Y, Width: w, Height: h}
	}
}

// clampRect slides r into the viewport without resizing it.
// r must not be larger than the viewport.
func clampRect(r Rect, viewport Rect) Rect {
	r.X = max(viewport.X, min(r.X, viewport.X+viewport.Width-r.Width))
	r.Y = max(viewport.Y, min(r.Y, viewport.Y+viewport.Height-r.Height))
	return r
}
