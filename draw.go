package rowan

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image stretched to fill
// solid-color quads.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Default widget chrome colors. Interaction-state feedback only; real
// theming belongs to the host.
var (
	colorSelection = Color{R: 0.25, G: 0.5, B: 0.9, A: 0.25}
	colorFocus     = Color{R: 0.25, G: 0.5, B: 0.9, A: 0.8}
	colorIndicator = Color{R: 0.1, G: 0.75, B: 0.3, A: 0.9}
	colorArrow     = Color{R: 0.55, G: 0.55, B: 0.55, A: 1}
	colorOverlayBG = Color{R: 0.13, G: 0.13, B: 0.15, A: 0.97}
	colorHeader    = Color{R: 0.2, G: 0.2, B: 0.24, A: 1}
)

// toScale converts a Color to ebiten's ColorScale with premultiplied alpha.
func (c Color) toScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	return cs
}

// fillRect draws a solid rectangle by stretching the white pixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale = c.toScale()
	dst.DrawImage(whitePixel(), op)
}

// strokeRect draws a 1px-thick rectangle outline.
func strokeRect(dst *ebiten.Image, r Rect, c Color) {
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, c)
	fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}, c)
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: 1, Height: r.Height}, c)
	fillRect(dst, Rect{X: r.X + r.Width - 1, Y: r.Y, Width: 1, Height: r.Height}, c)
}

// Draw renders the overlay stack bottom-up: background, header strip for
// draggable overlays, and the host content via each overlay's UserData when
// it implements OverlayContent.
func (s *OverlayStack) Draw(dst *ebiten.Image) {
	for _, o := range s.entries {
		fillRect(dst, o.Bounds, colorOverlayBG)
		strokeRect(dst, o.Bounds, colorFocus)
		if o.Draggable {
			header := Rect{X: o.Bounds.X, Y: o.Bounds.Y, Width: o.Bounds.Width, Height: overlayHeaderHeight}
			fillRect(dst, header, colorHeader)
		}
		if content, ok := o.UserData.(OverlayContent); ok {
			content.Draw(dst, o.contentBounds())
		}
	}
}

// OverlayContent is host-supplied drawable content for an overlay.
type OverlayContent interface {
	Draw(dst *ebiten.Image, bounds Rect)
}

// contentBounds is the overlay rect minus its header strip.
func (o *Overlay) contentBounds() Rect {
	b := o.Bounds
	if o.Draggable {
		b.Y += overlayHeaderHeight
		b.Height -= overlayHeaderHeight
	}
	if b.Height < 0 {
		b.Height = 0
	}
	return b
}
