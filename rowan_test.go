package rowan

import "testing"

// Row culling in Tree.Draw leans on edge-inclusive overlap, so a row sitting
// exactly on the viewport edge still renders.
func TestRectIntersects(t *testing.T) {
	view := Rect{X: 0, Y: 0, Width: 200, Height: 100}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"inside", Rect{X: 10, Y: 10, Width: 20, Height: 20}, true},
		{"overlapping corner", Rect{X: 190, Y: 90, Width: 50, Height: 50}, true},
		{"touching bottom edge", Rect{X: 10, Y: 100, Width: 20, Height: 20}, true},
		{"touching right edge", Rect{X: 200, Y: 10, Width: 20, Height: 20}, true},
		{"below", Rect{X: 10, Y: 101, Width: 20, Height: 20}, false},
		{"above", Rect{X: 10, Y: -30, Width: 20, Height: 29}, false},
		{"left of", Rect{X: -50, Y: 10, Width: 49, Height: 20}, false},
		{"containing the viewport", Rect{X: -10, Y: -10, Width: 300, Height: 200}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := view.Intersects(tc.other); got != tc.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tc.other, got, tc.want)
			}
			if got := tc.other.Intersects(view); got != tc.want {
				t.Errorf("Intersects is not symmetric for %+v", tc.other)
			}
		})
	}
}
