package rowan

// DropPosition classifies where, relative to a target row, a drop would land.
type DropPosition uint8

const (
	DropBefore DropPosition = iota // insert as the previous sibling
	DropInto                       // insert as the first child
	DropAfter                      // insert as the next sibling
)

// String returns a human-readable name for the drop position.
func (p DropPosition) String() string {
	switch p {
	case DropBefore:
		return "before"
	case DropInto:
		return "into"
	case DropAfter:
		return "after"
	default:
		return "unknown"
	}
}

// HitResult is a resolved pointer position over the flattened rows.
type HitResult struct {
	Index    int
	Row      Row
	Position DropPosition
}

// HitTester maps a pointer position to a row and drop zone. It is a pure
// function of the cached row geometry plus the target node's accepts-drops
// flag; it owns no state of its own.
type HitTester struct {
	model *Model
	cache *RowCache

	// Width bounds hit testing horizontally when > 0. Zero means rows span
	// unbounded width.
	Width float64
}

// NewHitTester creates a hit tester over the given model and row cache.
func NewHitTester(model *Model, cache *RowCache) *HitTester {
	return &HitTester{model: model, cache: cache}
}

// Classify resolves the pointer position p to a row and drop zone.
//
// Rows divide vertically into thirds mapping to Before / Into / After. Ties
// at the exact thirds boundaries resolve toward the middle third. When the
// row's node does not accept drops the middle zone disappears and the row
// splits in half into Before / After.
func (h *HitTester) Classify(p Vec2) (HitResult, bool) {
	if p.X < 0 || (h.Width > 0 && p.X >= h.Width) {
		return HitResult{}, false
	}
	row, ok := h.cache.RowAt(p.Y)
	if !ok {
		return HitResult{}, false
	}
	index, _ := h.cache.IndexOf(row.ID)

	accepts := false
	if info, ok := h.model.Find(row.ID); ok {
		accepts = info.AcceptsDrops
	}

	rel := p.Y - row.Top
	pos := classifyZone(rel, row.Height, accepts)
	return HitResult{Index: index, Row: row, Position: pos}, true
}

// classifyZone maps a vertical offset within a row of the given height to a
// drop position.
func classifyZone(rel, height float64, acceptsDrops bool) DropPosition {
	if acceptsDrops {
		third := height / 3
		switch {
		case rel < third:
			return DropBefore
		case rel > height-third:
			return DropAfter
		default:
			return DropInto
		}
	}
	if rel < height/2 {
		return DropBefore
	}
	return DropAfter
}
