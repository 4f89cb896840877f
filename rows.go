package rowan

import "sort"

// defaultRowHeight is the vertical size of a row whose content reports no
// height of its own.
const defaultRowHeight = 32.0

// Row is one visible line in the flattened tree. Rows are derived state,
// rebuilt from the model on demand and never persisted.
type Row struct {
	ID     NodeID
	Depth  int
	Top    float64
	Height float64
}

// HeightFunc returns the height of the row for a node at the given depth.
// Returning a value <= 0 falls back to the cache's default row height.
type HeightFunc func(id NodeID, depth int) float64

// RowCache flattens the visible (non-collapsed) part of a Model into an
// ordered row list with depths and cumulative vertical offsets. The cache is
// lazy: every read compares the model version and triggers a full rebuild on
// mismatch. No incremental patching; typical trees are bounded by what a
// viewport can show, so a rebuild is cheap and always correct.
type RowCache struct {
	model     *Model
	rows      []Row
	index     map[NodeID]int
	built     uint64 // model version the rows were built from; 0 = never
	rowHeight float64
	heightFn  HeightFunc
}

// NewRowCache creates a row cache over the given model using the default row
// height for every row.
func NewRowCache(model *Model) *RowCache {
	return &RowCache{
		model:     model,
		index:     make(map[NodeID]int),
		rowHeight: defaultRowHeight,
	}
}

// SetRowHeight sets the fallback height for rows without a height function.
func (c *RowCache) SetRowHeight(h float64) {
	if h <= 0 {
		panic("rowan: row height must be positive")
	}
	c.rowHeight = h
	c.built = 0
}

// SetHeightFunc installs a per-node height callback. Pass nil to restore the
// uniform default height.
func (c *RowCache) SetHeightFunc(fn HeightFunc) {
	c.heightFn = fn
	c.built = 0
}

// Invalidate forces a rebuild on the next read even if the model version has
// not changed (e.g. after changing row content sizes).
func (c *RowCache) Invalidate() {
	c.built = 0
}

// Rows returns the current visible rows in order.
// The returned slice MUST NOT be mutated by the caller.
func (c *RowCache) Rows() []Row {
	c.ensure()
	return c.rows
}

// Len returns the number of visible rows.
func (c *RowCache) Len() int {
	c.ensure()
	return len(c.rows)
}

// TotalHeight returns the summed height of all visible rows.
func (c *RowCache) TotalHeight() float64 {
	c.ensure()
	if len(c.rows) == 0 {
		return 0
	}
	last := c.rows[len(c.rows)-1]
	return last.Top + last.Height
}

// RowAt returns the row whose vertical span contains y, using binary search
// over the cumulative offsets.
func (c *RowCache) RowAt(y float64) (Row, bool) {
	c.ensure()
	if len(c.rows) == 0 || y < 0 || y >= c.TotalHeight() {
		return Row{}, false
	}
	// First row starting strictly after y; the row before it contains y.
	i := sort.Search(len(c.rows), func(i int) bool {
		return c.rows[i].Top > y
	})
	return c.rows[i-1], true
}

// At returns the row at the given index.
func (c *RowCache) At(i int) Row {
	c.ensure()
	return c.rows[i]
}

// IndexOf returns the row index of the node with the given id, or false if
// the node is not visible (collapsed away or absent).
func (c *RowCache) IndexOf(id NodeID) (int, bool) {
	c.ensure()
	i, ok := c.index[id]
	return i, ok
}

// ensure rebuilds the rows if the model has mutated since the last build.
func (c *RowCache) ensure() {
	if c.built == c.model.Version() {
		return
	}
	c.rebuild()
}

// rebuild does a depth-first pre-order traversal from the roots, skipping the
// children of collapsed nodes and accumulating top offsets.
func (c *RowCache) rebuild() {
	c.rows = c.rows[:0]
	clear(c.index)

	y := 0.0
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		info, ok := c.model.Find(id)
		if !ok {
			return
		}
		h := c.rowHeight
		if c.heightFn != nil {
			if fh := c.heightFn(id, depth); fh > 0 {
				h = fh
			}
		}
		c.index[id] = len(c.rows)
		c.rows = append(c.rows, Row{ID: id, Depth: depth, Top: y, Height: h})
		y += h
		if info.Collapsed {
			return
		}
		for _, child := range info.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range c.model.Roots() {
		walk(root, 0)
	}
	c.built = c.model.Version()
}
