package rowan

// Selection owns the selected-id set and the range anchor for shift-click.
// It consumes click events plus modifier state and is total over valid input:
// no click can fail, only change or not change the selection.
type Selection struct {
	selected  map[NodeID]struct{}
	anchor    NodeID
	hasAnchor bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{selected: make(map[NodeID]struct{})}
}

// Click applies one click on the row for id with the given modifiers.
//
//   - plain click: selection becomes {id}, anchor becomes id
//   - ctrl/cmd click: toggles membership of id, anchor unchanged
//   - shift click: selection becomes the contiguous row range between the
//     anchor and id inclusive (row order from cache), anchor unchanged
//
// Shift-click without an anchor degrades to a plain click. Returns true if
// the selection changed.
func (s *Selection) Click(id NodeID, mods KeyModifiers, cache *RowCache) bool {
	switch {
	case mods&ModShift != 0 && s.hasAnchor:
		return s.selectRange(s.anchor, id, cache)
	case mods.multiSelect():
		if _, ok := s.selected[id]; ok {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
		return true
	default:
		_, had := s.selected[id]
		changed := !had || len(s.selected) != 1 || !s.hasAnchor || s.anchor != id
		clear(s.selected)
		s.selected[id] = struct{}{}
		s.anchor = id
		s.hasAnchor = true
		return changed
	}
}

// ClickEmpty handles a click on empty space: clears selection and anchor.
// Returns true if anything was selected.
func (s *Selection) ClickEmpty() bool {
	changed := len(s.selected) > 0 || s.hasAnchor
	clear(s.selected)
	s.anchor = RootID
	s.hasAnchor = false
	return changed
}

// Toggle flips membership of id without touching the anchor.
// Used by keyboard Space.
func (s *Selection) Toggle(id NodeID) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// selectRange replaces the selection with the contiguous visible-row range
// between a and b inclusive. Either endpoint that is no longer visible makes
// this a plain click on b.
func (s *Selection) selectRange(a, b NodeID, cache *RowCache) bool {
	ai, aok := cache.IndexOf(a)
	bi, bok := cache.IndexOf(b)
	if !aok || !bok {
		return s.Click(b, 0, cache)
	}
	if ai > bi {
		ai, bi = bi, ai
	}
	clear(s.selected)
	for i := ai; i <= bi; i++ {
		s.selected[cache.At(i).ID] = struct{}{}
	}
	return true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id NodeID) bool {
	_, ok := s.selected[id]
	return ok
}

// Len returns the number of selected nodes.
func (s *Selection) Len() int {
	return len(s.selected)
}

// Anchor returns the current range anchor, if any.
func (s *Selection) Anchor() (NodeID, bool) {
	return s.anchor, s.hasAnchor
}

// IDs returns the selected ids in visible row order. Selected ids that are
// currently collapsed away sort after the visible ones in unspecified order.
func (s *Selection) IDs(cache *RowCache) []NodeID {
	if len(s.selected) == 0 {
		return nil
	}
	visible := make([]NodeID, 0, len(s.selected))
	var hidden []NodeID
	for _, row := range cache.Rows() {
		if _, ok := s.selected[row.ID]; ok {
			visible = append(visible, row.ID)
		}
	}
	if len(visible) < len(s.selected) {
		for id := range s.selected {
			if _, shown := cache.IndexOf(id); !shown {
				hidden = append(hidden, id)
			}
		}
	}
	return append(visible, hidden...)
}

// Prune drops selected ids that no longer exist in the model. Called after
// structural mutations so the selection never references removed nodes.
func (s *Selection) Prune(model *Model) {
	for id := range s.selected {
		if _, ok := model.Find(id); !ok {
			delete(s.selected, id)
		}
	}
	if s.hasAnchor {
		if _, ok := model.Find(s.anchor); !ok {
			s.anchor = RootID
			s.hasAnchor = false
		}
	}
}
