package rowan

// NavOutcome tags the result of one keyboard transition, so the host can
// react without the navigator calling back into it.
type NavOutcome uint8

const (
	NavNone            NavOutcome = iota // nothing changed
	NavFocusMoved                        // the focus cursor moved to Node
	NavCollapseChanged                   // Node's collapse flag flipped to Collapsed
	NavSelectionToggled                  // Node's selection membership flipped
	NavCommit                            // Enter on a leaf row; host decides what commit means
)

// NavResult is the outcome of one key event.
type NavResult struct {
	Outcome   NavOutcome
	Node      NodeID
	Collapsed bool // meaningful only for NavCollapseChanged
}

// Navigator owns the single focused-row cursor and translates key events into
// focus movement, collapse toggles, and selection toggles. Focus tracks the
// node id, so a cache rebuild that removes the focused node clears the
// cursor rather than landing on an unrelated row.
type Navigator struct {
	model   *Model
	cache   *RowCache
	focusID NodeID
	focused bool
}

// NewNavigator creates a navigator over the given model and row cache.
func NewNavigator(model *Model, cache *RowCache) *Navigator {
	return &Navigator{model: model, cache: cache}
}

// Focus moves the cursor to the row for id. No-op if the node is not visible.
func (n *Navigator) Focus(id NodeID) bool {
	if _, ok := n.cache.IndexOf(id); !ok {
		return false
	}
	n.focusID = id
	n.focused = true
	return true
}

// Blur clears the focus cursor.
func (n *Navigator) Blur() {
	n.focusID = RootID
	n.focused = false
}

// FocusedRow returns the focused row index, revalidating against the current
// cache. Returns false if nothing is focused or the focused node is no
// longer visible (in which case the cursor is cleared).
func (n *Navigator) FocusedRow() (int, bool) {
	if !n.focused {
		return 0, false
	}
	i, ok := n.cache.IndexOf(n.focusID)
	if !ok {
		n.Blur()
		return 0, false
	}
	return i, true
}

// FocusedID returns the focused node id, if the focus is valid.
func (n *Navigator) FocusedID() (NodeID, bool) {
	if _, ok := n.FocusedRow(); !ok {
		return RootID, false
	}
	return n.focusID, true
}

// Key applies one key event.
//
//   - ArrowDown / ArrowUp move the cursor one visible row, clamped at the
//     ends (no wraparound)
//   - Enter toggles collapse of a focused node with children, and reports
//     NavCommit for a leaf
//   - Space toggles selection membership of the focused node, leaving the
//     range anchor alone
//   - ArrowLeft collapses an expanded node, otherwise moves focus to the
//     parent; ArrowRight expands a collapsed node, otherwise moves focus to
//     the first child
func (n *Navigator) Key(key Key, sel *Selection) NavResult {
	row, ok := n.FocusedRow()
	if !ok {
		// Nothing focused: Down/Up land on the first/last row.
		switch key {
		case KeyArrowDown:
			if n.cache.Len() > 0 {
				n.Focus(n.cache.At(0).ID)
				return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
			}
		case KeyArrowUp:
			if l := n.cache.Len(); l > 0 {
				n.Focus(n.cache.At(l - 1).ID)
				return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
			}
		}
		return NavResult{}
	}

	info, ok := n.model.Find(n.focusID)
	if !ok {
		n.Blur()
		return NavResult{}
	}
	hasChildren := len(info.Children) > 0

	switch key {
	case KeyArrowDown:
		if row+1 < n.cache.Len() {
			n.focusID = n.cache.At(row + 1).ID
			return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
		}
	case KeyArrowUp:
		if row > 0 {
			n.focusID = n.cache.At(row - 1).ID
			return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
		}
	case KeyEnter:
		if hasChildren {
			return n.toggleCollapse(info)
		}
		return NavResult{Outcome: NavCommit, Node: n.focusID}
	case KeySpace:
		sel.Toggle(n.focusID)
		return NavResult{Outcome: NavSelectionToggled, Node: n.focusID}
	case KeyArrowLeft:
		if hasChildren && !info.Collapsed {
			return n.toggleCollapse(info)
		}
		if info.Parent != RootID {
			n.focusID = info.Parent
			return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
		}
	case KeyArrowRight:
		if hasChildren && info.Collapsed {
			return n.toggleCollapse(info)
		}
		if hasChildren {
			n.focusID = info.Children[0]
			return NavResult{Outcome: NavFocusMoved, Node: n.focusID}
		}
	}
	return NavResult{}
}

func (n *Navigator) toggleCollapse(info NodeInfo) NavResult {
	collapsed := !info.Collapsed
	if err := n.model.SetCollapsed(info.ID, collapsed); err != nil {
		return NavResult{}
	}
	return NavResult{Outcome: NavCollapseChanged, Node: info.ID, Collapsed: collapsed}
}
