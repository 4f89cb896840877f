package rowan

import "fmt"

// NodeID identifies a node within one Model. IDs are caller-supplied and must
// be unique within the tree; the zero value is reserved to mean "root level".
type NodeID uint64

// RootID is the pseudo-parent of top-level nodes. It never names a real node.
const RootID NodeID = 0

// NotFoundError reports an operation that referenced a node id absent from
// the model. The model is unchanged.
type NotFoundError struct {
	ID NodeID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("rowan: node %d not found", e.ID)
}

// CycleError reports a move that would reparent a node under itself or one of
// its own descendants. The model is unchanged.
type CycleError struct {
	ID     NodeID // node being moved
	Target NodeID // requested new parent
}

func (e CycleError) Error() string {
	return fmt.Sprintf("rowan: moving node %d under %d would create a cycle", e.ID, e.Target)
}

// NodeSpec describes one node (and its subtree) for construction. It is also
// the shape returned by Remove, so removed subtrees can be re-inserted.
type NodeSpec struct {
	ID           NodeID
	Collapsed    bool
	AcceptsDrops bool
	DragBlocked  bool
	Children     []NodeSpec
}

// nodeRec is the arena record for one node. Parent/children are stored as id
// lists so cycle checks are an ancestor walk and relinking never touches
// pointers between nodes.
type nodeRec struct {
	id           NodeID
	parent       NodeID // RootID when top-level
	children     []NodeID
	collapsed    bool
	acceptsDrops bool
	dragBlocked  bool
}

// Model is the normalized node store: an arena of nodes keyed by id with an
// ordered root list. It holds no interaction state. Every successful mutation
// increments a version counter that downstream caches use to detect staleness.
type Model struct {
	nodes   map[NodeID]*nodeRec
	roots   []NodeID
	version uint64
	debug   bool
}

// NewModel creates a model from the given root subtrees.
// Panics if any id is duplicated or zero; supplying well-formed ids is the
// caller's responsibility, the same way nil children are in a scene graph.
func NewModel(roots ...NodeSpec) *Model {
	m := &Model{
		nodes:   make(map[NodeID]*nodeRec),
		version: 1,
	}
	for _, spec := range roots {
		m.graft(RootID, len(m.roots), spec)
	}
	return m
}

// SetDebug enables extra structural validation after every mutation.
// Disabled by default; intended for development builds.
func (m *Model) SetDebug(enabled bool) {
	m.debug = enabled
}

// Version returns the model-version counter. It increases on every mutation,
// so comparing versions is a constant-time staleness check.
func (m *Model) Version() uint64 {
	return m.version
}

// Len returns the number of nodes in the model.
func (m *Model) Len() int {
	return len(m.nodes)
}

// Roots returns the ordered top-level node ids.
// The returned slice MUST NOT be mutated by the caller.
func (m *Model) Roots() []NodeID {
	return m.roots
}

// NodeInfo is a read-only view of one node.
type NodeInfo struct {
	ID           NodeID
	Parent       NodeID // RootID when top-level
	Children     []NodeID
	Collapsed    bool
	AcceptsDrops bool
	DragBlocked  bool
}

// Find returns a view of the node with the given id.
// The Children slice MUST NOT be mutated by the caller.
func (m *Model) Find(id NodeID) (NodeInfo, bool) {
	rec, ok := m.nodes[id]
	if !ok {
		return NodeInfo{}, false
	}
	return NodeInfo{
		ID:           rec.id,
		Parent:       rec.parent,
		Children:     rec.children,
		Collapsed:    rec.collapsed,
		AcceptsDrops: rec.acceptsDrops,
		DragBlocked:  rec.dragBlocked,
	}, true
}

// Insert adds spec (and its subtree) as a child of parent at the given index.
// Use RootID as parent to insert at the top level. Returns NotFoundError if
// parent names a missing node. Panics if the index is out of range or any new
// id collides with an existing one.
func (m *Model) Insert(parent NodeID, index int, spec NodeSpec) error {
	if parent != RootID {
		if _, ok := m.nodes[parent]; !ok {
			return NotFoundError{ID: parent}
		}
	}
	siblings := m.childList(parent)
	if index < 0 || index > len(siblings) {
		panic("rowan: insert index out of range")
	}
	m.graft(parent, index, spec)
	m.bump()
	return nil
}

// Remove detaches the node with the given id and returns its subtree.
// Returns NotFoundError if the id names a missing node.
func (m *Model) Remove(id NodeID) (NodeSpec, error) {
	rec, ok := m.nodes[id]
	if !ok {
		return NodeSpec{}, NotFoundError{ID: id}
	}
	spec := m.prune(rec)
	m.detach(rec)
	delete(m.nodes, id)
	m.bump()
	return spec, nil
}

// Move reparents the node with the given id under newParent at the given
// index. Use RootID as newParent to move to the top level. The index is
// interpreted against the destination child list after the node has been
// detached from its old position.
//
// Returns CycleError if newParent is the node itself or one of its
// descendants, and NotFoundError if either id names a missing node. The model
// is unchanged on error.
func (m *Model) Move(id, newParent NodeID, index int) error {
	rec, ok := m.nodes[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	if newParent != RootID {
		if _, ok := m.nodes[newParent]; !ok {
			return NotFoundError{ID: newParent}
		}
	}
	if newParent == id || m.isDescendant(newParent, id) {
		return CycleError{ID: id, Target: newParent}
	}

	m.detach(rec)
	siblings := m.childList(newParent)
	if index < 0 {
		index = 0
	}
	if index > len(siblings) {
		index = len(siblings)
	}
	m.attach(rec, newParent, index)
	m.bump()
	return nil
}

// SetCollapsed sets the collapse flag of the node with the given id.
// Returns NotFoundError if the id names a missing node. A redundant set is a
// no-op and does not bump the version.
func (m *Model) SetCollapsed(id NodeID, collapsed bool) error {
	rec, ok := m.nodes[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	if rec.collapsed == collapsed {
		return nil
	}
	rec.collapsed = collapsed
	m.bump()
	return nil
}

// SetAcceptsDrops sets whether the node may receive Into drops.
func (m *Model) SetAcceptsDrops(id NodeID, accepts bool) error {
	rec, ok := m.nodes[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	rec.acceptsDrops = accepts
	return nil
}

// SetDragBlocked sets whether the node is excluded from drag starts.
func (m *Model) SetDragBlocked(id NodeID, blocked bool) error {
	rec, ok := m.nodes[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	rec.dragBlocked = blocked
	return nil
}

// --- Internals ---

func (m *Model) bump() {
	m.version++
	if m.debug {
		m.validate()
	}
}

// childList returns the ordered child ids of parent (or the roots).
func (m *Model) childList(parent NodeID) []NodeID {
	if parent == RootID {
		return m.roots
	}
	return m.nodes[parent].children
}

// setChildList writes back a child list after slice surgery.
func (m *Model) setChildList(parent NodeID, list []NodeID) {
	if parent == RootID {
		m.roots = list
	} else {
		m.nodes[parent].children = list
	}
}

// graft recursively materializes spec into the arena under parent at index.
func (m *Model) graft(parent NodeID, index int, spec NodeSpec) {
	if spec.ID == RootID {
		panic("rowan: node id 0 is reserved")
	}
	if _, exists := m.nodes[spec.ID]; exists {
		panic(fmt.Sprintf("rowan: duplicate node id %d", spec.ID))
	}
	rec := &nodeRec{
		id:           spec.ID,
		collapsed:    spec.Collapsed,
		acceptsDrops: spec.AcceptsDrops,
		dragBlocked:  spec.DragBlocked,
	}
	m.nodes[spec.ID] = rec
	m.attach(rec, parent, index)
	for _, child := range spec.Children {
		m.graft(spec.ID, len(rec.children), child)
	}
}

// prune serializes rec's subtree back into a NodeSpec and deletes the
// descendant records. rec itself stays in the arena until detach.
func (m *Model) prune(rec *nodeRec) NodeSpec {
	spec := NodeSpec{
		ID:           rec.id,
		Collapsed:    rec.collapsed,
		AcceptsDrops: rec.acceptsDrops,
		DragBlocked:  rec.dragBlocked,
	}
	for _, childID := range rec.children {
		child := m.nodes[childID]
		spec.Children = append(spec.Children, m.prune(child))
		delete(m.nodes, childID)
	}
	rec.children = nil
	return spec
}

// detach unlinks rec from its parent's child list without deleting the
// record. Move re-attaches it; Remove deletes it afterwards.
func (m *Model) detach(rec *nodeRec) {
	list := m.childList(rec.parent)
	for i, id := range list {
		if id == rec.id {
			copy(list[i:], list[i+1:])
			m.setChildList(rec.parent, list[:len(list)-1])
			break
		}
	}
	rec.parent = RootID
}

// attach links rec under parent at index.
func (m *Model) attach(rec *nodeRec, parent NodeID, index int) {
	list := m.childList(parent)
	list = append(list, 0)
	copy(list[index+1:], list[index:])
	list[index] = rec.id
	m.setChildList(parent, list)
	rec.parent = parent
}

// isDescendant reports whether candidate is a strict descendant of ancestor.
// An O(depth) ancestor walk over ids.
func (m *Model) isDescendant(candidate, ancestor NodeID) bool {
	if candidate == RootID {
		return false
	}
	rec, ok := m.nodes[candidate]
	if !ok {
		return false
	}
	for p := rec.parent; p != RootID; {
		if p == ancestor {
			return true
		}
		next, ok := m.nodes[p]
		if !ok {
			return false
		}
		p = next.parent
	}
	return false
}

// indexIn returns the position of id within its parent's child list.
func (m *Model) indexIn(parent, id NodeID) int {
	for i, c := range m.childList(parent) {
		if c == id {
			return i
		}
	}
	return -1
}

// validate walks the whole forest and panics on structural corruption.
// Only runs when debug mode is on.
func (m *Model) validate() {
	seen := make(map[NodeID]bool, len(m.nodes))
	var walk func(parent, id NodeID, depth int)
	walk = func(parent, id NodeID, depth int) {
		if depth > len(m.nodes) {
			panic("rowan: cycle detected in model")
		}
		if seen[id] {
			panic(fmt.Sprintf("rowan: node %d reachable twice", id))
		}
		seen[id] = true
		rec, ok := m.nodes[id]
		if !ok {
			panic(fmt.Sprintf("rowan: dangling child id %d", id))
		}
		if rec.parent != parent {
			panic(fmt.Sprintf("rowan: node %d parent link mismatch", id))
		}
		for _, c := range rec.children {
			walk(id, c, depth+1)
		}
	}
	for _, r := range m.roots {
		walk(RootID, r, 0)
	}
	if len(seen) != len(m.nodes) {
		panic("rowan: unreachable nodes in arena")
	}
}
