package bvh

import (
	"github.com/achilleasa/pointlabel/shape"
	"github.com/achilleasa/pointlabel/types"
)

// The id returned by Query when no shape contains the point.
const NoMatch uint16 = 0

// A shape together with the box used to index it.
type Item struct {
	Box   types.AABB
	Shape shape.Shape
}

// Create an item using the shape's own bounding box.
func NewItem(s shape.Shape) Item {
	return Item{Box: s.BBox(), Shape: s}
}

// Bvh nodes store a bounding box and two multipurpose int32 values whose
// meaning depends on the node type:
//
// - For internal nodes both values are > 0 and point to the L/R child nodes
// - For leafs LData is <= 0 and holds the negated index of the leaf item
//
// The root is always stored at index 0, so a child index is never 0.
type Node struct {
	Box   types.AABB
	LData int32
	RData int32
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Set the item index for a leaf node.
func (n *Node) SetItem(index uint32) {
	n.LData = -int32(index)
	n.RData = 0
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.LData <= 0
}

// Get the item index of a leaf node.
func (n *Node) ItemIndex() uint32 {
	return uint32(-n.LData)
}

// An immutable bounding volume hierarchy over a set of shapes. A Tree is
// safe for concurrent queries.
type Tree struct {
	nodes []Node
	items []Item
	stats Stats
}

// Get the tree nodes. The root is at index 0.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// Get the indexed items.
func (t *Tree) Items() []Item {
	return t.items
}

// Returns true if the tree indexes no shapes.
func (t *Tree) IsEmpty() bool {
	return len(t.nodes) == 0
}

// Get the object id of the first shape containing p, visiting left
// children before right children. Returns NoMatch if no shape contains p,
// if the tree is empty or if p has non-finite coordinates.
func (t *Tree) Query(p types.Vec3) uint16 {
	if len(t.nodes) == 0 || !p.IsFinite() {
		return NoMatch
	}
	return t.query(0, p)
}

func (t *Tree) query(nodeIndex uint32, p types.Vec3) uint16 {
	node := &t.nodes[nodeIndex]
	if node.IsLeaf() {
		item := t.items[node.ItemIndex()]
		if item.Shape.ContainsPoint(p) {
			return item.Shape.ObjectID()
		}
		return NoMatch
	}

	if !node.Box.ContainsPoint(p) {
		return NoMatch
	}

	if id := t.query(uint32(node.LData), p); id != NoMatch {
		return id
	}
	return t.query(uint32(node.RData), p)
}

// Visit all leaf items in traversal order. Iteration stops if fn returns
// false.
func (t *Tree) Walk(fn func(item Item) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, fn)
}

func (t *Tree) walk(nodeIndex uint32, fn func(item Item) bool) bool {
	node := &t.nodes[nodeIndex]
	if node.IsLeaf() {
		return fn(t.items[node.ItemIndex()])
	}
	return t.walk(uint32(node.LData), fn) && t.walk(uint32(node.RData), fn)
}
