package scene

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is only touched from the game goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is one element of the scene graph. Containers, sprites, meshes and
// vector graphics share this struct; Type selects which fields apply.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64

	// localMatrix replaces the fields above when useMatrix is set.
	// Armature slots drive their displays this way.
	localMatrix [6]float64
	useMatrix   bool

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha   float64
	Visible bool

	// ZIndex orders siblings; ties keep insertion order.
	ZIndex int

	UserData any

	// Sprite fields (NodeTypeSprite)
	Texture   *Texture
	BlendMode BlendMode
	Color     Color

	// Mesh fields (NodeTypeMesh)
	Vertices         []ebiten.Vertex
	Indices          []uint16
	MeshImage        *ebiten.Image
	transformedVerts []ebiten.Vertex // preallocated transform buffer
	meshAABB         Rect            // cached local-space AABB
	meshAABBDirty    bool            // recompute AABB when true

	// Graphics fields (NodeTypeGraphics)
	Graphics *Graphics

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults gives a fresh node an ID, unit scale, full opacity and an
// identity world matrix.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
	n.worldTransform = IdentityTransform
	n.worldAlpha = 1
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders tex. A nil texture renders nothing.
func NewSprite(name string, tex *Texture) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: tex}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node that uses DrawTriangles for rendering.
func NewMesh(name string, img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Node {
	n := &Node{
		Name:          name,
		Type:          NodeTypeMesh,
		MeshImage:     img,
		Vertices:      vertices,
		Indices:       indices,
		meshAABBDirty: true,
	}
	nodeDefaults(n)
	return n
}

// NewGraphics creates a node that renders vector shapes recorded on its
// Graphics buffer.
func NewGraphics(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGraphics, Graphics: &Graphics{}}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child, reparenting it if needed. Panics on a nil child or
// when child is an ancestor of n.
func (n *Node) AddChild(child *Node) {
	n.insertChild(child, -1, "AddChild")
}

// AddChildAt inserts child before the child currently at index. An index
// equal to NumChildren appends.
func (n *Node) AddChildAt(child *Node, index int) {
	n.insertChild(child, index, "AddChildAt")
}

// insertChild links child under n at index, or at the end when index < 0.
func (n *Node) insertChild(child *Node, index int, op string) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	switch {
	case index < 0:
		n.children = append(n.children, child)
	case index > len(n.children):
		panic("scene: child index out of range")
	default:
		n.children = slices.Insert(n.children, index, child)
	}
	child.Parent = n
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child. Panics if child is not a direct child of n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches n; a root node is left alone.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches every child without disposing it.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	clear(n.sortedChildren)
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the children in insertion order. Callers must not modify
// the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose detaches n and disposes its whole subtree. Repeated calls are no-ops.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Texture = nil
	n.MeshImage = nil
	n.Vertices = nil
	n.Indices = nil
	n.transformedVerts = nil
	n.Graphics = nil
	n.UserData = nil
}

// IsDisposed reports whether Dispose has run.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr unlinks child from n.children; child.Parent is left to
// the caller.
func (n *Node) removeChildByPtr(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
