package scene

import "math"

// IdentityTransform is the identity affine matrix, laid out as
// [a, b, c, d, tx, ty].
var IdentityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// localTransform returns the matrix placing n in its parent. Slot displays
// set it whole; other nodes build it from position, rotation and scale.
func (n *Node) localTransform() [6]float64 {
	if n.useMatrix {
		return n.localMatrix
	}
	sin, cos := math.Sincos(n.Rotation)
	return [6]float64{cos * n.ScaleX, sin * n.ScaleX, -sin * n.ScaleY, cos * n.ScaleY, n.X, n.Y}
}

// MultiplyAffine returns p*c, applying c first.
func MultiplyAffine(p, c [6]float64) [6]float64 {
	x, y := TransformPoint(p, c[4], c[5])
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		x, y,
	}
}

// TransformPoint applies m to (x, y).
func TransformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// refresh recomputes the world matrix and alpha when n is dirty or force is
// set, and reports whether it did so children can follow.
func (n *Node) refresh(parent [6]float64, parentAlpha float64, force bool) bool {
	if !n.transformDirty && !force {
		return false
	}
	n.worldTransform = MultiplyAffine(parent, n.localTransform())
	n.worldAlpha = parentAlpha * n.Alpha
	n.transformDirty = false
	return true
}

func (n *Node) refreshSubtree(parent [6]float64, parentAlpha float64, force bool) {
	force = n.refresh(parent, parentAlpha, force)
	for _, child := range n.children {
		child.refreshSubtree(n.worldTransform, n.worldAlpha, force)
	}
}

// UpdateWorldTransforms refreshes n and its subtree outside a draw, assuming
// the parent chain is current.
func (n *Node) UpdateWorldTransforms() {
	parent, alpha := IdentityTransform, 1.0
	if n.Parent != nil {
		parent, alpha = n.Parent.worldTransform, n.Parent.worldAlpha
	}
	n.refreshSubtree(parent, alpha, true)
}

// WorldTransform returns the world matrix from the last refresh.
func (n *Node) WorldTransform() [6]float64 { return n.worldTransform }

// LocalTransform returns the matrix placing n in its parent.
func (n *Node) LocalTransform() [6]float64 { return n.localTransform() }

// SetLocalMatrix drives n from m until ClearLocalMatrix is called.
func (n *Node) SetLocalMatrix(m [6]float64) {
	n.localMatrix = m
	n.useMatrix = true
	n.transformDirty = true
}

// ClearLocalMatrix returns n to X, Y, Rotation and scale.
func (n *Node) ClearLocalMatrix() {
	n.useMatrix = false
	n.transformDirty = true
}

// SetPosition moves n within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// LocalToWorld maps a point in n's space to world space.
func (n *Node) LocalToWorld(x, y float64) (float64, float64) {
	return TransformPoint(n.worldTransform, x, y)
}
