package scene

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- localTransform ---

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"identity", func(n *Node) {}, [6]float64{1, 0, 0, 1, 0, 0}},
		{"translation", func(n *Node) { n.X, n.Y = 10, 20 }, [6]float64{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		{"rot90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		{"scaled rotation", func(n *Node) { n.Rotation, n.ScaleX, n.X = math.Pi/2, 2, 4 }, [6]float64{0, 2, -1, 0, 4, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("test")
			tt.setup(n)
			assertMatrix(t, tt.name, n.localTransform(), tt.want)
		})
	}
}

func TestSetLocalMatrixOverridesFields(t *testing.T) {
	n := NewContainer("test")
	n.X = 500
	m := [6]float64{2, 0, 0, 2, 7, 8}
	n.SetLocalMatrix(m)
	assertMatrix(t, "local", n.LocalTransform(), m)

	n.ClearLocalMatrix()
	assertMatrix(t, "cleared", n.LocalTransform(), [6]float64{1, 0, 0, 1, 500, 0})
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 6}
	assertMatrix(t, "I*m", MultiplyAffine(IdentityTransform, m), m)
	assertMatrix(t, "m*I", MultiplyAffine(m, IdentityTransform), m)
}

func TestMultiplyAffineTranslateThenScale(t *testing.T) {
	parent := [6]float64{2, 0, 0, 2, 0, 0}
	child := [6]float64{1, 0, 0, 1, 10, 5}
	assertMatrix(t, "result", MultiplyAffine(parent, child), [6]float64{2, 0, 0, 2, 20, 10})
}

func TestTransformPoint(t *testing.T) {
	x, y := TransformPoint([6]float64{0, 1, -1, 0, 10, 20}, 1, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 21)
}

// --- World transforms ---

func TestWorldTransformHierarchy(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.X = 100
	parent.ScaleX = 2
	child.X = 10
	child.Alpha = 0.5
	parent.Alpha = 0.5

	root.UpdateWorldTransforms()

	assertMatrix(t, "child world", child.WorldTransform(), [6]float64{2, 0, 0, 1, 120, 0})
	assertNear(t, "child worldAlpha", child.worldAlpha, 0.25)
}

func TestWorldTransformPropagatesDirtyParent(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)
	root.UpdateWorldTransforms()

	root.SetPosition(5, 6)
	root.refreshSubtree(IdentityTransform, 1, false)

	x, y := child.LocalToWorld(0, 0)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 6)
}

func TestCleanSubtreeIsNotRecomputed(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)
	root.UpdateWorldTransforms()

	// Fields changed without a setter are ignored until something marks n dirty.
	child.X = 50
	root.refreshSubtree(IdentityTransform, 1, false)
	assertMatrix(t, "stale", child.WorldTransform(), IdentityTransform)

	child.SetPosition(50, 0)
	root.refreshSubtree(IdentityTransform, 1, false)
	assertMatrix(t, "moved", child.WorldTransform(), [6]float64{1, 0, 0, 1, 50, 0})
}
