package scene

import "github.com/hajimehoshi/ebiten/v2"

// worldGeoM converts an affine matrix into an ebiten.GeoM.
func worldGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// traverse walks the node tree depth-first, refreshing transforms and drawing
// every visible renderable node. Invisible nodes hide their whole subtree.
func (s *Scene) traverse(target *ebiten.Image, n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.refresh(parentTransform, parentAlpha, parentRecomputed)

	switch n.Type {
	case NodeTypeSprite:
		s.drawSprite(target, n)
	case NodeTypeMesh:
		s.drawMesh(target, n)
	case NodeTypeGraphics:
		if n.Graphics != nil && len(n.Graphics.shapes) > 0 {
			drawGraphics(target, n.Graphics, n.worldTransform, n.worldAlpha, &s.vbuf)
			s.drawCalls++
		}
	}

	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(target, child, n.worldTransform, n.worldAlpha, recompute)
	}
}

func (s *Scene) drawSprite(target *ebiten.Image, n *Node) {
	img := n.Texture.Image()
	if img == nil || n.worldAlpha <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = n.Texture.geoM()
	op.GeoM.Concat(worldGeoM(n.worldTransform))
	a := float32(n.Color.A * n.worldAlpha)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
	op.Blend = n.BlendMode.EbitenBlend()
	target.DrawImage(img, &op)
	s.drawCalls++
}

func (s *Scene) drawMesh(target *ebiten.Image, n *Node) {
	if len(n.Vertices) == 0 || len(n.Indices) == 0 || n.worldAlpha <= 0 {
		return
	}
	img := n.MeshImage
	if img == nil {
		img = whitePixel()
	}
	dst := n.worldVertices(n.Color.WithAlpha(n.Color.A * n.worldAlpha))
	target.DrawTriangles(dst, n.Indices, img, &ebiten.DrawTrianglesOptions{
		Blend: n.BlendMode.EbitenBlend(),
	})
	s.drawCalls++
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Stable insertion sort: zero allocations and O(n) when already sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// SortedChildren returns the children in draw order (ZIndex, then insertion).
// The returned slice MUST NOT be mutated.
func (n *Node) SortedChildren() []*Node {
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren == nil {
		return n.children
	}
	return n.sortedChildren
}
