package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// worldVertices writes n.Vertices projected through the node's world matrix
// into the node's scratch buffer and returns it. The tint is premultiplied
// into each vertex color; source coordinates are copied unchanged.
func (n *Node) worldVertices(tint Color) []ebiten.Vertex {
	dst := n.vertexScratch(len(n.Vertices))
	m := n.worldTransform
	r, g, b, a := float32(tint.R*tint.A), float32(tint.G*tint.A), float32(tint.B*tint.A), float32(tint.A)
	for i, v := range n.Vertices {
		x, y := float64(v.DstX), float64(v.DstY)
		v.DstX = float32(m[0]*x + m[2]*y + m[4])
		v.DstY = float32(m[1]*x + m[3]*y + m[5])
		v.ColorR *= r
		v.ColorG *= g
		v.ColorB *= b
		v.ColorA *= a
		dst[i] = v
	}
	return dst
}

// vertexScratch returns the per-node projection buffer resized to count. The
// backing array only grows, so steady-state frames do not allocate.
func (n *Node) vertexScratch(count int) []ebiten.Vertex {
	if cap(n.transformedVerts) < count {
		n.transformedVerts = make([]ebiten.Vertex, count)
	}
	n.transformedVerts = n.transformedVerts[:count]
	return n.transformedVerts
}

// vertexBounds is the local AABB of the vertices' destination positions.
func vertexBounds(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	x0, y0 := float64(verts[0].DstX), float64(verts[0].DstY)
	x1, y1 := x0, y0
	for _, v := range verts[1:] {
		x, y := float64(v.DstX), float64(v.DstY)
		x0, x1 = min(x0, x), max(x1, x)
		y0, y1 = min(y0, y), max(y1, y)
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// InvalidateMeshAABB drops the cached bounds. Skinned meshes call it after
// rewriting Vertices.
func (n *Node) InvalidateMeshAABB() {
	n.meshAABBDirty = true
}

// MeshBounds returns the local-space bounds of the mesh, cached until
// InvalidateMeshAABB.
func (n *Node) MeshBounds() Rect {
	if n.meshAABBDirty {
		n.meshAABB = vertexBounds(n.Vertices)
		n.meshAABBDirty = false
	}
	return n.meshAABB
}

// SetMeshTexture points the mesh at tex. Sub-images keep their parent's
// coordinate space, so vertex SrcX/SrcY must be expressed in base-image pixels
// (Frame.Min plus the offset inside the region).
func (n *Node) SetMeshTexture(tex *Texture) {
	n.Texture = tex
	n.MeshImage = tex.Image()
}

// whitePixelImage backs untextured triangles. Created on first use; the scene
// graph runs on the game goroutine only.
var whitePixelImage *ebiten.Image

// whitePixel returns the shared 1x1 white image. Sample it at (0.5, 0.5).
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(colornames.White)
	}
	return whitePixelImage
}
