package scene

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestWorldVerticesTranslateAndTint(t *testing.T) {
	n := NewMesh("m", nil, []ebiten.Vertex{
		{DstX: 0, DstY: 0, SrcX: 3, SrcY: 4, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 10, DstY: 0, SrcX: 5, SrcY: 6, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}, []uint16{0, 1, 0})
	n.worldTransform = [6]float64{2, 0, 0, 2, 100, 50}
	dst := n.worldVertices(Color{1, 0.5, 0, 0.5})

	if dst[1].DstX != 120 || dst[1].DstY != 50 {
		t.Errorf("dst[1] = (%v, %v), want (120, 50)", dst[1].DstX, dst[1].DstY)
	}
	if dst[0].SrcX != 3 || dst[0].SrcY != 4 {
		t.Errorf("UVs changed: (%v, %v)", dst[0].SrcX, dst[0].SrcY)
	}
	if dst[0].ColorR != 0.5 || dst[0].ColorG != 0.25 || dst[0].ColorA != 0.5 {
		t.Errorf("color = (%v, %v, %v), want premultiplied (0.5, 0.25, _, 0.5)",
			dst[0].ColorR, dst[0].ColorG, dst[0].ColorA)
	}
	if n.Vertices[1].DstX != 10 {
		t.Errorf("source vertices modified: %v", n.Vertices[1].DstX)
	}
}

func TestMeshBoundsCachedUntilInvalidated(t *testing.T) {
	n := NewMesh("m", nil, []ebiten.Vertex{{DstX: -1, DstY: -2}, {DstX: 3, DstY: 4}}, []uint16{0, 1, 0})
	if got := n.MeshBounds(); got != (Rect{X: -1, Y: -2, Width: 4, Height: 6}) {
		t.Errorf("MeshBounds = %v, want {-1 -2 4 6}", got)
	}
	n.Vertices[1].DstX = 9
	if got := n.MeshBounds(); got.Width != 4 {
		t.Errorf("bounds recomputed without invalidation: %v", got)
	}
	n.InvalidateMeshAABB()
	if got := n.MeshBounds(); got.Width != 10 {
		t.Errorf("Width = %v, want 10", got.Width)
	}
}

func TestVertexScratchHighWater(t *testing.T) {
	n := NewMesh("m", nil, nil, nil)
	buf := n.vertexScratch(8)
	buf2 := n.vertexScratch(3)
	if len(buf2) != 3 || cap(buf2) != cap(buf) {
		t.Errorf("len/cap = %d/%d, want 3/%d", len(buf2), cap(buf2), cap(buf))
	}
}

func TestTextureSize(t *testing.T) {
	tests := []struct {
		name    string
		rotated bool
		w, h    float64
	}{
		{"upright", false, 30, 10},
		{"rotated", true, 10, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := NewTexture(nil, image.Rect(5, 5, 35, 15), tt.rotated)
			w, h := tex.Size()
			if w != tt.w || h != tt.h {
				t.Errorf("Size = (%v, %v), want (%v, %v)", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestTextureRotatedGeoMMapsIntoDisplayBox(t *testing.T) {
	tex := NewTexture(nil, image.Rect(0, 0, 30, 10), true)
	m := tex.geoM()
	// Stored corner (30, 10) lands at display (10, 0).
	x, y := m.Apply(30, 10)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 0)
	x, y = m.Apply(0, 0)
	assertNear(t, "x0", x, 0)
	assertNear(t, "y0", y, 30)
}

func TestTextureNilSafe(t *testing.T) {
	var tex *Texture
	if tex.Image() != nil {
		t.Error("nil texture Image should be nil")
	}
	if w, h := tex.Size(); w != 0 || h != 0 {
		t.Errorf("nil Size = (%v, %v)", w, h)
	}
	if tex.IsPlaceholder() {
		t.Error("nil texture is not the placeholder")
	}
}
