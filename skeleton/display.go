package skeleton

// DisplayType identifies the kind of a display entry.
type DisplayType uint8

const (
	DisplayImage DisplayType = iota
	DisplayArmature
	DisplayMesh
	DisplayBoundingBox
)

func (t DisplayType) String() string {
	switch t {
	case DisplayImage:
		return "image"
	case DisplayArmature:
		return "armature"
	case DisplayMesh:
		return "mesh"
	case DisplayBoundingBox:
		return "boundingBox"
	default:
		return "unknown"
	}
}

// DisplayData is one entry in a slot's display list.
type DisplayData struct {
	Type DisplayType
	Name string
	// Path is the texture name for image and mesh displays, or the armature
	// name for nested armatures. Empty means Name.
	Path string

	Transform Transform
	// PivotX and PivotY are normalized (0..1) against the texture size.
	PivotX, PivotY float64

	// Texture is resolved lazily by the factory.
	Texture *TextureData

	// Mesh displays.
	Mesh  *MeshData
	Share string // name of a mesh display in the same skin slot to borrow geometry from

	// Armature displays.
	InheritAnimation bool
	Armature         *ArmatureData // filled in once the child armature is built

	BoundingBox *BoundingBoxData
}

// ResourcePath returns Path, or Name if Path is empty.
func (d *DisplayData) ResourcePath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// MeshData describes deformable geometry for a mesh display.
type MeshData struct {
	// Vertices are x,y pairs in slot space. Ignored for weighted meshes.
	Vertices []float64
	// UVs are u,v pairs normalized to the texture region.
	UVs       []float64
	Triangles []uint16
	// Weights holds one list of bone influences per vertex; nil for rigid meshes.
	Weights [][]BoneWeight
}

// VertexCount returns the number of vertices described by the UVs.
func (m *MeshData) VertexCount() int {
	return len(m.UVs) / 2
}

// BoneWeight is one bone's influence on a weighted mesh vertex. X and Y are
// the vertex position in the bone's space.
type BoneWeight struct {
	Bone   *BoneData
	X, Y   float64
	Weight float64
}

// BoundingBoxType identifies the shape of a bounding box.
type BoundingBoxType uint8

const (
	BoundingBoxRectangle BoundingBoxType = iota
	BoundingBoxEllipse
	BoundingBoxPolygon
)

// BoundingBoxData is a slot-space hit or debug shape.
type BoundingBoxData struct {
	Type   BoundingBoxType
	Width  float64
	Height float64
	// Vertices are x,y pairs; polygons only.
	Vertices []float64
	Closed   bool
	Color    uint32
}
