package bones

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bones/scene"
	"github.com/phanxgames/bones/skeleton"
)

// DisplayKind tags the variant held by a SlotDisplay.
type DisplayKind uint8

const (
	DisplayNone DisplayKind = iota
	DisplayImage
	DisplayMesh
	DisplayArmature
)

func (k DisplayKind) String() string {
	switch k {
	case DisplayImage:
		return "image"
	case DisplayMesh:
		return "mesh"
	case DisplayArmature:
		return "armature"
	default:
		return "none"
	}
}

// SlotDisplay is one candidate display of a slot. Which fields are set
// depends on Kind:
//
//	DisplayNone      Data may still carry a bounding box
//	DisplayImage     Texture (nil when the region did not resolve)
//	DisplayMesh      Texture, Mesh (own or shared geometry)
//	DisplayArmature  Armature
type SlotDisplay struct {
	Kind     DisplayKind
	Data     *skeleton.DisplayData
	Texture  *scene.Texture
	Mesh     *skeleton.MeshData
	Armature *Armature

	armatureGen uint32
}

// child returns the nested armature while the entry still refers to the
// build it was created with. A child disposed on its own goes back to the
// pool and its record may already belong to another armature.
func (d SlotDisplay) child() *Armature {
	if d.Kind != DisplayArmature || d.Armature == nil {
		return nil
	}
	if d.Armature.gen != d.armatureGen || d.Armature.disposed {
		return nil
	}
	return d.Armature
}

// Slot holds an ordered display list and renders the active entry.
type Slot struct {
	data     *skeleton.SlotData
	armature *Armature
	parent   *Bone

	displays     []SlotDisplay
	displayIndex int
	dirty        bool

	// Pre-allocated display nodes for image and mesh entries.
	sprite  *scene.Node
	mesh    *scene.Node
	current *scene.Node

	global         [6]float64
	pivotX, pivotY float64
	zOrder         int
}

func newSlot(a *Armature, data *skeleton.SlotData, parent *Bone) *Slot {
	s := &Slot{
		data:         data,
		armature:     a,
		parent:       parent,
		displayIndex: data.DisplayIndex,
		zOrder:       data.ZOrder,
		sprite:       scene.NewSprite(data.Name, nil),
		mesh:         scene.NewMesh(data.Name, nil, nil, nil),
		global:       scene.IdentityTransform,
	}
	color := scene.ColorWhite
	if !data.Color.IsZero() {
		color = scene.Color{R: data.Color.R, G: data.Color.G, B: data.Color.B, A: data.Color.A}
	}
	blend := blendMode(data.BlendMode)
	for _, n := range []*scene.Node{s.sprite, s.mesh} {
		n.Color = color
		n.BlendMode = blend
		n.UserData = s
	}
	return s
}

func blendMode(b skeleton.BlendMode) scene.BlendMode {
	switch b {
	case skeleton.BlendAdd:
		return scene.BlendAdd
	case skeleton.BlendMultiply:
		return scene.BlendMultiply
	case skeleton.BlendScreen:
		return scene.BlendScreen
	case skeleton.BlendErase:
		return scene.BlendErase
	default:
		return scene.BlendNormal
	}
}

// Name returns the slot name.
func (s *Slot) Name() string { return s.data.Name }

// Data returns the static slot definition.
func (s *Slot) Data() *skeleton.SlotData { return s.data }

// Armature returns the owning armature.
func (s *Slot) Armature() *Armature { return s.armature }

// Parent returns the bone the slot is attached to.
func (s *Slot) Parent() *Bone { return s.parent }

// Displays returns the display list. The returned slice MUST NOT be mutated.
func (s *Slot) Displays() []SlotDisplay { return s.displays }

// DisplayIndex returns the active display index; -1 shows nothing.
func (s *Slot) DisplayIndex() int { return s.displayIndex }

// SetDisplayIndex selects the active display and swaps the rendered node.
func (s *Slot) SetDisplayIndex(i int) {
	if i == s.displayIndex {
		return
	}
	s.displayIndex = i
	s.dirty = true
	s.refreshDisplay()
}

// Display returns the active entry, or a DisplayNone entry when the index is
// out of range.
func (s *Slot) Display() SlotDisplay {
	if s.displayIndex < 0 || s.displayIndex >= len(s.displays) {
		return SlotDisplay{}
	}
	return s.displays[s.displayIndex]
}

// ChildArmature returns the nested armature shown by the slot, or nil.
func (s *Slot) ChildArmature() *Armature {
	return s.Display().child()
}

// BoundingBoxData returns the bounding box of the active display, or nil.
func (s *Slot) BoundingBoxData() *skeleton.BoundingBoxData {
	if d := s.Display(); d.Data != nil {
		return d.Data.BoundingBox
	}
	return nil
}

// Pivot returns the pixel offset subtracted from the slot matrix before
// drawing the active display.
func (s *Slot) Pivot() (x, y float64) { return s.pivotX, s.pivotY }

// GlobalTransformMatrix returns the slot's armature-space matrix: the parent
// bone's matrix combined with the active display's transform.
func (s *Slot) GlobalTransformMatrix() [6]float64 { return s.global }

// ZOrder returns the draw order among the armature's slots.
func (s *Slot) ZOrder() int { return s.zOrder }

// SetZOrder changes the draw order. Ties keep slot order.
func (s *Slot) SetZOrder(z int) {
	s.zOrder = z
	if s.current != nil {
		s.current.SetZIndex(z)
	}
}

// Node returns the scene node currently rendering the slot, or nil.
func (s *Slot) Node() *scene.Node { return s.current }

// setDisplayList installs a fully built list in one step. Nested armatures
// that are not part of the new list are disposed.
func (s *Slot) setDisplayList(list []SlotDisplay) {
	old := s.displays
	s.displays = list
	for _, d := range old {
		if child := d.child(); child != nil && !containsArmature(list, child) {
			child.Dispose()
		}
	}
	s.dirty = true
	s.refreshDisplay()
}

func containsArmature(list []SlotDisplay, a *Armature) bool {
	for _, d := range list {
		if d.child() == a {
			return true
		}
	}
	return false
}

// refreshDisplay binds the active entry to its node and swaps it into the
// armature's container.
func (s *Slot) refreshDisplay() {
	d := s.Display()
	var next *scene.Node
	s.pivotX, s.pivotY = 0, 0

	switch d.Kind {
	case DisplayImage:
		s.sprite.Texture = d.Texture
		if d.Texture != nil && d.Data != nil {
			w, h := d.Texture.Size()
			s.pivotX, s.pivotY = d.Data.PivotX*w, d.Data.PivotY*h
		}
		next = s.sprite
	case DisplayMesh:
		s.bindMesh(d)
		next = s.mesh
	case DisplayArmature:
		if child := d.child(); child != nil && child.display != nil {
			next = child.display.Node
		}
	}

	if next != s.current {
		if s.current != nil {
			s.current.RemoveFromParent()
		}
		s.current = next
		if next != nil && s.armature.display != nil {
			s.armature.display.AddChild(next)
			next.SetZIndex(s.zOrder)
		}
	}
	s.dirty = false
}

// bindMesh rebuilds the mesh node's vertex buffer for d. UVs are converted to
// base-image pixels since sub-images keep their parent's coordinate space.
func (s *Slot) bindMesh(d SlotDisplay) {
	n := s.mesh
	m := d.Mesh
	if m == nil || d.Texture == nil {
		n.Vertices = n.Vertices[:0]
		n.Indices = nil
		n.MeshImage = nil
		return
	}
	count := m.VertexCount()
	if cap(n.Vertices) < count {
		n.Vertices = make([]ebiten.Vertex, count)
	}
	n.Vertices = n.Vertices[:count]

	frame := d.Texture.Frame
	fx, fy := float32(frame.Min.X), float32(frame.Min.Y)
	fw, fh := float32(frame.Dx()), float32(frame.Dy())
	for i := range count {
		u, v := float32(m.UVs[2*i]), float32(m.UVs[2*i+1])
		vert := &n.Vertices[i]
		if d.Texture.Rotated {
			// Stored 90° clockwise: display u runs down the stored region.
			vert.SrcX = fx + (1-v)*fw
			vert.SrcY = fy + u*fh
		} else {
			vert.SrcX = fx + u*fw
			vert.SrcY = fy + v*fh
		}
		vert.ColorR, vert.ColorG, vert.ColorB, vert.ColorA = 1, 1, 1, 1
	}
	n.Indices = m.Triangles
	n.SetMeshTexture(d.Texture)
	s.deformMesh(m)
}

// deformMesh writes vertex positions. Weighted meshes are skinned on the CPU
// into armature space; rigid meshes stay in slot space.
func (s *Slot) deformMesh(m *skeleton.MeshData) {
	n := s.mesh
	if m.Weights == nil {
		for i := range n.Vertices {
			if 2*i+1 >= len(m.Vertices) {
				break
			}
			n.Vertices[i].DstX = float32(m.Vertices[2*i])
			n.Vertices[i].DstY = float32(m.Vertices[2*i+1])
		}
		n.SetLocalMatrix(s.global)
	} else {
		for i := range n.Vertices {
			if i >= len(m.Weights) {
				break
			}
			var x, y float64
			for _, w := range m.Weights[i] {
				b := s.armature.boneFor(w.Bone)
				if b == nil {
					continue
				}
				bx, by := scene.TransformPoint(b.global, w.X, w.Y)
				x += bx * w.Weight
				y += by * w.Weight
			}
			n.Vertices[i].DstX = float32(x)
			n.Vertices[i].DstY = float32(y)
		}
		n.SetLocalMatrix(scene.IdentityTransform)
	}
	n.InvalidateMeshAABB()
}

// update positions the active display and advances a nested armature that
// no clock drives.
func (s *Slot) update(dt float64) {
	child := s.updateTransform()
	if child != nil && child.clock == nil {
		child.AdvanceTime(dt)
	}
}

// updateTransform derives the slot matrix from the parent bone and writes it
// to the active display node. Returns the live nested armature, if any.
func (s *Slot) updateTransform() *Armature {
	if s.dirty {
		s.refreshDisplay()
	}
	d := s.Display()
	s.global = s.parent.global
	if d.Data != nil && !d.Data.Transform.IsZero() {
		s.global = scene.MultiplyAffine(s.parent.global, d.Data.Transform.ToMatrix())
	}

	switch d.Kind {
	case DisplayImage:
		s.sprite.SetLocalMatrix(SlotDebugMatrix(s.global, s.pivotX, s.pivotY))
	case DisplayMesh:
		if d.Mesh != nil && len(s.mesh.Indices) > 0 {
			s.deformMesh(d.Mesh)
		}
	case DisplayArmature:
		child := d.child()
		if child == nil {
			return nil
		}
		if child.display != nil {
			child.display.SetLocalMatrix(s.global)
		}
		return child
	}
	return nil
}

func (s *Slot) dispose() {
	for _, d := range s.displays {
		if child := d.child(); child != nil {
			child.Dispose()
		}
	}
	s.displays = nil
	s.current = nil
	s.sprite.Dispose()
	s.mesh.Dispose()
}
