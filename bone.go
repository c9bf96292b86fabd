package bones

import (
	"github.com/phanxgames/bones/scene"
	"github.com/phanxgames/bones/skeleton"
)

// Bone is the live pose of one bone. Its global matrix is in armature space.
type Bone struct {
	data     *skeleton.BoneData
	armature *Armature
	parent   *Bone
	ik       bool

	// pose is the animation delta on top of the setup transform.
	pose skeleton.Transform
	// fadeFrom holds the pose captured when a fade-in started.
	fadeFrom skeleton.Transform
	// Offset is a user delta applied after the animation pose.
	Offset skeleton.Transform

	global [6]float64
}

func newBone(a *Armature, data *skeleton.BoneData, parent *Bone) *Bone {
	return &Bone{
		data:     data,
		armature: a,
		parent:   parent,
		ik:       a.data.IsIKBone(data),
		pose:     skeleton.Identity(),
		fadeFrom: skeleton.Identity(),
		Offset:   skeleton.Identity(),
		global:   scene.IdentityTransform,
	}
}

// Name returns the bone name.
func (b *Bone) Name() string { return b.data.Name }

// Data returns the static bone definition.
func (b *Bone) Data() *skeleton.BoneData { return b.data }

// Armature returns the owning armature.
func (b *Bone) Armature() *Armature { return b.armature }

// Parent returns the parent bone, or nil for a root bone.
func (b *Bone) Parent() *Bone { return b.parent }

// Length returns the bone length used for debug drawing.
func (b *Bone) Length() float64 { return b.data.Length }

// IsIK reports whether the bone takes part in an IK constraint.
func (b *Bone) IsIK() bool { return b.ik }

// GlobalTransformMatrix returns the bone's armature-space matrix from the last update.
func (b *Bone) GlobalTransformMatrix() [6]float64 { return b.global }

// Pose returns the current animation delta.
func (b *Bone) Pose() skeleton.Transform { return b.pose }

// update recomputes the global matrix. Parents must be updated first.
func (b *Bone) update() {
	local := b.data.Transform.Add(b.pose).Add(b.Offset).ToMatrix()
	if b.parent == nil {
		b.global = local
		return
	}
	b.global = scene.MultiplyAffine(b.parent.global, local)
}
