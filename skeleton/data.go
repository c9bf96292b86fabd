package skeleton

// DragonBonesData is a named bundle of armature definitions.
type DragonBonesData struct {
	Name      string
	FrameRate int
	Version   string

	ArmatureNames []string
	armatures     map[string]*ArmatureData
}

// NewDragonBonesData creates an empty bundle.
func NewDragonBonesData(name string) *DragonBonesData {
	return &DragonBonesData{Name: name, armatures: make(map[string]*ArmatureData)}
}

// AddArmature registers a into the bundle, replacing any armature with the same name.
func (d *DragonBonesData) AddArmature(a *ArmatureData) {
	if d.armatures == nil {
		d.armatures = make(map[string]*ArmatureData)
	}
	if _, ok := d.armatures[a.Name]; !ok {
		d.ArmatureNames = append(d.ArmatureNames, a.Name)
	}
	a.Parent = d
	d.armatures[a.Name] = a
}

// Armature returns the armature definition with the given name, or nil.
func (d *DragonBonesData) Armature(name string) *ArmatureData {
	return d.armatures[name]
}

// ArmatureData is the static definition of a skeleton.
type ArmatureData struct {
	Name      string
	Parent    *DragonBonesData
	FrameRate int

	// Bones are ordered so that every parent precedes its children.
	Bones []*BoneData
	Slots []*SlotData
	IK    []*IKConstraintData

	DefaultSkin *SkinData
	skins       map[string]*SkinData

	AnimationNames   []string
	DefaultAnimation *AnimationData
	animations       map[string]*AnimationData

	// Actions run once when the armature is built as a nested child.
	Actions []*ActionData
}

// NewArmatureData creates an empty armature definition.
func NewArmatureData(name string) *ArmatureData {
	return &ArmatureData{
		Name:       name,
		skins:      make(map[string]*SkinData),
		animations: make(map[string]*AnimationData),
	}
}

// AddBone appends b. Its parent, if any, must already be added.
func (a *ArmatureData) AddBone(b *BoneData) {
	a.Bones = append(a.Bones, b)
}

// Bone returns the bone with the given name, or nil.
func (a *ArmatureData) Bone(name string) *BoneData {
	for _, b := range a.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// AddSlot appends s in draw order.
func (a *ArmatureData) AddSlot(s *SlotData) {
	a.Slots = append(a.Slots, s)
}

// Slot returns the slot with the given name, or nil.
func (a *ArmatureData) Slot(name string) *SlotData {
	for _, s := range a.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddSkin registers s. The first skin added, or one named "default",
// becomes DefaultSkin.
func (a *ArmatureData) AddSkin(s *SkinData) {
	if a.skins == nil {
		a.skins = make(map[string]*SkinData)
	}
	a.skins[s.Name] = s
	if a.DefaultSkin == nil || s.Name == "default" {
		a.DefaultSkin = s
	}
}

// Skin returns the skin with the given name, or nil.
func (a *ArmatureData) Skin(name string) *SkinData {
	return a.skins[name]
}

// AddAnimation registers anim. The first animation added becomes DefaultAnimation.
func (a *ArmatureData) AddAnimation(anim *AnimationData) {
	if a.animations == nil {
		a.animations = make(map[string]*AnimationData)
	}
	if _, ok := a.animations[anim.Name]; !ok {
		a.AnimationNames = append(a.AnimationNames, anim.Name)
	}
	a.animations[anim.Name] = anim
	if a.DefaultAnimation == nil {
		a.DefaultAnimation = anim
	}
}

// Animation returns the animation with the given name, or nil.
func (a *ArmatureData) Animation(name string) *AnimationData {
	return a.animations[name]
}

// IsIKBone reports whether b is the root or the effector of an IK constraint.
func (a *ArmatureData) IsIKBone(b *BoneData) bool {
	for _, ik := range a.IK {
		if ik.Bone == b || ik.Root == b {
			return true
		}
	}
	return false
}

// BoneData is the static definition of a bone.
type BoneData struct {
	Name      string
	Parent    *BoneData
	Length    float64
	Transform Transform
}

// IKConstraintData names the bones driven by an IK constraint. The runtime
// does not solve IK; the data only marks bones for debug drawing.
type IKConstraintData struct {
	Name   string
	Target *BoneData
	Bone   *BoneData
	Root   *BoneData
}

// BlendMode is the compositing mode declared for a slot.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendErase
)

// ColorTransform multiplies a slot's color. The zero value is treated as opaque white.
type ColorTransform struct {
	R, G, B, A float64
}

// IsZero reports whether c is the zero value.
func (c ColorTransform) IsZero() bool {
	return c == ColorTransform{}
}

// SlotData is the static definition of a slot.
type SlotData struct {
	Name   string
	Parent *BoneData

	// DisplayIndex selects the initial display; -1 shows nothing.
	DisplayIndex int
	ZOrder       int
	BlendMode    BlendMode
	Color        ColorTransform

	// Actions are buffered into a nested child armature built for this slot.
	Actions []*ActionData
}

// SkinData maps slot names to their display lists.
type SkinData struct {
	Name  string
	slots map[string]*SkinSlotData
}

// NewSkinData creates an empty skin.
func NewSkinData(name string) *SkinData {
	return &SkinData{Name: name, slots: make(map[string]*SkinSlotData)}
}

// AddSlot registers the display list for a slot.
func (s *SkinData) AddSlot(ss *SkinSlotData) {
	if s.slots == nil {
		s.slots = make(map[string]*SkinSlotData)
	}
	s.slots[ss.Name] = ss
}

// Slot returns the display list for the named slot, or nil.
func (s *SkinData) Slot(name string) *SkinSlotData {
	if s == nil {
		return nil
	}
	return s.slots[name]
}

// SkinSlotData is the ordered display list for one slot within a skin.
type SkinSlotData struct {
	Name     string
	Displays []*DisplayData
}

// Mesh returns the mesh display with the given name, or nil.
func (s *SkinSlotData) Mesh(name string) *DisplayData {
	if s == nil {
		return nil
	}
	for _, d := range s.Displays {
		if d != nil && d.Type == DisplayMesh && d.Name == name {
			return d
		}
	}
	return nil
}

// ActionType identifies a buffered action.
type ActionType uint8

const (
	ActionPlay ActionType = iota
	ActionFadeIn
	ActionStop
)

// ActionData is an action a nested armature runs on its first update.
type ActionData struct {
	Type      ActionType
	Animation string
	PlayTimes int
	FadeTime  float64
}
