package bones

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phanxgames/bones/skeleton"
)

// heroBundle builds a two-armature bundle:
//
//	hero:  root -> arm (IK), slots "body" (image + bounding box) on root and
//	       "weapon" (nested sword armature) on arm
//	sword: blade bone, slot "blade" with one image
//
// Animations: hero "walk" (1s, arm moves 10px on x, sound at 0.25, frame
// event at 0.5), "idle" (0s, one frame event), "blink" (body hidden at 0.5);
// sword "swing" (default) and "walk".
func heroBundle() *skeleton.DragonBonesData {
	b := skeleton.NewDragonBonesData("hero")
	b.AddArmature(swordData())

	hero := skeleton.NewArmatureData("hero")
	root := &skeleton.BoneData{Name: "root", Length: 10, Transform: skeleton.Identity()}
	armT := skeleton.Identity()
	armT.X = 10
	arm := &skeleton.BoneData{Name: "arm", Parent: root, Length: 5, Transform: armT}
	hero.AddBone(root)
	hero.AddBone(arm)
	hero.IK = []*skeleton.IKConstraintData{{Name: "reach", Bone: arm}}

	body := &skeleton.SlotData{Name: "body", Parent: root, ZOrder: 0}
	weapon := &skeleton.SlotData{Name: "weapon", Parent: arm, ZOrder: 1}
	hero.AddSlot(body)
	hero.AddSlot(weapon)

	skin := skeleton.NewSkinData("default")
	skin.AddSlot(&skeleton.SkinSlotData{Name: "body", Displays: []*skeleton.DisplayData{{
		Type:        skeleton.DisplayImage,
		Name:        "body",
		BoundingBox: &skeleton.BoundingBoxData{Type: skeleton.BoundingBoxRectangle, Width: 4, Height: 2},
	}}})
	skin.AddSlot(&skeleton.SkinSlotData{Name: "weapon", Displays: []*skeleton.DisplayData{{
		Type: skeleton.DisplayArmature,
		Name: "sword",
	}}})
	hero.AddSkin(skin)

	moved := skeleton.Identity()
	moved.X = 10
	hero.AddAnimation(&skeleton.AnimationData{
		Name:     "walk",
		Duration: 1,
		Bones: map[string]*skeleton.BoneTimeline{
			"arm": {Frames: []skeleton.TransformFrame{
				{Time: 0, Transform: skeleton.Identity()},
				{Time: 1, Transform: moved},
			}},
		},
		Events: []*skeleton.EventFrame{
			{Time: 0.25, Kind: skeleton.EventKindSound, Name: "footstep"},
			{Time: 0.5, Kind: skeleton.EventKindFrame, Name: "step", Bone: "arm"},
		},
	})
	hero.AddAnimation(&skeleton.AnimationData{
		Name:   "idle",
		Events: []*skeleton.EventFrame{{Time: 0, Name: "rest"}},
	})
	hero.AddAnimation(&skeleton.AnimationData{
		Name:     "blink",
		Duration: 1,
		Slots: map[string]*skeleton.SlotTimeline{
			"body": {Frames: []skeleton.DisplayFrame{{Time: 0, DisplayIndex: 0}, {Time: 0.5, DisplayIndex: -1}}},
		},
	})
	b.AddArmature(hero)
	return b
}

func swordData() *skeleton.ArmatureData {
	sword := skeleton.NewArmatureData("sword")
	blade := &skeleton.BoneData{Name: "blade", Length: 8, Transform: skeleton.Identity()}
	sword.AddBone(blade)
	sword.AddSlot(&skeleton.SlotData{Name: "blade", Parent: blade})
	skin := skeleton.NewSkinData("default")
	skin.AddSlot(&skeleton.SkinSlotData{Name: "blade", Displays: []*skeleton.DisplayData{{
		Type: skeleton.DisplayImage,
		Name: "blade",
	}}})
	sword.AddSkin(skin)
	sword.AddAnimation(&skeleton.AnimationData{Name: "swing", Duration: 0.5})
	sword.AddAnimation(&skeleton.AnimationData{Name: "walk", Duration: 1})
	return sword
}

// newTestFactory returns a factory with no host ticker and a host-trusting
// clock, so tests drive time through AdvanceTime hints.
func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Clock.DeltaPolicy = DeltaHost
	f := NewFactory(nil, cfg)
	f.AddDragonBonesData(heroBundle(), "")
	t.Cleanup(f.Close)
	return f
}

func buildHero(t *testing.T, f *Factory) *ArmatureDisplay {
	t.Helper()
	d, err := f.BuildArmatureDisplay("hero", "", "", "")
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

// recorder collects dispatched event types and names.
type recorder struct {
	types []EventType
	names []string
}

func (r *recorder) listen(d *ArmatureDisplay, types ...EventType) {
	for _, t := range types {
		d.AddEvent(t, func(e *EventObject) {
			r.types = append(r.types, e.Type)
			r.names = append(r.names, e.Name)
		})
	}
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, x := range r.types {
		if x == t {
			n++
		}
	}
	return n
}
