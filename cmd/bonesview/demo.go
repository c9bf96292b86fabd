package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/bones/skeleton"
)

const (
	demoBundle   = "snake"
	segmentCount = 6
	segmentLen   = 40
	segmentTile  = 48
)

// segmentColors tint the generated atlas tiles, head first.
var segmentColors = []color.RGBA{
	colornames.Seagreen,
	colornames.Mediumseagreen,
	colornames.Darkseagreen,
	colornames.Olivedrab,
	colornames.Yellowgreen,
	colornames.Khaki,
}

// newDemoBundle builds a snake armature: a chain of bones, one image slot per
// bone with a rectangular bounding box, a nested "eye" armature on the head,
// and "wave" and "coil" animations.
func newDemoBundle() *skeleton.DragonBonesData {
	b := skeleton.NewDragonBonesData(demoBundle)
	b.FrameRate = 60
	b.AddArmature(newEyeArmature())

	snake := skeleton.NewArmatureData("snake")
	var parent *skeleton.BoneData
	bones := make([]*skeleton.BoneData, segmentCount)
	for i := range bones {
		t := skeleton.Identity()
		if parent != nil {
			t.X = segmentLen
		}
		bd := &skeleton.BoneData{Name: fmt.Sprintf("seg%d", i), Parent: parent, Length: segmentLen, Transform: t}
		snake.AddBone(bd)
		bones[i] = bd
		parent = bd
	}
	snake.IK = []*skeleton.IKConstraintData{{
		Name: "tail",
		Root: bones[segmentCount-3],
		Bone: bones[segmentCount-1],
	}}

	skin := skeleton.NewSkinData("default")
	for i, bd := range bones {
		name := fmt.Sprintf("seg%d", i)
		snake.AddSlot(&skeleton.SlotData{Name: name, Parent: bd, ZOrder: segmentCount - i})
		skin.AddSlot(&skeleton.SkinSlotData{Name: name, Displays: []*skeleton.DisplayData{{
			Type:   skeleton.DisplayImage,
			Name:   name,
			PivotX: 0,
			PivotY: 0.5,
			BoundingBox: &skeleton.BoundingBoxData{
				Type:   skeleton.BoundingBoxRectangle,
				Width:  segmentLen,
				Height: segmentTile / 2,
			},
		}}})
	}

	eyeT := skeleton.Identity()
	eyeT.X = segmentLen * 0.75
	snake.AddSlot(&skeleton.SlotData{Name: "eye", Parent: bones[0], ZOrder: segmentCount + 1})
	skin.AddSlot(&skeleton.SkinSlotData{Name: "eye", Displays: []*skeleton.DisplayData{{
		Type:      skeleton.DisplayArmature,
		Name:      "eye",
		Transform: eyeT,
	}}})
	snake.AddSkin(skin)

	snake.AddAnimation(waveAnimation(bones))
	snake.AddAnimation(coilAnimation(bones))
	b.AddArmature(snake)
	return b
}

func waveAnimation(bones []*skeleton.BoneData) *skeleton.AnimationData {
	anim := &skeleton.AnimationData{
		Name:     "wave",
		Duration: 2,
		Bones:    make(map[string]*skeleton.BoneTimeline),
		Events:   []*skeleton.EventFrame{{Time: 1, Name: "halfway", Bone: bones[0].Name}},
	}
	for i, bd := range bones[1:] {
		phase := float64(i) * 0.25
		var frames []skeleton.TransformFrame
		for k := 0; k <= 4; k++ {
			t := skeleton.Identity()
			t.Rotation = 0.35 * math.Sin(float64(k)*math.Pi/2+phase)
			frames = append(frames, skeleton.TransformFrame{Time: float64(k) * 0.5, Transform: t, Ease: skeleton.EaseInOutSine})
		}
		anim.Bones[bd.Name] = &skeleton.BoneTimeline{Frames: frames}
	}
	return anim
}

func coilAnimation(bones []*skeleton.BoneData) *skeleton.AnimationData {
	anim := &skeleton.AnimationData{
		Name:     "coil",
		Duration: 1,
		Bones:    make(map[string]*skeleton.BoneTimeline),
	}
	for _, bd := range bones[1:] {
		curl := skeleton.Identity()
		curl.Rotation = 0.6
		curl.ScaleX = 0.9
		anim.Bones[bd.Name] = &skeleton.BoneTimeline{Frames: []skeleton.TransformFrame{
			{Time: 0, Transform: skeleton.Identity(), Ease: skeleton.EaseOutBack},
			{Time: 0.5, Transform: curl, Ease: skeleton.EaseInQuad},
			{Time: 1, Transform: skeleton.Identity()},
		}}
	}
	return anim
}

// newEyeArmature is a one-bone armature that blinks by swapping displays.
func newEyeArmature() *skeleton.ArmatureData {
	eye := skeleton.NewArmatureData("eye")
	bone := &skeleton.BoneData{Name: "eye", Length: 8, Transform: skeleton.Identity()}
	eye.AddBone(bone)
	eye.AddSlot(&skeleton.SlotData{Name: "eye", Parent: bone})
	skin := skeleton.NewSkinData("default")
	skin.AddSlot(&skeleton.SkinSlotData{Name: "eye", Displays: []*skeleton.DisplayData{
		{Type: skeleton.DisplayImage, Name: "eye_open", PivotX: 0.5, PivotY: 0.5},
		{Type: skeleton.DisplayImage, Name: "eye_closed", PivotX: 0.5, PivotY: 0.5},
	}})
	eye.AddSkin(skin)
	eye.AddAnimation(&skeleton.AnimationData{
		Name:     "blink",
		Duration: 3,
		Slots: map[string]*skeleton.SlotTimeline{
			"eye": {Frames: []skeleton.DisplayFrame{
				{Time: 0, DisplayIndex: 0},
				{Time: 2.8, DisplayIndex: 1},
			}},
		},
		Events: []*skeleton.EventFrame{{Time: 2.8, Kind: skeleton.EventKindSound, Name: "blink"}},
	})
	return eye
}

// newDemoAtlas paints one tile per segment plus the two eye frames into a
// single page image.
func newDemoAtlas() (*skeleton.TextureAtlasData, *ebiten.Image) {
	cols := segmentCount + 2
	page := ebiten.NewImage(cols*segmentTile, segmentTile)
	atlas := skeleton.NewTextureAtlasData(demoBundle)
	atlas.ImagePath = "generated"

	for i := range segmentCount {
		r := image.Rect(i*segmentTile, 0, i*segmentTile+segmentLen, segmentTile/2)
		page.SubImage(r).(*ebiten.Image).Fill(segmentColors[i%len(segmentColors)])
		atlas.AddTexture(&skeleton.TextureData{Name: fmt.Sprintf("seg%d", i), Region: r})
	}

	open := image.Rect(segmentCount*segmentTile, 0, segmentCount*segmentTile+10, 10)
	page.SubImage(open).(*ebiten.Image).Fill(colornames.White)
	atlas.AddTexture(&skeleton.TextureData{Name: "eye_open", Region: open})

	closed := image.Rect((segmentCount+1)*segmentTile, 4, (segmentCount+1)*segmentTile+10, 6)
	page.SubImage(closed).(*ebiten.Image).Fill(colornames.Black)
	atlas.AddTexture(&skeleton.TextureData{Name: "eye_closed", Region: closed})
	return atlas, page
}
