package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/bones"
)

func TestListBundle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listBundle(&buf, newDemoBundle()))

	want := "eye (1 bones, 1 slots)\n" +
		"  blink 3.00s *\n" +
		"snake (6 bones, 7 slots)\n" +
		"  wave 2.00s *\n" +
		"  coil 1.00s\n"
	assert.Equal(t, want, buf.String())
}

func TestDemoBundleBuilds(t *testing.T) {
	cfg := bones.DefaultConfig()
	cfg.Clock.DeltaPolicy = bones.DeltaHost
	f := bones.NewFactory(nil, cfg)
	t.Cleanup(f.Close)
	f.AddDragonBonesData(newDemoBundle(), "")

	d, err := f.BuildArmatureDisplay("snake", demoBundle, "", "")
	require.NoError(t, err)
	t.Cleanup(d.Dispose)

	a := d.Armature()
	require.Len(t, a.Bones(), segmentCount)
	assert.False(t, a.Bone("seg0").IsIK())
	assert.True(t, a.Bone("seg3").IsIK())
	assert.True(t, a.Bone("seg5").IsIK())

	eye := a.Slot("eye").ChildArmature()
	require.NotNil(t, eye)
	assert.Equal(t, "eye", eye.Name())

	var frames []string
	d.AddEvent(bones.EventFrame, func(e *bones.EventObject) {
		frames = append(frames, e.Name+"@"+e.Bone.Name())
	})
	require.True(t, d.Animation().Play("wave", 0))
	f.Clock().AdvanceTime(1.5)

	assert.Equal(t, []string{"halfway@seg0"}, frames)
	assert.Equal(t, "blink", eye.Animation().LastAnimationName())
}
