package bones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/bones/scene"
)

func TestDisplayDisposeTwice(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	parent := scene.NewContainer("stage")
	parent.AddChild(d.Node)
	sword := d.Armature().Slot("weapon").ChildArmature()

	d.Dispose()
	assert.True(t, d.IsDisposed())
	assert.Nil(t, d.Armature())
	assert.Zero(t, f.Clock().Len())
	assert.Zero(t, parent.NumChildren())
	assert.True(t, sword.IsDisposed())

	assert.NotPanics(t, d.Dispose)
	assert.Nil(t, d.Armature())
	assert.Panics(t, func() { d.Animation() })
	assert.Panics(t, func() { d.DebugDraw(true) })
	assert.Panics(t, func() { d.AdvanceTimeBySelf(true) })
}

func TestArmatureDisposeDisposesDisplay(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	a := d.Armature()

	a.Dispose()
	assert.True(t, d.IsDisposed())
	assert.Nil(t, d.Armature())
	assert.NotPanics(t, a.Dispose)
	assert.Panics(t, func() { a.AdvanceTime(0.1) })
}

func TestDisposeInsideListener(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	var after []EventType
	d.AddEvent(EventStart, func(*EventObject) { d.Dispose() })
	d.AddEvent(EventFrame, func(e *EventObject) { after = append(after, e.Type) })

	d.Animation().Play("walk", 0)
	require.NotPanics(t, func() { f.Clock().AdvanceTime(0.6) })
	assert.True(t, d.IsDisposed())
	assert.Empty(t, after)
	_, _, events := f.PoolStats()
	assert.Zero(t, events)
}

func TestAdvanceTimeBySelf(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)

	d.AdvanceTimeBySelf(false)
	assert.Zero(t, f.Clock().Len())
	d.AdvanceTimeBySelf(true)
	d.AdvanceTimeBySelf(true)
	assert.Equal(t, 1, f.Clock().Len())
}

func TestDebugDrawOverlay(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	assert.Nil(t, d.DebugOverlay())

	d.DebugDraw(true)
	overlay := d.DebugOverlay()
	require.NotNil(t, overlay)
	assert.Same(t, d.Node, overlay.Parent)

	bones := overlay.ChildByName("bones")
	require.NotNil(t, bones)
	// One segment and one joint per bone.
	assert.Len(t, bones.Graphics.Shapes(), 4)

	body := overlay.ChildByName("body")
	require.NotNil(t, body, "slots with a bounding box get an overlay child")
	assert.Nil(t, overlay.ChildByName("weapon"))
	require.Len(t, body.Graphics.Shapes(), 1)
	pts, closed := body.Graphics.Shapes()[0].Outline()
	assert.True(t, closed)
	assert.Equal(t, scene.Rect{X: -2, Y: -1, Width: 4, Height: 2}, scene.BoundsOf(pts))

	// Redrawing rebuilds rather than accumulates.
	d.DebugDraw(true)
	assert.Len(t, bones.Graphics.Shapes(), 4)
	assert.Same(t, overlay, d.DebugOverlay())

	d.DebugDraw(false)
	assert.Nil(t, overlay.Parent)
	assert.Same(t, overlay, d.DebugOverlay())
}

func TestDebugDrawDropsSlotsWithoutBoundingBox(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	d.DebugDraw(true)
	require.NotNil(t, d.DebugOverlay().ChildByName("body"))

	d.Armature().Slot("body").SetDisplayIndex(-1)
	d.DebugDraw(true)
	assert.Nil(t, d.DebugOverlay().ChildByName("body"))
}

func TestDebugDrawFollowsPose(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	d.Animation().Play("walk", 0)
	f.Clock().AdvanceTime(0.5)

	d.DebugDraw(true)
	bones := d.DebugOverlay().ChildByName("bones")
	// Shapes are recorded per bone: root segment, root joint, arm segment, arm joint.
	pts, _ := bones.Graphics.Shapes()[2].Outline()
	require.NotEmpty(t, pts)
	assert.InDelta(t, 15, pts[0].X, 1e-9)
	assert.InDelta(t, 20, pts[len(pts)-1].X, 1e-9)
}

func TestDebugDrawIsNotDrivenByClock(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	d.DebugDraw(true)
	bones := d.DebugOverlay().ChildByName("bones")
	before, _ := bones.Graphics.Shapes()[2].Outline()

	d.Animation().Play("walk", 0)
	f.Clock().AdvanceTime(0.5)
	after, _ := bones.Graphics.Shapes()[2].Outline()
	assert.Equal(t, before, after)
}
