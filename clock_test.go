package bones

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/bones/scene"
)

// fakeNow is a manually advanced time source.
type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeNow() *fakeNow {
	return &fakeNow{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestClockAddIsIdempotent(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	c := f.Clock()

	assert.Equal(t, 1, c.Len())
	c.Add(d.Armature())
	c.Add(d.Armature())
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(d.Armature()))
	assert.Same(t, c, d.Armature().Clock())
}

func TestClockMovesArmatureBetweenClocks(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	other := NewClock()

	other.Add(d.Armature())
	assert.False(t, f.Clock().Contains(d.Armature()))
	assert.Equal(t, 0, f.Clock().Len())
	assert.True(t, other.Contains(d.Armature()))

	d.Armature().SetClock(nil)
	assert.Equal(t, 0, other.Len())
	assert.Nil(t, d.Armature().Clock())

	// Removing an armature that is not registered is a no-op.
	other.Remove(d.Armature())
	assert.Equal(t, 0, other.Len())
}

func TestClockRemoveUnregisteredPanicsInDebug(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	other := NewClock()
	assert.NotPanics(t, func() { other.Remove(d.Armature()) })

	cfg := f.Config()
	cfg.Debug.Enabled = true
	f.ApplyConfig(cfg)
	assert.Panics(t, func() { f.Clock().Remove(d.Armature()); f.Clock().Remove(d.Armature()) })

	// Disposal and clock moves only remove from the owning clock.
	d2 := buildHero(t, f)
	other.Add(d2.Armature())
	assert.NotPanics(t, d2.Dispose)
	assert.Equal(t, 0, other.Len())
}

func TestClockAddDisposedPanics(t *testing.T) {
	f := newTestFactory(t)
	a, err := f.BuildArmature("hero", "", "", "")
	require.NoError(t, err)
	a.Dispose()
	assert.Panics(t, func() { f.Clock().Add(a) })
}

func TestClockUpdatesInRegistrationOrder(t *testing.T) {
	f := newTestFactory(t)
	first := buildHero(t, f)
	second := buildHero(t, f)

	var order []*ArmatureDisplay
	for _, d := range []*ArmatureDisplay{first, second} {
		d.AddEvent(EventStart, func(*EventObject) { order = append(order, d) })
		d.Animation().Play("walk", 0)
	}
	f.Clock().AdvanceTime(0.1)
	assert.Equal(t, []*ArmatureDisplay{first, second}, order)
	assert.InDelta(t, 0.1, first.Animation().CurrentTime(), 1e-9)
	assert.InDelta(t, 0.1, second.Animation().CurrentTime(), 1e-9)
}

func TestClockSkipsArmatureDisposedMidPass(t *testing.T) {
	f := newTestFactory(t)
	first := buildHero(t, f)
	second := buildHero(t, f)
	secondAnim := second.Animation()

	first.AddEvent(EventStart, func(*EventObject) { second.Dispose() })
	first.Animation().Play("walk", 0)
	second.Animation().Play("walk", 0)

	require.NotPanics(t, func() { f.Clock().AdvanceTime(0.1) })
	assert.True(t, second.IsDisposed())
	assert.Equal(t, 1, f.Clock().Len())
	assert.Zero(t, secondAnim.CurrentTime())
}

func TestClockSkipsRecycledRecordBuiltMidPass(t *testing.T) {
	f := newTestFactory(t)
	first := buildHero(t, f)
	second := buildHero(t, f)
	record := second.Armature()

	var third *ArmatureDisplay
	first.AddEvent(EventStart, func(*EventObject) {
		second.Dispose()
		d, err := f.BuildArmatureDisplay("sword", "", "", "")
		require.NoError(t, err)
		d.Animation().Play("swing", 0)
		third = d
	})
	first.Animation().Play("walk", 0)

	f.Clock().AdvanceTime(0.1)
	require.NotNil(t, third)
	// The pool hands the new build the record disposed earlier in the pass.
	assert.Same(t, record, third.Armature())
	assert.Zero(t, third.Animation().CurrentTime())

	f.Clock().AdvanceTime(0.1)
	assert.InDelta(t, 0.1, third.Animation().CurrentTime(), 1e-9)
}

func TestClockSelfRemovalMidPass(t *testing.T) {
	f := newTestFactory(t)
	first := buildHero(t, f)
	second := buildHero(t, f)

	first.AddEvent(EventStart, func(*EventObject) { first.AdvanceTimeBySelf(false) })
	first.Animation().Play("walk", 0)
	second.Animation().Play("walk", 0)

	f.Clock().AdvanceTime(0.1)
	assert.Equal(t, 1, f.Clock().Len())
	assert.InDelta(t, 0.1, second.Animation().CurrentTime(), 1e-9)

	f.Clock().AdvanceTime(0.1)
	assert.InDelta(t, 0.1, first.Animation().CurrentTime(), 1e-9)
	assert.InDelta(t, 0.2, second.Animation().CurrentTime(), 1e-9)
}

func TestClockAddedMidPassWaitsForNextTick(t *testing.T) {
	f := newTestFactory(t)
	first := buildHero(t, f)
	late, err := f.BuildArmature("hero", "", "", "")
	require.NoError(t, err)
	late.Animation().Play("walk", 0)

	first.AddEvent(EventStart, func(*EventObject) { f.Clock().Add(late) })
	first.Animation().Play("walk", 0)

	f.Clock().AdvanceTime(0.1)
	assert.Equal(t, 2, f.Clock().Len())
	assert.Zero(t, late.Animation().CurrentTime())

	f.Clock().AdvanceTime(0.1)
	assert.InDelta(t, 0.1, late.Animation().CurrentTime(), 1e-9)
}

func TestClockDeltaInternalIgnoresHint(t *testing.T) {
	c := NewClock()
	now := newFakeNow()
	c.SetNow(now.now)

	c.AdvanceTime(5)
	assert.Zero(t, c.Time(), "first tick has no previous timestamp")

	now.advance(250 * time.Millisecond)
	c.AdvanceTime(5)
	assert.InDelta(t, 0.25, c.Time(), 1e-9)

	now.advance(-time.Second)
	c.AdvanceTime(-1)
	assert.InDelta(t, 0.25, c.Time(), 1e-9, "clock never runs backwards")
}

func TestClockDeltaHost(t *testing.T) {
	c := NewClock()
	now := newFakeNow()
	c.SetNow(now.now)
	c.SetDeltaPolicy(DeltaHost)
	assert.Equal(t, DeltaHost, c.DeltaPolicy())

	c.AdvanceTime(0.5)
	assert.InDelta(t, 0.5, c.Time(), 1e-9)

	now.advance(100 * time.Millisecond)
	c.AdvanceTime(-1)
	assert.InDelta(t, 0.6, c.Time(), 1e-9, "negative hint falls back to elapsed time")

	now.advance(100 * time.Millisecond)
	c.AdvanceTime(math.NaN())
	assert.InDelta(t, 0.7, c.Time(), 1e-9)
}

func TestClockTimeScale(t *testing.T) {
	c := NewClock()
	c.SetDeltaPolicy(DeltaHost)
	c.TimeScale = 2
	c.AdvanceTime(0.25)
	assert.InDelta(t, 0.5, c.Time(), 1e-9)

	c.TimeScale = 0
	c.AdvanceTime(1)
	assert.InDelta(t, 0.5, c.Time(), 1e-9)
}

func TestDeltaPolicyText(t *testing.T) {
	var p DeltaPolicy
	require.NoError(t, p.UnmarshalText([]byte("host")))
	assert.Equal(t, DeltaHost, p)
	require.NoError(t, p.UnmarshalText([]byte("")))
	assert.Equal(t, DeltaInternal, p)
	assert.Error(t, p.UnmarshalText([]byte("wall")))

	b, err := DeltaHost.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "host", string(b))
}

func TestFactoryTickerDrivesClock(t *testing.T) {
	ticks := &scene.Ticker{}
	cfg := DefaultConfig()
	cfg.Clock.DeltaPolicy = DeltaHost
	f := NewFactory(ticks, cfg)
	f.AddDragonBonesData(heroBundle(), "")
	d := buildHero(t, f)
	d.Animation().Play("walk", 0)

	ticks.Tick(0.25)
	assert.InDelta(t, 0.25, d.Animation().CurrentTime(), 1e-9)

	f.Close()
	assert.Zero(t, ticks.Len())
	ticks.Tick(0.25)
	assert.InDelta(t, 0.25, d.Animation().CurrentTime(), 1e-9)
}
