package bones

import (
	"fmt"
	"math"
	"time"
)

// DeltaPolicy selects where the clock takes its per-tick delta from.
type DeltaPolicy uint8

const (
	// DeltaInternal ignores the host's delta and measures elapsed wall time.
	DeltaInternal DeltaPolicy = iota
	// DeltaHost trusts the delta reported by the host tick.
	DeltaHost
)

func (p DeltaPolicy) String() string {
	if p == DeltaHost {
		return "host"
	}
	return "internal"
}

// MarshalText implements encoding.TextMarshaler.
func (p DeltaPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DeltaPolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "internal":
		*p = DeltaInternal
	case "host":
		*p = DeltaHost
	default:
		return fmt.Errorf("bones: unknown delta policy %q", b)
	}
	return nil
}

// Clock advances every registered armature once per host tick. An armature is
// registered with at most one clock at a time.
//
// The clock is not safe for concurrent use; it runs on the host update thread.
type Clock struct {
	// TimeScale multiplies every delta. Zero pauses the clock.
	TimeScale float64

	policy    DeltaPolicy
	armatures []*Armature
	snapshot  []armatureRef
	now       func() time.Time
	last      time.Time
	time      float64

	// debug turns removal of an unregistered armature into a panic.
	debug bool
}

// armatureRef pins a pooled armature to the build it referred to when taken.
type armatureRef struct {
	a   *Armature
	gen uint32
}

// live reports whether r still names the same build and it is not disposed.
func (r armatureRef) live() bool {
	return r.a != nil && r.a.gen == r.gen && !r.a.disposed
}

// NewClock creates a clock using DeltaInternal and the system time.
func NewClock() *Clock {
	return &Clock{TimeScale: 1, now: time.Now}
}

// SetDeltaPolicy changes the delta source.
func (c *Clock) SetDeltaPolicy(p DeltaPolicy) {
	c.policy = p
}

// DeltaPolicy returns the current delta source.
func (c *Clock) DeltaPolicy() DeltaPolicy {
	return c.policy
}

// SetNow replaces the time source used for internal accounting.
func (c *Clock) SetNow(now func() time.Time) {
	c.now = now
	c.last = time.Time{}
}

// Time returns the accumulated clock time in seconds.
func (c *Clock) Time() float64 {
	return c.time
}

// Add registers a. Adding an already registered armature is a no-op; an
// armature registered on another clock is moved. Panics if a is disposed.
func (c *Clock) Add(a *Armature) {
	mustBeLive(a, "Clock.Add")
	if a.clock == c {
		return
	}
	if a.clock != nil {
		a.clock.Remove(a)
	}
	c.armatures = append(c.armatures, a)
	a.clock = c
}

// Remove unregisters a. Armatures not on this clock are ignored, except in
// debug mode where the mismatch panics.
func (c *Clock) Remove(a *Armature) {
	if a.clock != c {
		if c.debug || globalDebug {
			panic(fmt.Sprintf("bones: Clock.Remove of armature %q not registered on this clock", a.name))
		}
		return
	}
	for i, x := range c.armatures {
		if x == a {
			copy(c.armatures[i:], c.armatures[i+1:])
			c.armatures[len(c.armatures)-1] = nil
			c.armatures = c.armatures[:len(c.armatures)-1]
			break
		}
	}
	a.clock = nil
}

// Contains reports whether a is registered on this clock.
func (c *Clock) Contains(a *Armature) bool {
	return a != nil && a.clock == c
}

// Len returns the number of registered armatures.
func (c *Clock) Len() int {
	return len(c.armatures)
}

// Armatures returns a copy of the registered armatures in registration order.
func (c *Clock) Armatures() []*Armature {
	return append([]*Armature(nil), c.armatures...)
}

// AdvanceTime updates every registered armature exactly once, in
// registration order, over a snapshot taken on entry. Armatures removed or
// disposed during the pass are skipped; armatures added during the pass are
// first updated on the next call, even when a new build reuses the pooled
// record of one disposed earlier in the pass.
func (c *Clock) AdvanceTime(hint float64) {
	dt := c.delta(hint)
	c.time += dt

	c.snapshot = c.snapshot[:0]
	for _, a := range c.armatures {
		c.snapshot = append(c.snapshot, armatureRef{a: a, gen: a.gen})
	}
	for _, r := range c.snapshot {
		if !r.live() || r.a.clock != c {
			continue
		}
		r.a.AdvanceTime(dt)
	}
	clear(c.snapshot)
}

// delta resolves the seconds to advance for this tick.
func (c *Clock) delta(hint float64) float64 {
	now := c.now()
	elapsed := 0.0
	if !c.last.IsZero() {
		elapsed = now.Sub(c.last).Seconds()
	}
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}

	dt := elapsed
	if c.policy == DeltaHost && hint >= 0 && !math.IsNaN(hint) && !math.IsInf(hint, 0) {
		dt = hint
	}
	return dt * c.TimeScale
}
