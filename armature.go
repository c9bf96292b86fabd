package bones

import (
	"fmt"

	"github.com/phanxgames/bones/skeleton"
)

// Armature is a live instance of an ArmatureData. It is owned by its
// ArmatureDisplay; disposing either disposes both.
type Armature struct {
	name    string
	data    *skeleton.ArmatureData
	factory *Factory
	display *ArmatureDisplay

	animation *Animation
	bones     []*Bone
	boneMap   map[*skeleton.BoneData]*Bone
	slots     []*Slot

	clock            *Clock
	parent           *Slot
	inheritAnimation bool

	actions []*skeleton.ActionData
	events  []*EventObject

	advancing bool
	disposed  bool

	// gen counts how many times the record has been recycled. Holders of a
	// pooled pointer compare it to detect reuse.
	gen uint32
}

// Reset returns the armature to the state of a pooled record. A pooled
// armature reports IsDisposed until the factory builds it again.
func (a *Armature) Reset() {
	*a = Armature{disposed: true, gen: a.gen + 1}
}

// init prepares a borrowed record for data.
func (a *Armature) init(f *Factory, data *skeleton.ArmatureData, display *ArmatureDisplay) {
	a.name = data.Name
	a.data = data
	a.factory = f
	a.display = display
	a.boneMap = make(map[*skeleton.BoneData]*Bone, len(data.Bones))
	a.animation = newAnimation(a)
	a.disposed = false
}

// Name returns the armature name.
func (a *Armature) Name() string { return a.name }

// Data returns the static definition.
func (a *Armature) Data() *skeleton.ArmatureData { return a.data }

// Display returns the owning display proxy.
func (a *Armature) Display() *ArmatureDisplay { return a.display }

// Animation returns the playback controller.
func (a *Armature) Animation() *Animation { return a.animation }

// Bones returns the bones, parents first. The returned slice MUST NOT be mutated.
func (a *Armature) Bones() []*Bone { return a.bones }

// Slots returns the slots in data order. The returned slice MUST NOT be mutated.
func (a *Armature) Slots() []*Slot { return a.slots }

// Bone returns the bone with the given name, or nil.
func (a *Armature) Bone(name string) *Bone {
	for _, b := range a.bones {
		if b.data.Name == name {
			return b
		}
	}
	return nil
}

// Slot returns the slot with the given name, or nil.
func (a *Armature) Slot(name string) *Slot {
	for _, s := range a.slots {
		if s.data.Name == name {
			return s
		}
	}
	return nil
}

func (a *Armature) boneFor(data *skeleton.BoneData) *Bone {
	return a.boneMap[data]
}

func (a *Armature) addBone(b *Bone) {
	a.bones = append(a.bones, b)
	a.boneMap[b.data] = b
}

// Clock returns the clock driving the armature, or nil.
func (a *Armature) Clock() *Clock { return a.clock }

// SetClock moves the armature onto c, or detaches it when c is nil.
func (a *Armature) SetClock(c *Clock) {
	if c == nil {
		if a.clock != nil {
			a.clock.Remove(a)
		}
		return
	}
	c.Add(a)
}

// Parent returns the slot hosting this armature when nested, or nil.
func (a *Armature) Parent() *Slot { return a.parent }

// InheritAnimation reports whether a nested armature follows its parent's
// animation by name.
func (a *Armature) InheritAnimation() bool { return a.inheritAnimation }

// BufferAction queues an action to run at the start of the next update.
func (a *Armature) BufferAction(act *skeleton.ActionData) {
	mustBeLive(a, "BufferAction")
	a.actions = append(a.actions, act)
}

// BufferedActions returns the number of actions waiting for the next update.
func (a *Armature) BufferedActions() int { return len(a.actions) }

// IsDisposed reports whether the armature has been disposed.
func (a *Armature) IsDisposed() bool { return a.disposed }

// AdvanceTime runs buffered actions, advances the animation by dt seconds,
// updates bones and slots, then dispatches the events raised on the way.
// Re-entrant calls are ignored. Panics if the armature is disposed.
func (a *Armature) AdvanceTime(dt float64) {
	mustBeLive(a, "AdvanceTime")
	if a.advancing {
		return
	}
	a.advancing = true

	if len(a.actions) > 0 {
		actions := a.actions
		a.actions = nil
		for _, act := range actions {
			a.runAction(act)
		}
	}

	a.animation.advanceTime(dt)
	for _, b := range a.bones {
		b.update()
	}
	for _, s := range a.slots {
		s.update(dt)
		if a.disposed {
			return
		}
	}
	a.advancing = false
	a.flushEvents()
}

func (a *Armature) runAction(act *skeleton.ActionData) {
	switch act.Type {
	case skeleton.ActionPlay:
		a.animation.Play(act.Animation, act.PlayTimes)
	case skeleton.ActionFadeIn:
		a.animation.FadeIn(act.Animation, act.FadeTime, act.PlayTimes)
	case skeleton.ActionStop:
		a.animation.Stop(act.Animation)
	default:
		a.factory.debugf("armature %q: unknown action type %d", a.name, act.Type)
	}
}

// queueEvent records an event for dispatch at the end of the update.
func (a *Armature) queueEvent(t EventType, fill func(e *EventObject)) {
	var e *EventObject
	if a.factory != nil {
		e = a.factory.events.Borrow()
	} else {
		e = &EventObject{}
	}
	e.Type = t
	e.Armature = a
	if fill != nil {
		fill(e)
	}
	a.events = append(a.events, e)
}

// flushEvents dispatches queued events. Sound events go to the factory's
// sound manager; all others go to the armature's display.
func (a *Armature) flushEvents() {
	if len(a.events) == 0 {
		return
	}
	events := a.events
	a.events = nil
	f := a.factory
	display := a.display
	for _, e := range events {
		target := display
		if e.Type == EventSound && f != nil {
			target = f.soundManager
		}
		if target != nil && !target.IsDisposed() {
			target.DispatchEvent(e.Type, e)
		}
		if f != nil {
			f.events.Return(e)
		}
	}
}

// Dispose tears the armature down together with its display. Safe to call
// more than once.
func (a *Armature) Dispose() {
	if a.disposed {
		return
	}
	if a.display != nil && !a.display.IsDisposed() {
		a.display.Dispose()
		return
	}
	a.dispose()
}

// dispose unregisters from the clock before tearing down state, then returns
// the record to the factory pool.
func (a *Armature) dispose() {
	if a.disposed {
		return
	}
	if a.clock != nil {
		a.clock.Remove(a)
	}
	a.disposed = true
	for _, s := range a.slots {
		s.dispose()
	}
	f := a.factory
	if f != nil {
		for _, e := range a.events {
			f.events.Return(e)
		}
	}
	a.events = nil
	if f != nil {
		f.armatures.Return(a)
	}
}

func (a *Armature) String() string {
	return fmt.Sprintf("Armature(%s)", a.name)
}
