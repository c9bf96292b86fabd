package ecs

import (
	"github.com/phanxgames/bones"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ArmatureEvent is a copy of a bones event that is safe to keep after
// dispatch. Pooled bones.EventObject values are recycled, so only names are
// carried over.
type ArmatureEvent struct {
	Type      bones.EventType
	Name      string
	Animation string
	Time      float64
	Armature  string
	Bone      string
	Data      any

	// Display is the display that dispatched the event. It may be disposed
	// by the time the event is processed.
	Display *bones.ArmatureDisplay
	// Entity is the entity attached to Display, or donburi.Null.
	Entity donburi.Entity
}

// ArmatureEventType is the Donburi event type for armature events.
var ArmatureEventType = events.NewEventType[ArmatureEvent]()

// Armature links an entity to an armature display.
type Armature struct {
	Display *bones.ArmatureDisplay
}

// ArmatureComponent is set on entities created by DonburiSink.Attach.
var ArmatureComponent = donburi.NewComponentType[Armature]()

// DonburiSink publishes armature events to a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[*bones.ArmatureDisplay]donburi.Entity
}

var _ bones.EventSink = (*DonburiSink)(nil)

// NewDonburiSink creates a sink for world. Install it with
// Factory.SetEventSink; events are queued until ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[*bones.ArmatureDisplay]donburi.Entity)}
}

// Attach creates an entity for d, or returns the existing one.
func (s *DonburiSink) Attach(d *bones.ArmatureDisplay) donburi.Entity {
	if e, ok := s.entities[d]; ok && s.world.Valid(e) {
		return e
	}
	e := s.world.Create(ArmatureComponent)
	ArmatureComponent.SetValue(s.world.Entry(e), Armature{Display: d})
	s.entities[d] = e
	return e
}

// Detach removes the entity attached to d. Unknown displays are ignored.
func (s *DonburiSink) Detach(d *bones.ArmatureDisplay) {
	e, ok := s.entities[d]
	if !ok {
		return
	}
	delete(s.entities, d)
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// Entity returns the entity attached to d.
func (s *DonburiSink) Entity(d *bones.ArmatureDisplay) (donburi.Entity, bool) {
	e, ok := s.entities[d]
	return e, ok
}

// HandleArmatureEvent implements bones.EventSink.
func (s *DonburiSink) HandleArmatureEvent(d *bones.ArmatureDisplay, e *bones.EventObject) {
	ev := ArmatureEvent{
		Type:      e.Type,
		Name:      e.Name,
		Animation: e.Animation,
		Time:      e.Time,
		Data:      e.Data,
		Display:   d,
		Entity:    donburi.Null,
	}
	if e.Armature != nil {
		ev.Armature = e.Armature.Name()
	}
	if e.Bone != nil {
		ev.Bone = e.Bone.Name()
	}
	if ent, ok := s.entities[d]; ok {
		ev.Entity = ent
	}
	ArmatureEventType.Publish(s.world, ev)
}
