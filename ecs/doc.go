// Package ecs bridges bones armature events into a [Donburi] world.
//
// [NewDonburiSink] returns a [bones.EventSink] that publishes every event a
// factory dispatches as an [ArmatureEvent]. Subscribe to [ArmatureEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	factory.SetEventSink(sink)
//	entity := sink.Attach(display)
//
// Attached displays get an entity carrying [ArmatureComponent], and their
// events name that entity.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
