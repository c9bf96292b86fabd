package ecs

import (
	"testing"

	"github.com/phanxgames/bones"
	"github.com/phanxgames/bones/skeleton"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func newFactory(t *testing.T) *bones.Factory {
	t.Helper()
	cfg := bones.DefaultConfig()
	cfg.Clock.DeltaPolicy = bones.DeltaHost
	f := bones.NewFactory(nil, cfg)

	data := skeleton.NewDragonBonesData("blob")
	a := skeleton.NewArmatureData("blob")
	a.AddBone(&skeleton.BoneData{Name: "root", Transform: skeleton.Identity()})
	a.AddAnimation(&skeleton.AnimationData{
		Name:     "pulse",
		Duration: 1,
		Events:   []*skeleton.EventFrame{{Time: 0.5, Name: "peak", Bone: "root"}},
	})
	data.AddArmature(a)
	f.AddDragonBonesData(data, "")
	return f
}

func TestDonburiSink_PublishesEvents(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	f := newFactory(t)
	f.SetEventSink(sink)

	d, err := f.BuildArmatureDisplay("blob", "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	var received []ArmatureEvent
	ArmatureEventType.Subscribe(world, func(w donburi.World, e ArmatureEvent) {
		received = append(received, e)
	})

	d.Animation().Play("pulse", 1)
	f.Clock().AdvanceTime(0.75)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	ArmatureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != bones.EventStart || received[0].Animation != "pulse" {
		t.Errorf("event 0: %+v", received[0])
	}
	e1 := received[1]
	if e1.Type != bones.EventFrame || e1.Name != "peak" || e1.Bone != "root" || e1.Armature != "blob" {
		t.Errorf("event 1: %+v", e1)
	}
	if e1.Time != 0.5 {
		t.Errorf("event 1 time = %v, want 0.5", e1.Time)
	}
	if e1.Display != d {
		t.Errorf("event 1 display = %p, want %p", e1.Display, d)
	}
	if e1.Entity != donburi.Null {
		t.Errorf("unattached display has entity %v", e1.Entity)
	}
}

func TestDonburiSink_AttachTagsEvents(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	f := newFactory(t)
	f.SetEventSink(sink)

	d, err := f.BuildArmatureDisplay("blob", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	entity := sink.Attach(d)
	if again := sink.Attach(d); again != entity {
		t.Errorf("Attach twice = %v, want %v", again, entity)
	}
	if got := ArmatureComponent.Get(world.Entry(entity)); got.Display != d {
		t.Errorf("component display = %p, want %p", got.Display, d)
	}

	var got []donburi.Entity
	ArmatureEventType.Subscribe(world, func(w donburi.World, e ArmatureEvent) {
		got = append(got, e.Entity)
	})
	d.Animation().Play("pulse", 0)
	f.Clock().AdvanceTime(0.1)
	events.ProcessAllEvents(world)

	if len(got) != 1 || got[0] != entity {
		t.Errorf("entities = %v, want [%v]", got, entity)
	}

	sink.Detach(d)
	if world.Valid(entity) {
		t.Error("entity still valid after Detach")
	}
	if _, ok := sink.Entity(d); ok {
		t.Error("Entity still reports a detached display")
	}
	sink.Detach(d)
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	var sink bones.EventSink = NewDonburiSink(donburi.NewWorld())
	_ = sink // compile-time interface check
}
