// Package bones runs skeletal armatures on top of the [scene] graph.
//
// A [Factory] holds registered skeleton bundles and texture atlases, builds
// [Armature] instances from them, and owns the [Clock] that advances every
// armature once per host tick. Each armature is shown through an
// [ArmatureDisplay], a scene container node whose children are the armature's
// slots.
//
// # Quick start
//
//	s := scene.NewScene()
//	f := bones.NewFactory(s.Ticker(), bones.DefaultConfig())
//	f.AddDragonBonesData(data, "hero")
//	f.BindTextureAtlas(atlasData, page, "hero")
//
//	d, err := f.BuildArmatureDisplay("hero", "", "", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	s.Root().AddChild(d.Node)
//	d.Animation().Play("walk", 0)
//
// The factory's clock is registered on the scene ticker, so [scene.Scene.Update]
// advances every armature built with BuildArmatureDisplay. Armatures built
// with [Factory.BuildArmature] are advanced by hand with [Armature.AdvanceTime].
//
// # Events
//
// Listeners added with [ArmatureDisplay.AddEvent] receive animation events
// after the armature has finished updating. Sound events go to
// [Factory.SoundEventManager] instead of the armature's display. A
// [Factory.SetEventSink] sink sees every event, which is how the ecs module
// publishes them into a Donburi world.
//
// # Debug draw
//
// [ArmatureDisplay.DebugDraw] rebuilds an overlay of bone segments and slot
// bounding boxes from the current pose. Colors come from [Config.Debug] and
// can be hot-reloaded with [WatchConfig].
//
// Like the scene graph, everything here is single-threaded.
package bones
