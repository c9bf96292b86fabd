package bones

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bones/scene"
	"github.com/phanxgames/bones/skeleton"
)

// Factory builds armatures from registered skeletal data and atlases, and
// owns the clock that advances them. Create one per process with NewFactory
// (or InitDefault) and keep it for the lifetime of the game.
type Factory struct {
	ticks  scene.TickSource
	tickID scene.TickerID
	clock  *Clock

	cfg   Config
	style DebugStyle

	bundles     map[string]*skeleton.DragonBonesData
	bundleNames []string
	atlases     map[string][]*TextureAtlas
	atlasNames  []string

	armatures *Pool[*Armature]
	bindings  *Pool[*TextureAtlas]
	events    *Pool[*EventObject]

	soundManager *ArmatureDisplay
	sink         EventSink

	// debug enables diagnostics and placeholders for this factory only.
	debug bool
}

// NewFactory creates a factory and registers its clock on ticks. A nil ticks
// leaves the clock to be advanced manually.
func NewFactory(ticks scene.TickSource, cfg Config) *Factory {
	f := &Factory{
		ticks:     ticks,
		clock:     NewClock(),
		bundles:   make(map[string]*skeleton.DragonBonesData),
		atlases:   make(map[string][]*TextureAtlas),
		armatures: NewPool(func() *Armature { return &Armature{disposed: true} }, cfg.Pool.MaxArmatures),
		bindings:  NewPool(func() *TextureAtlas { return &TextureAtlas{} }, cfg.Pool.MaxAtlases),
		events:    NewPool(func() *EventObject { return &EventObject{} }, cfg.Pool.MaxEvents),
	}
	f.soundManager = newArmatureDisplay(f, "soundEventManager")
	f.ApplyConfig(cfg)
	if ticks != nil {
		f.tickID = ticks.Add(func(dt float64) {
			f.clock.AdvanceTime(dt)
		})
	}
	return f
}

// Close unregisters the clock from the host ticker.
func (f *Factory) Close() {
	if f.ticks != nil {
		f.ticks.Remove(f.tickID)
		f.ticks = nil
	}
}

// Clock returns the clock driving armatures built with BuildArmatureDisplay.
func (f *Factory) Clock() *Clock { return f.clock }

// Config returns the configuration last applied.
func (f *Factory) Config() Config { return f.cfg }

// ApplyConfig applies clock, debug and pool settings at runtime. Invalid
// debug colors keep the previous style. Debug settings affect this factory
// and its clock; SetDebugMode still enables diagnostics for every factory.
func (f *Factory) ApplyConfig(cfg Config) {
	f.cfg = cfg
	f.clock.SetDeltaPolicy(cfg.Clock.DeltaPolicy)
	f.clock.TimeScale = cfg.Clock.TimeScale
	f.debug = cfg.Debug.Enabled
	f.clock.debug = cfg.Debug.Enabled
	if style, err := cfg.Debug.Style(); err != nil {
		f.debugf("config: %v", err)
		if f.style == (DebugStyle{}) {
			f.style = DefaultDebugStyle()
		}
	} else {
		f.style = style
	}
	f.armatures.SetMaxCount(cfg.Pool.MaxArmatures)
	f.bindings.SetMaxCount(cfg.Pool.MaxAtlases)
	f.events.SetMaxCount(cfg.Pool.MaxEvents)
}

// SoundEventManager returns the display that receives every sound event.
func (f *Factory) SoundEventManager() *ArmatureDisplay { return f.soundManager }

// SetEventSink forwards every dispatched event to sink. Nil disables forwarding.
func (f *Factory) SetEventSink(sink EventSink) { f.sink = sink }

// PoolStats reports borrowed armature, atlas and event records.
func (f *Factory) PoolStats() (armatures, atlases, events int) {
	return f.armatures.Borrowed(), f.bindings.Borrowed(), f.events.Borrowed()
}

// --- Data registry ---

// AddDragonBonesData registers a bundle. An empty name uses d.Name.
func (f *Factory) AddDragonBonesData(d *skeleton.DragonBonesData, name string) {
	if name == "" {
		name = d.Name
	}
	if _, ok := f.bundles[name]; !ok {
		f.bundleNames = append(f.bundleNames, name)
	} else {
		f.debugf("replacing bundle %q", name)
	}
	f.bundles[name] = d
}

// DragonBonesData returns the bundle registered under name, or nil.
func (f *Factory) DragonBonesData(name string) *skeleton.DragonBonesData {
	return f.bundles[name]
}

// RemoveDragonBonesData unregisters a bundle. Live armatures keep their data.
func (f *Factory) RemoveDragonBonesData(name string) {
	if _, ok := f.bundles[name]; !ok {
		return
	}
	delete(f.bundles, name)
	f.bundleNames = removeName(f.bundleNames, name)
}

// BindTextureAtlas attaches base to the binding for data under name, or
// borrows a new binding if none exists. An empty name uses data.Name.
func (f *Factory) BindTextureAtlas(data *skeleton.TextureAtlasData, base *ebiten.Image, name string) *TextureAtlas {
	if name == "" {
		name = data.Name
	}
	for _, t := range f.atlases[name] {
		if t.data == data {
			if base != nil {
				t.setBase(base)
			}
			return t
		}
	}
	t := f.bindings.Borrow()
	t.name = name
	t.data = data
	t.base = base
	if _, ok := f.atlases[name]; !ok {
		f.atlasNames = append(f.atlasNames, name)
	}
	f.atlases[name] = append(f.atlases[name], t)
	return t
}

// TextureAtlas returns the first binding registered under name, or nil.
func (f *Factory) TextureAtlas(name string) *TextureAtlas {
	if list := f.atlases[name]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// RemoveTextureAtlas drops every binding under name and returns them to the pool.
func (f *Factory) RemoveTextureAtlas(name string) {
	list, ok := f.atlases[name]
	if !ok {
		return
	}
	for _, t := range list {
		f.bindings.Return(t)
	}
	delete(f.atlases, name)
	f.atlasNames = removeName(f.atlasNames, name)
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}

// --- Resolution ---

// resolveArmature finds an armature definition, scoped to bundle when given.
// It returns the name of the bundle the definition was found in.
func (f *Factory) resolveArmature(name, bundle string) (*skeleton.ArmatureData, string, error) {
	if bundle != "" {
		d := f.bundles[bundle]
		if d == nil {
			return nil, "", fmt.Errorf("bones: bundle %q: %w", bundle, ErrNotFound)
		}
		a := d.Armature(name)
		if a == nil {
			return nil, "", fmt.Errorf("bones: armature %q in bundle %q: %w", name, bundle, ErrNotFound)
		}
		return a, bundle, nil
	}

	var found *skeleton.ArmatureData
	var owner string
	for _, bn := range f.bundleNames {
		a := f.bundles[bn].Armature(name)
		if a == nil {
			continue
		}
		if found != nil {
			return nil, "", fmt.Errorf("bones: armature %q in bundles %q and %q: %w", name, owner, bn, ErrAmbiguous)
		}
		found, owner = a, bn
	}
	if found == nil {
		return nil, "", fmt.Errorf("bones: armature %q: %w", name, ErrNotFound)
	}
	return found, owner, nil
}

// resolveTexture finds a texture region, scoped to the atlas name when given.
func (f *Factory) resolveTexture(atlasName, textureName string) (*TextureAtlas, *skeleton.TextureData, error) {
	if atlasName != "" {
		for _, t := range f.atlases[atlasName] {
			if td := t.data.Texture(textureName); td != nil {
				return t, td, nil
			}
		}
		return nil, nil, fmt.Errorf("bones: texture %q in atlas %q: %w", textureName, atlasName, ErrNotFound)
	}

	var foundAtlas *TextureAtlas
	var found *skeleton.TextureData
	for _, an := range f.atlasNames {
		for _, t := range f.atlases[an] {
			td := t.data.Texture(textureName)
			if td == nil {
				continue
			}
			if found != nil && foundAtlas.name != t.name {
				return nil, nil, fmt.Errorf("bones: texture %q in atlases %q and %q: %w", textureName, foundAtlas.name, t.name, ErrAmbiguous)
			}
			if found == nil {
				foundAtlas, found = t, td
			}
		}
	}
	if found == nil {
		return nil, nil, fmt.Errorf("bones: texture %q: %w", textureName, ErrNotFound)
	}
	return foundAtlas, found, nil
}

// sceneTexture returns the cached region texture for td from the binding
// that owns its atlas data.
func (f *Factory) sceneTexture(td *skeleton.TextureData) *scene.Texture {
	if td == nil {
		return nil
	}
	for _, an := range f.atlasNames {
		for _, t := range f.atlases[an] {
			if t.data == td.Parent {
				if tex := t.texture(td); tex != nil {
					return tex
				}
			}
		}
	}
	return nil
}

// TextureDisplay returns a sprite over the named region, or nil when the
// name does not resolve or is ambiguous.
func (f *Factory) TextureDisplay(name, atlas string) *scene.Node {
	t, td, err := f.resolveTexture(atlas, name)
	if err != nil {
		f.debugf("TextureDisplay: %v", err)
		return nil
	}
	tex := t.texture(td)
	if tex == nil {
		return nil
	}
	return scene.NewSprite(name, tex)
}

// --- Building ---

// BuildArmature builds an armature and its display without registering it on
// the clock. Empty bundle searches every bundle; empty skin uses the default
// skin; empty atlas resolves textures by the bundle name.
func (f *Factory) BuildArmature(name, bundle, skin, atlas string) (*Armature, error) {
	data, owner, err := f.resolveArmature(name, bundle)
	if err != nil {
		return nil, err
	}

	a := f.armatures.Borrow()
	display := newArmatureDisplay(f, name)
	a.init(f, data, display)
	display.attach(a)

	for _, bd := range data.Bones {
		var parent *Bone
		if bd.Parent != nil {
			parent = a.boneFor(bd.Parent)
		}
		a.addBone(newBone(a, bd, parent))
	}

	skinData := data.DefaultSkin
	if skin != "" {
		if s := data.Skin(skin); s != nil {
			skinData = s
		} else {
			f.debugf("armature %q: skin %q not found, using default", name, skin)
		}
	}

	for _, sd := range data.Slots {
		bone := a.boneFor(sd.Parent)
		if bone == nil {
			bone = &Bone{armature: a, data: &skeleton.BoneData{}, global: scene.IdentityTransform}
		}
		s := newSlot(a, sd, bone)
		a.slots = append(a.slots, s)
		s.setDisplayList(f.buildSlotDisplays(a, s, skinData.Slot(sd.Name), owner, atlas))
	}

	for _, b := range a.bones {
		b.update()
	}
	for _, s := range a.slots {
		s.updateTransform()
	}
	return a, nil
}

// BuildArmatureDisplay builds an armature and registers it on the clock.
func (f *Factory) BuildArmatureDisplay(name, bundle, skin, atlas string) (*ArmatureDisplay, error) {
	a, err := f.BuildArmature(name, bundle, skin, atlas)
	if err != nil {
		return nil, err
	}
	f.clock.Add(a)
	return a.display, nil
}

// buildSlotDisplays builds the display list for one slot. Entries that fail
// to resolve become placeholders so the rest of the armature still builds.
func (f *Factory) buildSlotDisplays(a *Armature, s *Slot, skinSlot *skeleton.SkinSlotData, bundle, atlas string) []SlotDisplay {
	if skinSlot == nil {
		return nil
	}
	atlasName := atlas
	if atlasName == "" {
		atlasName = bundle
	}

	list := make([]SlotDisplay, len(skinSlot.Displays))
	for i, dd := range skinSlot.Displays {
		if dd == nil {
			continue
		}
		list[i].Data = dd
		switch dd.Type {
		case skeleton.DisplayImage:
			list[i].Kind = DisplayImage
			list[i].Texture = f.displayTexture(dd, atlasName, atlas != "")
		case skeleton.DisplayMesh:
			mesh := dd.Mesh
			if dd.Share != "" {
				shared := skinSlot.Mesh(dd.Share)
				if shared == nil || shared.Mesh == nil {
					f.debugf("slot %q: shared mesh %q not found", s.Name(), dd.Share)
					continue
				}
				mesh = shared.Mesh
			}
			list[i].Kind = DisplayMesh
			list[i].Mesh = mesh
			list[i].Texture = f.displayTexture(dd, atlasName, atlas != "")
		case skeleton.DisplayArmature:
			child, err := f.buildChildArmature(s, dd, bundle, atlas)
			if err != nil {
				f.debugf("slot %q: %v", s.Name(), err)
				continue
			}
			list[i].Kind = DisplayArmature
			list[i].Armature = child
			list[i].armatureGen = child.gen
		}
	}
	return list
}

// displayTexture resolves the texture for an image or mesh entry, caching the
// region on the display data. An explicit atlas override always re-resolves.
func (f *Factory) displayTexture(dd *skeleton.DisplayData, atlasName string, override bool) *scene.Texture {
	if dd.Texture == nil || override {
		_, td, err := f.resolveTexture(atlasName, dd.ResourcePath())
		if err != nil {
			f.debugf("display %q: %v", dd.Name, err)
		} else {
			dd.Texture = td
		}
	}
	tex := f.sceneTexture(dd.Texture)
	if tex == nil && f.debugEnabled() {
		return scene.MagentaTexture()
	}
	return tex
}

// buildChildArmature builds a nested armature for a slot. A child that does
// not inherit its parent's animation gets the slot's or its own actions
// buffered for its first update, or starts its default clip immediately.
func (f *Factory) buildChildArmature(s *Slot, dd *skeleton.DisplayData, bundle, atlas string) (*Armature, error) {
	child, err := f.BuildArmature(dd.ResourcePath(), bundle, "", atlas)
	if err != nil {
		return nil, err
	}
	child.parent = s
	child.inheritAnimation = dd.InheritAnimation
	dd.Armature = child.data

	if !child.inheritAnimation {
		actions := s.data.Actions
		if len(actions) == 0 {
			actions = child.data.Actions
		}
		if len(actions) > 0 {
			for _, act := range actions {
				child.BufferAction(act)
			}
		} else {
			child.animation.Play("", -1)
		}
	}
	return child, nil
}
