package bones

import (
	"fmt"
	"math"

	"github.com/phanxgames/bones/scene"
)

type displayState uint8

const (
	displayUnattached displayState = iota
	displayLive
	displayDisposed
)

// debugZIndex keeps the debug overlay above every slot.
const debugZIndex = math.MaxInt32

// ArmatureDisplay is the scene node that owns one armature. Slots render as
// its children; the optional debug overlay is drawn on top.
type ArmatureDisplay struct {
	*scene.Node

	factory  *Factory
	state    displayState
	armature *Armature
	events   eventRegistry

	debug      *scene.Node
	debugBones *scene.Node
	debugSlots map[string]*scene.Node
}

func newArmatureDisplay(f *Factory, name string) *ArmatureDisplay {
	d := &ArmatureDisplay{Node: scene.NewContainer(name), factory: f}
	d.Node.UserData = d
	return d
}

// attach moves an unattached display to Live.
func (d *ArmatureDisplay) attach(a *Armature) {
	if d.state != displayUnattached {
		panic("bones: armature display is already attached")
	}
	d.armature = a
	d.state = displayLive
}

// Armature returns the owned armature, or nil when unattached or disposed.
func (d *ArmatureDisplay) Armature() *Armature {
	return d.armature
}

// Animation returns the armature's playback controller. Panics when the
// display is disposed or has no armature.
func (d *ArmatureDisplay) Animation() *Animation {
	if d.state != displayLive || d.armature == nil {
		panic(fmt.Sprintf("bones: Animation on %s armature display %q", d.stateName(), d.Name))
	}
	return d.armature.animation
}

// IsDisposed reports whether Dispose has been called.
func (d *ArmatureDisplay) IsDisposed() bool {
	return d.state == displayDisposed
}

func (d *ArmatureDisplay) stateName() string {
	switch d.state {
	case displayUnattached:
		return "unattached"
	case displayDisposed:
		return "disposed"
	default:
		return "live"
	}
}

// AdvanceTimeBySelf attaches the armature to the factory's clock, or detaches it.
func (d *ArmatureDisplay) AdvanceTimeBySelf(on bool) {
	d.mustBeLive("AdvanceTimeBySelf")
	if on {
		d.factory.clock.Add(d.armature)
	} else {
		d.armature.SetClock(nil)
	}
}

// Dispose tears down the armature, the debug overlay and the node, and
// detaches from the scene graph. Safe to call more than once.
func (d *ArmatureDisplay) Dispose() {
	if d.state == displayDisposed {
		return
	}
	d.state = displayDisposed
	a := d.armature
	d.armature = nil
	if a != nil {
		a.dispose()
	}
	if d.debug != nil {
		d.debug.Dispose()
		d.debug = nil
		d.debugBones = nil
		d.debugSlots = nil
	}
	d.events.clear()
	d.Node.Dispose()
}

func (d *ArmatureDisplay) mustBeLive(op string) {
	if d.state != displayLive || d.armature == nil {
		panic(fmt.Sprintf("bones: %s on %s armature display %q", op, d.stateName(), d.Name))
	}
}

// --- Events ---

// HasEvent reports whether any listener is registered for t.
func (d *ArmatureDisplay) HasEvent(t EventType) bool {
	return d.events.has(t)
}

// AddEvent registers fn for t. Panics on a disposed display.
func (d *ArmatureDisplay) AddEvent(t EventType, fn Listener) ListenerID {
	if d.state == displayDisposed {
		panic(fmt.Sprintf("bones: AddEvent on disposed armature display %q", d.Name))
	}
	if fn == nil {
		panic("bones: nil event listener")
	}
	return d.events.add(t, fn)
}

// RemoveEvent unregisters a listener. Unknown ids are ignored.
func (d *ArmatureDisplay) RemoveEvent(t EventType, id ListenerID) {
	d.events.remove(t, id)
}

// DispatchEvent delivers e to the listeners for t and then to the factory's
// event sink. Disposed displays drop events.
func (d *ArmatureDisplay) DispatchEvent(t EventType, e *EventObject) {
	if d.state == displayDisposed {
		return
	}
	e.Type = t
	d.events.dispatch(e)
	if d.factory != nil && d.factory.sink != nil && d.state != displayDisposed {
		d.factory.sink.HandleArmatureEvent(d, e)
	}
}

// --- Debug draw ---

// DebugDraw shows or hides the debug overlay. Enabling rebuilds the overlay
// from the current bone and slot state; call it every frame for live
// visuals. Disabling detaches the overlay but keeps it for reuse.
func (d *ArmatureDisplay) DebugDraw(enabled bool) {
	if d.state == displayDisposed {
		panic(fmt.Sprintf("bones: DebugDraw on disposed armature display %q", d.Name))
	}
	if !enabled {
		if d.debug != nil {
			d.debug.RemoveFromParent()
		}
		return
	}

	if d.debug == nil {
		d.debug = scene.NewContainer("debug")
		d.debugBones = scene.NewGraphics("bones")
		d.debug.AddChild(d.debugBones)
		d.debugSlots = make(map[string]*scene.Node)
	}
	if d.debug.Parent != d.Node {
		d.AddChild(d.debug)
		d.debug.SetZIndex(debugZIndex)
	}
	if d.armature == nil {
		return
	}

	style := DefaultDebugStyle()
	if d.factory != nil {
		style = d.factory.style
	}
	d.drawBones(style)
	d.drawSlots(style)
}

func (d *ArmatureDisplay) drawBones(style DebugStyle) {
	g := d.debugBones.Graphics
	g.Clear()
	for _, b := range d.armature.bones {
		seg := BoneSegment(b.global, b.Length())
		c := BoneStyle(b.IsIK(), style)
		g.LineStyle(style.LineWidth, c)
		g.MoveTo(seg.Start.X, seg.Start.Y)
		g.LineTo(seg.End.X, seg.End.Y)
		g.LineStyle(0, c)
		g.BeginFill(c)
		g.DrawCircle(seg.Start.X, seg.Start.Y, style.JointRadius)
		g.EndFill()
	}
}

func (d *ArmatureDisplay) drawSlots(style DebugStyle) {
	for _, s := range d.armature.slots {
		name := s.Name()
		child := d.debugSlots[name]
		bb := s.BoundingBoxData()
		if bb == nil {
			if child != nil {
				child.Dispose()
				delete(d.debugSlots, name)
			}
			continue
		}
		if child == nil {
			child = scene.NewGraphics(name)
			d.debug.AddChild(child)
			d.debugSlots[name] = child
		}
		px, py := s.Pivot()
		child.SetLocalMatrix(SlotDebugMatrix(s.global, px, py))
		child.Graphics.Clear()
		LocalShape(bb).draw(child.Graphics, style)
	}
}

// DebugOverlay returns the overlay node, or nil before the first DebugDraw(true).
func (d *ArmatureDisplay) DebugOverlay() *scene.Node {
	return d.debug
}
