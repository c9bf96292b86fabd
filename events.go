package bones

// EventType names an armature or animation event.
type EventType string

const (
	EventStart          EventType = "start"
	EventLoopComplete   EventType = "loopComplete"
	EventComplete       EventType = "complete"
	EventFadeIn         EventType = "fadeIn"
	EventFadeInComplete EventType = "fadeInComplete"
	EventFrame          EventType = "frameEvent"
	EventSound          EventType = "soundEvent"
)

// EventObject is the payload passed to listeners. Objects are pooled and
// recycled after dispatch; listeners must copy anything they keep.
type EventObject struct {
	Type      EventType
	Name      string // frame and sound events
	Animation string
	Time      float64
	Armature  *Armature
	Bone      *Bone
	Data      any
}

// Reset clears e for reuse.
func (e *EventObject) Reset() {
	*e = EventObject{}
}

// Listener handles a dispatched event.
type Listener func(e *EventObject)

// ListenerID identifies a registered listener for removal.
type ListenerID uint32

// EventSink receives every event dispatched by a factory's displays, after
// the display's own listeners.
type EventSink interface {
	HandleArmatureEvent(d *ArmatureDisplay, e *EventObject)
}

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// eventRegistry stores listeners per event type in registration order.
type eventRegistry struct {
	listeners map[EventType][]listenerEntry
	nextID    ListenerID
}

func (r *eventRegistry) has(t EventType) bool {
	return len(r.listeners[t]) > 0
}

func (r *eventRegistry) add(t EventType, fn Listener) ListenerID {
	if r.listeners == nil {
		r.listeners = make(map[EventType][]listenerEntry)
	}
	r.nextID++
	r.listeners[t] = append(r.listeners[t], listenerEntry{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *eventRegistry) remove(t EventType, id ListenerID) {
	list := r.listeners[t]
	for i, e := range list {
		if e.id == id {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(r.listeners, t)
			} else {
				r.listeners[t] = list
			}
			return
		}
	}
}

func (r *eventRegistry) contains(t EventType, id ListenerID) bool {
	for _, e := range r.listeners[t] {
		if e.id == id {
			return true
		}
	}
	return false
}

// dispatch calls every listener for e.Type over a snapshot. Listeners removed
// during dispatch are skipped.
func (r *eventRegistry) dispatch(e *EventObject) {
	list := r.listeners[e.Type]
	if len(list) == 0 {
		return
	}
	snapshot := append([]listenerEntry(nil), list...)
	for _, l := range snapshot {
		if !r.contains(e.Type, l.id) {
			continue
		}
		l.fn(e)
	}
}

func (r *eventRegistry) clear() {
	r.listeners = nil
}
