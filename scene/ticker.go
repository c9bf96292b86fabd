package scene

// TickerID identifies a callback registered on a Ticker.
type TickerID uint32

type tickEntry struct {
	id TickerID
	fn func(dt float64)
}

// Ticker is the per-frame notification hub. Callbacks run once per Tick in
// registration order. The dt passed through is whatever the caller reports
// and should not be trusted for simulation timing.
//
// Callbacks added during a Tick first run on the next Tick; callbacks removed
// during a Tick do not run for the rest of it.
type Ticker struct {
	entries []tickEntry
	scratch []tickEntry
	nextID  TickerID
}

// Add registers fn and returns an id for Remove.
func (t *Ticker) Add(fn func(dt float64)) TickerID {
	if fn == nil {
		panic("scene: nil tick callback")
	}
	t.nextID++
	t.entries = append(t.entries, tickEntry{id: t.nextID, fn: fn})
	return t.nextID
}

// Remove unregisters the callback with the given id. Unknown ids are ignored.
func (t *Ticker) Remove(id TickerID) {
	for i, e := range t.entries {
		if e.id == id {
			copy(t.entries[i:], t.entries[i+1:])
			t.entries[len(t.entries)-1] = tickEntry{}
			t.entries = t.entries[:len(t.entries)-1]
			return
		}
	}
}

// Len returns the number of registered callbacks.
func (t *Ticker) Len() int {
	return len(t.entries)
}

// Tick invokes every registered callback once.
func (t *Ticker) Tick(dt float64) {
	t.scratch = append(t.scratch[:0], t.entries...)
	for _, e := range t.scratch {
		if !t.has(e.id) {
			continue
		}
		e.fn(dt)
	}
	clear(t.scratch)
}

func (t *Ticker) has(id TickerID) bool {
	for _, e := range t.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
