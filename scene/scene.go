package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// TickSource is the host's per-frame notification hub as seen by consumers
// that only need to subscribe.
type TickSource interface {
	Add(fn func(dt float64)) TickerID
	Remove(id TickerID)
}

var _ TickSource = (*Ticker)(nil)

// Scene owns the node tree and the per-frame ticker.
type Scene struct {
	root   *Node
	ticker Ticker
	debug  bool

	// ClearColor fills the target before drawing when its alpha is non-zero.
	ClearColor Color

	vbuf      vectorBuffers
	drawCalls int
	stats     frameStats
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root")}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Ticker returns the scene's per-frame notification hub.
func (s *Scene) Ticker() *Ticker {
	return &s.ticker
}

// SetDebugMode enables scene debug logging and the package-wide node checks.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	SetDebugMode(enabled)
}

// Update advances the scene by one fixed step of 1/TPS seconds.
func (s *Scene) Update() {
	s.Advance(1.0 / float64(ebiten.TPS()))
}

// Advance notifies every ticker callback with dt and then refreshes world
// transforms so callers observe this frame's positions.
func (s *Scene) Advance(dt float64) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	s.ticker.Tick(dt)
	if s.debug {
		s.stats.tickTime = time.Since(start)
		start = time.Now()
	}
	s.root.refreshSubtree(IdentityTransform, 1, false)
	if s.debug {
		s.stats.updateTime = time.Since(start)
	}
}

// Draw renders the tree onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawCalls = 0
	s.traverse(screen, s.root, IdentityTransform, 1.0, false)
	if s.debug {
		s.stats.drawTime = time.Since(start)
		s.stats.drawCalls = s.drawCalls
		s.debugLog(s.stats)
	}
}
