package bones

import "github.com/phanxgames/bones/scene"

// defaultFactory is set once by InitDefault (no sync.Once; single-threaded).
var defaultFactory *Factory

// InitDefault creates the process-wide factory. It may be called once;
// a second call panics.
func InitDefault(ticks scene.TickSource, cfg Config) *Factory {
	if defaultFactory != nil {
		panic("bones: default factory already initialized")
	}
	defaultFactory = NewFactory(ticks, cfg)
	return defaultFactory
}

// Default returns the process-wide factory. Panics before InitDefault.
func Default() *Factory {
	if defaultFactory == nil {
		panic("bones: default factory not initialized; call InitDefault first")
	}
	return defaultFactory
}
