package scene

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// SetDebugMode toggles package-wide debug checks: disposed-node access panics,
// tree depth and child count warnings are printed to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return globalDebug
}

// frameStats holds per-frame timing collected when the scene is in debug mode.
type frameStats struct {
	tickTime   time.Duration
	updateTime time.Duration
	drawTime   time.Duration
	drawCalls  int
}

func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scene] tick: %v | transforms: %v | draw: %v | draw calls: %d\n",
		stats.tickTime, stats.updateTime, stats.drawTime, stats.drawCalls)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scene debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[scene] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[scene] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
