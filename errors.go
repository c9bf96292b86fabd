package bones

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when a named armature, bundle or texture does not resolve.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when an unscoped name matches entries in more than
// one bundle. Name the bundle explicitly to resolve it.
var ErrAmbiguous = errors.New("ambiguous name")

// globalDebug enables diagnostics on stderr. Set through Config.Debug.Enabled
// or SetDebugMode.
var globalDebug bool

// SetDebugMode toggles diagnostic logging for the package.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf writes a diagnostic line to stderr in debug mode.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[bones] "+format+"\n", args...)
}

// debugEnabled reports whether f, or the package, is in debug mode. A nil
// factory follows the package setting.
func (f *Factory) debugEnabled() bool {
	return globalDebug || (f != nil && f.debug)
}

// debugf is the package debugf gated by the factory's own flag.
func (f *Factory) debugf(format string, args ...any) {
	if !f.debugEnabled() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[bones] "+format+"\n", args...)
}

// mustBeLive panics when an operation targets a disposed armature.
func mustBeLive(a *Armature, op string) {
	if a.disposed {
		panic(fmt.Sprintf("bones: %s on disposed armature %q", op, a.name))
	}
}
