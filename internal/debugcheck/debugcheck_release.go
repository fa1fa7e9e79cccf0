//go:build !iochain_debug

package debugcheck

// Require is a no-op in release builds. The caller-supplied condition is
// never evaluated for side effects by this package; callers that need the
// condition itself to stay cheap should guard the call with Enabled.
func Require(cond bool, format string, args ...any) {}

// Enabled reports whether precondition checks are compiled in.
const Enabled = false
