//go:build iochain_debug

package debugcheck

import "fmt"

// Require panics with a descriptive message when cond is false. Only
// compiled into binaries built with -tags iochain_debug.
func Require(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("iochain: precondition violated: "+format, args...))
	}
}

// Enabled reports whether precondition checks are compiled in.
const Enabled = true
