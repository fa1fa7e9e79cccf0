// Package debugcheck
// Author: momentics <momentics@gmail.com>
//
// Precondition assertions for the hot reslice/chain-surgery paths.
// Split by build tag the same way the teacher splits platform code
// (affinity_linux.go / affinity_stub.go): debugcheck_debug.go panics
// with context when built with -tags iochain_debug, debugcheck_release.go
// is a zero-cost no-op otherwise. Spec §7 documents these as
// PreconditionViolation: detected in debug builds, undefined behavior
// in release builds.
package debugcheck
