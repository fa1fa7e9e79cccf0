package iobuf

import (
	"sync/atomic"

	"github.com/momentics/iochain/arena"
)

// combinedHeader co-locates a Descriptor with the Arena metadata for its
// backing buffer in a single Go allocation (spec §4.9 combined
// allocation: "one allocation serves both the descriptor and its
// storage"). Go cannot place an arbitrary-length byte array in the same
// allocation as a fixed struct the way the C original does with a
// single malloc, so combinedHeader instead combines the two
// *metadata* structs; the payload itself is a second, nested
// allocation sized by sizeclass.GoodSize. This divergence is recorded
// as an Open Question resolution in the design ledger.
//
// The release protocol needs two independent "done" signals because
// either side can finish last: the descriptor side finishes when
// releaseDescriptor is called (chain teardown reaches this node), the
// arena side finishes when its refcount reaches zero (every clone has
// released). Whichever happens second is the one that actually matters
// here, since Go's GC reclaims the struct regardless; the flags exist
// so a future non-GC'd variant (e.g. backed by a pool) would know when
// it's safe to recycle the header.
type combinedHeader struct {
	desc Descriptor
	a    arena.Arena

	descAlive  atomic.Bool
	arenaAlive atomic.Bool
}

// newCombinedHeader allocates and wires a combinedHeader for a buffer of
// the given capacity, initializing both the embedded Arena and the
// embedded Descriptor to point at it.
func newCombinedHeader(buf []byte) *combinedHeader {
	ch := &combinedHeader{}
	ch.descAlive.Store(true)
	ch.arenaAlive.Store(true)

	arena.InitCombined(&ch.a, buf, ch.arenaFreeFn, nil)

	ch.desc.arena = &ch.a
	ch.desc.combined = ch
	ch.desc.next, ch.desc.prev = &ch.desc, &ch.desc
	return ch
}

// arenaFreeFn is passed to arena.InitCombined as the free callback. It
// never frees anything itself (the combined buffer is owned by the Go
// allocator, not a foreign allocator); it only records that the arena
// side of the protocol has finished.
func (ch *combinedHeader) arenaFreeFn(_ []byte, _ any) {
	ch.arenaAlive.Store(false)
}

// releaseDescriptor records that the descriptor side of the protocol
// has finished and drops the header's own reference on its arena. This
// is what Descriptor.releaseSelf calls instead of the ordinary
// arena-release path when a descriptor is combined-allocated.
func (ch *combinedHeader) releaseDescriptor() {
	ch.descAlive.Store(false)
	ch.a.Release()
}
