package iobuf

import (
	"github.com/momentics/iochain/arena"
	"github.com/momentics/iochain/internal/sizeclass"
)

// UnshareOne ensures this single descriptor's arena is not aliased by
// any other descriptor, copying to a fresh arena if it is (spec §4.6
// "unshare"). A no-op when IsSharedOne() is false. Other members of the
// chain, if any, are left untouched.
func (d *Descriptor) UnshareOne() error {
	if !d.IsSharedOne() {
		return nil
	}
	return d.unshareOneSlow()
}

func (d *Descriptor) unshareOneSlow() error {
	newArena, err := arena.Allocate(sizeclass.GoodSize(d.Capacity()), -1)
	if err != nil {
		return err
	}
	data := d.data
	copy(newArena.Bytes()[data:data+d.length], d.Data())
	d.releaseArenaRef()
	d.arena = newArena
	d.flags &^= flagMaybeShared
	return nil
}

// Unshare ensures the chain rooted at d is not aliased by any other
// descriptor (spec §4.6 "unshare_chained"). A singleton behaves exactly
// like UnshareOne. A chained descriptor with no shared member is a
// no-op. A chained descriptor with any shared member is collapsed into
// a single freshly-allocated arena via the same coalescing-reallocation
// path Coalesce uses (IOBuf.h: "if the chain is shared, it may also
// coalesce the chain... subsequent IOBuf objects in the current chain
// will be automatically deleted"): every other node is released and
// unlinked, d becomes a singleton pointing at the new arena, and d's
// own headroom plus the former tail's tailroom are preserved exactly
// as Coalesce preserves them.
//
// This may fail with errs.ErrOverflow if the chain's combined length
// does not fit the arena's capacity bound, the same as Coalesce.
func (d *Descriptor) Unshare() error {
	if !d.IsChained() {
		return d.UnshareOne()
	}
	if !d.IsShared() {
		return nil
	}
	_, err := d.Coalesce()
	return err
}
