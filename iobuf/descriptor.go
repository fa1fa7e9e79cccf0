// Package iobuf
// Author: momentics <momentics@gmail.com>
//
// Descriptor is the zero-copy buffer/chain primitive of spec §3–§4: a
// small record pointing into a shared arena.Arena, with in-place
// reslice operations, chain surgery, and unshare/coalesce/gather. The
// design follows folly::IOBuf (see original_source/src/folly/io/IOBuf.h)
// rewritten in the teacher's idiom: exported methods on a struct,
// factory functions instead of constructors, explicit Release instead
// of a destructor.
package iobuf

import (
	"github.com/momentics/iochain/arena"
)

// flagBits mirrors spec §3's Descriptor.flags bitset.
type flagBits uint32

const (
	flagUserOwned flagBits = 1 << iota
	flagFreeSharedInfo
	flagMaybeShared
)

// Descriptor is a fixed-size record pointing into exactly one
// arena.Arena, recording a sub-range [data, data+length) within it,
// plus forward/back chain links (spec §3).
//
// Descriptor is not safe for concurrent use by multiple goroutines
// (spec §5): callers must serialize access to a single descriptor or
// chain, and must call Unshare before writing through WritableData.
type Descriptor struct {
	next, prev *Descriptor

	arena  *arena.Arena
	data   int // offset into arena.Bytes()
	length int

	flags flagBits

	// combined is non-nil only for descriptors created by NewCombined;
	// it coordinates the two-flag release protocol of spec §4.9.
	combined *combinedHeader
}

func newSingleton(a *arena.Arena, data, length int, flags flagBits) *Descriptor {
	d := &Descriptor{arena: a, data: data, length: length, flags: flags}
	d.next, d.prev = d, d
	return d
}

// Data returns an immutable view of the valid byte range [data, tail).
func (d *Descriptor) Data() []byte {
	return d.arena.Bytes()[d.data : d.data+d.length]
}

// WritableData returns a mutable view of the valid byte range. The
// caller is responsible for having called Unshare first (spec §5).
func (d *Descriptor) WritableData() []byte {
	return d.arena.Bytes()[d.data : d.data+d.length]
}

// Length returns the current valid byte count.
func (d *Descriptor) Length() int { return d.length }

// Headroom returns the number of unused bytes before Data() begins.
func (d *Descriptor) Headroom() int { return d.data }

// Tailroom returns the number of unused bytes after Data() ends.
func (d *Descriptor) Tailroom() int { return d.arena.Cap() - d.data - d.length }

// Capacity returns the arena's total capacity.
func (d *Descriptor) Capacity() int { return d.arena.Cap() }

// Buffer returns the full backing arena buffer, buf() in spec terms.
func (d *Descriptor) Buffer() []byte { return d.arena.Bytes() }

// Next returns the following descriptor in the chain (self if singleton).
func (d *Descriptor) Next() *Descriptor { return d.next }

// Prev returns the preceding descriptor in the chain (self if singleton).
func (d *Descriptor) Prev() *Descriptor { return d.prev }

// Arena exposes the underlying shared arena, primarily for pool/adapter
// code that needs to inspect classification or refcount directly.
func (d *Descriptor) Arena() *arena.Arena { return d.arena }
