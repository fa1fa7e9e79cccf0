package iobuf

import (
	"math"

	"github.com/momentics/iochain/arena"
	"github.com/momentics/iochain/errs"
	"github.com/momentics/iochain/internal/sizeclass"
)

// maxCapacity bounds any single arena to what fits in a uint32 length
// field, matching the C original's use of uint32_t for capacity and
// length (spec §7: "a combined length that does not fit the arena's
// size bound is an overflow error, not a silent truncation").
const maxCapacity = math.MaxUint32

// Coalesce merges every element of the chain into a single contiguous
// descriptor, returning the (possibly reallocated) head (spec §4.6
// "coalesce"). A single-element chain is returned unchanged. The
// head's own headroom and the chain tail's own tailroom are preserved
// in the result (IOBuf.h's coalesceAndReallocate(newLength, end), which
// always sizes the new arena as headroom() + newLength +
// end->prev_->tailroom()).
func (d *Descriptor) Coalesce() (*Descriptor, error) {
	if !d.IsChained() {
		return d, nil
	}

	total := d.ComputeChainDataLength()
	if total > maxCapacity {
		return nil, errs.Overflow("Coalesce", uint64(total))
	}

	newHeadroom := d.Headroom()
	lastTailroom := d.prev.Tailroom()

	if !d.IsShared() && int64(d.Capacity()) >= int64(newHeadroom)+total+int64(lastTailroom) {
		return d.coalesceSlow(int(total))
	}
	return d.coalesceAndReallocate(newHeadroom, int(total), lastTailroom)
}

// coalesceSlow merges the chain in place, writing each subsequent
// element's bytes directly after the head's own data without moving
// the head's existing bytes. Only valid when the head's own arena
// already has enough room from its current data position onward to
// hold the whole chain and is not shared with another descriptor.
func (d *Descriptor) coalesceSlow(total int) (*Descriptor, error) {
	buf := d.arena.Bytes()
	offset := d.data + d.length
	cur := d.next
	for cur != d {
		next := cur.next
		copy(buf[offset:offset+cur.length], cur.Data())
		offset += cur.length
		cur.Unlink()
		cur.releaseSelf()
		cur = next
	}
	d.length = total
	return d, nil
}

// coalesceAndReallocate merges the chain's data into a freshly
// allocated arena sized to preserve newHeadroom bytes before the data
// and lastTailroom bytes after it, used when the head cannot hold the
// whole chain in place (too small, or shared with another descriptor).
// Every other chain member is released and unlinked; the head ends up
// a singleton again (spec §4.6).
func (d *Descriptor) coalesceAndReallocate(newHeadroom, total, lastTailroom int) (*Descriptor, error) {
	size := newHeadroom + total + lastTailroom
	newArena, err := arena.Allocate(sizeclass.GoodSize(size), -1)
	if err != nil {
		return nil, err
	}

	buf := newArena.Bytes()
	offset := newHeadroom
	copy(buf[offset:offset+d.length], d.Data())
	offset += d.length

	cur := d.next
	for cur != d {
		next := cur.next
		copy(buf[offset:offset+cur.length], cur.Data())
		offset += cur.length
		cur.Unlink()
		cur.releaseSelf()
		cur = next
	}

	d.releaseArenaRef()
	d.arena = newArena
	d.data = newHeadroom
	d.length = total
	d.flags &^= flagMaybeShared
	return d, nil
}

// Gather ensures the first length bytes of the chain are contiguous in
// a single descriptor, coalescing only as many leading elements as
// needed rather than the whole chain (spec §4.6 "gather"). If the
// chain's total data length is less than length, the whole chain is
// coalesced. Returns the (possibly reallocated) head.
func (d *Descriptor) Gather(length int) (*Descriptor, error) {
	if int64(length) <= int64(d.length) {
		return d, nil
	}
	total := d.ComputeChainDataLength()
	if int64(length) >= total {
		return d.Coalesce()
	}
	return d.gatherPartial(length)
}

// gatherPartial coalesces only enough leading chain elements to cover
// length bytes, preserving the head's own headroom, leaving the
// remainder of the chain linked after the resulting head.
func (d *Descriptor) gatherPartial(length int) (*Descriptor, error) {
	newHeadroom := d.Headroom()
	newArena, err := arena.Allocate(sizeclass.GoodSize(newHeadroom+length), -1)
	if err != nil {
		return nil, err
	}
	buf := newArena.Bytes()

	offset := newHeadroom
	copy(buf[offset:offset+d.length], d.Data())
	offset += d.length

	cur := d.next
	for offset-newHeadroom < length {
		next := cur.next
		n := cur.length
		if remaining := length - (offset - newHeadroom); n > remaining {
			n = remaining
		}
		copy(buf[offset:offset+n], cur.Data()[:n])
		offset += n
		if n == cur.length {
			cur.Unlink()
			cur.releaseSelf()
		} else {
			cur.TrimStart(n)
			break
		}
		cur = next
	}

	d.releaseArenaRef()
	d.arena = newArena
	d.data = newHeadroom
	d.length = length
	d.flags &^= flagMaybeShared
	return d, nil
}
