package iobuf

import (
	"github.com/momentics/iochain/arena"
	"github.com/momentics/iochain/internal/debugcheck"
	"github.com/momentics/iochain/internal/sizeclass"
)

// Advance shifts the data window forward by n bytes, reusing tailroom
// as headroom would be used (spec §4.4). If the window holds valid
// bytes it is moved with copy (memmove-equivalent, overlap-safe). The
// caller must have ensured exclusive access to the arena: this is a
// potential write and is not permitted on shared arenas.
func (d *Descriptor) Advance(n int) {
	debugcheck.Require(n <= d.Tailroom(), "Advance(%d) exceeds tailroom %d", n, d.Tailroom())
	if d.length > 0 {
		buf := d.arena.Bytes()
		copy(buf[d.data+n:d.data+n+d.length], buf[d.data:d.data+d.length])
	}
	d.data += n
}

// Retreat shifts the data window backward by n bytes, the symmetric
// counterpart of Advance (spec §4.4).
func (d *Descriptor) Retreat(n int) {
	debugcheck.Require(n <= d.Headroom(), "Retreat(%d) exceeds headroom %d", n, d.Headroom())
	if d.length > 0 {
		buf := d.arena.Bytes()
		copy(buf[d.data-n:d.data-n+d.length], buf[d.data:d.data+d.length])
	}
	d.data -= n
}

// Prepend extends the valid window backward by n bytes without moving
// any bytes; the caller must populate the newly included region
// through WritableData (spec §4.4).
func (d *Descriptor) Prepend(n int) {
	debugcheck.Require(n <= d.Headroom(), "Prepend(%d) exceeds headroom %d", n, d.Headroom())
	d.data -= n
	d.length += n
}

// Append extends the valid window forward by n bytes without moving any
// bytes; the caller must populate the newly included region.
func (d *Descriptor) Append(n int) {
	debugcheck.Require(n <= d.Tailroom(), "Append(%d) exceeds tailroom %d", n, d.Tailroom())
	d.length += n
}

// TrimStart shrinks the valid window by n bytes from the front.
func (d *Descriptor) TrimStart(n int) {
	debugcheck.Require(n <= d.length, "TrimStart(%d) exceeds length %d", n, d.length)
	d.data += n
	d.length -= n
}

// TrimEnd shrinks the valid window by n bytes from the back.
func (d *Descriptor) TrimEnd(n int) {
	debugcheck.Require(n <= d.length, "TrimEnd(%d) exceeds length %d", n, d.length)
	d.length -= n
}

// Clear resets the descriptor to point at the start of its arena with
// zero valid length. Postcondition: Headroom()==0, Length()==0,
// Tailroom()==Capacity().
func (d *Descriptor) Clear() {
	d.data = 0
	d.length = 0
}

// Reserve guarantees Headroom() >= minHead and Tailroom() >= minTail
// without changing the valid byte content, reallocating the arena if
// necessary (spec §4.4). On allocation failure the descriptor is left
// unchanged (strong exception safety).
func (d *Descriptor) Reserve(minHead, minTail int) error {
	if d.Headroom() >= minHead && d.Tailroom() >= minTail {
		return nil
	}
	if d.length == 0 && d.Headroom()+d.Tailroom() >= minHead+minTail {
		d.data = minHead
		return nil
	}
	return d.reserveSlow(minHead, minTail)
}

func (d *Descriptor) reserveSlow(minHead, minTail int) error {
	total := d.arena.Cap()
	needed := minHead + d.length + minTail
	if !d.IsSharedOne() && total >= needed {
		// Unique owner with enough total room: memmove in place.
		buf := d.arena.Bytes()
		copy(buf[minHead:minHead+d.length], buf[d.data:d.data+d.length])
		d.data = minHead
		return nil
	}
	newArena, err := arena.Allocate(sizeclass.GoodSize(needed), -1)
	if err != nil {
		return err
	}
	copy(newArena.Bytes()[minHead:minHead+d.length], d.Data())
	d.releaseArenaRef()
	d.arena = newArena
	d.data = minHead
	d.flags &^= flagMaybeShared
	return nil
}
