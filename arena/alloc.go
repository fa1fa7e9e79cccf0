package arena

import (
	"github.com/momentics/iochain/errs"
	"github.com/momentics/iochain/internal/sizeclass"
)

// Allocate creates a new KindAllocated arena of at least minCapacity
// bytes, rounded up via sizeclass.GoodSize (spec §4.1 good_size hook),
// on the given NUMA node hint. numaNode < 0 means "no preference".
//
// Returns a structured *errs.Error wrapping errs.ErrOutOfMemory if
// minCapacity is negative or if the platform allocator returns no
// buffer; the stub and fallback paths never return nil (they fall back
// to a plain Go heap slice).
func Allocate(minCapacity, numaNode int) (*Arena, error) {
	if minCapacity < 0 {
		return nil, errs.OutOfMemory("arena.Allocate", minCapacity)
	}
	size := sizeclass.GoodSize(minCapacity)
	buf, freeFn := platformAlloc(size, numaNode)
	if buf == nil {
		return nil, errs.OutOfMemory("arena.Allocate", size)
	}
	a := New(buf)
	a.freeFn = freeFn
	return a, nil
}
