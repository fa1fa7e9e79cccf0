package iobuf

import (
	"github.com/momentics/iochain/arena"
	"github.com/momentics/iochain/internal/sizeclass"
)

// New allocates a fresh singleton descriptor with at least minCapacity
// bytes of tailroom, zero headroom, and zero valid length (spec §4.2
// "New"). This is the ordinary separate-allocation path: the backing
// buffer, the Arena and the Descriptor are each their own allocation.
func New(minCapacity int) (*Descriptor, error) {
	a, err := arena.Allocate(minCapacity, -1)
	if err != nil {
		return nil, err
	}
	return newSingleton(a, 0, 0, 0), nil
}

// NewOnNode behaves like New but hints the allocator to prefer the given
// NUMA node (spec §4.2, §6 NUMA-aware allocation). node == -1 means "no
// preference", matching New.
func NewOnNode(minCapacity, node int) (*Descriptor, error) {
	a, err := arena.Allocate(minCapacity, node)
	if err != nil {
		return nil, err
	}
	return newSingleton(a, 0, 0, 0), nil
}

// NewCombined allocates a descriptor and its arena metadata together in
// a single Go allocation (spec §4.9 combined allocation), avoiding the
// separate Descriptor allocation New requires. Best suited to small,
// short-lived, non-shared buffers where the extra allocation matters.
func NewCombined(minCapacity int) (*Descriptor, error) {
	size := sizeclass.GoodSize(minCapacity)
	buf := make([]byte, size)
	ch := newCombinedHeader(buf)
	return &ch.desc, nil
}

// NewSeparate is the explicit separate-allocation counterpart to NewCombined,
// spelled out for callers that want to make the choice visible at the
// call site rather than relying on New's default (spec §4.2).
func NewSeparate(minCapacity int) (*Descriptor, error) {
	return New(minCapacity)
}

// NewChain allocates a chain of singleton descriptors whose combined
// capacity is at least total bytes, requesting no more than maxPerNode
// bytes for any single node; each node's capacity is then rounded up
// by New via sizeclass.GoodSize, so it can exceed maxPerNode when
// maxPerNode is not itself a size class (spec §4.2 "NewChain", used when a caller wants to
// bound per-node size for pool-friendliness rather than one large
// contiguous allocation). maxPerNode <= 0 means "no bound", producing a
// single node.
func NewChain(total, maxPerNode int) (*Descriptor, error) {
	if maxPerNode <= 0 || total <= maxPerNode {
		return New(total)
	}

	remaining := total
	nodeCap := maxPerNode
	first, err := New(min(nodeCap, remaining))
	if err != nil {
		return nil, err
	}
	remaining -= nodeCap

	head := first
	for remaining > 0 {
		n, err := New(min(nodeCap, remaining))
		if err != nil {
			head.Release()
			return nil, err
		}
		head.PrependChain(n)
		remaining -= nodeCap
	}
	return first, nil
}

// TakeOwnership wraps a caller-allocated buffer, taking responsibility
// for calling freeFn(buf, userData) exactly once when the last
// reference is released (spec §4.2 "TakeOwnership"). The descriptor's
// initial valid window is [0, length); capacity is len(buf).
//
// freeOnError mirrors the C original's signature: whether freeFn should
// run if construction itself fails. This factory cannot currently fail,
// so the flag has no observable effect yet; it is kept so call sites
// don't need to change if a fallible variant is added later.
func TakeOwnership(buf []byte, length int, freeFn arena.FreeFunc, userData any, freeOnError bool) (*Descriptor, error) {
	_ = freeOnError
	a := arena.NewUserSupplied(buf, freeFn, userData)
	return newSingleton(a, 0, length, 0), nil
}

// TakeOwnershipHandle is the handle-based counterpart to TakeOwnership
// (spec §4.2's "take_ownership(unique_handle<T>, count)" overload, §9
// "Handle-based take-ownership with erased disposer"). Where the C++
// original accepts any owning handle type and erases its disposer
// behind a template, Go has no templates to erase: disposer is already
// the uniform, type-erased callback — the caller captures whatever
// handle-specific teardown it needs (closing a file, returning a slab
// to a foreign pool, decrementing some other library's refcount) as a
// closure before calling this, the same way any Go API accepts a
// disposer function in place of a generic RAII handle.
//
// disposer must be invocable exactly once; this factory guarantees
// that by running it through the same once-only free dispatch every
// other arena kind uses (arena.Arena.Release's freed guard), so a
// caller's disposer never needs its own idempotency guard.
func TakeOwnershipHandle(buf []byte, length int, disposer func()) (*Descriptor, error) {
	a := arena.NewUserSupplied(buf, func(_ []byte, _ any) { disposer() }, nil)
	return newSingleton(a, 0, length, 0), nil
}

// WrapBuffer creates a descriptor over a caller-owned buffer that this
// package never frees (spec §4.2 "WrapBuffer"). The caller must ensure
// buf outlives every descriptor built from it, directly or via Clone.
func WrapBuffer(buf []byte) *Descriptor {
	a := arena.NewUserOwned(buf)
	return newSingleton(a, 0, len(buf), flagUserOwned)
}

// CopyBuffer allocates a fresh descriptor, reserving headroom bytes of
// headroom and at least minTailroom bytes of tailroom beyond the copied
// data, and copies buf into the valid window (spec §4.2 "CopyBuffer").
// Unlike WrapBuffer/TakeOwnership, the result never aliases buf.
func CopyBuffer(buf []byte, headroom, minTailroom int) (*Descriptor, error) {
	d, err := New(headroom + len(buf) + minTailroom)
	if err != nil {
		return nil, err
	}
	d.data = headroom
	d.length = len(buf)
	copy(d.WritableData(), buf)
	return d, nil
}

// MaybeCopyBuffer behaves exactly like CopyBuffer, except that an empty
// buf returns (nil, nil) instead of an empty descriptor (spec §4.2
// "MaybeCopyBuffer" — the "maybe" refers to whether a descriptor is
// produced at all, not to whether the copy happens: it always copies).
func MaybeCopyBuffer(buf []byte, headroom, minTailroom int) (*Descriptor, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	return CopyBuffer(buf, headroom, minTailroom)
}
