// Package pool
// Author: momentics <momentics@gmail.com>
//
// ArenaPool recycles released descriptors by size class, an external
// collaborator atop package iobuf (spec §1 OUT OF SCOPE list: allocator
// tuning / pooling is explicitly not part of the core primitive). It
// follows the teacher's pool/slab_pool.go and pool/bufferpool.go
// layering: a fixed table of size classes, one free list per class,
// NUMA-node awareness threaded through from internal/sizeclass.
package pool

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/iochain/internal/sizeclass"
	"github.com/momentics/iochain/iobuf"
)

// ArenaPool recycles singleton descriptors grouped by size class and
// NUMA node, the way the teacher's pool.BufferPoolManager groups
// pooled buffers by (class, node) in pool/bufferpool.go. Get returns a
// recycled descriptor when one is available for the requested class,
// otherwise allocates a fresh one via iobuf.NewOnNode.
type ArenaPool struct {
	mu    sync.Mutex
	lists map[poolKey]*queue.Queue

	maxNodes  int
	maxPerCls int // cap on how many descriptors one class/node bucket retains
}

type poolKey struct {
	class int
	node  int
}

// NewArenaPool builds a pool that normalizes NUMA hints against
// maxNodes (use 1 for "no NUMA topology") and retains at most
// maxPerClass idle descriptors per (size class, node) bucket, following
// the teacher's bufferpool.go bounded-retention convention to keep a
// bursty workload from pinning unbounded memory in the pool.
func NewArenaPool(maxNodes, maxPerClass int) *ArenaPool {
	if maxPerClass <= 0 {
		maxPerClass = 64
	}
	return &ArenaPool{
		lists:     make(map[poolKey]*queue.Queue),
		maxNodes:  maxNodes,
		maxPerCls: maxPerClass,
	}
}

// Get returns a descriptor with at least minCapacity bytes of tailroom
// on the given NUMA node preference, either recycled or freshly
// allocated. The returned descriptor is Clear()ed (zero headroom, zero
// length) regardless of origin.
func (p *ArenaPool) Get(minCapacity, node int) (*iobuf.Descriptor, error) {
	node = sizeclass.NormalizeNUMANode(node, p.maxNodes)
	class := sizeclass.GoodSize(minCapacity)
	key := poolKey{class: class, node: node}

	p.mu.Lock()
	q, ok := p.lists[key]
	if ok && q.Length() > 0 {
		d := q.Remove().(*iobuf.Descriptor)
		p.mu.Unlock()
		d.Clear()
		return d, nil
	}
	p.mu.Unlock()

	return iobuf.NewOnNode(class, node)
}

// Put returns a singleton, unshared descriptor to its size class's free
// list for reuse. Chained or shared descriptors are rejected (returns
// false) rather than silently unlinking or copying them: the caller
// decides how to handle that case, matching the teacher's
// BufferPoolManager.Put contract of refusing buffers it doesn't
// recognize as poolable.
func (p *ArenaPool) Put(d *iobuf.Descriptor, node int) bool {
	if d.IsChained() || d.IsShared() {
		return false
	}
	node = sizeclass.NormalizeNUMANode(node, p.maxNodes)
	class := d.Capacity()
	key := poolKey{class: class, node: node}

	p.mu.Lock()
	defer p.mu.Unlock()
	q, ok := p.lists[key]
	if !ok {
		q = queue.New()
		p.lists[key] = q
	}
	if q.Length() >= p.maxPerCls {
		return false
	}
	q.Add(d)
	return true
}

// Drain releases every idle descriptor currently held by the pool,
// returning the count released. Intended for shutdown paths, mirroring
// the teacher's BufferPoolManager.Close.
func (p *ArenaPool) Drain() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for key, q := range p.lists {
		for q.Length() > 0 {
			d := q.Remove().(*iobuf.Descriptor)
			d.Release()
			n++
		}
		delete(p.lists, key)
	}
	return n
}
