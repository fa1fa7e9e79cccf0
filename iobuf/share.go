package iobuf

import "github.com/momentics/iochain/arena"

// IsSharedOne reports whether another descriptor is also pointing at
// this descriptor's arena (spec §4.3). KindUserOwned arenas are always
// reported shared, by contract. Otherwise this only checks the arena's
// atomic refcount when flagMaybeShared is set, since that flag is the
// conservative hint that lets the common unique-owner path skip the
// atomic load entirely.
func (d *Descriptor) IsSharedOne() bool {
	if d.arena.Kind() == arena.KindUserOwned {
		return true
	}
	if d.flags&flagMaybeShared == 0 {
		return false
	}
	shared := d.arena.RefCount() > 1
	if !shared {
		d.flags &^= flagMaybeShared
	}
	return shared
}

// IsShared reports whether any descriptor in this chain is shared,
// short-circuiting on the first positive (spec §4.3).
func (d *Descriptor) IsShared() bool {
	cur := d
	for {
		if cur.IsSharedOne() {
			return true
		}
		cur = cur.next
		if cur == d {
			return false
		}
	}
}

// CloneOne produces a new singleton descriptor aliasing this
// descriptor's arena (spec §4.7). Both descriptors are marked
// MaybeShared and the arena refcount is incremented.
func (d *Descriptor) CloneOne() *Descriptor {
	d.arena.Retain()
	d.flags |= flagMaybeShared
	clone := &Descriptor{
		arena:  d.arena,
		data:   d.data,
		length: d.length,
		flags:  d.flags | flagMaybeShared,
	}
	clone.next, clone.prev = clone, clone
	return clone
}

// Clone clones every element of the chain and threads the clones into a
// new chain preserving order (spec §4.7).
func (d *Descriptor) Clone() *Descriptor {
	head := d.CloneOne()
	cur := d.next
	for cur != d {
		head.appendChainTail(cur.CloneOne())
		cur = cur.next
	}
	return head
}

// appendChainTail links a freshly built singleton onto the end of the
// chain rooted at head, used internally by Clone to preserve order
// without going through the ownership-transfer surgery API.
func (d *Descriptor) appendChainTail(node *Descriptor) {
	tail := d.prev
	tail.next = node
	node.prev = tail
	node.next = d
	d.prev = node
}
