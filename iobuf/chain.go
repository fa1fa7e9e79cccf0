package iobuf

import "github.com/momentics/iochain/internal/debugcheck"

// IsChained reports whether this descriptor participates in a chain of
// more than one element (spec §4.5).
func (d *Descriptor) IsChained() bool {
	return d.next != d
}

// CountChainElements walks from self back to self, counting nodes
// (spec §4.5). O(n).
func (d *Descriptor) CountChainElements() int {
	n := 1
	for cur := d.next; cur != d; cur = cur.next {
		n++
	}
	return n
}

// ComputeChainDataLength sums Length() across every element of the
// chain (spec §4.5). O(n).
func (d *Descriptor) ComputeChainDataLength() int64 {
	total := int64(d.length)
	for cur := d.next; cur != d; cur = cur.next {
		total += int64(cur.length)
	}
	return total
}

// Empty reports whether the chain's total data length is zero,
// short-circuiting as soon as a non-empty element is found.
func (d *Descriptor) Empty() bool {
	if d.length != 0 {
		return false
	}
	for cur := d.next; cur != d; cur = cur.next {
		if cur.length != 0 {
			return false
		}
	}
	return true
}

// PrependChain splices otherHead's chain so that it immediately
// precedes self in self's chain (spec §4.5). Ownership of otherHead and
// its followers transfers to self's chain: the caller must not use
// otherHead as an independent chain afterwards.
//
// head.PrependChain(x) is the idiom for "append x at the very end of
// the chain rooted at head", since chains are circular.
func (d *Descriptor) PrependChain(otherHead *Descriptor) {
	if otherHead == nil {
		return
	}
	otherTail := otherHead.prev
	selfPrev := d.prev

	selfPrev.next = otherHead
	otherHead.prev = selfPrev
	otherTail.next = d
	d.prev = otherTail
}

// AppendChain splices otherHead's chain so that it immediately follows
// self (spec §4.5). Equivalent to self.next.PrependChain(otherHead).
func (d *Descriptor) AppendChain(otherHead *Descriptor) {
	d.next.PrependChain(otherHead)
}

// Unlink removes self from its chain and returns self as a freshly
// owned singleton (spec §4.5).
func (d *Descriptor) Unlink() *Descriptor {
	d.next.prev = d.prev
	d.prev.next = d.next
	d.prev = d
	d.next = d
	return d
}

// Pop behaves like Unlink but also returns the node that followed self,
// or nil if self was the sole element (spec §4.5).
func (d *Descriptor) Pop() *Descriptor {
	next := d.next
	d.next.prev = d.prev
	d.prev.next = d.next
	d.prev = d
	d.next = d
	if next == d {
		return nil
	}
	return next
}

// SeparateChain detaches the contiguous subrange [head..tail] from the
// chain, producing a new chain owned by the caller (spec §4.5). head
// and tail must belong to the same chain as the receiver; the receiver
// itself may be head, tail, or any other member (the idiom
// "head.SeparateChain(head, tail)" extracts a chain starting at head
// itself, as in spec §8 scenario 5). Both the remaining chain and the
// returned chain are left well-formed and circular.
func (d *Descriptor) SeparateChain(head, tail *Descriptor) *Descriptor {
	debugcheck.Require(head.prev != tail, "SeparateChain: range spans the entire chain")

	head.prev.next = tail.next
	tail.next.prev = head.prev

	head.prev = tail
	tail.next = head

	return head
}
