package iobuf

// Release tears down this descriptor's entire chain. This mirrors
// folly::IOBuf's destructor semantics (original_source/IOBuf.h): the
// chain head owns every other member transitively, so releasing any
// node that is still linked to others releases the whole chain (spec
// §3 "Chain ownership"). Call Unlink or Pop first if only one node
// should be released.
//
// Go has no destructors; Release is the explicit teardown call callers
// must make once a descriptor (or chain) is no longer needed, standing
// in for folly's ~IOBuf() and the teacher's Buffer.Release() pattern
// (api/buffer.go) alike.
func (d *Descriptor) Release() {
	cur := d.next
	for cur != d {
		next := cur.next
		cur.releaseSelf()
		cur = next
	}
	d.releaseSelf()
}

// releaseSelf drops this node's own claim on its arena, without
// touching chain links or other members. Used both by the public
// Release and internally by coalesce/gather when eliminating nodes.
func (d *Descriptor) releaseSelf() {
	if d.combined != nil {
		d.combined.releaseDescriptor()
		return
	}
	d.releaseArenaRef()
}

// releaseArenaRef drops this descriptor's reference on its arena. Split
// out from releaseSelf so Reserve's slow path can swap to a new arena
// without going through the combined-alloc branch.
func (d *Descriptor) releaseArenaRef() {
	if d.arena != nil {
		d.arena.Release()
	}
}
