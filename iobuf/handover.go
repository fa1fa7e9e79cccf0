package iobuf

// MoveToBytes destructively converts the chain rooted at d into a
// single caller-owned []byte (spec §4.10 "string-type handover").
// Preconditions: the chain must be coalescable into one arena; this
// method coalesces first if the chain isn't already contiguous, per
// the contract.
//
// Go has no malloc'd-block donation analogous to std::string's "acquire
// foreign buffer" constructor: every arena's storage is Go-heap or
// platform-mapped memory whose free path (Arena.Release) the runtime
// or OS still expects to see run. MoveToBytes therefore always copies
// the coalesced bytes into a fresh, GC-owned []byte and releases the
// source arena immediately, rather than transferring the source
// storage directly — the caller-visible contract (one owned, flat
// byte slice; source chain left empty) is identical either way.
//
// Postcondition: the chain is left empty (d singleton, zero length)
// and every arena it pointed at, including the coalesced one, has
// been released.
func (d *Descriptor) MoveToBytes() ([]byte, error) {
	head, err := d.Coalesce()
	if err != nil {
		return nil, err
	}

	out := make([]byte, head.length)
	copy(out, head.Data())

	head.releaseArenaRef()
	head.arena = nil
	head.data = 0
	head.length = 0
	return out, nil
}
