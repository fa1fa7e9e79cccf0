// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Demonstrates iobuf's zero-copy surface against a concrete wire
// format: a length-prefixed frame, following the teacher's
// protocol/frame.go header-then-payload layout. This package is an
// external collaborator (spec §1 OUT OF SCOPE: "writev gather-write
// adapters beyond producing a scatter/gather descriptor vector" and
// "string-type interop") — it consumes iobuf's public surface, it does
// not extend the core primitive.
package adapters

import (
	"encoding/binary"

	"github.com/momentics/iochain/errs"
	"github.com/momentics/iochain/iobuf"
)

// HeaderSize is the fixed length of a frame header: a big-endian
// uint32 payload length, matching the teacher's frame.go header shape.
const HeaderSize = 4

// FramePayload peels a length-prefixed frame header off d in place,
// without copying: it reads the 4-byte length from d's current data
// window, then trims that header off via TrimStart so the returned
// descriptor's valid window is exactly the payload (spec §4.4 reslice,
// zero-copy by construction).
//
// d must have at least HeaderSize valid bytes. The payload length
// encoded in the header must not exceed d's remaining length after the
// header is trimmed; otherwise FramePayload returns an error rather
// than returning a truncated or out-of-bounds view.
func FramePayload(d *iobuf.Descriptor) (*iobuf.Descriptor, error) {
	if d.Length() < HeaderSize {
		return nil, errs.OutOfMemory("adapters.FramePayload", HeaderSize-d.Length())
	}
	header := d.Data()[:HeaderSize]
	payloadLen := binary.BigEndian.Uint32(header)

	d.TrimStart(HeaderSize)
	if uint64(payloadLen) > uint64(d.Length()) {
		return nil, errs.Overflow("adapters.FramePayload", uint64(payloadLen))
	}
	if int(payloadLen) < d.Length() {
		d.TrimEnd(d.Length() - int(payloadLen))
	}
	return d, nil
}

// WriteFrameHeader writes a length-prefixed header for payload into the
// headroom immediately preceding d's current data window, growing the
// valid window backward via Prepend rather than allocating a separate
// header buffer (spec §4.4 "Prepend": headroom reservation exists
// precisely so headers can be attached without copying the payload).
//
// d must have at least HeaderSize bytes of headroom; call Reserve
// first if it does not.
func WriteFrameHeader(d *iobuf.Descriptor, payloadLen uint32) error {
	if d.Headroom() < HeaderSize {
		return errs.OutOfMemory("adapters.WriteFrameHeader", HeaderSize-d.Headroom())
	}
	d.Prepend(HeaderSize)
	binary.BigEndian.PutUint32(d.WritableData()[:HeaderSize], payloadLen)
	return nil
}

// GatherForWrite produces the scatter/gather vector for an entire
// framed message chain, ready to hand to a transport's vectored write
// call. Producing this vector is in scope (spec §1); issuing the
// syscall is not, so this stops at the []iobuf.IOVec boundary.
func GatherForWrite(head *iobuf.Descriptor) []iobuf.IOVec {
	return head.GatherVector()
}

// DrainToString destructively converts a framed message chain into a
// caller-owned string, demonstrating the string-type handover contract
// (spec §4.10) from a concrete call site: the chain is coalesced as
// needed and left empty afterward.
func DrainToString(head *iobuf.Descriptor) (string, error) {
	b, err := head.MoveToBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
