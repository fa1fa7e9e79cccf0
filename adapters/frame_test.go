package adapters_test

import (
	"testing"

	"github.com/momentics/iochain/adapters"
	"github.com/momentics/iochain/iobuf"
)

func TestWriteAndParseFrameRoundTrip(t *testing.T) {
	payload := []byte("hello, frame")
	d, err := iobuf.New(adapters.HeaderSize + len(payload) + 8)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Advance(adapters.HeaderSize)
	copy(d.Buffer()[d.Headroom():], payload)
	d.Append(len(payload))

	if err := adapters.WriteFrameHeader(d, uint32(len(payload))); err != nil {
		t.Fatalf("WriteFrameHeader() error: %v", err)
	}
	if d.Length() != adapters.HeaderSize+len(payload) {
		t.Fatalf("Length() = %d, want %d", d.Length(), adapters.HeaderSize+len(payload))
	}

	got, err := adapters.FramePayload(d)
	if err != nil {
		t.Fatalf("FramePayload() error: %v", err)
	}
	if string(got.Data()) != string(payload) {
		t.Fatalf("FramePayload() = %q, want %q", got.Data(), payload)
	}
}

func TestFramePayloadRejectsShortHeader(t *testing.T) {
	d, err := iobuf.New(2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Append(2)
	if _, err := adapters.FramePayload(d); err == nil {
		t.Fatal("FramePayload() succeeded on a too-short header, want error")
	}
}

func TestGatherForWriteAndDrainToString(t *testing.T) {
	a, err := iobuf.CopyBuffer([]byte("foo"), 0, 0)
	if err != nil {
		t.Fatalf("CopyBuffer() error: %v", err)
	}
	b, err := iobuf.CopyBuffer([]byte("bar"), 0, 0)
	if err != nil {
		t.Fatalf("CopyBuffer() error: %v", err)
	}
	a.PrependChain(b)

	vec := adapters.GatherForWrite(a)
	if iobuf.TotalLength(vec) != 6 {
		t.Fatalf("TotalLength() = %d, want 6", iobuf.TotalLength(vec))
	}

	s, err := adapters.DrainToString(a)
	if err != nil {
		t.Fatalf("DrainToString() error: %v", err)
	}
	if s != "foobar" {
		t.Fatalf("DrainToString() = %q, want %q", s, "foobar")
	}
}
