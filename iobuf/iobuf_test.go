package iobuf_test

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/momentics/iochain/iobuf"
)

func TestCreateAppendTrim(t *testing.T) {
	d, err := iobuf.New(64)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Advance(8)
	copy(d.Buffer()[d.Headroom():], "hello")
	d.Append(5)

	if d.Headroom() != 8 {
		t.Errorf("Headroom() = %d, want 8", d.Headroom())
	}
	if d.Length() != 5 {
		t.Errorf("Length() = %d, want 5", d.Length())
	}
	if d.Tailroom() != 51 {
		t.Errorf("Tailroom() = %d, want 51", d.Tailroom())
	}
	if string(d.Data()) != "hello" {
		t.Errorf("Data() = %q, want %q", d.Data(), "hello")
	}
}

func TestZeroCopyHeaderPrepend(t *testing.T) {
	d, err := iobuf.New(64)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Advance(16)
	copy(d.Buffer()[d.Headroom():], "abcde")
	d.Append(5)
	d.Prepend(4)
	copy(d.WritableData()[:4], "HEAD")

	if d.IsChained() {
		t.Error("descriptor unexpectedly chained")
	}
	if d.Length() != 9 {
		t.Errorf("Length() = %d, want 9", d.Length())
	}
	if string(d.Data()) != "HEADabcde" {
		t.Errorf("Data() = %q, want %q", d.Data(), "HEADabcde")
	}
}

func TestShareAndUnshareIsolatesWrites(t *testing.T) {
	d1, err := iobuf.CopyBuffer([]byte("abc"), 0, 0)
	if err != nil {
		t.Fatalf("CopyBuffer() error: %v", err)
	}
	d2 := d1.CloneOne()

	if !d1.IsSharedOne() || !d2.IsSharedOne() {
		t.Fatal("expected both descriptors to report shared before unshare")
	}

	if err := d1.UnshareOne(); err != nil {
		t.Fatalf("UnshareOne() error: %v", err)
	}
	d1.WritableData()[0] = 'Z'

	if string(d2.Data()) != "abc" {
		t.Errorf("clone mutated after unshare+write: got %q, want %q", d2.Data(), "abc")
	}
	if string(d1.Data()) != "Zbc" {
		t.Errorf("d1.Data() = %q, want %q", d1.Data(), "Zbc")
	}
}

func buildChainElement(t *testing.T, headroom int, payload string, tailroom int) *iobuf.Descriptor {
	t.Helper()
	d, err := iobuf.New(headroom + len(payload) + tailroom)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Advance(headroom)
	copy(d.Buffer()[d.Headroom():], payload)
	d.Append(len(payload))
	return d
}

func TestChainCoalescePreservesHeadroomTailroom(t *testing.T) {
	a := buildChainElement(t, 4, "AB", 2)
	b := buildChainElement(t, 0, "CD", 0)
	c := buildChainElement(t, 1, "EF", 6)

	a.PrependChain(b)
	a.PrependChain(c)

	head, err := a.Coalesce()
	if err != nil {
		t.Fatalf("Coalesce() error: %v", err)
	}
	if head.IsChained() {
		t.Error("Coalesce() left a chain behind")
	}
	if string(head.Data()) != "ABCDEF" {
		t.Errorf("Data() = %q, want %q", head.Data(), "ABCDEF")
	}
	if head.Headroom() < 4 {
		t.Errorf("Headroom() = %d, want >= 4", head.Headroom())
	}
	if head.Tailroom() < 6 {
		t.Errorf("Tailroom() = %d, want >= 6", head.Tailroom())
	}
}

func TestChainSurgeryRoundTrip(t *testing.T) {
	a := buildChainElement(t, 0, "A", 0)
	b := buildChainElement(t, 0, "B", 0)
	c := buildChainElement(t, 0, "C", 0)
	d := buildChainElement(t, 0, "D", 0)
	e := buildChainElement(t, 0, "E", 0)

	a.PrependChain(b)
	a.PrependChain(c)
	a.PrependChain(d)
	a.PrependChain(e)

	sep := b.SeparateChain(b, d)
	if got := concatChain(sep); got != "BCD" {
		t.Fatalf("separated chain = %q, want %q", got, "BCD")
	}
	if got := concatChain(a); got != "AE" {
		t.Fatalf("remaining chain = %q, want %q", got, "AE")
	}

	a.AppendChain(sep)
	if got := concatChain(a); got != "ABCDE" {
		t.Fatalf("reassembled chain = %q, want %q", got, "ABCDE")
	}
}

func concatChain(head *iobuf.Descriptor) string {
	var buf bytes.Buffer
	head.ForEach(func(d *iobuf.Descriptor) bool {
		buf.Write(d.Data())
		return true
	})
	return buf.String()
}

func TestGatherStopsEarly(t *testing.T) {
	var head *iobuf.Descriptor
	for i := 0; i < 10; i++ {
		el := buildChainElement(t, 0, string(bytes.Repeat([]byte{byte('a' + i)}, 100)), 0)
		if head == nil {
			head = el
		} else {
			head.PrependChain(el)
		}
	}

	before := head.CountChainElements()
	got, err := head.Gather(250)
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	if got.Length() < 250 {
		t.Fatalf("Length() = %d, want >= 250", got.Length())
	}
	consumed := before - got.CountChainElements() + 1
	if consumed > 3 {
		t.Errorf("Gather consumed %d elements, want <= 3", consumed)
	}
}

func TestWrapBufferReportsShared(t *testing.T) {
	bs := []byte("abc")
	d := iobuf.WrapBuffer(bs)
	if string(d.Data()) != "abc" {
		t.Fatalf("Data() = %q, want %q", d.Data(), "abc")
	}
	if !d.IsSharedOne() {
		t.Error("WrapBuffer result should report shared (UserOwned arena)")
	}
}

func TestCopyBufferRoundTrip(t *testing.T) {
	bs := []byte("round-trip-me")
	d, err := iobuf.CopyBuffer(bs, 0, 0)
	if err != nil {
		t.Fatalf("CopyBuffer() error: %v", err)
	}
	if !bytes.Equal(d.Data(), bs) {
		t.Fatalf("Data() = %q, want %q", d.Data(), bs)
	}
}

func TestMaybeCopyBufferCopiesAndIsolatesCaller(t *testing.T) {
	bs := []byte("abc")
	d, err := iobuf.MaybeCopyBuffer(bs, 0, 0)
	if err != nil {
		t.Fatalf("MaybeCopyBuffer() error: %v", err)
	}
	if d == nil {
		t.Fatal("MaybeCopyBuffer() returned nil for non-empty input")
	}
	if d.IsSharedOne() {
		t.Fatal("MaybeCopyBuffer() result reports shared; want an independent copy")
	}
	d.WritableData()[0] = 'Z'
	if bs[0] != 'a' {
		t.Fatalf("MaybeCopyBuffer() aliased the caller's buffer: bs = %q", bs)
	}
}

func TestMaybeCopyBufferEmptyReturnsNil(t *testing.T) {
	d, err := iobuf.MaybeCopyBuffer(nil, 0, 0)
	if err != nil {
		t.Fatalf("MaybeCopyBuffer(nil) error: %v", err)
	}
	if d != nil {
		t.Fatalf("MaybeCopyBuffer(nil) = %v, want nil", d)
	}
}

func TestTakeOwnershipHandleRunsDisposerExactlyOnce(t *testing.T) {
	calls := 0
	buf := make([]byte, 8)
	d, err := iobuf.TakeOwnershipHandle(buf, 4, func() { calls++ })
	if err != nil {
		t.Fatalf("TakeOwnershipHandle() error: %v", err)
	}
	if d.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", d.Length())
	}
	clone := d.CloneOne()
	d.Release()
	if calls != 0 {
		t.Fatalf("disposer called %d times before last reference released, want 0", calls)
	}
	clone.Release()
	if calls != 1 {
		t.Fatalf("disposer called %d times, want exactly 1", calls)
	}
}

func TestUnshareChainedCoalescesOnSharedMember(t *testing.T) {
	a := buildChainElement(t, 0, "foo", 0)
	b := buildChainElement(t, 0, "bar", 0)
	a.PrependChain(b)

	clone := b.CloneOne()
	if !a.IsShared() {
		t.Fatal("expected chain to report shared after cloning a member")
	}

	if err := a.Unshare(); err != nil {
		t.Fatalf("Unshare() error: %v", err)
	}
	if a.IsChained() {
		t.Fatal("Unshare() on a shared chain should coalesce to a singleton")
	}
	if string(a.Data()) != "foobar" {
		t.Fatalf("Data() after Unshare() = %q, want %q", a.Data(), "foobar")
	}
	if string(clone.Data()) != "bar" {
		t.Fatalf("clone mutated by Unshare(): %q, want %q", clone.Data(), "bar")
	}
}

func TestUnshareChainedNoopWhenNotShared(t *testing.T) {
	a := buildChainElement(t, 0, "foo", 0)
	b := buildChainElement(t, 0, "bar", 0)
	a.PrependChain(b)

	if err := a.Unshare(); err != nil {
		t.Fatalf("Unshare() error: %v", err)
	}
	if !a.IsChained() {
		t.Fatal("Unshare() coalesced an already-unshared chain")
	}
	if a.CountChainElements() != 2 {
		t.Fatalf("CountChainElements() = %d, want 2", a.CountChainElements())
	}
}

func TestReserveIdempotentAndMonotonic(t *testing.T) {
	d, err := iobuf.New(64)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.Advance(8)
	copy(d.Buffer()[d.Headroom():], "payload")
	d.Append(len("payload"))

	if err := d.Reserve(4, 4); err != nil {
		t.Fatalf("Reserve(4,4) error: %v", err)
	}
	if string(d.Data()) != "payload" {
		t.Fatalf("Data() after Reserve = %q, want %q", d.Data(), "payload")
	}
	if d.Headroom() < 4 || d.Tailroom() < 4 {
		t.Fatalf("Reserve(4,4) did not guarantee room: headroom=%d tailroom=%d", d.Headroom(), d.Tailroom())
	}

	if err := d.Reserve(1, 1); err != nil {
		t.Fatalf("Reserve(1,1) error: %v", err)
	}
	if string(d.Data()) != "payload" {
		t.Fatalf("Data() after no-op Reserve = %q, want %q", d.Data(), "payload")
	}
}

func TestInvariantWindowWithinBounds(t *testing.T) {
	f := func(headroom, length, tailroom uint8) bool {
		h, l, tr := int(headroom)%32, int(length)%32, int(tailroom)%32
		d, err := iobuf.New(h + l + tr + 1)
		if err != nil {
			return true
		}
		d.Advance(h)
		d.Append(l)
		return d.Headroom() >= 0 &&
			d.Headroom()+d.Length() <= d.Capacity() &&
			d.Length() >= 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestInvariantChainLinksAreMutualInverses(t *testing.T) {
	a, _ := iobuf.New(8)
	b, _ := iobuf.New(8)
	c, _ := iobuf.New(8)
	a.AppendChain(b)
	a.AppendChain(c)

	nodes := []*iobuf.Descriptor{a, b, c}
	for _, n := range nodes {
		if n.Next().Prev() != n {
			t.Errorf("prev(next(x)) != x for node %p", n)
		}
		if n.Prev().Next() != n {
			t.Errorf("next(prev(x)) != x for node %p", n)
		}
	}
}

func TestCombinedAllocationLifecycle(t *testing.T) {
	d, err := iobuf.NewCombined(32)
	if err != nil {
		t.Fatalf("NewCombined() error: %v", err)
	}
	d.Advance(2)
	copy(d.Buffer()[d.Headroom():], "hi")
	d.Append(2)
	if string(d.Data()) != "hi" {
		t.Fatalf("Data() = %q, want %q", d.Data(), "hi")
	}
	d.Release()
}

func TestMoveToBytesEmptiesChain(t *testing.T) {
	a := buildChainElement(t, 0, "foo", 0)
	b := buildChainElement(t, 0, "bar", 0)
	a.AppendChain(b)

	out, err := a.MoveToBytes()
	if err != nil {
		t.Fatalf("MoveToBytes() error: %v", err)
	}
	if string(out) != "foobar" {
		t.Fatalf("MoveToBytes() = %q, want %q", out, "foobar")
	}
	if a.Length() != 0 {
		t.Fatalf("Length() after MoveToBytes = %d, want 0", a.Length())
	}
}

func TestGatherVectorCoversWholeChain(t *testing.T) {
	a := buildChainElement(t, 0, "foo", 0)
	b := buildChainElement(t, 0, "bar", 0)
	a.AppendChain(b)

	vec := a.GatherVector()
	if len(vec) != 2 {
		t.Fatalf("len(GatherVector()) = %d, want 2", len(vec))
	}
	if iobuf.TotalLength(vec) != 6 {
		t.Fatalf("TotalLength() = %d, want 6", iobuf.TotalLength(vec))
	}
}
