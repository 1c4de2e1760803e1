package tricolor

import (
	"testing"
	"unsafe"
)

func TestColorPackingPreservesNextPointer(t *testing.T) {
	a := &Header{}
	b := &Header{}
	a.setNext(b)
	a.setColor(colorGray)

	if got := a.next(); got != b {
		t.Errorf("next() = %p, want %p", got, b)
	}
	if got := a.color(); got != colorGray {
		t.Errorf("color() = %d, want %d", got, colorGray)
	}
}

func TestSetNextDoesNotDisturbColor(t *testing.T) {
	a := &Header{}
	b := &Header{}
	c := &Header{}

	a.setColor(1)
	a.setNext(b)
	if a.color() != 1 {
		t.Fatalf("color() = %d after setNext, want 1", a.color())
	}
	a.setNext(c)
	if got := a.color(); got != 1 {
		t.Errorf("color() = %d after second setNext, want 1", got)
	}
	if got := a.next(); got != c {
		t.Errorf("next() = %p, want %p", got, c)
	}
}

func TestPayloadRefRoundTrip(t *testing.T) {
	h := &Header{}
	ref := payloadRef(h)
	if got := headerOf(ref); got != h {
		t.Errorf("headerOf(payloadRef(h)) = %p, want %p", got, h)
	}
	if ref == addrOf(h) {
		t.Errorf("payload reference must be past the header, got same address")
	}
}

func TestAlignRoundsUpToPointerSize(t *testing.T) {
	a := align(1)
	if want := unsafe.Alignof(uintptr(0)); a != want {
		t.Fatalf("align(1) = %d, want pointer alignment %d", a, want)
	}
	if align(0) != 0 {
		t.Errorf("align(0) = %d, want 0", align(0))
	}
	if align(headerSize) != headerSize {
		t.Errorf("headerSize %d is not already aligned", headerSize)
	}
}
