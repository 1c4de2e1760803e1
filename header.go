package tricolor

import "unsafe"

// color is the tri-color reachability tag. White is not a fixed pattern: it
// is whichever of {0, 1} a Collector's white field currently holds. Black is
// the other of {0, 1}. Gray is always the constant 2. Callers must never
// compare a color for equality with a literal "black" value; compare against
// a Collector's current white/black pair instead (see Collector.black).
type color uintptr

const (
	colorGray color = 2

	colorBits = 2
	colorMask = uintptr(1)<<colorBits - 1
)

// Header is the fixed-size prefix placed immediately before every managed
// payload. It is never constructed by value outside of the arena the
// collector allocates it in: all real instances live at addresses returned
// by a PageAllocator and are reached through headerAt/addrOf.
type Header struct {
	// nextWithColor packs the address of the next header in the owning
	// set's circular list into the high bits and the 2-bit color tag into
	// the low bits. This requires every header address to be aligned to
	// at least 1<<colorBits bytes, enforced by align().
	nextWithColor uintptr

	// prev is the address of the previous header in the owning set's
	// circular list.
	prev uintptr

	// visitID indexes into a Collector's visitor registry. It is not a
	// bare function pointer (as the systems-language original stores)
	// because a Go closure captured by the mutator must stay reachable to
	// Go's own runtime, and a raw address written into an untyped byte
	// arena is invisible to it.
	visitID uint32
}

// headerSize is the header footprint rounded up to pointer alignment, so
// that payload references handed back to the mutator stay aligned and the
// low colorBits of any header address are free for the color tag.
var headerSize = align(unsafe.Sizeof(Header{}))

func align(n uintptr) uintptr {
	a := unsafe.Alignof(uintptr(0))
	return (n + a - 1) &^ (a - 1)
}

// headerAt reinterprets a raw address as a *Header. The address must have
// been returned by a PageAllocator known to this package.
func headerAt(addr uintptr) *Header {
	return (*Header)(unsafe.Pointer(addr))
}

// addrOf returns the address of a header.
func addrOf(h *Header) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// payloadRef returns the payload reference for an object: the address one
// header-size past the header itself.
func payloadRef(h *Header) uintptr {
	return addrOf(h) + headerSize
}

// headerOf converts a payload reference back to its header.
func headerOf(ref uintptr) *Header {
	return headerAt(ref - headerSize)
}

func (h *Header) color() color {
	return color(h.nextWithColor & colorMask)
}

func (h *Header) setColor(c color) {
	h.nextWithColor = (h.nextWithColor &^ colorMask) | uintptr(c)
}

func (h *Header) next() *Header {
	return headerAt(h.nextWithColor &^ colorMask)
}

func (h *Header) setNext(next *Header) {
	h.nextWithColor = (addrOf(next) &^ colorMask) | (h.nextWithColor & colorMask)
}

func (h *Header) setPrev(prev *Header) {
	h.prev = addrOf(prev)
}

func (h *Header) prevHeader() *Header {
	return headerAt(h.prev)
}

// poisonVisitID marks a sentinel's visitor slot. Sentinels are never
// scanned, so this ID is never looked up, but a distinct out-of-range value
// makes a bug that does look it up fail loudly instead of silently reusing
// visitor 0.
const poisonVisitID = ^uint32(0)
