package tricolor

import "unsafe"

// PageAllocator is the untyped allocator the collector core consumes. It
// hands back raw, at-least-aligned addresses and reclaims them later; it
// knows nothing about headers, colors, or sets. A host runtime backed by
// real pages, an arena, or bump-pointer memory can all implement this
// interface.
//
// Allocate must panic (via a value describing the failure) if it cannot
// satisfy a request; the untyped allocator has no soft-failure path.
type PageAllocator interface {
	Allocate(bytes uintptr) uintptr
	Free(addr uintptr)
}

// freeRange is a node in ArenaAllocator's address-ordered, coalescing free
// list. This allocator hands out arbitrary byte ranges rather than
// fixed-size blocks, so a single sorted list with neighbor coalescing on
// free is the simplest structure that avoids fragmentation from
// accumulating unbounded.
type freeRange struct {
	addr uintptr
	size uintptr
	next *freeRange
}

// ArenaAllocator is a reference PageAllocator backed by a single fixed-size
// slab obtained once from the host Go runtime. It exists so the collector
// core and its tests have something concrete to allocate from without
// depending on cgo or unsafe access to OS pages; production embedders are
// expected to supply their own PageAllocator over real memory.
type ArenaAllocator struct {
	slab  []byte
	base  uintptr
	free  *freeRange
	inUse map[uintptr]uintptr // addr -> size, for Free's bounds checking
}

// NewArenaAllocator reserves a slab of the given size up front, rather than
// growing on demand, so that by the time a Collector's INIT state runs its
// first allocation the arena already exists and needs no
// collector-dependent machinery to expand.
func NewArenaAllocator(size uintptr) *ArenaAllocator {
	if size == 0 {
		fatalf("arena size must be positive")
	}
	slab := make([]byte, size)
	base := uintptr(unsafe.Pointer(&slab[0]))
	a := &ArenaAllocator{
		slab:  slab,
		base:  base,
		inUse: make(map[uintptr]uintptr),
	}
	a.free = &freeRange{addr: base, size: size}
	return a
}

// Allocate returns the address of a free range of at least bytes length,
// aligned to the platform's natural alignment. It panics if the arena has
// no sufficiently large free range.
func (a *ArenaAllocator) Allocate(bytes uintptr) uintptr {
	bytes = align(bytes)

	var prev *freeRange
	for r := a.free; r != nil; r = r.next {
		if r.size >= bytes {
			addr := r.addr
			if r.size == bytes {
				if prev == nil {
					a.free = r.next
				} else {
					prev.next = r.next
				}
			} else {
				r.addr += bytes
				r.size -= bytes
			}
			a.inUse[addr] = bytes
			return addr
		}
		prev = r
	}
	fatalf("arena exhausted requesting %d bytes", bytes)
	panic("unreachable")
}

// Free returns addr's range to the free list, coalescing with an adjacent
// free range on either side so repeated alloc/free cycles do not
// fragment the arena into unusably small pieces.
func (a *ArenaAllocator) Free(addr uintptr) {
	size, ok := a.inUse[addr]
	if !ok {
		fatalf("free of unallocated address %d", addr)
	}
	delete(a.inUse, addr)

	newRange := &freeRange{addr: addr, size: size}

	var prev *freeRange
	cur := a.free
	for cur != nil && cur.addr < addr {
		prev = cur
		cur = cur.next
	}

	// Merge with the following range if adjacent.
	if cur != nil && addr+size == cur.addr {
		newRange.size += cur.size
		newRange.next = cur.next
	} else {
		newRange.next = cur
	}

	// Merge with the preceding range if adjacent.
	if prev != nil && prev.addr+prev.size == newRange.addr {
		prev.size += newRange.size
		prev.next = newRange.next
	} else if prev == nil {
		a.free = newRange
	} else {
		prev.next = newRange
	}
}

// Bytes returns the total arena size, for statistics reporting.
func (a *ArenaAllocator) Bytes() uintptr {
	return uintptr(len(a.slab))
}
