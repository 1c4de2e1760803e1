// Package tricolor implements an incremental tri-color mark-and-sweep
// garbage collector for a single-threaded managed runtime.
//
// A full collection cycle is split into bounded units of work ("steps")
// that are interleaved with mutator allocation, so a caller never pays the
// cost of tracing the entire heap in one pause. The collector itself knows
// nothing about how bytes are obtained from the OS or how a host runtime
// finds its roots. Both are external collaborators, supplied through the
// PageAllocator and RootSource interfaces (see alloc.go and roots.go).
package tricolor

// VisitFunc enumerates the outgoing managed references of one object by
// calling mark on each of them. It is supplied by the mutator at
// allocation time and invoked each time MARK blackens the object: once per
// cycle, plus once more each time the write barrier re-grays it.
type VisitFunc func(mark func(ref uintptr))
