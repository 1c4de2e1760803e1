package tricolor

// state is one of the four states driving incremental progress. Zero value
// is stateInit so a zero-value Collector (never expected in practice, since
// NewCollector always sets it explicitly) would still start from INIT
// rather than mid-cycle; it has no PageAllocator, so that INIT step cannot
// complete.
type state uint8

const (
	stateInit state = iota
	stateIdle
	stateMark
	stateSweep
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateIdle:
		return "IDLE"
	case stateMark:
		return "MARK"
	case stateSweep:
		return "SWEEP"
	default:
		return "?"
	}
}

// Collector is the tri-color mark-and-sweep state machine. It owns the
// from/to spaces, the MARK cursor, and the current white value, and drives
// them forward one bounded step at a time. A Collector is not safe for
// concurrent use: it assumes strictly single-threaded cooperative access,
// and nothing here adds locking on top of that.
type Collector struct {
	alloc PageAllocator
	roots RootSource
	cfg   Config

	from  *objSet
	to    *objSet
	iter  *Header
	white color
	state state

	visitors     []VisitFunc
	freeVisitIDs []uint32

	stats Stats
}

// NewCollector wires a Collector to its two external collaborators. The
// collector performs no allocation until its first step (triggered by the
// first Allocate or Collect call), so INIT's sentinel allocation happens
// lazily rather than here.
func NewCollector(alloc PageAllocator, roots RootSource, cfg Config) *Collector {
	return &Collector{
		alloc: alloc,
		roots: roots,
		cfg:   cfg,
		state: stateInit,
	}
}

// State reports the collector's current state, for the inspector and tests;
// it sits alongside the core public interface rather than in it.
func (c *Collector) State() string {
	return c.state.String()
}

// black returns the color meaning "reachable and fully scanned" for the
// current cycle: the opposite of white among {0, 1}.
func (c *Collector) black() color {
	return c.white ^ 1
}

// step performs one bounded unit of collector work.
func (c *Collector) step() {
	switch c.state {
	case stateInit:
		c.initSets()
		c.state = stateIdle
		fallthrough
	case stateIdle:
		c.roots.IterateRoots(c.Mark)
		c.state = stateMark
	case stateMark:
		c.stepMark()
	case stateSweep:
		c.stepSweep()
	}
}

// initSets performs the one-time INIT transition: allocate the two
// sentinels, start both sets empty, and park the MARK cursor at the (empty)
// to set so the very first MARK entry sees an immediate finish and swaps
// into a SWEEP of nothing.
func (c *Collector) initSets() {
	fromSentinel := headerAt(c.alloc.Allocate(headerSize))
	toSentinel := headerAt(c.alloc.Allocate(headerSize))
	fromSentinel.visitID = poisonVisitID
	toSentinel.visitID = poisonVisitID

	c.from = &objSet{sentinel: fromSentinel}
	c.to = &objSet{sentinel: toSentinel}
	c.from.clear()
	c.to.clear()
	c.iter = c.to.sentinel

	trace(c.cfg, "INIT: sentinels allocated, from=%d to=%d", addrOf(fromSentinel), addrOf(toSentinel))
}

// stepMark advances the MARK cursor by one object.
func (c *Collector) stepMark() {
	obj := c.iter.next()
	if obj != c.to.sentinel {
		c.iter = obj
		obj.setColor(c.black())
		trace(c.cfg, "MARK: blacken %d", addrOf(obj))
		c.invokeVisitor(obj)
		return
	}

	// The gray queue drained. Re-enumerate roots to catch anything the
	// mutator installed since MARK began.
	c.roots.IterateRoots(c.Mark)
	if c.iter.next() != c.to.sentinel {
		return
	}

	// Still nothing new: swap the sets and flip white.
	c.from, c.to = c.to, c.from
	c.white ^= 1
	c.iter = c.to.sentinel.next()
	c.state = stateSweep
	c.stats.Cycles++
	trace(c.cfg, "MARK: swap complete, white=%d", uintptr(c.white))
}

// stepSweep frees one condemned object per step.
func (c *Collector) stepSweep() {
	obj := c.iter
	if obj != c.to.sentinel {
		c.iter = obj.next()
		addr := addrOf(obj)
		c.releaseVisitor(obj.visitID)
		c.alloc.Free(addr)
		c.stats.Frees++
		trace(c.cfg, "SWEEP: free %d", addr)
		return
	}
	c.to.clear()
	c.state = stateIdle
	trace(c.cfg, "SWEEP: done")
}

// Allocate returns a fresh managed payload reference and performs one
// collector step. It panics if size would overflow the addressable range
// once the header is added, a fatal and unrecoverable condition rather
// than a soft error a caller could paper over.
func (c *Collector) Allocate(size uintptr, visit VisitFunc) uintptr {
	full := size + headerSize
	if full < size {
		fatalf("allocation of %d bytes overflows addressable size", size)
	}

	c.step()

	addr := c.alloc.Allocate(full)
	h := headerAt(addr)
	h.setColor(c.white)
	h.visitID = c.registerVisitor(visit)
	c.from.push(h)

	c.stats.Mallocs++
	c.stats.BytesAllocated += uint64(size)

	ref := payloadRef(h)
	trace(c.cfg, "ALLOCATE: %d bytes at %d (payload %d)", size, addr, ref)
	return ref
}

// Collect drives the state machine to IDLE: a stop-the-world-equivalent
// entry point for a runtime that wants to reclaim memory now rather than
// waiting for allocation-driven steps to get there.
func (c *Collector) Collect() {
	if c.state == stateInit || c.state == stateIdle {
		c.step()
	}
	for c.state != stateIdle {
		c.step()
	}
}

// Step performs a single bounded unit of collector work, exposed for
// tooling (the gcinspect CLI) that wants to observe the state machine one
// transition at a time. Allocate performs one step and Collect performs
// steps until IDLE; Link and Mark perform none. A caller may also drive
// steps directly as long as it does so with the same single-threaded
// discipline.
func (c *Collector) Step() {
	c.step()
}

// Close releases the collector's reference to its arena so the host Go
// runtime can reclaim it. This is additive tooling, not part of the core
// contract: sentinels are otherwise allocated once and never freed.
func (c *Collector) Close() {
	c.alloc = nil
	c.roots = nil
	c.from = nil
	c.to = nil
	c.iter = nil
	c.visitors = nil
}

// SetVisitor replaces the visitor registered for ref. It exists for callers
// (such as the gcinspect CLI) whose visitor needs to capture the very
// reference Allocate is about to return, which isn't available before the
// call. Most embedders should just pass the final visitor to Allocate
// directly.
func (c *Collector) SetVisitor(ref uintptr, visit VisitFunc) {
	h := headerOf(ref)
	c.visitors[h.visitID] = visit
}

func (c *Collector) registerVisitor(v VisitFunc) uint32 {
	if n := len(c.freeVisitIDs); n > 0 {
		id := c.freeVisitIDs[n-1]
		c.freeVisitIDs = c.freeVisitIDs[:n-1]
		c.visitors[id] = v
		return id
	}
	c.visitors = append(c.visitors, v)
	return uint32(len(c.visitors) - 1)
}

func (c *Collector) releaseVisitor(id uint32) {
	if id == poisonVisitID {
		return
	}
	c.visitors[id] = nil
	c.freeVisitIDs = append(c.freeVisitIDs, id)
}

// invokeVisitor calls the object's visitor, which re-enters Mark for each
// outgoing child reference.
func (c *Collector) invokeVisitor(obj *Header) {
	if obj.visitID == poisonVisitID {
		fatalf("attempted to scan a sentinel")
	}
	visit := c.visitors[obj.visitID]
	if visit == nil {
		return
	}
	visit(c.Mark)
}
