package tricolor

import (
	"strconv"

	bytesize "github.com/inhies/go-bytesize"
)

// Stats accumulates lifetime collector counters.
type Stats struct {
	Cycles         uint64
	Mallocs        uint64
	Frees          uint64
	BytesAllocated uint64
}

// Live reports the number of objects allocated but not yet freed.
func (s Stats) Live() uint64 {
	return s.Mallocs - s.Frees
}

// Stats returns a snapshot of the collector's lifetime counters.
func (c *Collector) Stats() Stats {
	return c.stats
}

// Report renders a Stats snapshot in human-readable units via go-bytesize,
// for the inspector CLI's status line.
func (s Stats) Report() string {
	allocated := bytesize.New(float64(s.BytesAllocated))
	u := strconv.FormatUint
	return "cycles=" + u(s.Cycles, 10) +
		" mallocs=" + u(s.Mallocs, 10) +
		" frees=" + u(s.Frees, 10) +
		" live=" + u(s.Live(), 10) +
		" allocated=" + allocated.String()
}
