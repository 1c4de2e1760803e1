package tricolor

import "fmt"

// fatalf reports a fatal, unrecoverable condition (oversize allocation,
// allocator exhaustion, API misuse the collector has no way to check for)
// by panicking with a descriptive value, not by returning a soft error a
// caller could paper over. There are no soft errors in this package's
// public surface; the collector either proceeds or the process terminates.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf("tricolor: "+format, args...))
}
