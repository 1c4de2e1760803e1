package tricolor

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// traceOut is where trace lines go when Config.Trace is set. It is an
// unexported variable, so only code inside this package (such as its tests)
// can redirect it; it defaults to a colorable wrapper around stderr so ANSI
// color codes render on Windows consoles too.
var traceOut io.Writer = colorable.NewColorableStderr()

const traceColor = "\x1b[2m" // dim
const traceReset = "\x1b[0m"

// trace prints one diagnostic line if cfg.Trace is set.
func trace(cfg Config, format string, args ...any) {
	if !cfg.Trace {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if cfg.Color && isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(traceOut, traceColor+msg+traceReset)
		return
	}
	fmt.Fprintln(traceOut, msg)
}
