package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/gopherheap/tricolor"
)

const (
	ansiWhite = "\x1b[37m"
	ansiGray  = "\x1b[90m"
	ansiBlack = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// colorize wraps s in the ANSI code matching an object's color, unless the
// operator disabled color or stdout isn't a terminal (mirroring the
// gc-inspect trace path's same isatty check).
func colorize(cfg tricolor.Config, objColor, s string) string {
	if !cfg.Color || !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	switch objColor {
	case "white":
		return ansiWhite + s + ansiReset
	case "gray":
		return ansiGray + s + ansiReset
	case "black":
		return ansiBlack + s + ansiReset
	default:
		return s
	}
}
