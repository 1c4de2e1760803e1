// Command gcinspect drives a toy mutator against the tricolor collector so
// its from/to spaces and state transitions can be watched interactively:
// an operator surface layered on top of a library that has no user
// interface of its own.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"

	"github.com/gopherheap/tricolor"
)

func main() {
	configPath := flag.String("config", "gcinspect.yaml", "path to a YAML config file (optional)")
	arenaBytes := flag.Uint64("arena", 0, "override the arena size in bytes")
	flag.Parse()

	cfg, err := tricolor.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *arenaBytes != 0 {
		cfg.ArenaBytes = uintptr(*arenaBytes)
	}

	arena := tricolor.NewArenaAllocator(cfg.ArenaBytes)
	roots := tricolor.NewRootSet()
	col := tricolor.NewCollector(arena, roots, cfg)

	sess := newSession(col, roots, cfg, colorable.NewColorableStdout())
	if err := sess.run(os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
