package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/google/shlex"

	"github.com/gopherheap/tricolor"
)

// session is the toy mutator the REPL drives. Objects are named by the
// operator; a demo object's children are tracked here (not inside the
// collector's own arena) because a REPL command like "link a b" needs a
// place to remember "a now points at b" so a's visitor can report it back
// to Mark on the next scan.
type session struct {
	col      *tricolor.Collector
	roots    *tricolor.RootSet
	cfg      tricolor.Config
	out      io.Writer
	names    map[string]uintptr
	refNames map[uintptr]string
	children map[uintptr][]uintptr
}

func newSession(col *tricolor.Collector, roots *tricolor.RootSet, cfg tricolor.Config, out io.Writer) *session {
	return &session{
		col:      col,
		roots:    roots,
		cfg:      cfg,
		out:      out,
		names:    make(map[string]uintptr),
		refNames: make(map[uintptr]string),
		children: make(map[uintptr][]uintptr),
	}
}

func (s *session) visitorFor(ref uintptr) tricolor.VisitFunc {
	return func(mark func(uintptr)) {
		for _, child := range s.children[ref] {
			mark(child)
		}
	}
}

func (s *session) run(in io.Reader) error {
	fmt.Fprintln(s.out, "gcinspect - type 'help' for commands")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, "parse error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if quit := s.dispatch(args); quit {
			return nil
		}
	}
}

func (s *session) dispatch(args []string) (quit bool) {
	switch args[0] {
	case "help":
		s.help()
	case "alloc":
		s.cmdAlloc(args[1:])
	case "link":
		s.cmdLink(args[1:])
	case "root":
		s.cmdRoot(args[1:])
	case "unroot":
		s.cmdUnroot(args[1:])
	case "mark":
		s.cmdMark(args[1:])
	case "step":
		s.col.Step()
		fmt.Fprintln(s.out, "state:", s.col.State())
	case "collect":
		s.col.Collect()
		fmt.Fprintln(s.out, "state:", s.col.State())
	case "watch":
		if err := s.watch(); err != nil {
			fmt.Fprintln(s.out, "watch error:", err)
		}
	case "state":
		fmt.Fprintln(s.out, s.col.State())
	case "stats":
		fmt.Fprintln(s.out, s.col.Stats().Report())
	case "list":
		s.list()
	case "dump":
		s.cmdDump(args[1:])
	case "verify":
		s.cmdVerify(args[1:])
	case "quit", "exit":
		return true
	default:
		fmt.Fprintln(s.out, "unknown command:", args[0])
	}
	return false
}

func (s *session) help() {
	fmt.Fprintln(s.out, `commands:
  alloc <name> <size>       allocate an object and bind it to name
  link <parent> <child>     record parent -> child and run the write barrier
  root <name>               register name as a root
  unroot <name>             remove a root
  mark <name>               call Mark directly on name's reference
  step                      run one collector step
  collect                   drive the collector to IDLE
  watch                     step interactively via keypresses (space/c/q)
  state                     print the current state
  stats                     print lifetime counters
  list                      list the from/to spaces with color
  dump <path>               write a heap snapshot to path
  verify <path>             check a snapshot's checksum without loading it
  quit                      exit`)
}

func (s *session) cmdAlloc(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: alloc <name> <size>")
		return
	}
	name := args[0]
	size, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "bad size:", err)
		return
	}
	if _, exists := s.names[name]; exists {
		fmt.Fprintln(s.out, "name already in use:", name)
		return
	}
	ref := s.col.Allocate(uintptr(size), nil)
	s.names[name] = ref
	s.refNames[ref] = name
	// The visitor closure captures ref, but must be installed after
	// Allocate returns it, so the collector holds a stub until now.
	s.col.SetVisitor(ref, s.visitorFor(ref))
	fmt.Fprintf(s.out, "%s = %d\n", name, ref)
}

func (s *session) cmdLink(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: link <parent> <child>")
		return
	}
	parent, ok := s.names[args[0]]
	if !ok {
		fmt.Fprintln(s.out, "no such object:", args[0])
		return
	}
	child, ok := s.names[args[1]]
	if !ok {
		fmt.Fprintln(s.out, "no such object:", args[1])
		return
	}
	s.children[parent] = append(s.children[parent], child)
	s.col.Link(parent, child)
}

func (s *session) cmdRoot(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: root <name>")
		return
	}
	ref, ok := s.names[args[0]]
	if !ok {
		fmt.Fprintln(s.out, "no such object:", args[0])
		return
	}
	s.roots.Set(args[0], ref)
}

func (s *session) cmdUnroot(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: unroot <name>")
		return
	}
	s.roots.Delete(args[0])
}

func (s *session) cmdMark(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: mark <name>")
		return
	}
	ref, ok := s.names[args[0]]
	if !ok {
		fmt.Fprintln(s.out, "no such object:", args[0])
		return
	}
	s.col.Mark(ref)
}

func (s *session) list() {
	fmt.Fprintln(s.out, "from:")
	s.listSet(s.col.FromObjects())
	fmt.Fprintln(s.out, "to:")
	s.listSet(s.col.ToObjects())
}

func (s *session) listSet(objs []tricolor.ObjectInfo) {
	names := make([]string, 0, len(objs))
	byName := make(map[string]tricolor.ObjectInfo, len(objs))
	for _, o := range objs {
		name := s.refNames[o.Addr]
		if name == "" {
			name = fmt.Sprintf("<%d>", o.Addr)
		}
		names = append(names, name)
		byName[name] = o
	}
	sort.Strings(names)
	for _, name := range names {
		o := byName[name]
		fmt.Fprintln(s.out, " ", colorize(s.cfg, o.Color, fmt.Sprintf("%s [%s]", name, o.Color)))
	}
}
