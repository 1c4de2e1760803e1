package main

import (
	"fmt"

	"github.com/mattn/go-tty"
)

// watch switches to a single-keypress stepping mode: space steps once, 'c'
// runs a full collect, 'l' lists the sets, and 'q' returns to the line
// REPL. Reading raw keypresses (rather than requiring Enter) is what
// go-tty buys over the default bufio.Scanner-based REPL loop.
func (s *session) watch() error {
	t, err := tty.Open()
	if err != nil {
		return fmt.Errorf("opening tty: %w", err)
	}
	defer t.Close()

	fmt.Fprintln(s.out, "watch mode: space=step  c=collect  l=list  q=quit")
	for {
		r, err := t.ReadRune()
		if err != nil {
			return err
		}
		switch r {
		case ' ':
			s.col.Step()
			fmt.Fprintln(s.out, "state:", s.col.State())
		case 'c':
			s.col.Collect()
			fmt.Fprintln(s.out, "state:", s.col.State())
		case 'l':
			s.list()
		case 'q':
			return nil
		}
	}
}
