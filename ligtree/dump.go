package ligtree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	Entries    int // entries in the arena
	Reachable  int // entries reachable from the root
	Terminals  int // terminal records on reachable entries
	Individual int // individual-glyph transitions
	Ranges     int // range transitions
	MaxDepth   int // longest path from the root
}

// Stats walks the tree from the root and counts reachable entries and transitions.
func (t *Tree) Stats() Stats {
	s := Stats{Entries: t.Len()}
	var walk func(id EntryID, depth int)
	walk = func(id EntryID, depth int) {
		s.Reachable++
		s.MaxDepth = max(s.MaxDepth, depth)
		e := t.Entry(id)
		s.Terminals += len(e.Terminals)
		for _, bp := range []*BranchPoint{e.Reverse, e.Forward} {
			if bp == nil {
				continue
			}
			s.Individual += len(bp.Individual)
			s.Ranges += len(bp.Ranges)
			for _, c := range bp.Individual {
				walk(c, depth+1)
			}
			for _, rb := range bp.Ranges {
				walk(rb.Entry, depth+1)
			}
		}
	}
	walk(t.Root(), 0)
	return s
}

// Dump writes a textual rendering of the tree to w, one transition per line.
// Reverse transitions are marked with '<', forward transitions with '>'.
// Individual glyphs are listed in ascending order, ranges in insertion order.
func (t *Tree) Dump(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	var walk func(id EntryID, depth int)
	walk = func(id EntryID, depth int) {
		e := t.Entry(id)
		for _, term := range e.Terminals {
			printf("%s⇒ %s\n", strings.Repeat("  ", depth), term)
		}
		dirs := []struct {
			mark string
			bp   *BranchPoint
		}{{"<", e.Reverse}, {">", e.Forward}}
		for _, dir := range dirs {
			if dir.bp == nil {
				continue
			}
			keys := maps.Keys(dir.bp.Individual)
			slices.Sort(keys)
			for _, g := range keys {
				c := dir.bp.Individual[g]
				printf("%s%s %d #%d\n", strings.Repeat("  ", depth), dir.mark, g, c)
				walk(c, depth+1)
			}
			for _, rb := range dir.bp.Ranges {
				printf("%s%s %s #%d\n", strings.Repeat("  ", depth), dir.mark, rb.Range, rb.Entry)
				walk(rb.Entry, depth+1)
			}
		}
	}
	printf("root #%d\n", t.Root())
	walk(t.Root(), 0)
	return err
}
