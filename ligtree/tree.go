package ligtree

import (
	"fmt"

	"github.com/npillmayer/fontligatures/ot"
)

// EntryID references an entry in a tree's arena.
type EntryID int32

// NoEntry is returned by lookups which do not find a child.
const NoEntry EntryID = -1

// Entry is a node of the lookup tree.
//
// Forward continues a match with the glyph following the current one (input and
// lookahead), Reverse with the glyph preceding the match start (backtrack). An entry
// without a branch-point for a direction is a leaf for that direction.
type Entry struct {
	Forward   *BranchPoint
	Reverse   *BranchPoint
	Terminals []Terminal // rules whose complete context ends at this entry
}

// IsTerminal is true if at least one rule ends at this entry.
func (e *Entry) IsTerminal() bool {
	return len(e.Terminals) > 0
}

// BranchPoint dispatches on the next glyph. Individual glyphs are checked first;
// ranges are checked in insertion order and may overlap.
type BranchPoint struct {
	Individual map[ot.GlyphIndex]EntryID
	Ranges     []RangeBranch
}

// RangeBranch is a range-based continuation of a branch-point.
type RangeBranch struct {
	Range ot.GlyphSpec
	Entry EntryID
}

func newBranchPoint() *BranchPoint {
	return &BranchPoint{Individual: make(map[ot.GlyphIndex]EntryID)}
}

// Lookup returns the child to continue with for glyph g: the individual child if
// present, else the first range containing g. It returns NoEntry if there is none.
func (bp *BranchPoint) Lookup(g ot.GlyphIndex) EntryID {
	if bp == nil {
		return NoEntry
	}
	if id, ok := bp.Individual[g]; ok {
		return id
	}
	for _, rb := range bp.Ranges {
		if rb.Range.Contains(g) {
			return rb.Entry
		}
	}
	return NoEntry
}

// Candidates appends every child reachable with glyph g to buf, in lookup order:
// the individual child first, then all ranges containing g in insertion order.
func (bp *BranchPoint) Candidates(g ot.GlyphIndex, buf []EntryID) []EntryID {
	if bp == nil {
		return buf
	}
	if id, ok := bp.Individual[g]; ok {
		buf = append(buf, id)
	}
	for _, rb := range bp.Ranges {
		if rb.Range.Contains(g) {
			buf = append(buf, rb.Entry)
		}
	}
	return buf
}

// Len is the number of outgoing transitions.
func (bp *BranchPoint) Len() int {
	if bp == nil {
		return 0
	}
	return len(bp.Individual) + len(bp.Ranges)
}

// Terminal is the metadata a rule leaves at the end of its path.
//
// Substitutions has one entry per input position; None means that the glyph at that
// position has been matched, but is not substituted.
type Terminal struct {
	Rule          int // index of the rule within its rule set; lower is more important
	Backtrack     int // number of backtrack positions
	Input         int // number of input positions
	Lookahead     int // number of lookahead positions
	Substitutions []ot.Option[ot.GlyphIndex]
}

func (t Terminal) String() string {
	return fmt.Sprintf("rule %d (%d|%d|%d) %v", t.Rule, t.Backtrack, t.Input, t.Lookahead,
		t.Substitutions)
}

// Tree is a compiled rule set. Entries live in an arena; the root is entry 0.
//
// A tree grows while rules are added and is never pruned. After building it is treated
// as read-only.
type Tree struct {
	entries []Entry
	policy  policy
	rules   int
}

func newTree(p policy) *Tree {
	t := &Tree{
		entries: make([]Entry, 1, 64),
		policy:  p,
	}
	return t
}

// Root returns the ID of the root entry.
func (t *Tree) Root() EntryID {
	return 0
}

// Entry returns the entry for id. It panics for IDs not issued by t.
func (t *Tree) Entry(id EntryID) *Entry {
	return &t.entries[id]
}

// Len returns the number of entries in the arena, including entries which became
// unreachable under ReplaceChildren.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Rules returns the number of rules compiled into t.
func (t *Tree) Rules() int {
	return t.rules
}

func (t *Tree) newEntry() EntryID {
	t.entries = append(t.entries, Entry{})
	return EntryID(len(t.entries) - 1)
}

// direction selects a branch-point of an entry.
type direction uint8

const (
	forward direction = iota
	reverse
)

func (d direction) String() string {
	if d == reverse {
		return "reverse"
	}
	return "forward"
}

// branchPoint returns the branch-point of entry id for direction d, creating it if absent.
func (t *Tree) branchPoint(id EntryID, d direction) *BranchPoint {
	e := &t.entries[id]
	if d == reverse {
		if e.Reverse == nil {
			e.Reverse = newBranchPoint()
		}
		return e.Reverse
	}
	if e.Forward == nil {
		e.Forward = newBranchPoint()
	}
	return e.Forward
}

// resetForward replaces the forward branch-point of entry id by an empty one.
func (t *Tree) resetForward(id EntryID) {
	t.entries[id].Forward = newBranchPoint()
}

// child links a child entry for spec into the branch-point of entry id in direction d
// and returns the child's ID.
//
// When sharing, an existing child for an individual glyph, or for an identical range,
// is reused. With ReplaceChildren every call creates a fresh child; an existing child
// for the same individual glyph is unlinked, and ranges are appended.
func (t *Tree) child(id EntryID, d direction, spec ot.GlyphSpec) EntryID {
	bp := t.branchPoint(id, d)
	if !spec.IsRange() {
		if existing, ok := bp.Individual[spec.Glyph()]; ok && !t.policy.replaceChildren {
			return existing
		}
		c := t.newEntry() // bp is heap-allocated and survives growing the arena
		bp.Individual[spec.Glyph()] = c
		return c
	}
	if !t.policy.replaceChildren {
		for _, rb := range bp.Ranges {
			if rb.Range == spec {
				return rb.Entry
			}
		}
	}
	c := t.newEntry()
	bp.Ranges = append(bp.Ranges, RangeBranch{Range: spec, Entry: c})
	return c
}
