/*
Package ligtree compiles chained contextual substitution rules into a lookup tree,
which a renderer walks glyph by glyph to decide on ligatures.

Programming fonts (Fira Code, JetBrains Mono, Cascadia, …) do not use GSUB ligature
lookups for sequences like "=>" or "!=". Instead they implement them as chained
contextual rules in the 'calt' feature: every glyph of the sequence is replaced by a
single substitution, subject to what precedes (backtrack) and follows (lookahead).
A terminal emulator has to decide for every cell position whether such a rule fires,
and it has to do so fast.

Build merges all rules of a rule set into one tree. Every tree entry has up to two
branch-points: a forward one for input and lookahead glyphs, and a reverse one for
backtrack glyphs. A branch-point dispatches on individual glyph IDs first, and on
glyph ranges second. Rules with a common prefix share entries. At the end of every
rule's path, a Terminal records the output glyphs to use for the input positions.

	tree := ligtree.Build(rs)
	out, matches := tree.Apply(glyphs)

The tree is kept in an arena and entries are referenced by EntryID. Once built, a tree
is not modified any more and may be shared between goroutines.

# Sharing policies

Older implementations of this algorithm re-initialize an entry's forward branch-point
each time it is extended with input glyphs, and they create a fresh child whenever
an individual glyph is inserted. Both behaviours lose subtrees contributed by earlier
rules. Build shares entries by default; options ResetForwardBranches and
ReplaceChildren switch back to the old behaviour for conformance testing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ligtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.ligtree'
func tracer() tracing.Trace {
	return tracing.Select("font.ligtree")
}

// assertHolds panics when condition is false.
func assertHolds(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
