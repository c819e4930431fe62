package ligtree

import "github.com/npillmayer/fontligatures/ot"

// Match is a rule found to apply at a position of a glyph sequence.
type Match struct {
	Terminal
	Position int // index of the first input glyph
}

// Match finds the rule to apply at position pos of glyphs.
//
// Glyphs before pos are checked against backtrack context, glyphs from pos on against
// input and lookahead. Every branch reachable is explored, individual children before
// ranges. Of all rules matching, the one with the lowest rule index wins; between
// terminals of the same rule, the longer input wins.
//
// Match does not modify the tree and may be called concurrently.
func (t *Tree) Match(glyphs []ot.GlyphIndex, pos int) (Match, bool) {
	if t == nil || pos < 0 || pos > len(glyphs) {
		return Match{}, false
	}
	return t.match(glyphs, pos, false)
}

// match walks the tree for position pos. With skipEmpty, terminals of rules without
// input do not take part in the selection.
func (t *Tree) match(glyphs []ot.GlyphIndex, pos int, skipEmpty bool) (Match, bool) {
	w := walker{tree: t, glyphs: glyphs, pos: pos, skipEmpty: skipEmpty}
	w.reverse(t.Root(), pos-1)
	if w.best == nil {
		return Match{}, false
	}
	return Match{Terminal: *w.best, Position: pos}, true
}

// Apply runs the tree over a line of glyphs, left to right, and returns the glyphs
// with substitutions applied, together with the matches found.
//
// Like a GSUB lookup, backtrack context sees glyphs already substituted, and processing
// continues after the input sequence of a match. Rules with empty input are reported
// by Match, but are ignored here: they never hide a rule with input. glyphs is not
// modified.
func (t *Tree) Apply(glyphs []ot.GlyphIndex) ([]ot.GlyphIndex, []Match) {
	out := make([]ot.GlyphIndex, len(glyphs))
	copy(out, glyphs)
	if t == nil {
		return out, nil
	}
	var matches []Match
	for pos := 0; pos < len(out); {
		m, ok := t.match(out, pos, true)
		if !ok {
			pos++
			continue
		}
		assertHolds(pos+len(m.Substitutions) <= len(out), "match exceeds end of line")
		for i, s := range m.Substitutions {
			if g, ok := s.Unwrap(); ok {
				out[pos+i] = g
			}
		}
		matches = append(matches, m)
		pos += m.Input
	}
	return out, matches
}

type walker struct {
	tree   *Tree
	glyphs []ot.GlyphIndex
	pos    int
	best   *Terminal

	skipEmpty bool
}

// reverse walks backtrack context, starting at glyph index at and moving left.
// Every entry on the way may start the forward walk at pos.
func (w *walker) reverse(id EntryID, at int) {
	w.forward(id, w.pos)
	e := w.tree.Entry(id)
	if e.Reverse == nil || at < 0 {
		return
	}
	var buf [4]EntryID
	for _, c := range e.Reverse.Candidates(w.glyphs[at], buf[:0]) {
		w.reverse(c, at-1)
	}
}

// forward walks input and lookahead, starting at glyph index at and moving right.
func (w *walker) forward(id EntryID, at int) {
	e := w.tree.Entry(id)
	for i := range e.Terminals {
		w.consider(&e.Terminals[i])
	}
	if e.Forward == nil || at >= len(w.glyphs) {
		return
	}
	var buf [4]EntryID
	for _, c := range e.Forward.Candidates(w.glyphs[at], buf[:0]) {
		w.forward(c, at+1)
	}
}

func (w *walker) consider(term *Terminal) {
	if w.skipEmpty && term.Input == 0 {
		return
	}
	if w.best == nil || term.Rule < w.best.Rule ||
		(term.Rule == w.best.Rule && term.Input > w.best.Input) {
		w.best = term
	}
}
