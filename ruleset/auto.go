package ruleset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/fontligatures/ot"
)

// ZeroWidthSpace is the code point whose glyph replaces the trailing glyphs of an
// automatic ligature.
const ZeroWidthSpace = '\u200b'

// ErrNoZeroWidth is returned by Auto if the font has no glyph for U+200B.
var ErrNoZeroWidth = errors.New("ruleset: font has no zero-width space glyph")

// Ligature is a character sequence to be displayed as a single character.
type Ligature struct {
	Sequence string // e.g., "->"
	Output   rune   // e.g., '→'
}

// DefaultLigatures are the sequences Auto uses if none are given. They use characters
// found in most fonts.
var DefaultLigatures = []Ligature{
	{":=", '≔'},
	{"!=", '≠'},
	{"<=", '≤'},
	{">=", '≥'},
	{"...", '…'},
	{"<-", '←'},
	{"->", '→'},
}

// Auto synthesizes a rule set for fonts without programming ligatures.
//
// For every ligature, the first glyph of the sequence is replaced by the glyph for
// the output character, and the remaining glyphs by the zero-width space glyph. The
// terminal keeps its grid, with the ligature glyph drawn in the first cell.
// Ligatures with characters missing from the font are skipped. Longer sequences get
// precedence over shorter ones.
//
// The rule set uses lookup 0 for the zero-width replacements and lookups 1…n for the
// ligature glyphs.
func Auto(mapper GlyphMapper, ligs []Ligature) (*ot.RuleSet, error) {
	if mapper == nil {
		return nil, ErrNoMapper
	}
	if ligs == nil {
		ligs = DefaultLigatures
	}
	zw, ok := mapper.GlyphIndex(ZeroWidthSpace)
	if !ok {
		return nil, ErrNoZeroWidth
	}
	ordered := make([]Ligature, len(ligs))
	copy(ordered, ligs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len([]rune(ordered[i].Sequence)) > len([]rune(ordered[j].Sequence))
	})
	rs := &ot.RuleSet{Feature: ot.T("calt"), Lookups: make([]ot.Lookup, 1)}
	var trailing []ot.GlyphIndex
	for _, lig := range ordered {
		seq, ok := mapSequence(mapper, lig)
		if !ok {
			tracer().Infof("auto ligatures: skipping %q, font lacks glyphs", lig.Sequence)
			continue
		}
		out, _ := mapper.GlyphIndex(lig.Output)
		inx := uint16(len(rs.Lookups))
		rs.Lookups = append(rs.Lookups, ot.Lookup{
			Type:      ot.GSubLookupTypeSingle,
			Subtables: []ot.LookupSubtable{ot.NewSingleSubstList(ot.CoverageFromGlyphs(seq[0]), out)},
		})
		rule := ot.ChainedRule{
			Input:   make([][]ot.GlyphSpec, len(seq)),
			Records: []ot.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: inx}},
		}
		for i, g := range seq {
			rule.Input[i] = []ot.GlyphSpec{ot.Glyph(g)}
			if i > 0 {
				rule.Records = append(rule.Records, ot.SequenceLookupRecord{
					SequenceIndex: uint16(i), LookupListIndex: 0,
				})
				trailing = append(trailing, g)
			}
		}
		rs.Rules = append(rs.Rules, rule)
	}
	cov := ot.CoverageFromGlyphs(trailing...)
	subst := make([]ot.GlyphIndex, cov.Len())
	for i := range subst {
		subst[i] = zw
	}
	rs.Lookups[0] = ot.Lookup{
		Type:      ot.GSubLookupTypeSingle,
		Subtables: []ot.LookupSubtable{ot.NewSingleSubstList(cov, subst...)},
	}
	tracer().Infof("auto ligatures: %d of %d sequences available", len(rs.Rules), len(ligs))
	return rs, nil
}

// mapSequence maps the characters of a ligature, including its output.
func mapSequence(mapper GlyphMapper, lig Ligature) ([]ot.GlyphIndex, bool) {
	if _, ok := mapper.GlyphIndex(lig.Output); !ok {
		return nil, false
	}
	runes := []rune(lig.Sequence)
	if len(runes) < 2 {
		return nil, false
	}
	seq := make([]ot.GlyphIndex, len(runes))
	for i, r := range runes {
		g, ok := mapper.GlyphIndex(r)
		if !ok {
			return nil, false
		}
		seq[i] = g
	}
	return seq, true
}

func (l Ligature) String() string {
	return fmt.Sprintf("%s→%c", l.Sequence, l.Output)
}
