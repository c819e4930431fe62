package ligtree

import "github.com/npillmayer/fontligatures/ot"

// --- Test fixtures ---------------------------------------------------------

func singleLookup(subtables ...ot.LookupSubtable) ot.Lookup {
	return ot.Lookup{Type: ot.GSubLookupTypeSingle, Subtables: subtables}
}

func record(seq, lookup uint16) ot.SequenceLookupRecord {
	return ot.SequenceLookupRecord{SequenceIndex: seq, LookupListIndex: lookup}
}

func at(specs ...ot.GlyphSpec) []ot.GlyphSpec {
	return specs
}

func glyphs(gg ...ot.GlyphIndex) []ot.GlyphIndex {
	return gg
}

func some(g ot.GlyphIndex) ot.Option[ot.GlyphIndex] {
	return ot.Some(g)
}

func null() ot.Option[ot.GlyphIndex] {
	return ot.None[ot.GlyphIndex]()
}

// offsetAndPartialLookups returns
//
//	lookup 0: [10-20] → [11-21]
//	lookup 1: [15-17] → 100, 101, 102
func offsetAndPartialLookups() []ot.Lookup {
	return []ot.Lookup{
		singleLookup(ot.NewSingleSubstDelta(ot.CoverageFromRanges(ot.Range(10, 20)), 1)),
		singleLookup(ot.NewSingleSubstList(ot.CoverageFromRanges(ot.Range(15, 17)), 100, 101, 102)),
	}
}

// arrowRuleSet resembles the way programming fonts implement "->": the hyphen is
// replaced by a spacer if followed by '>', and '>' by the arrow glyph if preceded by
// the spacer.
func arrowRuleSet() *ot.RuleSet {
	const hyphen, greater, spacer, arrow = 45, 62, 900, 901
	return &ot.RuleSet{
		Feature: ot.T("calt"),
		Lookups: []ot.Lookup{
			singleLookup(ot.NewSingleSubstList(ot.CoverageFromGlyphs(hyphen), spacer)),
			singleLookup(ot.NewSingleSubstList(ot.CoverageFromGlyphs(greater), arrow)),
		},
		Rules: []ot.ChainedRule{
			{
				Input:     [][]ot.GlyphSpec{at(ot.Glyph(hyphen))},
				Lookahead: [][]ot.GlyphSpec{at(ot.Glyph(greater))},
				Records:   []ot.SequenceLookupRecord{record(0, 0)},
			},
			{
				Backtrack: [][]ot.GlyphSpec{at(ot.Glyph(spacer))},
				Input:     [][]ot.GlyphSpec{at(ot.Glyph(greater))},
				Records:   []ot.SequenceLookupRecord{record(0, 1)},
			},
		},
	}
}
