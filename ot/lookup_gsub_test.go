package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSingleSubstGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ot")
	defer teardown()
	//
	fmt1 := NewSingleSubstDelta(CoverageFromGlyphs(65, 66), 1)
	if g := fmt1.SubstituteGlyph(65); g.Or(0) != 66 {
		t.Errorf("expected 65 → 66, have %v", g)
	}
	if g := fmt1.SubstituteGlyph(67); g.IsSome() {
		t.Errorf("expected 67 not to be substituted, have %v", g)
	}
	fmt2 := NewSingleSubstList(CoverageFromRanges(Range(15, 17)), 100, 101, 102)
	if g := fmt2.SubstituteGlyph(16); g.Or(0) != 101 {
		t.Errorf("expected 16 → 101, have %v", g)
	}
	neg := NewSingleSubstDelta(CoverageFromGlyphs(10), -3)
	if g := neg.SubstituteGlyph(10); g.Or(0) != 7 {
		t.Errorf("expected negative delta to map 10 → 7, have %v", g)
	}
	other := LookupSubtable{Coverage: CoverageFromGlyphs(65)}
	if g := other.SubstituteGlyph(65); g.IsSome() {
		t.Errorf("expected subtable without single payload not to substitute, have %v", g)
	}
}

func TestSingleSubstRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ot")
	defer teardown()
	//
	full := NewSingleSubstDelta(CoverageFromRanges(Range(10, 20)), 1)
	m := full.SubstituteRange(Range(10, 20))
	if !m.Complete() || len(m) != 11 {
		t.Fatalf("expected complete mapping of 11 glyphs, have %v", m)
	}
	if m[0].Input != Glyph(10) || m[0].Output.Or(0) != 11 {
		t.Errorf("expected 10 → 11, have %v", m[0])
	}
	partial := NewSingleSubstList(CoverageFromRanges(Range(15, 17)), 100, 101, 102)
	m = partial.SubstituteRange(Range(10, 20))
	t.Logf("partial mapping = %v", m)
	if m.Complete() || !m.Partial() {
		t.Fatalf("expected partial mapping, have %v", m)
	}
	expected := SubstMappings{
		{Input: Range(10, 14), Output: None[GlyphIndex]()},
		{Input: Glyph(15), Output: Some[GlyphIndex](100)},
		{Input: Glyph(16), Output: Some[GlyphIndex](101)},
		{Input: Glyph(17), Output: Some[GlyphIndex](102)},
		{Input: Range(18, 20), Output: None[GlyphIndex]()},
	}
	if len(m) != len(expected) {
		t.Fatalf("expected %v, have %v", expected, m)
	}
	for i := range expected {
		if m[i] != expected[i] {
			t.Errorf("mapping %d: expected %v, have %v", i, expected[i], m[i])
		}
	}
	m = partial.SubstituteRange(Range(17, 18))
	if len(m) != 2 || m[1].Input != Glyph(18) || m[1].Output.IsSome() {
		t.Errorf("expected single unsubstituted glyph 18 to be reported individually, have %v", m)
	}
	none := partial.SubstituteRange(Range(30, 40))
	if none.Partial() || len(none) != 1 || none[0].Input != Range(30, 40) {
		t.Errorf("expected one unsubstituted run, have %v", none)
	}
}
