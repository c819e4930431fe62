package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLookupTypeString(t *testing.T) {
	if GSubLookupTypeChainingContext.GSubString() != "Chaining" {
		t.Errorf("expected GSubLookupTypeChainingContext to have string 'Chaining', has %s",
			GSubLookupTypeChainingContext.GSubString())
	}
	if GSubLookupTypeReverseChaining.GSubString() != "Reverse" {
		t.Errorf("expected GSubLookupTypeReverseChaining to have string 'Reverse', has %s",
			GSubLookupTypeReverseChaining.GSubString())
	}
	if GSubLookupTypeSingle.GSubString() != "Single" {
		t.Errorf("expected GSubLookupTypeSingle to have string 'Single', has %s",
			GSubLookupTypeSingle.GSubString())
	}
	if GSubLookupType(42).GSubString() != "42" {
		t.Errorf("expected unknown lookup type to print as number, is %s", GSubLookupType(42).GSubString())
	}
}

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ot")
	defer teardown()
	//
	tag := Tag(0x63616c74)
	if tag.String() != "calt" {
		t.Errorf("expected tag 0x63616c74 to be 'calt', is %s", tag.String())
	}
	if T("calt") != tag {
		t.Errorf("expected T(calt) to be 0x63616c74, is %#x", uint32(T("calt")))
	}
	if T("ab").String() != "ab  " || T("kerning").String() != "kern" {
		t.Errorf("expected short tags padded and long tags cut, have %q and %q",
			T("ab").String(), T("kerning").String())
	}
	tag = T("liga")
	if tag.String() != "liga" {
		t.Errorf("expected tag T(liga) to be 'liga', is %s", tag.String())
	}
}

func TestGlyphSpecEquality(t *testing.T) {
	if Glyph(5) != Glyph(5) {
		t.Error("expected equal single glyphs to compare equal")
	}
	if Range(5, 5) == Glyph(5) {
		t.Error("expected range [5-5] to differ from single glyph 5")
	}
	if Range(10, 20) != Range(10, 20) {
		t.Error("expected ranges with same bounds to compare equal")
	}
	if Range(10, 20).Len() != 11 || !Range(10, 20).Contains(20) || Range(10, 20).Contains(21) {
		t.Errorf("unexpected range arithmetic for %v", Range(10, 20))
	}
	if Range(20, 10).Valid() || Range(20, 10).Len() != 0 {
		t.Error("expected inverted range to be invalid and empty")
	}
	if Range(10, 20).String() != "[10-20]" || Glyph(7).String() != "7" {
		t.Errorf("unexpected string forms %s, %s", Range(10, 20), Glyph(7))
	}
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ot")
	defer teardown()
	//
	c1 := CoverageFromGlyphs(30, 10, 20, 10)
	if c1.Len() != 3 {
		t.Fatalf("expected duplicates to be dropped, coverage is %v", c1.Glyphs)
	}
	if inx, ok := c1.Match(20); !ok || inx != 1 {
		t.Errorf("expected glyph 20 to have coverage index 1, has %d/%v", inx, ok)
	}
	if c1.Contains(15) {
		t.Error("expected glyph 15 not to be covered")
	}
	c2 := CoverageFromRanges(Range(10, 14), Range(30, 31))
	if inx, ok := c2.Match(31); !ok || inx != 6 {
		t.Errorf("expected glyph 31 to have coverage index 6, has %d/%v", inx, ok)
	}
	if g, ok := c2.Glyph(5); !ok || g != 30 {
		t.Errorf("expected coverage index 5 to denote glyph 30, is %d/%v", g, ok)
	}
	if _, ok := c2.Glyph(7); ok {
		t.Error("expected coverage index 7 to be out of range")
	}
	specs := c2.Specs()
	if len(specs) != 2 || specs[0] != Range(10, 14) || specs[1] != Range(30, 31) {
		t.Errorf("unexpected specs for range coverage: %v", specs)
	}
}

func TestCollectChainedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ot")
	defer teardown()
	//
	lookups := []Lookup{
		{Type: GSubLookupTypeSingle, Subtables: []LookupSubtable{
			NewSingleSubstList(CoverageFromGlyphs(45), 500),
		}},
		{Type: GSubLookupTypeChainingContext, Subtables: []LookupSubtable{
			{
				Format: 3,
				Payload: GSubLookupPayload{ChainingContextFmt3: &GSubChainingContextFmt3Payload{
					BacktrackCoverages: []Coverage{CoverageFromRanges(Range(48, 57))},
					InputCoverages:     []Coverage{CoverageFromGlyphs(45)},
					LookaheadCoverages: []Coverage{CoverageFromGlyphs(62)},
					Records:            []SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}},
				}},
			},
			{
				Format:   1,
				Coverage: CoverageFromGlyphs(33, 61),
				Payload: GSubLookupPayload{ChainingContextFmt1: &GSubChainingContextFmt1Payload{
					RuleSets: [][]GSubChainedSequenceRule{
						{{Input: []GlyphIndex{61}}},
						{{Input: []GlyphIndex{61}, Lookahead: []GlyphIndex{61}}},
					},
				}},
			},
		}},
	}
	rules := CollectChainedRules(lookups, 0, 1, 5)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	if rules[0].Backtrack[0][0] != Range(48, 57) || rules[0].Steps() != 3 {
		t.Errorf("unexpected format 3 rule: %+v", rules[0])
	}
	if len(rules[1].Input) != 2 || rules[1].Input[0][0] != Glyph(33) || rules[1].Input[1][0] != Glyph(61) {
		t.Errorf("unexpected format 1 rule: %+v", rules[1])
	}
	if rules[2].Input[0][0] != Glyph(61) || len(rules[2].Lookahead) != 1 {
		t.Errorf("unexpected format 1 rule: %+v", rules[2])
	}
}
