package ot

/*
From https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2:

OpenType Layout consists of five tables: the Glyph Substitution table (GSUB),
the Glyph Positioning table (GPOS), the Baseline table (BASE),
the Justification table (JSTF), and the Glyph Definition table (GDEF).
These tables use some of the same data formats.

Of these, only GSUB data is modelled here, as far as ligature compilation needs it.
*/

import (
	"sort"
	"strconv"
)

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, indicates that the lookup table structure is followed by a MarkFilteringSet field.
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

// GSubLookupType is a type identifier for GSUB lookup records.
type GSubLookupType uint16

// GSUB lookup types
const (
	GSubLookupTypeSingle          GSubLookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple        GSubLookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate       GSubLookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature        GSubLookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext         GSubLookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext GSubLookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtensionSubs   GSubLookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChaining GSubLookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

const gsubLookupTypeNames = "Single|Multiple|Alternate|Ligature|Context|Chaining|Extension|Reverse"

var gsubLookupTypeInx = [...]int{0, 7, 16, 26, 35, 43, 52, 62, 70}

// GSubString interprets a lookup type as a GSUB table type.
func (lt GSubLookupType) GSubString() string {
	if lt >= GSubLookupTypeSingle && lt <= GSubLookupTypeReverseChaining {
		return gsubLookupTypeNames[gsubLookupTypeInx[lt-1] : gsubLookupTypeInx[lt]-1]
	}
	return strconv.Itoa(int(lt))
}

func (lt GSubLookupType) String() string {
	return lt.GSubString()
}

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// --- Coverage table module -------------------------------------------------

// Coverage denotes an indexed set of glyphs.
// Each LookupSubtable (except an Extension LookupType subtable) in a lookup references
// a Coverage table (Coverage), which specifies all the glyphs affected by a
// substitution or positioning operation described in the subtable.
// If a glyph does not appear in a Coverage table, the client can skip that subtable and
// move immediately to the next subtable.
//
// A coverage either lists glyphs (format 1, coverage index = position in Glyphs) or
// range records (format 2, coverage index = StartIndex + offset into the range).
// Glyphs of a format 1 coverage have to be sorted.
type Coverage struct {
	Glyphs []GlyphIndex
	Ranges []RangeRecord
}

// RangeRecord is a format 2 coverage entry.
type RangeRecord struct {
	First, Last GlyphIndex
	StartIndex  uint16
}

// CoverageFromGlyphs creates a format 1 coverage. Glyphs will be sorted and duplicates
// dropped.
func CoverageFromGlyphs(glyphs ...GlyphIndex) Coverage {
	gg := make([]GlyphIndex, len(glyphs))
	copy(gg, glyphs)
	sort.Slice(gg, func(i, j int) bool { return gg[i] < gg[j] })
	n := 0
	for i, g := range gg {
		if i == 0 || g != gg[n-1] {
			gg[n] = g
			n++
		}
	}
	return Coverage{Glyphs: gg[:n]}
}

// CoverageFromRanges creates a format 2 coverage from closed ranges. Coverage indices
// are assigned consecutively, in the order the ranges are given.
func CoverageFromRanges(ranges ...GlyphSpec) Coverage {
	c := Coverage{Ranges: make([]RangeRecord, 0, len(ranges))}
	inx := 0
	for _, r := range ranges {
		c.Ranges = append(c.Ranges, RangeRecord{First: r.Low(), Last: r.High(), StartIndex: uint16(inx)})
		inx += r.Len()
	}
	return c
}

// Match returns the Coverage Index for a glyph, and true if present.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	if len(c.Glyphs) > 0 {
		i := sort.Search(len(c.Glyphs), func(i int) bool { return c.Glyphs[i] >= g })
		if i < len(c.Glyphs) && c.Glyphs[i] == g {
			return i, true
		}
		return 0, false
	}
	for _, r := range c.Ranges {
		if r.First <= g && g <= r.Last {
			return int(r.StartIndex) + int(g-r.First), true
		}
	}
	return 0, false
}

// Contains reports whether a glyph is present in the coverage.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.Match(g)
	return ok
}

// Len returns the number of glyphs covered.
func (c Coverage) Len() int {
	if len(c.Glyphs) > 0 {
		return len(c.Glyphs)
	}
	n := 0
	for _, r := range c.Ranges {
		if r.Last >= r.First {
			n += int(r.Last-r.First) + 1
		}
	}
	return n
}

// Glyph returns the glyph with coverage index inx. It is the inverse of Match.
func (c Coverage) Glyph(inx int) (GlyphIndex, bool) {
	if len(c.Glyphs) > 0 {
		if inx < 0 || inx >= len(c.Glyphs) {
			return 0, false
		}
		return c.Glyphs[inx], true
	}
	for _, r := range c.Ranges {
		start := int(r.StartIndex)
		if inx >= start && inx <= start+int(r.Last)-int(r.First) {
			return r.First + GlyphIndex(inx-start), true
		}
	}
	return 0, false
}

// Specs returns the coverage as a candidate set for a rule position: one single
// glyph spec per glyph of a format 1 coverage, one range spec per range record.
func (c Coverage) Specs() []GlyphSpec {
	if len(c.Glyphs) > 0 {
		return GlyphSpecs(c.Glyphs...)
	}
	specs := make([]GlyphSpec, 0, len(c.Ranges))
	for _, r := range c.Ranges {
		specs = append(specs, Range(r.First, r.Last))
	}
	return specs
}
