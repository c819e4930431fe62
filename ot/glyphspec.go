package ot

import "fmt"

// GlyphSpec is a candidate at one position of a contextual rule: either a single
// glyph ID or a closed range of glyph IDs.
//
// GlyphSpec is comparable and may be used as a map key. A range is never equal to a
// single glyph, even if it spans exactly one glyph.
type GlyphSpec struct {
	low, high GlyphIndex
	isRange   bool
}

// Glyph creates a GlyphSpec for a single glyph.
func Glyph(g GlyphIndex) GlyphSpec {
	return GlyphSpec{low: g, high: g}
}

// Range creates a GlyphSpec for the closed range [lo, hi]. Clients are expected to
// pass lo ≤ hi; inverted ranges are reported by RuleSet.Validate and match nothing.
func Range(lo, hi GlyphIndex) GlyphSpec {
	return GlyphSpec{low: lo, high: hi, isRange: true}
}

// IsRange reports whether s denotes a range of glyphs.
func (s GlyphSpec) IsRange() bool {
	return s.isRange
}

// Glyph returns the glyph of a single-glyph spec. For ranges it returns the low bound.
func (s GlyphSpec) Glyph() GlyphIndex {
	return s.low
}

// Low returns the lower bound (inclusive).
func (s GlyphSpec) Low() GlyphIndex {
	return s.low
}

// High returns the upper bound (inclusive).
func (s GlyphSpec) High() GlyphIndex {
	return s.high
}

// Len returns the number of glyphs covered by s.
func (s GlyphSpec) Len() int {
	if s.high < s.low {
		return 0
	}
	return int(s.high) - int(s.low) + 1
}

// Contains reports whether glyph g is matched by s.
func (s GlyphSpec) Contains(g GlyphIndex) bool {
	return s.low <= g && g <= s.high
}

// Valid is false for inverted ranges.
func (s GlyphSpec) Valid() bool {
	return s.low <= s.high
}

func (s GlyphSpec) String() string {
	if s.isRange {
		return fmt.Sprintf("[%d-%d]", s.low, s.high)
	}
	return fmt.Sprintf("%d", s.low)
}

// GlyphSpecs creates single-glyph specs for a list of glyphs.
func GlyphSpecs(glyphs ...GlyphIndex) []GlyphSpec {
	specs := make([]GlyphSpec, len(glyphs))
	for i, g := range glyphs {
		specs[i] = Glyph(g)
	}
	return specs
}
