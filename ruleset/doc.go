/*
Package ruleset creates rule sets for ligature compilation without an OpenType parser.

Rule sets are read from YAML files, which is convenient for test fixtures and for
users who want to add ligatures to a font which lacks them, or they are synthesized
for a list of well-known programming ligatures (see Auto).

A rule-set file names the feature, a lookup list, and rules. Rules may be given
explicitly, or be collected from chaining context lookups listed under 'chains':

	feature: calt
	lookups:
	  - type: single
	    subtables:
	      - coverage: [45]
	        substitutes: [900]
	  - type: single
	    subtables:
	      - coverage: ["U+003E"]
	        substitutes: [901]
	rules:
	  - input: [[45]]
	    lookahead: [["U+003E"]]
	    records: [{sequence: 0, lookup: 0}]

Glyph specs are glyph IDs, ranges of glyph IDs written as "lo-hi", or code points
written as "U+XXXX", which are resolved with a GlyphMapper.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ruleset

import (
	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.ruleset'
func tracer() tracing.Trace {
	return tracing.Select("font.ruleset")
}

// GlyphMapper maps code points to glyphs, usually through a font's cmap table.
type GlyphMapper interface {
	GlyphIndex(r rune) (ot.GlyphIndex, bool)
}

// MapperFunc adapts a function to the GlyphMapper interface.
type MapperFunc func(r rune) (ot.GlyphIndex, bool)

// GlyphIndex calls f(r).
func (f MapperFunc) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	return f(r)
}
