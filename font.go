/*
Package fontligatures decides on programming ligatures for text displayed on a grid,
as in terminal emulators and code editors.

Programming fonts implement ligatures like "->" or "!=" as chained contextual
substitutions: every glyph of the sequence is replaced by one other glyph, depending
on its neighbours. This keeps one glyph per cell, but it means that a renderer has to
evaluate the font's rules for every cell. This package compiles the rules of a font
into a lookup tree (see package ligtree) once, and applies it to lines of text.

Rules are taken from a rule-set file (see package ruleset), or are synthesized for fonts
without programming ligatures:

	lig, err := fontligatures.LoadAuto("/path/to/font.ttf")
	glyphs, matches, err := lig.Glyphs("x != y")

We stick to the following definitions:

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Fira Code regular".

▪︎ A "glyph mapper" maps Unicode code points to glyph IDs of a font. For fonts this
is done with the font's cmap table.

# Status

Does not yet contain methods for font collections (*.ttc). Rules are not read from
a font's GSUB table.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontligatures

import (
	"os"

	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/fontligatures/ruleset"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'font.ligatures'
func tracer() tracing.Trace {
	return tracing.Select("font.ligatures")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if loaded from a file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// GlyphIndex maps a code point to a glyph with the font's cmap table. It returns
// false for code points the font does not cover.
//
// GlyphIndex may be called concurrently.
func (f *ScalableFont) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	if f == nil || f.SFNT == nil {
		return 0, false
	}
	// sfnt.Buffer is not goroutine-safe; nil allocates one per call
	g, err := f.SFNT.GlyphIndex(nil, r)
	if err != nil || g == 0 {
		return 0, false
	}
	return ot.GlyphIndex(g), true
}

// FamilyName extracts family and subfamily names from a font's `name` table.
// Returned values are empty if no matching records exist.
func (f *ScalableFont) FamilyName() (family, subfamily string) {
	if f == nil || f.SFNT == nil {
		return
	}
	family, _ = f.SFNT.Name(nil, sfnt.NameIDFamily)
	subfamily, _ = f.SFNT.Name(nil, sfnt.NameIDSubfamily)
	return
}

// GlyphsForText maps a string to glyphs, one glyph per code point after NFC
// normalization. Code points not covered by the font map to glyph 0 (.notdef).
func (f *ScalableFont) GlyphsForText(s string) []ot.GlyphIndex {
	return glyphsFor(f, s)
}

// glyphsFor NFC-normalizes s and maps it to glyphs, one glyph per cell.
func glyphsFor(mapper ruleset.GlyphMapper, s string) []ot.GlyphIndex {
	s = norm.NFC.String(s)
	glyphs := make([]ot.GlyphIndex, 0, len(s))
	for _, r := range s {
		g, ok := mapper.GlyphIndex(r)
		if !ok {
			tracer().Debugf("no glyph for %U", r)
		}
		glyphs = append(glyphs, g)
	}
	return glyphs
}
