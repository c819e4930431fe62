package fontligatures

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/fontligatures/ruleset"
)

// ErrNoMapper is returned if Ligatures are created without a glyph mapper.
var ErrNoMapper = errors.New("fontligatures: no glyph mapper")

// Ligatures is a compiled rule set together with the glyph mapper for its font.
// It is read-only after creation and may be shared between goroutines.
type Ligatures struct {
	mapper ruleset.GlyphMapper
	rules  *ot.RuleSet
	tree   *ligtree.Tree
}

// New validates rs and compiles it. Options are handed to ligtree.Build.
// A rule set with critical or major errors is rejected with an *ot.ValidationError.
func New(mapper ruleset.GlyphMapper, rs *ot.RuleSet, opts ...ligtree.Option) (*Ligatures, error) {
	if mapper == nil {
		return nil, ErrNoMapper
	}
	if rs == nil {
		rs = &ot.RuleSet{Feature: ot.T("calt")}
	}
	if err := rs.Validate(); err != nil {
		tracer().Errorf("rejecting rule set %s: %v", rs.Feature, err)
		return nil, err
	}
	lig := &Ligatures{
		mapper: mapper,
		rules:  rs,
		tree:   ligtree.Build(rs, opts...),
	}
	stats := lig.tree.Stats()
	tracer().Infof("ligatures for %s: %d rules, %d of %d entries reachable", rs.Feature,
		lig.tree.Rules(), stats.Reachable, stats.Entries)
	return lig, nil
}

// Load loads a font and a rule-set file for it. Code points in the rule-set file are
// mapped with the font's cmap.
func Load(fontPath, rulesPath string, opts ...ligtree.Option) (*Ligatures, error) {
	font, err := LoadOpenTypeFont(fontPath)
	if err != nil {
		return nil, err
	}
	rs, err := ruleset.Load(rulesPath, font)
	if err != nil {
		return nil, err
	}
	return New(font, rs, opts...)
}

// LoadAuto loads a font and synthesizes rules for ruleset.DefaultLigatures.
func LoadAuto(fontPath string, opts ...ligtree.Option) (*Ligatures, error) {
	font, err := LoadOpenTypeFont(fontPath)
	if err != nil {
		return nil, err
	}
	rs, err := ruleset.Auto(font, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontPath, err)
	}
	return New(font, rs, opts...)
}

// Glyphs maps text to glyphs and applies the ligature rules to them. It returns the
// glyphs to render, one per cell, and the rule matches found.
func (lig *Ligatures) Glyphs(text string) ([]ot.GlyphIndex, []ligtree.Match, error) {
	if lig == nil || lig.mapper == nil {
		return nil, nil, ErrNoMapper
	}
	glyphs, matches := lig.tree.Apply(glyphsFor(lig.mapper, text))
	return glyphs, matches, nil
}

// Tree returns the compiled lookup tree.
func (lig *Ligatures) Tree() *ligtree.Tree {
	return lig.tree
}

// RuleSet returns the rule set the tree has been compiled from.
func (lig *Ligatures) RuleSet() *ot.RuleSet {
	return lig.rules
}

// Mapper returns the glyph mapper, usually a *ScalableFont.
func (lig *Ligatures) Mapper() ruleset.GlyphMapper {
	return lig.mapper
}
