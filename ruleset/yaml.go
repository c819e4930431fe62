package ruleset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/fontligatures/ot"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoMapper is returned for code point specs if no GlyphMapper has been supplied.
	ErrNoMapper = errors.New("ruleset: code point given, but no glyph mapper")
	// ErrUnmapped is returned for code points which the mapper does not know.
	ErrUnmapped = errors.New("ruleset: code point not mapped to a glyph")
	// ErrDuplicateCoverage is returned for glyphs listed twice in a single substitution
	// coverage.
	ErrDuplicateCoverage = errors.New("ruleset: glyph repeated in coverage")
)

// --- File format -----------------------------------------------------------

type fileDecl struct {
	Feature string       `yaml:"feature"`
	Lookups []lookupDecl `yaml:"lookups"`
	Chains  []int        `yaml:"chains"`
	Rules   []ruleDecl   `yaml:"rules"`
}

type lookupDecl struct {
	Type      string         `yaml:"type"`
	Subtables []subtableDecl `yaml:"subtables"`
}

// subtableDecl is either a single substitution (coverage plus delta or substitutes)
// or a chaining context subtable in coverage format (backtrack, input, lookahead).
type subtableDecl struct {
	Coverage    []specDecl `yaml:"coverage"`
	Delta       *int16     `yaml:"delta"`
	Substitutes []specDecl `yaml:"substitutes"`
	ruleDecl    `yaml:",inline"`
}

type ruleDecl struct {
	Backtrack [][]specDecl `yaml:"backtrack"`
	Input     [][]specDecl `yaml:"input"`
	Lookahead [][]specDecl `yaml:"lookahead"`
	Records   []recordDecl `yaml:"records"`
}

type recordDecl struct {
	Sequence uint16 `yaml:"sequence"`
	Lookup   uint16 `yaml:"lookup"`
}

// specDecl is a glyph spec as written in a file. Resolution is deferred until a
// mapper is at hand.
type specDecl struct {
	text string
	line int
}

// UnmarshalYAML accepts integer and string scalars.
func (s *specDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: glyph spec has to be a scalar", node.Line)
	}
	s.text, s.line = strings.TrimSpace(node.Value), node.Line
	return nil
}

// --- Loading ---------------------------------------------------------------

// Load reads a rule-set file. mapper may be nil if the file does not use code points.
func Load(path string, mapper GlyphMapper) (*ot.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs, err := Parse(data, mapper)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded rule set %s from %s: %d lookups, %d rules",
		rs.Feature, path, len(rs.Lookups), len(rs.Rules))
	return rs, nil
}

// Parse decodes a rule set from YAML. Explicit rules come first, followed by the rules
// of the chaining lookups listed under 'chains'.
//
// Parse checks the syntax of the file only. Clients should call Validate on the result
// before compiling it.
func Parse(data []byte, mapper GlyphMapper) (*ot.RuleSet, error) {
	var decl fileDecl
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, err
	}
	rv := resolver{mapper: mapper}
	rs := &ot.RuleSet{Feature: ot.T(decl.Feature)}
	if decl.Feature == "" {
		rs.Feature = ot.T("calt")
	}
	for i, ld := range decl.Lookups {
		l, err := rv.lookup(ld)
		if err != nil {
			return nil, fmt.Errorf("lookup %d: %w", i, err)
		}
		rs.Lookups = append(rs.Lookups, l)
	}
	for i, rd := range decl.Rules {
		r, err := rv.rule(rd)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rs.Rules = append(rs.Rules, r)
	}
	rs.Rules = append(rs.Rules, ot.CollectChainedRules(rs.Lookups, decl.Chains...)...)
	return rs, nil
}

// --- Resolving glyph specs -------------------------------------------------

type resolver struct {
	mapper GlyphMapper
}

func (rv resolver) lookup(ld lookupDecl) (ot.Lookup, error) {
	var l ot.Lookup
	switch strings.ToLower(ld.Type) {
	case "single":
		l.Type = ot.GSubLookupTypeSingle
	case "chaining", "chained":
		l.Type = ot.GSubLookupTypeChainingContext
	default:
		return l, fmt.Errorf("unsupported lookup type %q", ld.Type)
	}
	for j, sd := range ld.Subtables {
		var st ot.LookupSubtable
		var err error
		if l.Type == ot.GSubLookupTypeSingle {
			st, err = rv.singleSubtable(sd)
		} else {
			st, err = rv.chainingSubtable(sd)
		}
		if err != nil {
			return l, fmt.Errorf("subtable %d: %w", j, err)
		}
		l.Subtables = append(l.Subtables, st)
	}
	return l, nil
}

// singleSubtable creates format 1 for a delta and format 2 for a list of substitutes.
// Substitutes pair up with coverage glyphs in the order written.
func (rv resolver) singleSubtable(sd subtableDecl) (ot.LookupSubtable, error) {
	cov, err := rv.specs(sd.Coverage)
	if err != nil {
		return ot.LookupSubtable{}, err
	}
	if i, dup := repeatedGlyph(cov); dup {
		return ot.LookupSubtable{}, fmt.Errorf("line %d: %w: %s", sd.Coverage[i].line,
			ErrDuplicateCoverage, sd.Coverage[i].text)
	}
	if sd.Delta != nil {
		if len(sd.Substitutes) > 0 {
			return ot.LookupSubtable{}, errors.New("both delta and substitutes given")
		}
		return ot.NewSingleSubstDelta(coverage(cov), *sd.Delta), nil
	}
	subst := make([]ot.GlyphIndex, len(sd.Substitutes))
	for i, s := range sd.Substitutes {
		spec, err := rv.spec(s)
		if err != nil {
			return ot.LookupSubtable{}, err
		}
		if spec.IsRange() {
			return ot.LookupSubtable{}, fmt.Errorf("line %d: substitute has to be a single glyph", s.line)
		}
		subst[i] = spec.Glyph()
	}
	if !hasRanges(cov) {
		// format 1 coverages are sorted by glyph, so substitutes have to follow
		if len(subst) != len(cov) {
			return ot.LookupSubtable{}, fmt.Errorf("%d substitutes for %d coverage glyphs",
				len(subst), len(cov))
		}
		inx := make([]int, len(cov))
		for i := range inx {
			inx[i] = i
		}
		sort.SliceStable(inx, func(i, j int) bool { return cov[inx[i]].Glyph() < cov[inx[j]].Glyph() })
		glyphs := make([]ot.GlyphIndex, len(cov))
		sorted := make([]ot.GlyphIndex, len(cov))
		for i, k := range inx {
			glyphs[i], sorted[i] = cov[k].Glyph(), subst[k]
		}
		return ot.NewSingleSubstList(ot.Coverage{Glyphs: glyphs}, sorted...), nil
	}
	return ot.NewSingleSubstList(coverage(cov), subst...), nil
}

func (rv resolver) chainingSubtable(sd subtableDecl) (ot.LookupSubtable, error) {
	r, err := rv.rule(sd.ruleDecl)
	if err != nil {
		return ot.LookupSubtable{}, err
	}
	if len(r.Input) == 0 {
		return ot.LookupSubtable{}, errors.New("chaining subtable without input")
	}
	coverages := func(positions [][]ot.GlyphSpec) []ot.Coverage {
		covs := make([]ot.Coverage, len(positions))
		for i, p := range positions {
			covs[i] = coverage(p)
		}
		return covs
	}
	p := &ot.GSubChainingContextFmt3Payload{
		BacktrackCoverages: coverages(r.Backtrack),
		InputCoverages:     coverages(r.Input),
		LookaheadCoverages: coverages(r.Lookahead),
		Records:            r.Records,
	}
	return ot.LookupSubtable{
		Format:   3,
		Coverage: p.InputCoverages[0],
		Payload:  ot.GSubLookupPayload{ChainingContextFmt3: p},
	}, nil
}

func (rv resolver) rule(rd ruleDecl) (ot.ChainedRule, error) {
	var r ot.ChainedRule
	var err error
	if r.Backtrack, err = rv.positions(rd.Backtrack); err != nil {
		return r, fmt.Errorf("backtrack: %w", err)
	}
	if r.Input, err = rv.positions(rd.Input); err != nil {
		return r, fmt.Errorf("input: %w", err)
	}
	if r.Lookahead, err = rv.positions(rd.Lookahead); err != nil {
		return r, fmt.Errorf("lookahead: %w", err)
	}
	for _, rec := range rd.Records {
		r.Records = append(r.Records, ot.SequenceLookupRecord{
			SequenceIndex:   rec.Sequence,
			LookupListIndex: rec.Lookup,
		})
	}
	return r, nil
}

func (rv resolver) positions(decl [][]specDecl) ([][]ot.GlyphSpec, error) {
	if len(decl) == 0 {
		return nil, nil
	}
	pos := make([][]ot.GlyphSpec, len(decl))
	for i, d := range decl {
		specs, err := rv.specs(d)
		if err != nil {
			return nil, err
		}
		pos[i] = specs
	}
	return pos, nil
}

func (rv resolver) specs(decl []specDecl) ([]ot.GlyphSpec, error) {
	specs := make([]ot.GlyphSpec, len(decl))
	for i, d := range decl {
		spec, err := rv.spec(d)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

// spec resolves "65", "10-20", "U+0041" and "U+0030-U+0039". Ranges are not checked
// for inversion here; this is left to validation.
func (rv resolver) spec(d specDecl) (ot.GlyphSpec, error) {
	lo, hi, isRange := strings.Cut(d.text, "-")
	low, err := rv.glyph(lo, d.line)
	if err != nil || !isRange {
		return ot.Glyph(low), err
	}
	high, err := rv.glyph(hi, d.line)
	if err != nil {
		return ot.GlyphSpec{}, err
	}
	return ot.Range(low, high), nil
}

func (rv resolver) glyph(s string, line int) (ot.GlyphIndex, error) {
	s = strings.TrimSpace(s)
	if cp, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		n, err := strconv.ParseUint(cp, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("line %d: malformed code point %q", line, s)
		}
		if rv.mapper == nil {
			return 0, fmt.Errorf("line %d: %w", line, ErrNoMapper)
		}
		g, ok := rv.mapper.GlyphIndex(rune(n))
		if !ok {
			return 0, fmt.Errorf("line %d: %w: %s", line, ErrUnmapped, s)
		}
		return g, nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("line %d: malformed glyph ID %q", line, s)
	}
	return ot.GlyphIndex(n), nil
}

// --- Coverages -------------------------------------------------------------

// repeatedGlyph returns the position of the first single glyph which has been listed
// before. Code points may map to the same glyph as a glyph ID.
func repeatedGlyph(specs []ot.GlyphSpec) (int, bool) {
	seen := make(map[ot.GlyphIndex]struct{}, len(specs))
	for i, s := range specs {
		if s.IsRange() {
			continue
		}
		if _, ok := seen[s.Glyph()]; ok {
			return i, true
		}
		seen[s.Glyph()] = struct{}{}
	}
	return 0, false
}

func hasRanges(specs []ot.GlyphSpec) bool {
	for _, s := range specs {
		if s.IsRange() {
			return true
		}
	}
	return false
}

// coverage creates a format 1 coverage for single glyphs, and a format 2 coverage
// otherwise. Format 2 keeps the order of specs for coverage indices.
func coverage(specs []ot.GlyphSpec) ot.Coverage {
	if !hasRanges(specs) {
		glyphs := make([]ot.GlyphIndex, len(specs))
		for i, s := range specs {
			glyphs[i] = s.Glyph()
		}
		return ot.CoverageFromGlyphs(glyphs...)
	}
	return ot.CoverageFromRanges(specs...)
}
