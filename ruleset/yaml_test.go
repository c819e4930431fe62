package ruleset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// asciiMapper maps ASCII to glyph IDs identical to the code point.
var asciiMapper = MapperFunc(func(r rune) (ot.GlyphIndex, bool) {
	if r < 0x80 {
		return ot.GlyphIndex(r), true
	}
	return 0, false
})

var specComparer = cmp.Comparer(func(a, b ot.GlyphSpec) bool { return a == b })

func TestLoadArrows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ruleset")
	defer teardown()
	//
	rs, err := Load("testdata/arrows.yaml", asciiMapper)
	if err != nil {
		t.Fatal(err)
	}
	if rs.Feature != ot.T("calt") {
		t.Errorf("expected feature 'calt', have %s", rs.Feature)
	}
	if len(rs.Lookups) != 4 {
		t.Fatalf("expected 4 lookups, have %d", len(rs.Lookups))
	}
	want := []ot.ChainedRule{
		{
			Input:     [][]ot.GlyphSpec{{ot.Glyph(45), ot.Glyph(61)}},
			Lookahead: [][]ot.GlyphSpec{{ot.Glyph(62)}},
			Records:   []ot.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}},
		},
		{
			Backtrack: [][]ot.GlyphSpec{{ot.Glyph(900)}},
			Input:     [][]ot.GlyphSpec{{ot.Glyph(62)}},
			Records:   []ot.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 1}},
		},
		{ // collected from lookup 3
			Backtrack: [][]ot.GlyphSpec{{ot.Glyph(35)}},
			Input:     [][]ot.GlyphSpec{{ot.Range(48, 57)}},
			Lookahead: [][]ot.GlyphSpec{},
			Records:   []ot.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 2}},
		},
	}
	if diff := cmp.Diff(want, rs.Rules, specComparer); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
	if err := rs.Validate(); err != nil {
		t.Errorf("expected rule set to be valid, have %v", err)
	}
}

func TestSingleSubstitutesFollowCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ruleset")
	defer teardown()
	//
	rs, err := Parse([]byte(`
lookups:
  - type: single
    subtables:
      - coverage: [20, 10, 15]
        substitutes: [200, 100, 150]
      - coverage: ["30-32", 40]
        substitutes: [300, 301, 302, 400]
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	st := rs.Lookups[0].Subtables
	for g, out := range map[ot.GlyphIndex]ot.GlyphIndex{10: 100, 15: 150, 20: 200} {
		if s := st[0].SubstituteGlyph(g); s != ot.Some(out) {
			t.Errorf("expected %d → %d, have %v", g, out, s)
		}
	}
	for g, out := range map[ot.GlyphIndex]ot.GlyphIndex{30: 300, 32: 302, 40: 400} {
		if s := st[1].SubstituteGlyph(g); s != ot.Some(out) {
			t.Errorf("expected %d → %d, have %v", g, out, s)
		}
	}
	if rs.Feature != ot.T("calt") {
		t.Errorf("expected default feature 'calt', have %s", rs.Feature)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ruleset")
	defer teardown()
	//
	tests := []struct {
		name   string
		yaml   string
		mapper GlyphMapper
		is     error
	}{
		{"lookup type", "lookups: [{type: ligature}]", nil, nil},
		{"no mapper", `rules: [{input: [["U+0041"]]}]`, nil, ErrNoMapper},
		{"unmapped", `rules: [{input: [["U+2192"]]}]`, asciiMapper, ErrUnmapped},
		{"malformed glyph", `rules: [{input: [[abc]]}]`, nil, nil},
		{"glyph too large", `rules: [{input: [[70000]]}]`, nil, nil},
		{"malformed code point", `rules: [{input: [["U+XYZ"]]}]`, asciiMapper, nil},
		{"nested spec", `rules: [{input: [[[1]]]}]`, nil, nil},
		{"delta and substitutes", `lookups: [{type: single, subtables: [{coverage: [1], delta: 1, substitutes: [2]}]}]`, nil, nil},
		{"substitute count", `lookups: [{type: single, subtables: [{coverage: [1, 2], substitutes: [3]}]}]`, nil, nil},
		{"range substitute", `lookups: [{type: single, subtables: [{coverage: [1], substitutes: ["3-4"]}]}]`, nil, nil},
		{"repeated coverage glyph", `lookups: [{type: single, subtables: [{coverage: ["U+003D", "U+003D"], substitutes: [1000, 1001]}]}]`, asciiMapper, ErrDuplicateCoverage},
		{"repeated coverage glyph by ID", `lookups: [{type: single, subtables: [{coverage: [61, "U+003D"], delta: 1}]}]`, asciiMapper, ErrDuplicateCoverage},
		{"chaining without input", `lookups: [{type: chaining, subtables: [{lookahead: [[1]]}]}]`, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), tt.mapper)
			if err == nil {
				t.Fatalf("expected error for %s", tt.yaml)
			}
			t.Logf("error = %v", err)
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected error to wrap %v, have %v", tt.is, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/missing.yaml", nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadedRulesCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ruleset")
	defer teardown()
	//
	rs, err := Load("testdata/arrows.yaml", asciiMapper)
	if err != nil {
		t.Fatal(err)
	}
	tree := ligtree.Build(rs)
	tests := []struct {
		text string
		want []ot.GlyphIndex
	}{
		{"a->b", []ot.GlyphIndex{'a', 900, 901, 'b'}},
		{"=>", []ot.GlyphIndex{900, 901}},
		{"->>", []ot.GlyphIndex{900, 901, '>'}},
		{"#5", []ot.GlyphIndex{'#', 153}},
		{"5", []ot.GlyphIndex{'5'}},
	}
	for _, tt := range tests {
		line := make([]ot.GlyphIndex, 0, len(tt.text))
		for _, r := range tt.text {
			g, _ := asciiMapper.GlyphIndex(r)
			line = append(line, g)
		}
		out, _ := tree.Apply(line)
		if diff := cmp.Diff(tt.want, out); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}
