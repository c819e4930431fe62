package ligtree

import (
	"testing"

	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionAtFirstLookupWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ligtree")
	defer teardown()
	//
	lookups := []ot.Lookup{
		singleLookup(ot.NewSingleSubstDelta(ot.CoverageFromGlyphs(65), 1)),
		singleLookup(ot.NewSingleSubstList(ot.CoverageFromGlyphs(65), 99)),
		{Type: ot.GSubLookupTypeLigature},
	}
	tests := []struct {
		name    string
		records []ot.SequenceLookupRecord
		seq     int
		g       ot.GlyphIndex
		want    ot.Option[ot.GlyphIndex]
	}{
		{"record order", []ot.SequenceLookupRecord{record(0, 1), record(0, 0)}, 0, 65, some(99)},
		{"record order reversed", []ot.SequenceLookupRecord{record(0, 0), record(0, 1)}, 0, 65, some(66)},
		{"other position", []ot.SequenceLookupRecord{record(1, 0)}, 0, 65, null()},
		{"not covered", []ot.SequenceLookupRecord{record(0, 0), record(0, 1)}, 0, 70, null()},
		{"non-single lookup skipped", []ot.SequenceLookupRecord{record(0, 2), record(0, 0)}, 0, 65, some(66)},
		{"no records", nil, 0, 65, null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubstitutionAt(tt.records, lookups, tt.seq, tt.g))
		})
	}
}

func TestSubstitutionAtSubtableOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ligtree")
	defer teardown()
	//
	lookups := []ot.Lookup{
		singleLookup(
			ot.NewSingleSubstList(ot.CoverageFromGlyphs(20), 200),
			ot.NewSingleSubstList(ot.CoverageFromGlyphs(10, 20), 100, 101),
		),
	}
	records := []ot.SequenceLookupRecord{record(0, 0)}
	assert.Equal(t, some(200), SubstitutionAt(records, lookups, 0, 20))
	assert.Equal(t, some(100), SubstitutionAt(records, lookups, 0, 10))
}

func TestRangeSubstitutionSplitting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ligtree")
	defer teardown()
	//
	lookups := offsetAndPartialLookups()
	records := []ot.SequenceLookupRecord{record(1, 0), record(0, 1)}
	r := ot.Range(10, 20)
	//
	m := RangeSubstitutionAt(records, lookups, 0, r)
	tracer().Infof("position 0: %v", m)
	require.Len(t, m, 5)
	assert.Equal(t, ot.SubstMapping{Input: ot.Range(10, 14), Output: null()}, m[0])
	assert.Equal(t, ot.SubstMapping{Input: ot.Glyph(15), Output: some(100)}, m[1])
	assert.Equal(t, ot.SubstMapping{Input: ot.Glyph(16), Output: some(101)}, m[2])
	assert.Equal(t, ot.SubstMapping{Input: ot.Glyph(17), Output: some(102)}, m[3])
	assert.Equal(t, ot.SubstMapping{Input: ot.Range(18, 20), Output: null()}, m[4])
	//
	m = RangeSubstitutionAt(records, lookups, 1, r)
	require.Len(t, m, 11)
	assert.True(t, m.Complete())
	for i, sm := range m {
		g := ot.GlyphIndex(10 + i)
		assert.Equal(t, ot.Glyph(g), sm.Input)
		assert.Equal(t, some(g+1), sm.Output)
	}
	//
	assert.Nil(t, RangeSubstitutionAt(records, lookups, 2, r))
	assert.Nil(t, RangeSubstitutionAt(records, lookups, 0, ot.Range(30, 40)))
}

func TestRangeSubstitutionMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ligtree")
	defer teardown()
	//
	lookups := offsetAndPartialLookups()
	r := ot.Range(10, 20)
	t.Run("partial lookup first", func(t *testing.T) {
		records := []ot.SequenceLookupRecord{record(0, 1), record(0, 0)}
		m := RangeSubstitutionAt(records, lookups, 0, r)
		require.Len(t, m, 11)
		for i, sm := range m {
			g := ot.GlyphIndex(10 + i)
			assert.Equal(t, SubstitutionAt(records, lookups, 0, g), sm.Output, "glyph %d", g)
		}
		assert.Equal(t, some(100), m[5].Output)
		assert.Equal(t, some(11), m[0].Output)
	})
	t.Run("complete lookup first", func(t *testing.T) {
		records := []ot.SequenceLookupRecord{record(0, 0), record(0, 1)}
		m := RangeSubstitutionAt(records, lookups, 0, r)
		require.Len(t, m, 11)
		assert.Equal(t, some(16), m[5].Output)
	})
}

func TestRangeSubstitutionOfSingleGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ligtree")
	defer teardown()
	//
	lookups := offsetAndPartialLookups()
	records := []ot.SequenceLookupRecord{record(0, 1)}
	m := RangeSubstitutionAt(records, lookups, 0, ot.Glyph(16))
	require.Len(t, m, 1)
	assert.Equal(t, some(101), m[0].Output)
}
