package ligtree

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontligatures/ot"
)

func TestDedupShortLists(t *testing.T) {
	if out := Dedup(nil); out != nil {
		t.Errorf("expected nil for nil input, have %v", out)
	}
	one := at(ot.Range(1, 3))
	if out := Dedup(one); len(out) != 1 || &out[0] != &one[0] {
		t.Errorf("expected single-element list to be returned unchanged, have %v", out)
	}
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name string
		in   []ot.GlyphSpec
		out  []ot.GlyphSpec
	}{
		{"singles", at(ot.Glyph(3), ot.Glyph(1), ot.Glyph(3), ot.Glyph(2), ot.Glyph(1)),
			at(ot.Glyph(3), ot.Glyph(1), ot.Glyph(2))},
		{"ranges", at(ot.Range(1, 5), ot.Range(1, 6), ot.Range(1, 5)),
			at(ot.Range(1, 5), ot.Range(1, 6))},
		{"single vs range", at(ot.Glyph(5), ot.Range(5, 5), ot.Glyph(5)),
			at(ot.Glyph(5), ot.Range(5, 5))},
		{"all equal", at(ot.Glyph(7), ot.Glyph(7), ot.Glyph(7)),
			at(ot.Glyph(7))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Dedup(tt.in)
			if diff := cmp.Diff(tt.out, out, cmp.Comparer(func(a, b ot.GlyphSpec) bool { return a == b })); diff != "" {
				t.Errorf("Dedup(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestDedupWithoutDuplicatesReturnsInput(t *testing.T) {
	in := at(ot.Glyph(1), ot.Range(2, 4), ot.Glyph(9))
	out := Dedup(in)
	if len(out) != len(in) || &out[0] != &in[0] {
		t.Errorf("expected input slice to be returned, have %v", out)
	}
}

func TestDedupShortListsDoNotAllocate(t *testing.T) {
	in := make([]ot.GlyphSpec, shortListLen)
	for i := range in {
		in[i] = ot.Glyph(ot.GlyphIndex(i))
	}
	allocs := testing.AllocsPerRun(100, func() {
		_ = Dedup(in)
	})
	if allocs != 0 {
		t.Errorf("expected no allocations for %d unique specs, have %.0f", len(in), allocs)
	}
	long := make([]ot.GlyphSpec, 3*shortListLen)
	for i := range long {
		long[i] = ot.Range(ot.GlyphIndex(i), ot.GlyphIndex(i+1))
	}
	if out := Dedup(long); len(out) != len(long) || &out[0] != &long[0] {
		t.Errorf("expected long list without duplicates to be returned, have %d specs", len(out))
	}
}

func TestDedupProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(4711))
	for n := 0; n < 200; n++ {
		in := make([]ot.GlyphSpec, rnd.Intn(2*shortListLen+8))
		for i := range in {
			lo := ot.GlyphIndex(rnd.Intn(len(in)/2 + 3))
			if rnd.Intn(2) == 0 {
				in[i] = ot.Glyph(lo)
			} else {
				in[i] = ot.Range(lo, lo+ot.GlyphIndex(rnd.Intn(2)))
			}
		}
		out := Dedup(in)
		seen := make(map[ot.GlyphSpec]int)
		for i, s := range out {
			if _, dup := seen[s]; dup {
				t.Fatalf("duplicate %v in Dedup(%v) = %v", s, in, out)
			}
			seen[s] = i
		}
		next := 0 // order of first occurrences is preserved
		for _, s := range in {
			i, ok := seen[s]
			if !ok {
				t.Fatalf("element %v of %v lost in %v", s, in, out)
			}
			if i == next {
				next++
			} else if i > next {
				t.Fatalf("order of first occurrences broken: Dedup(%v) = %v", in, out)
			}
		}
		if next != len(out) {
			t.Fatalf("Dedup(%v) = %v contains foreign elements", in, out)
		}
		again := Dedup(out)
		if len(again) != len(out) {
			t.Fatalf("Dedup not idempotent: %v → %v", out, again)
		}
		for i := range out {
			if again[i] != out[i] {
				t.Fatalf("Dedup not idempotent: %v → %v", out, again)
			}
		}
	}
}
