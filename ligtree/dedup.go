package ligtree

import "github.com/npillmayer/fontligatures/ot"

// Dedup removes duplicate glyph specs from the candidate set of a rule position,
// keeping the first occurrence of every value. Singles and ranges never compare
// equal to each other.
//
// Lists without duplicates are returned as they are. Lists of up to
// shortListLen specs are checked without allocating.
func Dedup(specs []ot.GlyphSpec) []ot.GlyphSpec {
	if len(specs) < 2 {
		return specs
	}
	if len(specs) <= shortListLen {
		return dedupShort(specs)
	}
	seen := make(map[ot.GlyphSpec]struct{}, len(specs))
	var unique []ot.GlyphSpec // allocated at first duplicate
	for i, s := range specs {
		if _, dup := seen[s]; dup {
			if unique == nil {
				unique = make([]ot.GlyphSpec, i, len(specs)-1)
				copy(unique, specs[:i])
			}
			continue
		}
		seen[s] = struct{}{}
		if unique != nil {
			unique = append(unique, s)
		}
	}
	if unique == nil {
		return specs
	}
	return unique
}

// Candidate sets up to this length are deduplicated by a linear scan.
const shortListLen = 16

func dedupShort(specs []ot.GlyphSpec) []ot.GlyphSpec {
	var unique []ot.GlyphSpec // allocated at first duplicate
	for i, s := range specs {
		if !containsSpec(specs[:i], s) {
			if unique != nil {
				unique = append(unique, s)
			}
			continue
		}
		if unique == nil {
			unique = make([]ot.GlyphSpec, i, len(specs)-1)
			copy(unique, specs[:i])
		}
	}
	if unique == nil {
		return specs
	}
	return unique
}

func containsSpec(specs []ot.GlyphSpec, s ot.GlyphSpec) bool {
	for _, x := range specs {
		if x == s {
			return true
		}
	}
	return false
}
