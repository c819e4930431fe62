package ot

// ChainedRule is a chained contextual substitution rule, flattened to one candidate set
// per glyph position. Backtrack[0] is the position immediately preceding the input
// sequence, Backtrack[1] the one before it, and so on.
//
// Records name the single substitution lookups to apply at input positions.
type ChainedRule struct {
	Backtrack [][]GlyphSpec
	Input     [][]GlyphSpec
	Lookahead [][]GlyphSpec
	Records   []SequenceLookupRecord
}

// Steps is the number of positions the rule consumes when compiled.
func (r *ChainedRule) Steps() int {
	return len(r.Backtrack) + len(r.Input) + len(r.Lookahead)
}

// RuleSet is the input to ligature compilation: the rules of a feature (usually 'calt'
// or 'liga') and the lookup list their records refer to.
type RuleSet struct {
	Feature Tag
	Lookups []Lookup
	Rules   []ChainedRule
}

// LookupAt returns the lookup for a lookup list index, or nil.
func (rs *RuleSet) LookupAt(inx int) *Lookup {
	if rs == nil || inx < 0 || inx >= len(rs.Lookups) {
		return nil
	}
	return &rs.Lookups[inx]
}

// CollectChainedRules converts the chaining context subtables (formats 1 and 3) of the
// lookups at the given indices into flattened rules, in lookup, subtable and rule order.
// Indices out of range and lookups of other types are skipped.
func CollectChainedRules(lookups []Lookup, indices ...int) []ChainedRule {
	var rules []ChainedRule
	for _, inx := range indices {
		if inx < 0 || inx >= len(lookups) {
			tracer().Errorf("chained rules: lookup index %d out of range", inx)
			continue
		}
		lookup := &lookups[inx]
		if lookup.Type != GSubLookupTypeChainingContext {
			tracer().Debugf("chained rules: skipping lookup %d of type %s", inx, lookup.Type)
			continue
		}
		for i := range lookup.Subtables {
			st := &lookup.Subtables[i]
			switch {
			case st.Payload.ChainingContextFmt3 != nil:
				rules = append(rules, rulesFromFmt3(st.Payload.ChainingContextFmt3))
			case st.Payload.ChainingContextFmt1 != nil:
				rules = append(rules, rulesFromFmt1(st.Coverage, st.Payload.ChainingContextFmt1)...)
			default:
				tracer().Infof("chained rules: lookup %d subtable %d has unsupported format %d",
					inx, i, st.Format)
			}
		}
	}
	return rules
}

func rulesFromFmt3(p *GSubChainingContextFmt3Payload) ChainedRule {
	specs := func(covs []Coverage) [][]GlyphSpec {
		pos := make([][]GlyphSpec, len(covs))
		for i, c := range covs {
			pos[i] = c.Specs()
		}
		return pos
	}
	return ChainedRule{
		Backtrack: specs(p.BacktrackCoverages),
		Input:     specs(p.InputCoverages),
		Lookahead: specs(p.LookaheadCoverages),
		Records:   p.Records,
	}
}

func rulesFromFmt1(cov Coverage, p *GSubChainingContextFmt1Payload) []ChainedRule {
	singles := func(glyphs []GlyphIndex) [][]GlyphSpec {
		pos := make([][]GlyphSpec, len(glyphs))
		for i, g := range glyphs {
			pos[i] = []GlyphSpec{Glyph(g)}
		}
		return pos
	}
	var rules []ChainedRule
	for inx, set := range p.RuleSets {
		first, ok := cov.Glyph(inx)
		if !ok {
			tracer().Errorf("chained rules: rule set %d has no coverage glyph", inx)
			continue
		}
		for _, r := range set {
			input := append([][]GlyphSpec{{Glyph(first)}}, singles(r.Input)...)
			rules = append(rules, ChainedRule{
				Backtrack: singles(r.Backtrack),
				Input:     input,
				Lookahead: singles(r.Lookahead),
				Records:   r.Records,
			})
		}
	}
	return rules
}
