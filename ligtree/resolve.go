package ligtree

import "github.com/npillmayer/fontligatures/ot"

// SubstitutionAt returns the output glyph for glyph g at input position seq of a rule.
//
// Lookup records for seq are consulted in the order they appear in the rule, and the
// subtables of each lookup in subtable order. The first substitution found wins.
// None is the normal result for glyphs which have to be matched, but not transformed.
//
// Records have to reference existing lookups; this is checked by ot.RuleSet.Validate
// and not re-checked here.
func SubstitutionAt(records []ot.SequenceLookupRecord, lookups []ot.Lookup, seq int,
	g ot.GlyphIndex) ot.Option[ot.GlyphIndex] {
	//
	for _, rec := range records {
		if int(rec.SequenceIndex) != seq {
			continue
		}
		lookup := &lookups[rec.LookupListIndex]
		if !lookup.IsSingleSubst() {
			tracer().Debugf("ignoring lookup %d of type %s at position %d",
				rec.LookupListIndex, lookup.Type, seq)
			continue
		}
		for i := range lookup.Subtables {
			if out := lookup.Subtables[i].SubstituteGlyph(g); out.IsSome() {
				return out
			}
		}
	}
	return ot.None[ot.GlyphIndex]()
}

// RangeSubstitutionAt resolves substitutions for a glyph range at input position seq.
//
// If the first subtable producing any output maps the whole range, its mapping is
// returned as is. Otherwise outputs of all applicable subtables are merged glyph by glyph,
// the earlier lookup winning, which makes every glyph resolve the same way as it would
// with SubstitutionAt. The result then holds substituted glyphs individually and
// unsubstituted runs as ranges; the builder creates one branch per mapping.
//
// A nil result means that no glyph of r is substituted.
func RangeSubstitutionAt(records []ot.SequenceLookupRecord, lookups []ot.Lookup, seq int,
	r ot.GlyphSpec) ot.SubstMappings {
	//
	var outputs []ot.Option[ot.GlyphIndex] // per glyph of r, allocated on first partial result
	covered := 0
	for _, rec := range records {
		if int(rec.SequenceIndex) != seq {
			continue
		}
		lookup := &lookups[rec.LookupListIndex]
		if !lookup.IsSingleSubst() {
			tracer().Debugf("ignoring lookup %d of type %s at position %d",
				rec.LookupListIndex, lookup.Type, seq)
			continue
		}
		for i := range lookup.Subtables {
			m := lookup.Subtables[i].SubstituteRange(r)
			if !m.Partial() {
				continue
			}
			if covered == 0 && m.Complete() {
				return m
			}
			if outputs == nil {
				outputs = make([]ot.Option[ot.GlyphIndex], r.Len())
			}
			covered += mergeOutputs(outputs, r, m)
			if covered == len(outputs) {
				return ot.CompressMappings(r, outputs)
			}
		}
	}
	if covered == 0 {
		return nil
	}
	return ot.CompressMappings(r, outputs)
}

// mergeOutputs copies present outputs of m into slots of outputs which are still empty.
// It returns the number of slots filled.
func mergeOutputs(outputs []ot.Option[ot.GlyphIndex], r ot.GlyphSpec, m ot.SubstMappings) int {
	filled := 0
	for _, sm := range m {
		if sm.Output.IsNone() {
			continue
		}
		for g := int(sm.Input.Low()); g <= int(sm.Input.High()); g++ {
			slot := g - int(r.Low())
			if outputs[slot].IsNone() {
				outputs[slot] = sm.Output
				filled++
			}
		}
	}
	return filled
}
