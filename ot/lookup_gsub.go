package ot

import "strings"

// Lookup is a GSUB lookup: a typed list of subtables.
//
// Lookups form a closed tagged union over GSubLookupType. The payload of each subtable
// carries exactly one non-nil variant pointer, matching the lookup type. Of the variants,
// single substitution (type 1) is queried during ligature compilation, and chaining
// context (type 6) is the source of contextual rules. All other variants are carried
// along but answer "no substitution".
type Lookup struct {
	Type      GSubLookupType
	Flag      LayoutTableLookupFlag
	Subtables []LookupSubtable
}

// IsSingleSubst reports whether l is a single substitution lookup.
func (l *Lookup) IsSingleSubst() bool {
	return l != nil && l.Type == GSubLookupTypeSingle
}

// LookupSubtable is one subtable of a lookup.
type LookupSubtable struct {
	Format   uint16
	Coverage Coverage
	Payload  GSubLookupPayload
}

// GSubLookupPayload is a typed payload for GSUB lookup-subtable variants.
// Exactly one pointer field is expected to be non-nil for a concrete subtable.
type GSubLookupPayload struct {
	SingleFmt1          *GSubSingleFmt1Payload
	SingleFmt2          *GSubSingleFmt2Payload
	ChainingContextFmt1 *GSubChainingContextFmt1Payload
	ChainingContextFmt3 *GSubChainingContextFmt3Payload
}

// GSubSingleFmt1Payload adds a constant delta to covered glyphs.
type GSubSingleFmt1Payload struct {
	DeltaGlyphID int16
}

// GSubSingleFmt2Payload lists substitutes, indexed by coverage index.
type GSubSingleFmt2Payload struct {
	SubstituteGlyphIDs []GlyphIndex
}

// GSubChainedSequenceRule is a glyph-sequence rule of a chaining context format 1
// subtable. Input holds the input glyphs following the first one; the first glyph
// is given by the coverage entry of the rule set the rule belongs to.
// Backtrack is ordered from the glyph closest to the input outwards.
type GSubChainedSequenceRule struct {
	Backtrack []GlyphIndex
	Input     []GlyphIndex
	Lookahead []GlyphIndex
	Records   []SequenceLookupRecord
}

// GSubChainingContextFmt1Payload holds rule sets, indexed by coverage index.
type GSubChainingContextFmt1Payload struct {
	RuleSets [][]GSubChainedSequenceRule
}

// GSubChainingContextFmt3Payload describes one rule by coverages.
// Backtrack coverages are ordered from the glyph closest to the input outwards.
type GSubChainingContextFmt3Payload struct {
	BacktrackCoverages []Coverage
	InputCoverages     []Coverage
	LookaheadCoverages []Coverage
	Records            []SequenceLookupRecord
}

// NewSingleSubstDelta creates a single substitution subtable of format 1.
func NewSingleSubstDelta(cov Coverage, delta int16) LookupSubtable {
	return LookupSubtable{
		Format:   1,
		Coverage: cov,
		Payload:  GSubLookupPayload{SingleFmt1: &GSubSingleFmt1Payload{DeltaGlyphID: delta}},
	}
}

// NewSingleSubstList creates a single substitution subtable of format 2.
func NewSingleSubstList(cov Coverage, substitutes ...GlyphIndex) LookupSubtable {
	return LookupSubtable{
		Format:   2,
		Coverage: cov,
		Payload:  GSubLookupPayload{SingleFmt2: &GSubSingleFmt2Payload{SubstituteGlyphIDs: substitutes}},
	}
}

// IsSingleSubst reports whether the subtable carries a single substitution payload.
func (st *LookupSubtable) IsSingleSubst() bool {
	return st.Payload.SingleFmt1 != nil || st.Payload.SingleFmt2 != nil
}

// SubstituteGlyph returns the output glyph for g, or None if the subtable does not
// substitute g. Subtables which are not single substitutions always return None.
func (st *LookupSubtable) SubstituteGlyph(g GlyphIndex) Option[GlyphIndex] {
	inx, ok := st.Coverage.Match(g)
	if !ok {
		return None[GlyphIndex]()
	}
	switch {
	case st.Payload.SingleFmt1 != nil:
		// delta arithmetic is modulo 65536
		return Some(GlyphIndex(int(g) + int(st.Payload.SingleFmt1.DeltaGlyphID)))
	case st.Payload.SingleFmt2 != nil:
		if inx < len(st.Payload.SingleFmt2.SubstituteGlyphIDs) {
			return Some(st.Payload.SingleFmt2.SubstituteGlyphIDs[inx])
		}
		tracer().Errorf("GSUB 1/2: coverage index %d beyond substitute list", inx)
	}
	return None[GlyphIndex]()
}

// SubstituteRange maps every glyph of r to its output glyph. Substituted glyphs are
// reported individually, maximal runs of unsubstituted glyphs as a range (or as a
// single glyph, for a run of length 1) with output None. Mappings are ordered by glyph ID.
//
// If r is a single glyph spec, the result has exactly one entry.
func (st *LookupSubtable) SubstituteRange(r GlyphSpec) SubstMappings {
	if !r.IsRange() {
		return SubstMappings{{Input: r, Output: st.SubstituteGlyph(r.Glyph())}}
	}
	outputs := make([]Option[GlyphIndex], r.Len())
	if st.IsSingleSubst() {
		for i := range outputs {
			outputs[i] = st.SubstituteGlyph(r.Low() + GlyphIndex(i))
		}
	}
	return CompressMappings(r, outputs)
}

// SubstMapping maps an input glyph or sub-range to an output glyph, or to None.
type SubstMapping struct {
	Input  GlyphSpec
	Output Option[GlyphIndex]
}

// SubstMappings is the finer-grained result of a range substitution.
type SubstMappings []SubstMapping

// Complete is true if every glyph of the mapped range has an output.
func (m SubstMappings) Complete() bool {
	if len(m) == 0 {
		return false
	}
	for _, sm := range m {
		if sm.Output.IsNone() {
			return false
		}
	}
	return true
}

// Partial is true if at least one glyph of the mapped range has an output.
func (m SubstMappings) Partial() bool {
	for _, sm := range m {
		if sm.Output.IsSome() {
			return true
		}
	}
	return false
}

func (m SubstMappings) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, sm := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sm.Input.String())
		sb.WriteString("→")
		sb.WriteString(sm.Output.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// CompressMappings turns per-glyph outputs for range r (outputs[i] belongs to glyph
// r.Low()+i) into mappings: individual entries for present outputs and one entry per
// maximal run of absent outputs.
func CompressMappings(r GlyphSpec, outputs []Option[GlyphIndex]) SubstMappings {
	m := make(SubstMappings, 0, 4)
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		lo, hi := r.Low()+GlyphIndex(runStart), r.Low()+GlyphIndex(end)
		if lo == hi {
			m = append(m, SubstMapping{Input: Glyph(lo), Output: None[GlyphIndex]()})
		} else {
			m = append(m, SubstMapping{Input: Range(lo, hi), Output: None[GlyphIndex]()})
		}
		runStart = -1
	}
	for i, out := range outputs {
		if out.IsNone() {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i - 1)
		m = append(m, SubstMapping{Input: Glyph(r.Low() + GlyphIndex(i)), Output: out})
	}
	flush(len(outputs) - 1)
	return m
}
