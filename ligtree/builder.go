package ligtree

import (
	"github.com/npillmayer/fontligatures/ot"
)

// policy controls how rules share entries.
type policy struct {
	resetForward    bool // re-initialize forward branch-points at every input step
	replaceChildren bool // never reuse existing children
}

// Option configures Build.
type Option func(*policy)

// ResetForwardBranches makes the builder replace an entry's forward branch-point by an
// empty one whenever the entry is extended by an input position. Children contributed
// by earlier rules are lost; this mirrors legacy compilers.
func ResetForwardBranches() Option {
	return func(p *policy) {
		p.resetForward = true
	}
}

// ReplaceChildren makes the builder create a fresh child entry for every insertion,
// unlinking an existing child for the same individual glyph. This mirrors legacy
// compilers.
func ReplaceChildren() Option {
	return func(p *policy) {
		p.replaceChildren = true
	}
}

// LegacyPolicy combines ResetForwardBranches and ReplaceChildren.
func LegacyPolicy() Option {
	return func(p *policy) {
		p.resetForward = true
		p.replaceChildren = true
	}
}

// entryMeta is a leaf of the generation currently being extended, together with the
// outputs collected for the input positions on its path.
type entryMeta struct {
	entry         EntryID
	substitutions []ot.Option[ot.GlyphIndex]
}

// extend returns a successor for child id, appending out to a copy of the substitutions.
func (em entryMeta) extend(id EntryID, out ot.Option[ot.GlyphIndex]) entryMeta {
	subst := make([]ot.Option[ot.GlyphIndex], len(em.substitutions), len(em.substitutions)+1)
	copy(subst, em.substitutions)
	return entryMeta{entry: id, substitutions: append(subst, out)}
}

// Build compiles all rules of rs into a new tree. Rules are added in order; a rule's
// index is its priority at match time.
//
// rs has to be valid (see ot.RuleSet.Validate). Build does not check lookup indices
// and will panic on dangling references.
func Build(rs *ot.RuleSet, opts ...Option) *Tree {
	var p policy
	for _, opt := range opts {
		opt(&p)
	}
	t := newTree(p)
	if rs == nil {
		return t
	}
	for i := range rs.Rules {
		t.AddRule(i, &rs.Rules[i], rs.Lookups)
	}
	tracer().Infof("compiled %d rules of feature %s into %d tree entries", len(rs.Rules), rs.Feature, t.Len())
	return t
}

// AddRule compiles one rule into the tree and returns the entries it terminates at.
// Positions are processed backtrack first (closest to the input first), then input,
// then lookahead; each step turns the current generation of leaves into the next.
func (t *Tree) AddRule(index int, rule *ot.ChainedRule, lookups []ot.Lookup) []EntryID {
	current := []entryMeta{{entry: t.Root()}}
	for _, candidates := range rule.Backtrack {
		current = t.contextStep(current, reverse, Dedup(candidates))
	}
	for seq, candidates := range rule.Input {
		current = t.inputStep(current, seq, Dedup(candidates), rule.Records, lookups)
	}
	for _, candidates := range rule.Lookahead {
		current = t.contextStep(current, forward, Dedup(candidates))
	}
	leaves := make([]EntryID, len(current))
	for i, em := range current {
		assertHolds(len(em.substitutions) == len(rule.Input), "substitutions out of step with input positions")
		e := &t.entries[em.entry]
		e.Terminals = append(e.Terminals, Terminal{
			Rule:          index,
			Backtrack:     len(rule.Backtrack),
			Input:         len(rule.Input),
			Lookahead:     len(rule.Lookahead),
			Substitutions: em.substitutions,
		})
		leaves[i] = em.entry
	}
	t.rules++
	tracer().Debugf("rule %d terminates at %d entries", index, len(leaves))
	return leaves
}

// contextStep extends every leaf by the candidates of a backtrack (reverse) or
// lookahead (forward) position. Context is matched, never substituted.
func (t *Tree) contextStep(current []entryMeta, d direction, candidates []ot.GlyphSpec) []entryMeta {
	next := make([]entryMeta, 0, len(current)*len(candidates))
	for _, cur := range current {
		for _, spec := range candidates {
			c := t.child(cur.entry, d, spec)
			next = append(next, entryMeta{entry: c, substitutions: cur.substitutions})
		}
	}
	tracer().Debugf("%s context step: %d → %d leaves", d, len(current), len(next))
	return next
}

// inputStep extends every leaf by the candidates of input position seq, resolving
// substitutions. Ranges which are only partly substituted are split into one branch
// per substituted glyph plus branches for the unsubstituted runs.
func (t *Tree) inputStep(current []entryMeta, seq int, candidates []ot.GlyphSpec,
	records []ot.SequenceLookupRecord, lookups []ot.Lookup) []entryMeta {
	//
	next := make([]entryMeta, 0, len(current)*len(candidates))
	for _, cur := range current {
		if t.policy.resetForward {
			t.resetForward(cur.entry)
		}
		for _, spec := range candidates {
			if !spec.IsRange() {
				c := t.child(cur.entry, forward, spec)
				next = append(next, cur.extend(c, SubstitutionAt(records, lookups, seq, spec.Glyph())))
				continue
			}
			m := RangeSubstitutionAt(records, lookups, seq, spec)
			if m == nil {
				c := t.child(cur.entry, forward, spec)
				next = append(next, cur.extend(c, ot.None[ot.GlyphIndex]()))
				continue
			}
			tracer().Debugf("input %d: range %v splits into %v", seq, spec, m)
			for _, sm := range m {
				c := t.child(cur.entry, forward, sm.Input)
				next = append(next, cur.extend(c, sm.Output))
			}
		}
	}
	tracer().Debugf("input step %d: %d → %d leaves", seq, len(current), len(next))
	return next
}
