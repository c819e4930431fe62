package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
)

func printStats(tree *ligtree.Tree) {
	s := tree.Stats()
	data := [][]string{
		{"Rules", "Entries", "Reachable", "Terminals", "Individual", "Ranges", "Depth"},
		{
			fmt.Sprintf("%d", tree.Rules()),
			fmt.Sprintf("%d", s.Entries),
			fmt.Sprintf("%d", s.Reachable),
			fmt.Sprintf("%d", s.Terminals),
			fmt.Sprintf("%d", s.Individual),
			fmt.Sprintf("%d", s.Ranges),
			fmt.Sprintf("%d", s.MaxDepth),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if s.Reachable < s.Entries {
		pterm.Warning.Printf("%d entries are unreachable\n", s.Entries-s.Reachable)
	}
}

// printTree dumps the tree, stopping after limit lines if limit > 0.
func printTree(tree *ligtree.Tree, limit int) error {
	var sb strings.Builder
	if err := tree.Dump(&sb); err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if limit > 0 && limit < len(lines) {
		pterm.Println(strings.Join(lines[:limit], "\n"))
		pterm.Printf("… %d more lines\n", len(lines)-limit)
		return nil
	}
	pterm.Println(strings.Join(lines, "\n"))
	return nil
}

func printRuleList(rs *ot.RuleSet) {
	pterm.Printf("Feature %s has %d rules\n", rs.Feature, len(rs.Rules))
	if len(rs.Rules) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Backtrack", "Input", "Lookahead", "Records"},
	}
	for i := range rs.Rules {
		r := &rs.Rules[i]
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", len(r.Backtrack)),
			fmt.Sprintf("%d", len(r.Input)),
			fmt.Sprintf("%d", len(r.Lookahead)),
			formatRecords(r.Records),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printRule(rs *ot.RuleSet, index int) {
	if index < 0 || index >= len(rs.Rules) {
		pterm.Error.Printf("Rule index out of range: %d\n", index)
		return
	}
	r := &rs.Rules[index]
	pterm.Printf("Rule %d: records=%s\n", index, formatRecords(r.Records))
	data := [][]string{
		{"Section", "Position", "Candidates"},
	}
	section := func(name string, positions [][]ot.GlyphSpec) {
		for p, candidates := range positions {
			data = append(data, []string{name, fmt.Sprintf("%d", p), formatSpecs(candidates)})
		}
	}
	section("Backtrack", r.Backtrack)
	section("Input", r.Input)
	section("Lookahead", r.Lookahead)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookupList(rs *ot.RuleSet) {
	count := len(rs.Lookups)
	pterm.Printf("LookupList has %d entries\n", count)
	if count == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Subtables", "Flags"},
	}
	for i := range rs.Lookups {
		lookup := &rs.Lookups[i]
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			lookup.Type.GSubString(),
			fmt.Sprintf("%d", len(lookup.Subtables)),
			formatLookupFlags(lookup.Flag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(rs *ot.RuleSet, index int) {
	lookup := rs.LookupAt(index)
	if lookup == nil {
		pterm.Error.Printf("Lookup index out of range: %d\n", index)
		return
	}
	pterm.Printf("Lookup %d: type=%s flags=%s subtables=%d\n",
		index,
		lookup.Type.GSubString(),
		formatLookupFlags(lookup.Flag),
		len(lookup.Subtables),
	)
	data := [][]string{
		{"Sub", "Format", "Coverage", "Payload"},
	}
	for i := range lookup.Subtables {
		sub := &lookup.Subtables[i]
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", sub.Format),
			formatCoverageSummary(sub.Coverage),
			formatPayloadSummary(sub.Payload),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printMatches shows input and output glyphs cell by cell, together with the rule
// responsible for each substitution.
func printMatches(text string, in, out []ot.GlyphIndex, matches []ligtree.Match) {
	rules := make([]string, len(out))
	for _, m := range matches {
		for i := m.Position; i < m.Position+m.Input && i < len(rules); i++ {
			rules[i] = fmt.Sprintf("%d", m.Rule)
		}
	}
	runes := []rune(norm.NFC.String(text))
	data := [][]string{
		{"Cell", "Char", "Glyph", "Output", "Rule"},
	}
	for i := range out {
		char, glyph := "", ""
		if i < len(runes) {
			char = fmt.Sprintf("%q", runes[i])
		}
		if i < len(in) {
			glyph = fmt.Sprintf("%d", in[i])
		}
		output := fmt.Sprintf("%d", out[i])
		if i < len(in) && in[i] != out[i] {
			output = pterm.FgLightGreen.Sprint(output)
		}
		data = append(data, []string{fmt.Sprintf("%d", i), char, glyph, output, rules[i]})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d matches\n", len(matches))
}

func formatLookupFlags(flag ot.LayoutTableLookupFlag) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LOOKUP_FLAG_RIGHT_TO_LEFT != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if flag&ot.LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", flag>>8))
	}
	return strings.Join(parts, "|")
}

func formatCoverageSummary(cov ot.Coverage) string {
	if len(cov.Ranges) > 0 {
		return fmt.Sprintf("fmt=2 ranges=%d count=%d", len(cov.Ranges), cov.Len())
	}
	return fmt.Sprintf("fmt=1 count=%d", cov.Len())
}

func formatPayloadSummary(p ot.GSubLookupPayload) string {
	switch {
	case p.SingleFmt1 != nil:
		return fmt.Sprintf("delta=%d", p.SingleFmt1.DeltaGlyphID)
	case p.SingleFmt2 != nil:
		return fmt.Sprintf("substitutes=%d", len(p.SingleFmt2.SubstituteGlyphIDs))
	case p.ChainingContextFmt1 != nil:
		return fmt.Sprintf("rulesets=%d", len(p.ChainingContextFmt1.RuleSets))
	case p.ChainingContextFmt3 != nil:
		c := p.ChainingContextFmt3
		return fmt.Sprintf("chain back=%d in=%d look=%d", len(c.BacktrackCoverages),
			len(c.InputCoverages), len(c.LookaheadCoverages))
	}
	return "-"
}

func formatRecords(records []ot.SequenceLookupRecord) string {
	if len(records) == 0 {
		return "-"
	}
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = fmt.Sprintf("%d→L%d", rec.SequenceIndex, rec.LookupListIndex)
	}
	return strings.Join(parts, " ")
}

func formatSpecs(specs []ot.GlyphSpec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
