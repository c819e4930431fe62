package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/thatisuday/commando"
)

func runCompileCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	lig := mustLoadLigatures(strings.TrimSpace(args["font"].Value), flags)
	tree := lig.Tree()
	s := tree.Stats()
	fmt.Printf("Feature: %s\n", lig.RuleSet().Feature)
	fmt.Printf("Rules: %d  Lookups: %d\n", tree.Rules(), len(lig.RuleSet().Lookups))
	fmt.Printf("Entries: %d reachable=%d terminals=%d\n", s.Entries, s.Reachable, s.Terminals)
	fmt.Printf("Transitions: individual=%d ranges=%d depth=%d\n", s.Individual, s.Ranges, s.MaxDepth)
	if s.Reachable < s.Entries {
		fmt.Printf("warning: %d entries are unreachable\n", s.Entries-s.Reachable)
	}
	if mustFlagBool(flags["dump"], "dump") {
		if err := tree.Dump(os.Stdout); err != nil {
			fatalf("cannot dump tree: %v", err)
		}
	}
}

func runApplyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	lig := mustLoadLigatures(strings.TrimSpace(args["font"].Value), flags)
	text, err := parseTextInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	glyphs, matches, err := lig.Glyphs(text)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(formatGlyphOutput(glyphs))
	for _, m := range matches {
		fmt.Println(formatMatch(m))
	}
}

// formatGlyphOutput prints a glyph stream like "[45|62|900]".
func formatGlyphOutput(glyphs []ot.GlyphIndex) string {
	var b strings.Builder
	b.WriteString("[")
	for i, g := range glyphs {
		if i > 0 {
			b.WriteString("|")
		}
		fmt.Fprintf(&b, "%d", g)
	}
	b.WriteString("]")
	return b.String()
}

func formatMatch(m ligtree.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%d rule=%d context=%d|%d|%d", m.Position, m.Rule, m.Backtrack,
		m.Input, m.Lookahead)
	for i, s := range m.Substitutions {
		if g, ok := s.Unwrap(); ok {
			fmt.Fprintf(&b, " %d=>%d", m.Position+i, g)
		}
	}
	return b.String()
}
