package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "tree", "stats":
		pterm.Info.Println("Lookup Tree")
		pterm.Println(`
	Every tree entry has a forward and a reverse branch-point.
	Forward transitions consume input and lookahead glyphs, left to right.
	Reverse transitions consume backtrack glyphs, right to left, starting
	with the glyph immediately before the input.
	+---------+---------------------------+
	| > 45 #1 | forward on glyph 45       |
	| < 9 #3  | reverse on glyph 9        |
	| > [a-b] | forward on a glyph range  |
	| ⇒ rule  | a rule terminates here    |
	+---------+---------------------------+
	'tree:n' prints the first n lines only.
	`)
	case "policy", "compile", "legacy":
		pterm.Info.Println("Sharing Policies")
		pterm.Println(`
	compile:sharing  rules share entries with common prefixes (default)
	compile:legacy   forward branch-points are reset for every input step,
	                 and children are replaced instead of reused.
	The legacy policy loses subtrees of earlier rules; 'stats' shows
	how many entries became unreachable.
	`)
	case "rules", "lookups", "check":
		pterm.Info.Println("Rule Sets")
		pterm.Println(`
	rules       list rules: context lengths and lookup records
	rules:n     show the candidate glyphs of rule n per position
	lookups     list lookups
	lookups:n   show the subtables of lookup n
	check       show validation errors and warnings
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	font[:path]         show font, or load a font
	load[:path|auto]    load a rule-set file, or synthesize rules, and compile
	compile[:policy]    compile again, see 'help:policy'
	check               validate the rule set
	stats               tree statistics
	tree[:n]            dump the tree, see 'help:tree'
	rules[:n]           see 'help:rules'
	lookups[:n]         see 'help:rules'
	match:text          apply ligatures to the rest of the line
	quit
	`)
	}
}
