package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

func fontOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.hasArg()
	if !ok {
		if err := intp.checkFont(); err != nil {
			return err, false
		}
		family, sub := intp.font.FamilyName()
		pterm.Printf("font %s: family=%s subfamily=%s path=%s\n", intp.font.Fontname,
			family, sub, intp.font.Filepath)
		return nil, false
	}
	return intp.loadFont(path), false
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	return intp.loadRules(op.arg), false
}

func compileOp(intp *Intp, op *Op) (error, bool) {
	switch strings.ToLower(op.arg) {
	case "":
	case "legacy":
		intp.legacy = true
	case "sharing", "default":
		intp.legacy = false
	default:
		return fmt.Errorf("unknown sharing policy: %s", op.arg), false
	}
	return intp.compile(), false
}

func checkOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkRules(); err != nil {
		return err, false
	}
	errs, warnings := intp.rules.Check()
	if len(errs) == 0 && len(warnings) == 0 {
		pterm.Info.Println("rule set is fine")
		return nil, false
	}
	for _, e := range errs {
		pterm.Error.Println(e.Error())
	}
	for _, w := range warnings {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

func statsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTree(); err != nil {
		return err, false
	}
	printStats(intp.lig.Tree())
	return nil, false
}

func treeOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTree(); err != nil {
		return err, false
	}
	limit := 0
	if arg, ok := op.hasArg(); ok {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("line limit not numeric: %v", arg), false
		}
		limit = n
	}
	return printTree(intp.lig.Tree(), limit), false
}

func rulesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkRules(); err != nil {
		return err, false
	}
	if op.noArg() {
		printRuleList(intp.rules)
		return nil, false
	}
	i, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("rule index not numeric: %v", op.arg), false
	}
	printRule(intp.rules, i)
	return nil, false
}

func lookupsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkRules(); err != nil {
		return err, false
	}
	if op.noArg() {
		printLookupList(intp.rules)
		return nil, false
	}
	i, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("lookup index not numeric: %v", op.arg), false
	}
	printLookup(intp.rules, i)
	return nil, false
}

func matchOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTree(); err != nil {
		return err, false
	}
	if op.noArg() {
		return fmt.Errorf("nothing to match"), false
	}
	glyphs, matches, err := intp.lig.Glyphs(op.arg)
	if err != nil {
		return err, false
	}
	printMatches(op.arg, intp.font.GlyphsForText(op.arg), glyphs, matches)
	return nil, false
}
