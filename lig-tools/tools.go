package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontligatures"
	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/fontligatures/ruleset"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("lig-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for compiling ligature rule sets and applying them to text.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("compile").
		SetDescription("Compile a rule set into a lookup tree and print tree statistics.").
		SetShortDescription("compile rules").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("rules,r", "rule-set YAML file, or 'auto' for the default ligatures", commando.String, "auto").
		AddFlag("legacy,L", "compile with the legacy sharing policy", commando.Bool, nil).
		AddFlag("dump,d", "dump the compiled tree", commando.Bool, nil).
		SetAction(runCompileCommand)

	commando.
		Register("apply").
		SetDescription("Apply ligature rules to text and print the resulting glyph stream.").
		SetShortDescription("apply rules").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to apply rules to (variadic argument parts joined by comma by commando)", "").
		AddFlag("rules,r", "rule-set YAML file, or 'auto' for the default ligatures", commando.String, "auto").
		AddFlag("legacy,L", "compile with the legacy sharing policy", commando.Bool, nil).
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+002D,U+003E)", commando.String, "-").
		SetAction(runApplyCommand)

	commando.
		Register("font").
		SetDescription("Print font names and the default ligatures a font supports.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// mustLoadLigatures loads a font, loads or synthesizes its rules and compiles them.
// Rule-set problems are printed before compilation.
func mustLoadLigatures(fontPath string, flags map[string]commando.FlagValue) *fontligatures.Ligatures {
	if fontPath == "" {
		fatalf("font path is required")
	}
	font, err := fontligatures.LoadOpenTypeFont(fontPath)
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}
	source, err := flags["rules"].GetString()
	if err != nil {
		fatalf("invalid --rules flag: %v", err)
	}
	var rs *ot.RuleSet
	if source = strings.TrimSpace(source); source == "" || source == "auto" {
		rs, err = ruleset.Auto(font, nil)
	} else {
		rs, err = ruleset.Load(source, font)
	}
	if err != nil {
		fatalf("cannot load rules: %v", err)
	}
	errs, warnings := rs.Check()
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s\n", e.Error())
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s\n", w.String())
	}
	var opts []ligtree.Option
	if mustFlagBool(flags["legacy"], "legacy") {
		opts = append(opts, ligtree.LegacyPolicy())
	}
	lig, err := fontligatures.New(font, rs, opts...)
	if err != nil {
		var verr *ot.ValidationError
		if errors.As(err, &verr) {
			fatalf("rule set rejected: %d errors", len(verr.Errors))
		}
		fatalf("cannot compile rules: %v", err)
	}
	return lig
}

func parseTextInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cp = strings.TrimSpace(cp)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	text := textArg.Value
	if text == "" {
		return "", errors.New("no text given")
	}
	// commando joins variadic parts with commas
	return strings.ReplaceAll(text, ",", " "), nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "lig-tools: "+format+"\n", args...)
	os.Exit(1)
}
