package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontligatures"
	"github.com/npillmayer/fontligatures/ligtree"
	"github.com/npillmayer/fontligatures/ot"
	"github.com/npillmayer/fontligatures/ruleset"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.ligatures'
func tracer() tracing.Trace {
	return tracing.Select("font.ligatures")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.font.ligatures": "Info",
		"trace.font.ruleset":   "Info",
		"trace.font.ligtree":   "Error",
		"trace.font.ot":        "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	rulesname := flag.String("rules", "auto", "Rule-set file to load, or 'auto'")
	legacy := flag.Bool("legacy", false, "Compile with legacy sharing policy")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)     // will set the correct level later
	pterm.Info.Println("Welcome to Ligatures CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("lig > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, legacy: *legacy}
	//
	// load font and rules to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
		if err := intp.loadRules(*rulesname); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   *fontligatures.ScalableFont
	rules  *ot.RuleSet
	source string // rule-set file or "auto"
	lig    *fontligatures.Ligatures
	legacy bool
	repl   *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.font.Fontname))
	if intp.rules != nil {
		sb.WriteString(fmt.Sprintf(" rules=%s", intp.source))
	}
	if intp.lig != nil {
		policy := "sharing"
		if intp.legacy {
			policy = "legacy"
		}
		sb.WriteString(fmt.Sprintf(" tree=%d/%s", intp.lig.Tree().Len(), policy))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is one step of a command line, e.g. "rules:5" or "compile:legacy".
type Op struct {
	code   int
	arg    string
	format string
}

// Command is a parsed input line. Its steps are executed left to right.
type Command []Op

// op-codes
const (
	QUIT int = iota // no arguments
	HELP
	FONT
	LOAD
	COMPILE
	CHECK
	STATS
	TREE
	RULES
	LOOKUPS
	MATCH // consumes the rest of the line
)

type opDef struct {
	name string
	fn   func(*Intp, *Op) (error, bool)
}

// ops is indexed by op-code.
var ops = []opDef{
	QUIT:    {"quit", quitOp},
	HELP:    {"help", helpOp},
	FONT:    {"font", fontOp},
	LOAD:    {"load", loadOp},
	COMPILE: {"compile", compileOp},
	CHECK:   {"check", checkOp},
	STATS:   {"stats", statsOp},
	TREE:    {"tree", treeOp},
	RULES:   {"rules", rulesOp},
	LOOKUPS: {"lookups", lookupsOp},
	MATCH:   {"match", matchOp},
}

func opCode(name string) int {
	name = strings.ToLower(name)
	for code, def := range ops {
		if def.name == name {
			return code
		}
	}
	return HELP
}

const maxSteps = 32

func (intp *Intp) parseCommand(line string) (Command, error) {
	steps := strings.Fields(line)
	if len(steps) > maxSteps {
		return nil, fmt.Errorf("too many commands in one line: %d", len(steps))
	}
	cmd := make(Command, 0, len(steps))
	for i, step := range steps {
		c := strings.Split(step, ":")
		op := Op{code: opCode(c[0])}
		switch op.code {
		case QUIT:
			return append(cmd, op), nil
		case MATCH: // e.g. "match:a -> b"
			rest := strings.Join(steps[i:], " ")
			_, op.arg, _ = strings.Cut(rest, ":")
			tracer().Infof("match: '%s'", op.arg)
			return append(cmd, op), nil
		}
		op.arg, op.format = getOptArg(c, 1), getOptArg(c, 2)
		tracer().Debugf("parsed %s: arg='%s'", ops[op.code].name, op.arg)
		cmd = append(cmd, op)
	}
	return cmd, nil
}

func (intp *Intp) execute(cmd Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd)
	for i := range cmd {
		err, stop = ops[cmd[i].code].fn(intp, &cmd[i])
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Loading ----------------------------------------------------------

func (intp *Intp) loadFont(path string) (err error) {
	font, err := fontligatures.LoadOpenTypeFont(path)
	if err != nil {
		return fmt.Errorf("cannot load font %s: %w", path, err)
	}
	intp.font, intp.rules, intp.lig = font, nil, nil
	family, sub := font.FamilyName()
	tracer().Infof("loaded font %s (%s %s)", font.Fontname, family, sub)
	pterm.Printf("font %s has %d glyphs\n", font.Fontname, font.SFNT.NumGlyphs())
	return nil
}

// loadRules loads a rule-set file, or synthesizes rules if source is "auto", and
// compiles the rules.
func (intp *Intp) loadRules(source string) (err error) {
	if err = intp.checkFont(); err != nil {
		return
	}
	var rs *ot.RuleSet
	if source == "" || source == "auto" {
		source = "auto"
		rs, err = ruleset.Auto(intp.font, nil)
	} else {
		rs, err = ruleset.Load(source, intp.font)
	}
	if err != nil {
		return err
	}
	intp.rules, intp.source = rs, source
	return intp.compile()
}

func (intp *Intp) compile() (err error) {
	if err = intp.checkRules(); err != nil {
		return
	}
	var opts []ligtree.Option
	if intp.legacy {
		opts = append(opts, ligtree.LegacyPolicy())
	}
	intp.lig, err = fontligatures.New(intp.font, intp.rules, opts...)
	if err != nil {
		intp.lig = nil
		return err
	}
	pterm.Printf("compiled %d rules into %d tree entries\n", intp.lig.Tree().Rules(), intp.lig.Tree().Len())
	return nil
}

// ----------------------------------------------------------------------

var ERR_NO_FONT = errors.New("no font loaded")
var ERR_NO_RULES = errors.New("no rule set loaded")
var ERR_NO_TREE = errors.New("rule set not compiled")

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return ERR_NO_FONT
	}
	return nil
}

func (intp *Intp) checkRules() error {
	if err := intp.checkFont(); err != nil {
		return err
	}
	if intp.rules == nil {
		return ERR_NO_RULES
	}
	return nil
}

func (intp *Intp) checkTree() error {
	if err := intp.checkRules(); err != nil {
		return err
	}
	if intp.lig == nil {
		return ERR_NO_TREE
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
