package ot

import (
	"fmt"
	"strings"
)

// ErrorSeverity represents the severity level of a rule set error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the rule set unusable; compiling it
	// would fault.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates an error which will not fault, but renders a rule useless.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// RuleError represents an error found while checking a rule set.
type RuleError struct {
	Rule     int           // index of the offending rule, -1 for lookup-level errors
	Section  string        // e.g. "Input[2]", "Records[0]", "Lookup 3"
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
}

// Error implements the error interface.
func (e RuleError) Error() string {
	if e.Rule >= 0 {
		return fmt.Sprintf("[%s] rule %d/%s: %s", e.Severity, e.Rule, e.Section, e.Issue)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Section, e.Issue)
}

// RuleWarning represents a non-critical issue of a rule set.
type RuleWarning struct {
	Rule  int
	Issue string
}

// String returns a human-readable representation of the warning.
func (w RuleWarning) String() string {
	return fmt.Sprintf("[WARNING] rule %d: %s", w.Rule, w.Issue)
}

// ValidationError aggregates the critical and major errors of a rule set.
type ValidationError struct {
	Errors []RuleError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors in rule set: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// errorCollector accumulates errors and warnings while checking a rule set.
type errorCollector struct {
	errors   []RuleError
	warnings []RuleWarning
}

// addError records an error.
func (ec *errorCollector) addError(rule int, section string, issue string, severity ErrorSeverity) {
	ec.errors = append(ec.errors, RuleError{
		Rule:     rule,
		Section:  section,
		Issue:    issue,
		Severity: severity,
	})
}

// addWarning records a warning.
func (ec *errorCollector) addWarning(rule int, issue string) {
	ec.warnings = append(ec.warnings, RuleWarning{Rule: rule, Issue: issue})
}

// hasCriticalErrors returns true if any critical errors have been recorded.
func (ec *errorCollector) hasCriticalErrors() bool {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// severe returns all errors with critical or major severity.
func (ec *errorCollector) severe() []RuleError {
	severe := make([]RuleError, 0, len(ec.errors))
	for _, err := range ec.errors {
		if err.Severity <= SeverityMajor {
			severe = append(severe, err)
		}
	}
	return severe
}

// --- Checking rule sets ----------------------------------------------------

// Check inspects a rule set for structural faults and returns every error and warning
// found. A rule set without critical errors may be compiled safely.
func (rs *RuleSet) Check() ([]RuleError, []RuleWarning) {
	ec := &errorCollector{}
	for i := range rs.Lookups {
		checkLookup(ec, i, &rs.Lookups[i])
	}
	for i := range rs.Rules {
		checkRule(ec, rs, i, &rs.Rules[i])
	}
	if ec.hasCriticalErrors() {
		tracer().Errorf("rule set %s has critical errors", rs.Feature)
	}
	return ec.errors, ec.warnings
}

// Validate returns a *ValidationError if the rule set has critical or major errors.
// This is the place to reject malformed input before handing a rule set to the
// compiler, which trusts its input.
func (rs *RuleSet) Validate() error {
	errs, warnings := rs.Check()
	for _, w := range warnings {
		tracer().Infof(w.String())
	}
	ec := errorCollector{errors: errs}
	if severe := ec.severe(); len(severe) > 0 {
		return &ValidationError{Errors: severe}
	}
	return nil
}

func checkLookup(ec *errorCollector, inx int, l *Lookup) {
	section := fmt.Sprintf("Lookup %d", inx)
	for j := range l.Subtables {
		st := &l.Subtables[j]
		if l.Type == GSubLookupTypeSingle && !st.IsSingleSubst() {
			ec.addError(-1, section, fmt.Sprintf("subtable %d lacks a single substitution payload", j),
				SeverityCritical)
		}
		for _, r := range st.Coverage.Ranges {
			if r.First > r.Last {
				ec.addError(-1, section, fmt.Sprintf("subtable %d has inverted coverage range %d-%d",
					j, r.First, r.Last), SeverityCritical)
			}
		}
		if p := st.Payload.SingleFmt2; p != nil && len(p.SubstituteGlyphIDs) < st.Coverage.Len() {
			ec.addError(-1, section, fmt.Sprintf("subtable %d has %d substitutes for %d covered glyphs",
				j, len(p.SubstituteGlyphIDs), st.Coverage.Len()), SeverityMajor)
		}
	}
}

func checkRule(ec *errorCollector, rs *RuleSet, inx int, r *ChainedRule) {
	checkPositions := func(name string, positions [][]GlyphSpec) {
		for p, candidates := range positions {
			section := fmt.Sprintf("%s[%d]", name, p)
			if len(candidates) == 0 {
				ec.addError(inx, section, "empty candidate set", SeverityMajor)
			}
			for _, c := range candidates {
				if !c.Valid() {
					ec.addError(inx, section, fmt.Sprintf("inverted range %d-%d", c.Low(), c.High()),
						SeverityCritical)
				}
			}
		}
	}
	checkPositions("Backtrack", r.Backtrack)
	checkPositions("Input", r.Input)
	checkPositions("Lookahead", r.Lookahead)
	for k, rec := range r.Records {
		section := fmt.Sprintf("Records[%d]", k)
		if int(rec.SequenceIndex) >= len(r.Input) {
			ec.addError(inx, section, fmt.Sprintf("sequence index %d beyond input length %d",
				rec.SequenceIndex, len(r.Input)), SeverityCritical)
		}
		lookup := rs.LookupAt(int(rec.LookupListIndex))
		if lookup == nil {
			ec.addError(inx, section, fmt.Sprintf("lookup index %d out of range", rec.LookupListIndex),
				SeverityCritical)
		} else if !lookup.IsSingleSubst() {
			ec.addWarning(inx, fmt.Sprintf("record %d references lookup %d of type %s, will be ignored",
				k, rec.LookupListIndex, lookup.Type))
		}
	}
}
