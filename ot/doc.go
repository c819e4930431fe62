/*
Package ot provides the OpenType layout vocabulary needed to compile ligature rules.

Intended audience for this package are components sitting between a font parser and a
text renderer, which need GSUB data in a structured form:

▪︎ glyph IDs and glyph ranges, as found in coverage tables and rule positions,

▪︎ single substitution lookups (GSUB lookup type 1), which are the only lookups
referenced from within ligature-producing chained contexts of programming fonts,

▪︎ chained contextual substitution rules (GSUB lookup type 6), flattened into one
candidate set per glyph position.

Package `ot` will not parse font binaries. Clients obtain lookups from a font parser
(or from a rule-set file, see package `ruleset`) and hand them over as values of the
types in this package. Before a rule set is compiled it should be checked with
`RuleSet.Validate`, which is the boundary where structural faults (dangling lookup
indices, inverted ranges, etc.) are rejected. Code further down the pipeline trusts
validated input.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.ot'
func tracer() tracing.Trace {
	return tracing.Select("font.ot")
}
