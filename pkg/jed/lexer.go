package jed

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// JEDLexer splits the body of a JEDEC file (the text between STX and ETX)
// into fields. Every field is a single token running up to its terminating
// '*', so field payloads such as notes never need to be tokenised further.
var JEDLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Star", Pattern: `\*`},

	// Field identifiers. QF and QP must precede the generic Q rule.
	{Name: "Note", Pattern: `N[^*]*`},
	{Name: "FuseCount", Pattern: `QF[^*]*`},
	{Name: "PinCount", Pattern: `QP[^*]*`},
	{Name: "Default", Pattern: `F[^*]*`},
	{Name: "List", Pattern: `L[^*]*`},
	{Name: "Checksum", Pattern: `C[^*]*`},

	// Anything else (J, G, X, V, Q<x>, ...) is carried but not interpreted
	{Name: "Other", Pattern: `[A-Z][^*]*`},
})
