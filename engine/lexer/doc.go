/*
Package lexer splits note markup into tokens.

The lexer is a small state machine working on single runes. It recognizes
the structural delimiters of the markup

    @     start of a command
    {     open bracket
    |{    open bracket for a raw body
    }     close bracket
    }|    close bracket for a raw body

and collapses everything else into literal runs. Newlines are counted:
a run of consecutive newlines, with whitespace-only lines in between,
results in a single line-break token carrying the number of newlines.

Lexing never fails. Ambiguous characters like a lone '|' degrade to
literal text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("notes.lexer")
}
