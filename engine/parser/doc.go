/*
Package parser builds syntax trees from note markup.

The parser consumes the tokens produced by package lexer and builds a tree
of package tree. It is a pushdown automaton: open brackets push their
flavor ('{' or '|{') onto a stack, close brackets must match the flavor on
top of the stack. Brackets introduced by '@' start a command; bare brackets
are part of the text.

	Hello @bold{World}, {braces} are fine.  =>  (p 'Hello ' (bold 'World') ', {braces} are fine.')

Bodies opened with '|{' are raw: everything up to the first '}|' is taken
verbatim, including '@' and brackets.

While parsing, the parser collects the targets of page links in a Links
accumulator. Titles for these are looked up in a single batch after
parsing, see Links.Resolve.

Parse errors are of type *ParseError and carry the source line of the
failure.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.parser'.
func tracer() tracing.Trace {
	return tracing.Select("notes.parser")
}
