/*
Package tree holds the syntax tree of a parsed note.

A tree is made of nodes, each with a head symbol and an ordered list of
children. A child is either a run of text or a nested node. Trees are
owned by their creator and are not shared between goroutines; after
parsing they are treated as immutable.

Paragraph breaks are represented in-band, as text children with value
ParagraphBreak. A single source newline is a text child "\n".

Trees may be queried with XPath expressions, using

	github.com/antchfx/xpath

Element names are the head symbols, and every node has an attribute
"line" holding the source line it was opened at.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.tree'.
func tracer() tracing.Trace {
	return tracing.Select("notes.tree")
}
