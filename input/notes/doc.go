/*
Package notes renders pages of notes to HTML.

A page consists of an ordered list of content units, each holding a piece
of markup. Units are parsed and compiled independently: a unit with
malformed markup is rendered as an error block with an edit link, and does
not affect its siblings.

Titles for all pages linked from a page, and for the pages on its
breadcrumb path, are looked up with a single call to a TitleResolver.
A rendered page may be refreshed with new titles without parsing its
units again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package notes

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.page'.
func tracer() tracing.Trace {
	return tracing.Select("notes.page")
}
