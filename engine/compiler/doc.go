/*
Package compiler renders syntax trees of notes to HTML.

The compiler walks a tree built by package parser and produces an ordered
sequence of HTML fragments. Rendering of a node is dispatched on its head
symbol, using a table which is set up once at program start.

Margin notes are not rendered where they occur. They are queued and
placed into a right margin block at the next paragraph boundary of the
top-level text: the main column is suspended, the queued notes are
flushed, and rendering resumes with the rest of the text:

	<div class="has-left-margin"> …paragraphs… </div>
	<div class="has-right-margin"> …margin notes… </div>
	<div class="has-left-margin"> …more paragraphs… </div>

Titles of linked pages are looked up in a Titles table. Links to pages
without a title are rendered as missing links; re-compiling the same tree
after the titles are known renders them as regular links.

Every text reaching the output is HTML-escaped exactly once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("notes.compiler")
}
