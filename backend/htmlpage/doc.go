/*
Package htmlpage exports rendered notes as standalone HTML documents.

Rendering produces HTML fragments meant to be placed into the page
templates of the notes application. For viewing notes outside of the
application, package htmlpage wraps fragments into a complete document,
carrying the notes stylesheet. The stylesheet may optionally be inlined
into style attributes, e.g. for mail clients.

We use these libraries for CSS handling:

	github.com/aymerick/douceur/parser
	github.com/aymerick/douceur/inliner

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package htmlpage

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.backend'.
func tracer() tracing.Trace {
	return tracing.Select("notes.backend")
}
