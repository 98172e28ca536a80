/*
Package symbol holds the command vocabulary of the note markup.

Commands are written as @name{…} or @name|{…}|. Every name a parser may
accept and a compiler may dispatch on is registered here once, at
package initialization, and is read-only afterwards. Clients may therefore
share the registry between goroutines without synchronization.

Two names, "p" and "list", denote pure grouping. The name "exception" is
reserved for diagnostic nodes synthesized by the application and cannot be
written by authors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package symbol

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notes.parser'.
func tracer() tracing.Trace {
	return tracing.Select("notes.parser")
}
