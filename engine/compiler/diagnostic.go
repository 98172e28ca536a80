package compiler

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/core/slug"
	"github.com/flynn162/epsilon-delta-notes/engine/tree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
)

// compileDiagnostic renders a node created by tree.NewDiagnostic as an
// error block with an edit link to the failing content unit.
func compileDiagnostic(c *Compiler, n *tree.Node) error {
	unit, msg, excerpt, ok := n.Diagnostic()
	if !ok {
		return newCompileError(n.Line, "malformed diagnostic node")
	}
	tracer().Infof("rendering diagnostic for unit %s: %s", unit, msg)
	c.emit(`<div class="diagnostic">`)
	c.emit(`<pre class="parse-error">`)
	c.emit(html.EscapeString(fmt.Sprintf("line %d: %s", n.Line, msg)))
	if ex := Excerpt(excerpt, c.regs.N(parameters.P_EXCERPTWIDTH)); ex != "" {
		c.emit("\n")
		c.emit(html.EscapeString(ex))
	}
	c.emit(`</pre>`)
	if unit != "" {
		href := slug.LinkWith(c.regs.S(parameters.P_EDITLINK), url.PathEscape(unit))
		c.emit(`<a class="edit-link" href="` + html.EscapeString(href) + `">edit</a>`)
	}
	c.emit(divClose)
	return nil
}

var setupGraphemes sync.Once

// Excerpt shortens a source line to at most width display columns,
// marking truncation with an ellipsis. Display widths follow UAX#11 and
// truncation never splits a grapheme cluster.
func Excerpt(line string, width int) string {
	line = strings.TrimRight(line, " \t\r\n")
	if width < 1 || line == "" {
		return ""
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(line)
	l := gstr.Len()
	widths := make([]int, l)
	total := 0
	for i := 0; i < l; i++ {
		widths[i] = uax11.Width([]byte(gstr.Nth(i)), uax11.LatinContext)
		total += widths[i]
	}
	if total <= width {
		return line
	}
	var b strings.Builder
	w := 0
	for i := 0; i < l && w+widths[i] <= width-1; i++ {
		b.WriteString(gstr.Nth(i))
		w += widths[i]
	}
	b.WriteString("…")
	return b.String()
}
