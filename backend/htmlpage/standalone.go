package htmlpage

import (
	_ "embed"
	"io"
	"strings"

	"github.com/aymerick/douceur/inliner"
	"github.com/aymerick/douceur/parser"
	"github.com/flynn162/epsilon-delta-notes/core"
	"golang.org/x/net/html"
)

//go:embed notes.css
var defaultStylesheet string

// DefaultStylesheet returns the stylesheet for rendered notes.
func DefaultStylesheet() string {
	return defaultStylesheet
}

// Options control the export of a document.
type Options struct {
	Title      string
	Stylesheet string // CSS to use instead of the default stylesheet
	Inline     bool   // move CSS rules into style attributes
}

// Document wraps HTML fragments into a standalone HTML document.
func Document(fragments []string, opts Options) (string, error) {
	css := opts.Stylesheet
	if css == "" {
		css = defaultStylesheet
	}
	sheet, err := parser.Parse(css)
	if err != nil {
		tracer().Errorf("stylesheet: %v", err)
		return "", core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	tracer().Debugf("stylesheet has %d rules", len(sheet.Rules))
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(opts.Title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(sheet.String())
	b.WriteString("\n</style>\n</head>\n<body>\n")
	for _, f := range fragments {
		b.WriteString(f)
	}
	b.WriteString("\n</body>\n</html>\n")
	doc := b.String()
	if !opts.Inline {
		return doc, nil
	}
	inlined, err := inliner.Inline(doc)
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot inline stylesheet")
	}
	return inlined, nil
}

// Export writes a standalone HTML document to w and returns the number
// of bytes written.
func Export(w io.Writer, fragments []string, opts Options) (int, error) {
	doc, err := Document(fragments, opts)
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, doc)
	tracer().Infof("exported document %q, %d bytes", opts.Title, n)
	return n, err
}
