package compiler

import (
	"fmt"

	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/core/slug"
	"github.com/flynn162/epsilon-delta-notes/engine/symbol"
	"github.com/flynn162/epsilon-delta-notes/engine/tree"
	"golang.org/x/net/html"
)

type handler func(c *Compiler, n *tree.Node) error

// dispatch maps head symbols to renderers. It is read-only after init.
var dispatch map[symbol.Symbol]handler

func init() {
	dispatch = map[symbol.Symbol]handler{
		symbol.Paragraph:   compileGroup,
		symbol.List:        compileGroup,
		symbol.Math:        compileInlineMath,
		symbol.DisplayMath: compileDisplayMath,
		symbol.TwoCol:      compileTwoCols,
		symbol.Note:        queueFootnote,
		symbol.MarginNote:  queueFootnote,
		symbol.Italic:      compileItalic,
		symbol.Bold:        compileBold,
		symbol.Page:        compilePageLink,
		symbol.Exception:   compileDiagnostic,
	}
}

// Groups render their children in place, with the paragraph mode of the
// enclosing text.
func compileGroup(c *Compiler, n *tree.Node) error {
	_, _, err := c.renderChildren(n.Children, c.regs.B(parameters.P_PARAGRAPHS), false)
	return err
}

func compileItalic(c *Compiler, n *tree.Node) error {
	return compileSingleTag(c, "i", n)
}

func compileBold(c *Compiler, n *tree.Node) error {
	return compileSingleTag(c, "b", n)
}

func compileSingleTag(c *Compiler, tag string, n *tree.Node) error {
	c.emit("<" + tag + ">")
	if err := c.inline(n.Children); err != nil {
		return err
	}
	c.emit("</" + tag + ">")
	return nil
}

func compileInlineMath(c *Compiler, n *tree.Node) error {
	return compileMath(c, n, false)
}

func compileDisplayMath(c *Compiler, n *tree.Node) error {
	return compileMath(c, n, true)
}

func compileMath(c *Compiler, n *tree.Node, display bool) error {
	if !n.IsTextOnly() {
		return newCompileError(n.Line, "%s expects text only", n.Head)
	}
	escaped := html.EscapeString(n.TextContent())
	cls, dollar := "tex-inline", "$"
	if display {
		cls, dollar = "tex-display", "$$"
	}
	c.emit(fmt.Sprintf(`<div class="%s math" data-tex="%s">`, cls, escaped))
	c.emit(`<span class="temp">` + dollar)
	c.emit(escaped)
	c.emit(dollar + `</span>`)
	c.emit(divClose)
	return nil
}

var columns = [2]string{"col-left", "col-right"}

// Text between the columns is ignored.
func compileTwoCols(c *Compiler, n *tree.Node) error {
	cols := n.Nodes()
	if len(cols) != len(columns) {
		return newCompileError(n.Line, "two columns expected, got %d", len(cols))
	}
	for i, col := range cols {
		if col.Head != symbol.List {
			return newCompileError(col.Line, "%s must be a list, is %s", columns[i], col.Head)
		}
	}
	c.emit(`<div class="col-container">`)
	for i, col := range cols {
		c.emit("\n" + `<div class="` + columns[i] + `">`)
		if err := c.block(col.Children); err != nil {
			return err
		}
		c.emit(divClose + "\n")
	}
	c.emit(divClose)
	return nil
}

func queueFootnote(c *Compiler, n *tree.Node) error {
	c.footnotes.Add(n)
	return nil
}

const footnoteOpen = "\n" + `<div class="margin-note">` +
	"\n" + `<div class="margin-note-content">` +
	"\n" + `<p class="visually-hidden">[[ Margin note: ]]</p>` + "\n"

// footnote renders a queued margin note.
func (c *Compiler) footnote(n *tree.Node) error {
	outer := c.line
	c.line = n.Line
	defer func() { c.line = outer }()
	c.emit(footnoteOpen)
	if err := c.block(n.Children); err != nil {
		return err
	}
	c.emit(divClose + divClose)
	return nil
}

func compilePageLink(c *Compiler, n *tree.Node) error {
	target, err := tree.PageLinkTarget(n)
	if err != nil {
		return newCompileError(n.Line, "page link: %v", err)
	}
	href := html.EscapeString(slug.LinkWith(c.regs.S(parameters.P_PAGELINK), target.Slug))
	title, found := c.titles.Title(target.Slug)
	cls := "page-link"
	if !found {
		tracer().Debugf("no title for page %q", target.Slug)
		cls = "page-link page-missing"
	}
	c.emit(`<a class="` + cls + `" href="` + href + `">`)
	switch {
	case target.Explicit:
		if err := c.inline(target.Label); err != nil {
			return err
		}
	case found:
		c.emit(html.EscapeString(title))
	default:
		c.emit(html.EscapeString(target.Slug))
	}
	c.emit(`</a>`)
	return nil
}
