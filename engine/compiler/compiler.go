package compiler

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/engine/symbol"
	"github.com/flynn162/epsilon-delta-notes/engine/tree"
	"golang.org/x/net/html"
)

// CompileError is the error type for trees which cannot be rendered,
// e.g. a two-column block with three columns.
type CompileError struct {
	Line int // 1-based
	Msg  string
	err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap returns the application error, which has code core.EINVALID.
func (e *CompileError) Unwrap() error {
	return e.err
}

func newCompileError(line int, format string, v ...interface{}) *CompileError {
	msg := fmt.Sprintf(format, v...)
	return &CompileError{
		Line: line,
		Msg:  msg,
		err:  core.Error(core.EINVALID, "line %d: %s", line, msg),
	}
}

// Titles looks up page titles by slug.
type Titles interface {
	Title(slug string) (string, bool)
}

// TitleMap is a Titles table backed by a map.
type TitleMap map[string]string

// Title returns the title for slug, if present.
func (m TitleMap) Title(slug string) (string, bool) {
	t, ok := m[slug]
	return t, ok
}

// Fixed output.
const (
	compilationStarts = "\n<!-- compilation starts -->\n"
	compilationEnds   = "\n<!-- compilation ends -->\n"
	leftMarginOpen    = `<div class="has-left-margin">`
	rightMarginOpen   = `<div class="has-right-margin">`
	divClose          = `</div>`
	paragraphOpen     = "\n" + `<div class="paragraph">`
	paragraphNext     = `</div>` + "\n" + `<div class="paragraph">`
)

type state int8

const (
	running state = iota
	flushFootnotes
	done
)

// Compiler renders trees to HTML. A compiler may be used for more than
// one tree, one at a time.
type Compiler struct {
	base      *parameters.RenderingRegisters
	regs      *parameters.RenderingRegisters
	titles    Titles
	out       *output
	footnotes *arraylist.List // of *tree.Node
	line      int             // line of the node being rendered
}

// New creates a compiler. regs may be nil, in which case default registers
// are used.
func New(regs *parameters.RenderingRegisters) *Compiler {
	if regs == nil {
		regs = parameters.NewRenderingRegisters()
	}
	return &Compiler{base: regs}
}

// Compile renders a tree with a compiler using default registers.
func Compile(root *tree.Node, titles Titles) (Fragments, error) {
	return New(nil).Compile(root, titles)
}

// Compile renders a tree. titles may be nil, making every page link a
// missing link. The tree is not modified.
//
// The root is expected to have head symbol.Paragraph; its children form
// the top-level text. Any other root is rendered as the single child of
// the top-level text.
func (c *Compiler) Compile(root *tree.Node, titles Titles) (Fragments, error) {
	if root == nil {
		return Fragments{}, core.Error(core.EINVALID, "cannot compile empty tree")
	}
	if titles == nil {
		titles = TitleMap(nil)
	}
	c.regs = c.base.Copy()
	c.titles = titles
	c.out = newOutput()
	c.footnotes = arraylist.New()
	c.line = root.Line
	rest := root.Children
	if !isTopLevel(root) {
		rest = []tree.Child{tree.Sub(root)}
	}
	c.emit(compilationStarts)
	var err error
	for s := running; s != done; {
		switch s {
		case running:
			c.emit(leftMarginOpen)
			if rest, _, err = c.renderRun(rest, true); err != nil {
				return Fragments{}, err
			}
			c.emit(divClose)
			if c.footnotes.Empty() {
				s = done
			} else {
				s = flushFootnotes
			}
		case flushFootnotes:
			tracer().Debugf("flushing %d margin notes", c.footnotes.Size())
			c.emit(rightMarginOpen)
			for i := 0; i < c.footnotes.Size(); i++ { // may grow while flushing
				fn, _ := c.footnotes.Get(i)
				if err = c.footnote(fn.(*tree.Node)); err != nil {
					return Fragments{}, err
				}
			}
			c.emit(divClose)
			c.footnotes.Clear()
			if len(rest) > 0 {
				s = running
			} else {
				s = done
			}
		}
	}
	c.emit(compilationEnds)
	frags, err := c.out.fragments()
	if err != nil {
		return Fragments{}, core.WrapError(err, core.EINTERNAL, "cannot collect output fragments")
	}
	tracer().Debugf("compiled %d fragments", frags.Len())
	return frags, nil
}

func isTopLevel(root *tree.Node) bool {
	return root.Head == symbol.Paragraph
}

func (c *Compiler) emit(s string) {
	c.out.emit(s)
}

func (c *Compiler) text(s string) {
	c.emit("<span>")
	c.emit(html.EscapeString(s))
	c.emit("</span>")
}

// renderRun renders a sequence of children, wrapped into paragraphs if
// P_PARAGRAPHS is set. If suspendable is set, rendering stops at the first
// paragraph break with margin notes waiting to be placed, and the
// children after the break are returned.
func (c *Compiler) renderRun(children []tree.Child, suspendable bool) ([]tree.Child, bool, error) {
	paras := c.regs.B(parameters.P_PARAGRAPHS)
	if paras {
		c.emit(paragraphOpen)
	}
	rest, suspended, err := c.renderChildren(children, paras, suspendable)
	if err != nil || suspended {
		return rest, suspended, err
	}
	if paras {
		c.emit(divClose)
	}
	return nil, false, nil
}

func (c *Compiler) renderChildren(children []tree.Child, paras, suspendable bool) ([]tree.Child, bool, error) {
	for i, ch := range children {
		switch {
		case !ch.IsText():
			if err := c.render(ch.Node); err != nil {
				return nil, false, err
			}
		case ch.Text == tree.ParagraphBreak:
			if !paras {
				return nil, false, newCompileError(c.line, "paragraph break not allowed here")
			}
			if suspendable && !c.footnotes.Empty() {
				c.emit(divClose)
				tracer().Debugf("suspending at paragraph break, %d children left", len(children)-i-1)
				return children[i+1:], true, nil
			}
			c.emit(paragraphNext)
		default:
			c.text(ch.Text)
		}
	}
	return nil, false, nil
}

// render dispatches on the head symbol of n.
func (c *Compiler) render(n *tree.Node) error {
	h, ok := dispatch[n.Head]
	if !ok {
		return newCompileError(n.Line, "no renderer for %q", n.Head)
	}
	outer := c.line
	c.line = n.Line
	err := h(c, n)
	c.line = outer
	return err
}

// inline renders children without paragraphs.
func (c *Compiler) inline(children []tree.Child) error {
	c.regs.Begingroup()
	c.regs.Push(parameters.P_PARAGRAPHS, false)
	_, _, err := c.renderRun(children, false)
	c.regs.Endgroup()
	return err
}

// block renders children as a sequence of paragraphs.
func (c *Compiler) block(children []tree.Child) error {
	c.regs.Begingroup()
	c.regs.Push(parameters.P_PARAGRAPHS, true)
	_, _, err := c.renderRun(children, false)
	c.regs.Endgroup()
	return err
}
