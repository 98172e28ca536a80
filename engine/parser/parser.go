package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/engine/lexer"
	"github.com/flynn162/epsilon-delta-notes/engine/symbol"
	"github.com/flynn162/epsilon-delta-notes/engine/tree"
)

// ParseError is the error type for malformed markup.
type ParseError struct {
	Line int // 1-based
	Msg  string
	err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap returns the application error. Its code is core.ELIMIT for
// input nested too deeply and core.EINVALID otherwise.
func (e *ParseError) Unwrap() error {
	return e.err
}

func newParseError(code int, line int, format string, v ...interface{}) *ParseError {
	msg := fmt.Sprintf(format, v...)
	return &ParseError{
		Line: line,
		Msg:  msg,
		err:  core.Error(code, "line %d: %s", line, msg),
	}
}

// Parser converts tokens to a syntax tree. A parser may be used for
// more than one input, one at a time. All page links found are collected
// in the same Links accumulator.
type Parser struct {
	links    *Links
	maxdepth int
	line     int
	stack    *arraystack.Stack // of *bracket
}

// bracket is an entry of the bracket stack.
type bracket struct {
	flavor lexer.Kind // Open or RawOpen
	node   *tree.Node // command node, nil for brackets in text
	parent *tree.Node // node receiving children before the bracket was opened
}

// New creates a parser. regs may be nil, in which case default registers
// are used.
func New(regs *parameters.RenderingRegisters) *Parser {
	if regs == nil {
		regs = parameters.NewRenderingRegisters()
	}
	return &Parser{
		links:    NewLinks(),
		maxdepth: regs.N(parameters.P_MAXDEPTH),
	}
}

// Links returns the link accumulator of the parser.
func (p *Parser) Links() *Links {
	return p.links
}

// ParseString tokenizes and parses text.
func (p *Parser) ParseString(text string) (*tree.Node, error) {
	return p.Parse(lexer.Tokenize(text))
}

// Parse builds a tree from tokens. The root of the tree has head
// symbol.Paragraph.
func (p *Parser) Parse(tokens []lexer.Token) (*tree.Node, error) {
	tokens = lexer.Collapse(tokens)
	p.line = 1
	p.stack = arraystack.New()
	root := tree.NewRoot()
	cur := root
	var err error
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case lexer.Literal:
			cur.AppendText(t.Text)
		case lexer.LineBreak:
			p.lineBreak(cur, t.Count)
		case lexer.At:
			if i, cur, err = p.command(tokens, i, cur); err != nil {
				return nil, err
			}
		case lexer.Open, lexer.RawOpen:
			if err = p.push(&bracket{flavor: t.Kind, parent: cur}); err != nil {
				return nil, err
			}
			cur.AppendText(t.Text)
		case lexer.Close, lexer.RawClose:
			if cur, err = p.close(t, cur); err != nil {
				return nil, err
			}
		}
	}
	if !p.stack.Empty() {
		return nil, newParseError(core.EINVALID, p.line, "unexpected end, expecting more content")
	}
	tracer().Debugf("parsed %d lines into %d nodes", p.line, root.Size())
	return root, nil
}

func (p *Parser) lineBreak(n *tree.Node, count int) {
	p.line += count
	if count == 1 {
		n.AppendText(tree.LineBreak)
	} else if count > 1 {
		n.AppendText(tree.ParagraphBreak)
	}
}

func (p *Parser) push(b *bracket) error {
	if p.stack.Size() >= p.maxdepth {
		return newParseError(core.ELIMIT, p.line, "nesting too deep, limit is %d", p.maxdepth)
	}
	p.stack.Push(b)
	return nil
}

// command handles a command starting with '@' at tokens[i]. It returns
// the index of the last token consumed and the node receiving further
// children.
func (p *Parser) command(tokens []lexer.Token, i int, cur *tree.Node) (int, *tree.Node, error) {
	i++
	if i == len(tokens) {
		return i, cur, newParseError(core.EINVALID, p.line, "expected operator or list")
	}
	var head symbol.Symbol
	switch t := tokens[i]; t.Kind {
	case lexer.Open, lexer.RawOpen:
		head = symbol.List
	case lexer.Literal:
		name := strings.Trim(t.Text, " \t")
		if !symbol.IsValidName(name) {
			return i, cur, newParseError(core.EINVALID, p.line, "invalid command name %q", name)
		}
		sym, ok := symbol.Lookup(name)
		if !ok {
			if s := symbol.Suggest(name); len(s) > 0 {
				return i, cur, newParseError(core.EINVALID, p.line, "unknown command %q, did you mean %s?",
					name, strings.Join(s, " or "))
			}
			return i, cur, newParseError(core.EINVALID, p.line, "unknown command %q", name)
		}
		head = sym
		i++
		if i == len(tokens) || (tokens[i].Kind != lexer.Open && tokens[i].Kind != lexer.RawOpen) {
			return i, cur, newParseError(core.EINVALID, p.line, "expecting { or |{ after %s", name)
		}
	default:
		return i, cur, newParseError(core.EINVALID, p.line, "expected operator or list")
	}
	n := tree.NewNode(head, p.line)
	b := &bracket{flavor: tokens[i].Kind, node: n, parent: cur}
	if err := p.push(b); err != nil {
		return i, cur, err
	}
	tracer().Debugf("line %d: open %s with %s", p.line, head, b.flavor)
	if b.flavor == lexer.Open {
		return i, n, nil
	}
	for i++; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case lexer.RawClose:
			p.stack.Pop()
			cur, err := p.finish(b)
			return i, cur, err
		case lexer.LineBreak:
			p.lineBreak(n, t.Count)
		default:
			n.AppendText(t.Source())
		}
	}
	return i, cur, newParseError(core.EINVALID, p.line, "unexpected end, expecting more content")
}

// close handles a close bracket token and returns the node receiving
// further children.
func (p *Parser) close(t lexer.Token, cur *tree.Node) (*tree.Node, error) {
	top, ok := p.stack.Peek()
	if !ok {
		return cur, newParseError(core.EINVALID, p.line, "unmatched close bracket %s", t.Text)
	}
	b := top.(*bracket)
	if (b.flavor == lexer.Open) != (t.Kind == lexer.Close) {
		return cur, newParseError(core.EINVALID, p.line, "mismatched bracket %s", t.Text)
	}
	p.stack.Pop()
	if b.node == nil {
		cur.AppendText(t.Text)
		return cur, nil
	}
	return p.finish(b)
}

// finish appends a completed command node to its parent and registers
// page links.
func (p *Parser) finish(b *bracket) (*tree.Node, error) {
	b.parent.AppendNode(b.node)
	if b.node.Head != symbol.Page {
		return b.parent, nil
	}
	target, err := tree.PageLinkTarget(b.node)
	if err != nil {
		return b.parent, newParseError(core.EINVALID, p.line, "page link: %v", err)
	}
	p.links.Add(target.Slug)
	return b.parent, nil
}
