package tree

import (
	"strconv"
	"strings"

	"github.com/flynn162/epsilon-delta-notes/engine/symbol"
)

// Text values with structural meaning.
const (
	LineBreak      = "\n"
	ParagraphBreak = "\n\n"
)

// Child is an entry in a node's list of children: either text or a
// nested node. For text children Node is nil.
type Child struct {
	Text string
	Node *Node
}

// Text creates a text child.
func Text(s string) Child {
	return Child{Text: s}
}

// Sub creates a child holding a nested node.
func Sub(n *Node) Child {
	return Child{Node: n}
}

// IsText is true for text children.
func (c Child) IsText() bool {
	return c.Node == nil
}

// IsBreak is true for text children representing a line or paragraph break.
func (c Child) IsBreak() bool {
	return c.Node == nil && (c.Text == LineBreak || c.Text == ParagraphBreak)
}

// IsBlank is true for text children consisting of whitespace only.
func (c Child) IsBlank() bool {
	return c.Node == nil && strings.TrimSpace(c.Text) == ""
}

// Node is a node of the syntax tree.
type Node struct {
	Head     symbol.Symbol
	Children []Child
	Line     int // 1-based source line where the node was opened
}

// NewNode creates a node without children.
func NewNode(head symbol.Symbol, line int) *Node {
	return &Node{Head: head, Line: line}
}

// NewRoot creates the top-level node of a tree.
func NewRoot() *Node {
	return NewNode(symbol.Paragraph, 1)
}

// Append appends children to n and returns n.
func (n *Node) Append(children ...Child) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AppendText appends literal text. Text following a text child is merged
// into it, unless either one is a break.
func (n *Node) AppendText(s string) {
	if s == "" {
		return
	}
	if k := len(n.Children) - 1; k >= 0 {
		last := n.Children[k]
		if last.IsText() && !last.IsBreak() && s != LineBreak && s != ParagraphBreak {
			n.Children[k].Text += s
			return
		}
	}
	n.Children = append(n.Children, Text(s))
}

// AppendNode appends a nested node.
func (n *Node) AppendNode(sub *Node) {
	n.Children = append(n.Children, Sub(sub))
}

// Nodes returns the children which are nodes, skipping text.
func (n *Node) Nodes() []*Node {
	var nodes []*Node
	for _, c := range n.Children {
		if !c.IsText() {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

// TextContent concatenates the text of all descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.Children {
		if c.IsText() {
			b.WriteString(c.Text)
		} else {
			c.Node.writeText(b)
		}
	}
}

// IsTextOnly is true if n has no nested nodes.
func (n *Node) IsTextOnly() bool {
	for _, c := range n.Children {
		if !c.IsText() {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		if !c.IsText() {
			size += c.Node.Size()
		}
	}
	return size
}

// String prints the tree as an s-expression, e.g.
//
//	(p 'Hello ' (bold 'World'))
//
func (n *Node) String() string {
	var b strings.Builder
	n.writeSExpr(&b)
	return b.String()
}

var quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`)

func (n *Node) writeSExpr(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(string(n.Head))
	for _, c := range n.Children {
		b.WriteByte(' ')
		if c.IsText() {
			b.WriteByte('\'')
			quoter.WriteString(b, c.Text)
			b.WriteByte('\'')
		} else {
			c.Node.writeSExpr(b)
		}
	}
	b.WriteByte(')')
}

// --- Diagnostics -----------------------------------------------------------

// NewDiagnostic creates a synthetic node standing in for a content unit
// which failed to parse or compile. unit identifies the content unit,
// line is the line of the failure within the unit.
func NewDiagnostic(unit string, line int, msg string, excerpt string) *Node {
	if line < 1 {
		line = 1
	}
	tracer().Debugf("diagnostic for unit %s at line %d: %s", unit, line, msg)
	d := NewNode(symbol.Exception, line)
	return d.Append(Text(unit), Text(msg), Text(excerpt))
}

// Diagnostic returns the fields of a diagnostic node. ok is false if n is
// not a well-formed diagnostic node.
func (n *Node) Diagnostic() (unit string, msg string, excerpt string, ok bool) {
	if n == nil || n.Head != symbol.Exception || len(n.Children) != 3 || !n.IsTextOnly() {
		return "", "", "", false
	}
	return n.Children[0].Text, n.Children[1].Text, n.Children[2].Text, true
}

// SourceLine returns line number line (1-based) of text, or "" if text
// has fewer lines.
func SourceLine(text string, line int) string {
	if line < 1 {
		return ""
	}
	for i := 1; i < line; i++ {
		k := strings.IndexByte(text, '\n')
		if k < 0 {
			return ""
		}
		text = text[k+1:]
	}
	if k := strings.IndexByte(text, '\n'); k >= 0 {
		text = text[:k]
	}
	return strings.TrimRight(text, "\r")
}

func lineAttr(n *Node) string {
	return strconv.Itoa(n.Line)
}
