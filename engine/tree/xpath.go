package tree

import (
	"errors"

	"github.com/antchfx/xpath"
)

// NodeNavigator implements xpath.NodeNavigator for syntax trees.
//
// The navigator adds a virtual document node above the root node, so that
// absolute paths like "/p" address the root node itself. Text children
// are XPath text nodes, and every node has a single attribute "line".
//
// For a description of the various methods of interface xpath.NodeNavigator
// please refer to the documentation of antchfx/xpath. It is not replicated here.
type NodeNavigator struct {
	root  *Node
	atDoc bool
	path  []step // from the root node down to the current child
	attr  int    // attributes index
}

type step struct {
	parent *Node
	inx    int // index into children slice of parent
}

const lineAttrName = "line"

// NewNavigator creates a new xpath.NodeNavigator for a tree.
func NewNavigator(root *Node) *NodeNavigator {
	return &NodeNavigator{
		root:  root,
		atDoc: true,
		attr:  -1,
	}
}

func (nav *NodeNavigator) current() Child {
	if len(nav.path) == 0 {
		return Sub(nav.root)
	}
	s := nav.path[len(nav.path)-1]
	return s.parent.Children[s.inx]
}

// CurrentNode returns the node the navigator is positioned at, or nil if
// it is positioned at text or at the document node.
func CurrentNode(nav xpath.NodeNavigator) (*Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type tree.NodeNavigator")
	}
	if mynav.atDoc {
		return nil, nil
	}
	return mynav.current().Node, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch {
	case nav.atDoc:
		return xpath.RootNode
	case nav.attr != -1:
		return xpath.AttributeNode
	case nav.current().IsText():
		return xpath.TextNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.atDoc {
		return ""
	}
	if nav.attr != -1 {
		return lineAttrName
	}
	if c := nav.current(); !c.IsText() {
		return string(c.Node.Head)
	}
	return ""
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.atDoc {
		return nav.root.TextContent()
	}
	c := nav.current()
	if c.IsText() {
		return c.Text
	}
	if nav.attr != -1 {
		return lineAttr(c.Node)
	}
	return c.Node.TextContent()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	n.path = append([]step(nil), nav.path...)
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.atDoc = true
	nav.path = nav.path[:0]
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.atDoc {
		return false
	}
	if len(nav.path) == 0 {
		nav.atDoc = true
		return true
	}
	nav.path = nav.path[:len(nav.path)-1]
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.atDoc || nav.attr != -1 || nav.current().IsText() {
		return false
	}
	nav.attr = 0
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if nav.atDoc {
		nav.atDoc = false
		return true
	}
	c := nav.current()
	if c.IsText() || len(c.Node.Children) == 0 {
		return false
	}
	nav.path = append(nav.path, step{parent: c.Node, inx: 0})
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.atDoc || len(nav.path) == 0 {
		return false
	}
	s := &nav.path[len(nav.path)-1]
	if s.inx == 0 {
		return false
	}
	s.inx = 0
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.atDoc || len(nav.path) == 0 {
		return false
	}
	s := &nav.path[len(nav.path)-1]
	if s.inx+1 >= len(s.parent.Children) { // was last child of parent
		return false
	}
	s.inx++
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.atDoc || len(nav.path) == 0 {
		return false
	}
	s := &nav.path[len(nav.path)-1]
	if s.inx == 0 {
		return false
	}
	s.inx--
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.atDoc = n.atDoc
	nav.path = append(nav.path[:0], n.path...)
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// --- Queries ---------------------------------------------------------------

// Select returns all nodes of a tree matching an XPath expression.
// Matches which are not nodes, i.e. text or attributes, are skipped.
func Select(root *Node, expr string) ([]*Node, error) {
	if root == nil {
		return nil, nil
	}
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	var nodes []*Node
	it := x.Select(NewNavigator(root))
	for it.MoveNext() {
		nav, ok := it.Current().(*NodeNavigator)
		if !ok || nav.atDoc || nav.attr != -1 {
			continue
		}
		if c := nav.current(); !c.IsText() {
			nodes = append(nodes, c.Node)
		}
	}
	tracer().Debugf("xpath %q selected %d nodes", expr, len(nodes))
	return nodes, nil
}

// PageLinks returns all page nodes of a tree, in document order.
func PageLinks(root *Node) []*Node {
	nodes, err := Select(root, "//page")
	if err != nil {
		tracer().Errorf("page link query: %v", err)
		return nil
	}
	return nodes
}
