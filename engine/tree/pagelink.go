package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flynn162/epsilon-delta-notes/core/slug"
	"github.com/flynn162/epsilon-delta-notes/engine/symbol"
)

// ErrNotPageLink is returned by PageLinkTarget for nodes which are not
// page links. It does not indicate malformed input.
var ErrNotPageLink = errors.New("not a page link")

// Errors for malformed page links.
var (
	ErrNoLinkTarget      = errors.New("page link without target")
	ErrLinkTargetNotText = errors.New("page link target must be text")
	ErrInvalidSlug       = errors.New("invalid slug")
)

// LinkTarget is the destination of a page link, together with an optional
// label to display instead of the page's title.
type LinkTarget struct {
	Slug     string
	Label    []Child
	Explicit bool // Label is set by the author
}

// PageLinkTarget extracts slug and label from a page node. The first text
// child holds the slug; the forms accepted are:
//
//	@page{slug}                 links to slug, displays the page title
//	@page{slug: display title}  displays the text after the colon
//	@page{slug @bold{label}}    label is every child after the slug text
//
// The whole text before a colon, or the whole first text child if there
// is none, must be a valid slug. Thus a label following the slug without
// a colon must start with a command: @page{calc Calculus} is an invalid
// slug.
func PageLinkTarget(n *Node) (LinkTarget, error) {
	if n == nil || n.Head != symbol.Page {
		return LinkTarget{}, ErrNotPageLink
	}
	i := 0
	for i < len(n.Children) && n.Children[i].IsBlank() {
		i++
	}
	if i == len(n.Children) {
		return LinkTarget{}, ErrNoLinkTarget
	}
	first := n.Children[i]
	if !first.IsText() {
		return LinkTarget{}, ErrLinkTargetNotText
	}
	var target LinkTarget
	var label []Child
	if k := strings.IndexByte(first.Text, ':'); k >= 0 {
		target.Slug = strings.TrimSpace(first.Text[:k])
		if rest := strings.TrimLeft(first.Text[k+1:], " \t"); rest != "" {
			label = append(label, Text(rest))
		}
	} else {
		target.Slug = strings.TrimSpace(first.Text)
	}
	label = append(label, n.Children[i+1:]...)
	if !slug.IsValid(target.Slug) {
		return LinkTarget{}, fmt.Errorf("%w: %q", ErrInvalidSlug, target.Slug)
	}
	target.Label = trimBlank(label)
	target.Explicit = len(target.Label) > 0
	tracer().Debugf("page link to %q, explicit label = %v", target.Slug, target.Explicit)
	return target, nil
}

func trimBlank(children []Child) []Child {
	for len(children) > 0 && children[0].IsBlank() {
		children = children[1:]
	}
	for len(children) > 0 && children[len(children)-1].IsBlank() {
		children = children[:len(children)-1]
	}
	if len(children) == 0 {
		return nil
	}
	return children
}
