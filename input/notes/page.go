package notes

import (
	"context"
	"errors"
	"strings"

	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/core/slug"
	"github.com/flynn162/epsilon-delta-notes/engine/compiler"
	"github.com/flynn162/epsilon-delta-notes/engine/parser"
	"github.com/flynn162/epsilon-delta-notes/engine/tree"
	"golang.org/x/text/unicode/norm"
)

// Unit is a content unit of a page.
type Unit struct {
	ID   string // identifies the unit in edit links
	Text string // markup
}

// Page is a page of notes to render.
type Page struct {
	Slug  string
	Path  []string // slugs of the pages above this one, outermost first
	Units []Unit
}

// RenderedUnit is the result of rendering a single content unit.
type RenderedUnit struct {
	ID   string
	Tree *tree.Node         // syntax tree, or a diagnostic node
	HTML compiler.Fragments // rendered HTML
	Err  error              // parse or compile error, if any
	text string             // normalized markup
}

// Rendered is a rendered page.
type Rendered struct {
	Page       Page
	Units      []RenderedUnit
	ResolveErr error // error from the title resolver, if any
	links      *parser.Links
	regs       *parameters.RenderingRegisters
}

// Renderer renders pages. A renderer holds no state besides its
// parameters and may be shared.
type Renderer struct {
	regs *parameters.RenderingRegisters
}

// NewRenderer creates a page renderer. regs may be nil, in which case
// default registers are used.
func NewRenderer(regs *parameters.RenderingRegisters) *Renderer {
	if regs == nil {
		regs = parameters.NewRenderingRegisters()
	}
	return &Renderer{regs: regs}
}

// Render parses and compiles all units of a page. Titles of linked pages
// are looked up with a single call to resolver, which may be nil.
//
// Units which fail to parse or compile are rendered as diagnostics; their
// errors are reported in RenderedUnit.Err, and page links of units which
// fail to parse are not looked up. A failing resolver results in
// missing links and is reported in Rendered.ResolveErr. Render itself
// fails only if ctx is cancelled or a diagnostic cannot be rendered.
func (r *Renderer) Render(ctx context.Context, page Page, resolver TitleResolver) (*Rendered, error) {
	rendered := &Rendered{
		Page:  page,
		Units: make([]RenderedUnit, len(page.Units)),
		links: parser.NewLinks(),
		regs:  r.regs,
	}
	for i, u := range page.Units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := norm.NFC.String(u.Text)
		ru := RenderedUnit{ID: u.ID, text: text}
		p := parser.New(r.regs)
		ru.Tree, ru.Err = p.ParseString(text)
		if ru.Err != nil {
			// links seen before the error are not part of the page
			tracer().Infof("unit %s: %v", u.ID, ru.Err)
			ru.Tree = diagnostic(u.ID, text, ru.Err)
		} else {
			rendered.links.Merge(p.Links())
		}
		rendered.Units[i] = ru
	}
	addPath(rendered.links, page.Path)
	tracer().Debugf("page %s references %d pages", page.Slug, rendered.links.Len())
	if err := rendered.resolve(ctx, resolver); err != nil {
		return nil, err
	}
	if err := rendered.compile(); err != nil {
		return nil, err
	}
	return rendered, nil
}

// Refresh looks up titles again and re-compiles all units, without
// parsing them again. Use it after linked pages have been created,
// renamed or deleted.
func (rendered *Rendered) Refresh(ctx context.Context, resolver TitleResolver) error {
	links := parser.NewLinks()
	for _, u := range rendered.Units {
		for _, n := range tree.PageLinks(u.Tree) {
			if target, err := tree.PageLinkTarget(n); err == nil {
				links.Add(target.Slug)
			}
		}
	}
	addPath(links, rendered.Page.Path)
	rendered.links = links
	rendered.ResolveErr = nil
	if err := rendered.resolve(ctx, resolver); err != nil {
		return err
	}
	return rendered.compile()
}

func addPath(links *parser.Links, path []string) {
	for _, s := range path {
		if slug.IsValid(s) {
			links.Add(s)
		}
	}
}

func (rendered *Rendered) resolve(ctx context.Context, resolver TitleResolver) error {
	if _, err := rendered.links.Resolve(ctx, resolver); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		tracer().Errorf("page %s: %v", rendered.Page.Slug, err)
		rendered.ResolveErr = err
	}
	return nil
}

// compile renders every unit from its tree. Units which had failed to
// parse already hold a diagnostic tree.
func (rendered *Rendered) compile() error {
	c := compiler.New(rendered.regs)
	for i := range rendered.Units {
		u := &rendered.Units[i]
		frags, err := c.Compile(u.Tree, rendered.links)
		if err != nil {
			tracer().Infof("unit %s: %v", u.ID, err)
			u.Err = err
			u.Tree = diagnostic(u.ID, u.text, err)
			if frags, err = c.Compile(u.Tree, rendered.links); err != nil {
				return core.WrapError(err, core.EINTERNAL, "cannot render diagnostic for unit %s", u.ID)
			}
		}
		u.HTML = frags
	}
	return nil
}

// diagnostic creates a diagnostic node for a unit which failed to parse
// or compile.
func diagnostic(id string, text string, err error) *tree.Node {
	line, msg := 1, err.Error()
	var perr *parser.ParseError
	var cerr *compiler.CompileError
	if errors.As(err, &perr) {
		line, msg = perr.Line, perr.Msg
	} else if errors.As(err, &cerr) {
		line, msg = cerr.Line, cerr.Msg
	}
	return tree.NewDiagnostic(id, line, msg, tree.SourceLine(text, line))
}

// Title returns the title of a linked page, if it has been found.
func (rendered *Rendered) Title(s string) (string, bool) {
	return rendered.links.Title(s)
}

// Slugs returns the slugs of all pages linked from the page or on its path.
func (rendered *Rendered) Slugs() []string {
	return rendered.links.Slugs()
}

// Titles returns the titles found, by slug.
func (rendered *Rendered) Titles() map[string]string {
	return rendered.links.Titles()
}

// Failed returns the IDs of units rendered as diagnostics.
func (rendered *Rendered) Failed() []string {
	var ids []string
	for _, u := range rendered.Units {
		if u.Err != nil {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// Strings returns the HTML fragments of all units, in order.
func (rendered *Rendered) Strings() []string {
	var frags []string
	for _, u := range rendered.Units {
		frags = append(frags, u.HTML.Strings()...)
	}
	return frags
}

// String returns the HTML of all units.
func (rendered *Rendered) String() string {
	return strings.Join(rendered.Strings(), "")
}

// Crumb is an entry of a breadcrumb path.
type Crumb struct {
	Slug  string
	Title string // title of the page, or the slug if the page is missing
	Link  string
	Found bool
}

// Breadcrumbs returns crumbs for a path of slugs. Pages on the path of the
// rendered page have their titles looked up during rendering; for other
// slugs the slug is used as title.
func (rendered *Rendered) Breadcrumbs(path []string) []Crumb {
	crumbs := make([]Crumb, 0, len(path))
	prefix := rendered.regs.S(parameters.P_PAGELINK)
	for _, s := range path {
		c := Crumb{Slug: s, Title: s, Link: slug.LinkWith(prefix, s)}
		if title, ok := rendered.links.Title(s); ok {
			c.Title, c.Found = title, true
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}
