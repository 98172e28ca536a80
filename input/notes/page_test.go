package notes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/flynn162/epsilon-delta-notes/engine/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() Page {
	return Page{
		Slug: "green",
		Path: []string{"home", "calc"},
		Units: []Unit{
			{ID: "1", Text: "Hello @bold{World}, see @page{calc}."},
			{ID: "2", Text: "fine\n\nstill fine\n@blod{x} broken"},
			{ID: "3", Text: "@page{stokes: Stokes} and @page{missing}"},
		},
	}
}

func doc(t *testing.T, frags string) *goquery.Document {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(frags))
	require.NoError(t, err)
	return d
}

func TestMalformedUnitIsIsolated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	titles := MapResolver{"calc": "Calculus", "home": "Notes", "stokes": "Stokes' Theorem"}
	r, err := NewRenderer(nil).Render(context.Background(), samplePage(), titles)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, r.Failed())
	//
	var perr *parser.ParseError
	require.True(t, errors.As(r.Units[1].Err, &perr))
	assert.Equal(t, 4, perr.Line)
	d := doc(t, r.Units[1].HTML.String())
	pre := d.Find("pre.parse-error").Text()
	assert.Contains(t, pre, "line 4")
	assert.Contains(t, pre, "@blod{x} broken")
	href, _ := d.Find("a.edit-link").Attr("href")
	assert.Equal(t, "edit#content-2", href)
	//
	d = doc(t, r.Units[0].HTML.String())
	assert.Equal(t, "World", d.Find("b").Text())
	assert.Equal(t, "Calculus", d.Find("a.page-link").Text())
	d = doc(t, r.Units[2].HTML.String())
	assert.Equal(t, 1, d.Find("a.page-missing").Length())
	assert.Equal(t, 0, d.Find("pre.parse-error").Length())
}

func TestCompileErrorBecomesDiagnostic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	page := Page{Units: []Unit{
		{ID: "a", Text: "x\n@twocol{@{only one}}"},
		{ID: "b", Text: "y"},
	}}
	r, err := NewRenderer(nil).Render(context.Background(), page, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, r.Failed())
	pre := doc(t, r.Units[0].HTML.String()).Find("pre.parse-error").Text()
	assert.Contains(t, pre, "line 2: two columns expected, got 1")
	assert.Contains(t, r.String(), "<span>y</span>")
}

type countingResolver struct {
	MapResolver
	calls int
	asked []string
}

func (cr *countingResolver) ResolveTitles(ctx context.Context, slugs []string) (map[string]string, error) {
	cr.calls++
	cr.asked = slugs
	return cr.MapResolver.ResolveTitles(ctx, slugs)
}

func TestOneBatchLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	cr := &countingResolver{MapResolver: MapResolver{"calc": "Calculus"}}
	r, err := NewRenderer(nil).Render(context.Background(), samplePage(), cr)
	require.NoError(t, err)
	assert.Equal(t, 1, cr.calls)
	assert.Equal(t, []string{"calc", "home", "missing", "stokes"}, cr.asked)
	assert.Equal(t, []string{"calc", "home", "missing", "stokes"}, r.Slugs())
	assert.Equal(t, map[string]string{"calc": "Calculus"}, r.Titles())
}

func TestRefreshWithoutReparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	r, err := NewRenderer(nil).Render(context.Background(), samplePage(), MapResolver{})
	require.NoError(t, err)
	before := r.Units[2].Tree
	assert.Equal(t, 2, doc(t, r.Units[2].HTML.String()).Find("a.page-missing").Length())
	//
	cr := &countingResolver{MapResolver: MapResolver{"missing": "Found now", "stokes": "Stokes"}}
	require.NoError(t, r.Refresh(context.Background(), cr))
	assert.Equal(t, 1, cr.calls)
	assert.Same(t, before, r.Units[2].Tree)
	d := doc(t, r.Units[2].HTML.String())
	assert.Equal(t, 0, d.Find("a.page-missing").Length())
	assert.Equal(t, "Found now", d.Find("a.page-link").Eq(1).Text())
	assert.Equal(t, []string{"2"}, r.Failed())
}

func TestResolverFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	failing := TitleResolverFunc(func(ctx context.Context, slugs []string) (map[string]string, error) {
		return nil, errors.New("database is locked")
	})
	r, err := NewRenderer(nil).Render(context.Background(), samplePage(), failing)
	require.NoError(t, err)
	assert.Error(t, r.ResolveErr)
	assert.Equal(t, 1, doc(t, r.Units[0].HTML.String()).Find("a.page-missing").Length())
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRenderer(nil).Render(ctx, samplePage(), MapResolver{})
	assert.Error(t, err)
}

func TestBreadcrumbs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	r, err := NewRenderer(nil).Render(context.Background(), samplePage(), MapResolver{"home": "Notes"})
	require.NoError(t, err)
	crumbs := r.Breadcrumbs(r.Page.Path)
	assert.Equal(t, []Crumb{
		{Slug: "home", Title: "Notes", Link: "?:=home", Found: true},
		{Slug: "calc", Title: "calc", Link: "?:=calc", Found: false},
	}, crumbs)
}

func TestInputIsNormalized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	page := Page{Units: []Unit{{ID: "1", Text: "Cafe\u0301"}}}
	r, err := NewRenderer(nil).Render(context.Background(), page, nil)
	require.NoError(t, err)
	assert.Contains(t, r.String(), "<span>Caf\u00e9</span>")
}

func TestFailedUnitContributesNoLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.page")
	defer teardown()
	//
	page := Page{Units: []Unit{
		{ID: "1", Text: "@page{foo} @blod{x}"},
		{ID: "2", Text: "@page{bar}"},
	}}
	cr := &countingResolver{MapResolver: MapResolver{}}
	r, err := NewRenderer(nil).Render(context.Background(), page, cr)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, r.Failed())
	assert.Equal(t, []string{"bar"}, cr.asked)
	assert.Equal(t, []string{"bar"}, r.Slugs())
	//
	require.NoError(t, r.Refresh(context.Background(), cr))
	assert.Equal(t, []string{"bar"}, cr.asked)
	assert.Equal(t, []string{"bar"}, r.Slugs())
}
