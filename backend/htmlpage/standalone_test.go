package htmlpage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/input/notes"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, units ...string) []string {
	page := notes.Page{Slug: "test"}
	for i, u := range units {
		page.Units = append(page.Units, notes.Unit{ID: string(rune('a' + i)), Text: u})
	}
	r, err := notes.NewRenderer(nil).Render(context.Background(), page, nil)
	require.NoError(t, err)
	return r.Strings()
}

func TestDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.backend")
	defer teardown()
	//
	out, err := Document(render(t, "Hello @bold{World}"), Options{Title: "A & B"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "A & B", doc.Find("title").Text())
	assert.Contains(t, doc.Find("head style").Text(), ".has-left-margin")
	assert.Equal(t, "World", doc.Find("body div.paragraph b").Text())
}

func TestDocumentInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.backend")
	defer teardown()
	//
	out, err := Document(render(t, "text"), Options{
		Title:      "inline",
		Stylesheet: ".paragraph { color: red; }",
		Inline:     true,
	})
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	style, ok := doc.Find("div.paragraph").Attr("style")
	assert.True(t, ok)
	assert.Contains(t, style, "color: red")
}

func TestExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.backend")
	defer teardown()
	//
	var buf bytes.Buffer
	n, err := Export(&buf, render(t, "one", "@blod{two}"), Options{Title: "export"})
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)
	assert.Contains(t, buf.String(), `class="parse-error"`)
	//
	_, err = Export(&buf, nil, Options{Stylesheet: "p { color: red;"})
	if err != nil {
		assert.Equal(t, core.EINVALID, core.Code(err))
	}
	assert.NotEmpty(t, DefaultStylesheet())
}
