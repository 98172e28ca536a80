package parser

import (
	"context"
	"sort"

	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/core/slug"
)

// TitleResolver looks up page titles for a batch of slugs. Slugs without
// a page are absent from the result map.
type TitleResolver interface {
	ResolveTitles(ctx context.Context, slugs []string) (map[string]string, error)
}

// Links accumulates the slugs referenced by page links, together with the
// titles found for them.
type Links struct {
	slugs  map[string]struct{}
	titles map[string]string
}

// NewLinks creates an empty accumulator.
func NewLinks() *Links {
	return &Links{
		slugs:  make(map[string]struct{}),
		titles: make(map[string]string),
	}
}

// Add registers a referenced slug. Adding a slug twice has no effect.
func (l *Links) Add(slug string) {
	l.slugs[slug] = struct{}{}
}

// PutTitle sets the title for a slug.
func (l *Links) PutTitle(slug string, title string) {
	l.titles[slug] = title
}

// Title returns the title for a slug, if known.
func (l *Links) Title(slug string) (string, bool) {
	title, ok := l.titles[slug]
	return title, ok
}

// Len returns the number of referenced slugs.
func (l *Links) Len() int {
	return len(l.slugs)
}

// Slugs returns all referenced slugs, sorted.
func (l *Links) Slugs() []string {
	slugs := make([]string, 0, len(l.slugs))
	for s := range l.slugs {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}

// Unresolved returns the referenced slugs without a title, sorted.
func (l *Links) Unresolved() []string {
	var slugs []string
	for s := range l.slugs {
		if _, ok := l.titles[s]; !ok {
			slugs = append(slugs, s)
		}
	}
	sort.Strings(slugs)
	return slugs
}

// Titles returns a copy of the slug to title map.
func (l *Links) Titles() map[string]string {
	m := make(map[string]string, len(l.titles))
	for s, t := range l.titles {
		m[s] = t
	}
	return m
}

// Merge adds the slugs and titles of other to l. Titles in other take
// precedence.
func (l *Links) Merge(other *Links) {
	for s := range other.slugs {
		l.slugs[s] = struct{}{}
	}
	for s, t := range other.titles {
		l.titles[s] = t
	}
}

// Forget drops all titles, keeping the referenced slugs. A subsequent
// Resolve looks up every slug again.
func (l *Links) Forget() {
	l.titles = make(map[string]string)
}

// Resolve looks up titles for all unresolved slugs with a single call to
// r. Titles returned for slugs which have not been referenced, or which are
// not valid slugs, are ignored. Resolve returns the number of slugs for
// which a title has been found.
func (l *Links) Resolve(ctx context.Context, r TitleResolver) (int, error) {
	pending := l.Unresolved()
	if len(pending) == 0 || r == nil {
		return 0, nil
	}
	titles, err := r.ResolveTitles(ctx, pending)
	if err != nil {
		tracer().Errorf("title lookup for %d slugs failed: %v", len(pending), err)
		return 0, core.WrapError(err, core.EMISSING, "cannot look up page titles")
	}
	found := 0
	for s, title := range titles {
		if _, ok := l.slugs[s]; !ok || !slug.IsValid(s) {
			continue
		}
		if _, ok := l.titles[s]; !ok {
			found++
		}
		l.titles[s] = title
	}
	tracer().Infof("resolved %d of %d page titles", found, len(pending))
	return found, nil
}
