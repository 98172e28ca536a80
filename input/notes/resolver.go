package notes

import (
	"context"

	"github.com/flynn162/epsilon-delta-notes/engine/parser"
)

// TitleResolver looks up page titles for a batch of slugs.
type TitleResolver = parser.TitleResolver

// TitleResolverFunc adapts a function to the TitleResolver interface.
type TitleResolverFunc func(ctx context.Context, slugs []string) (map[string]string, error)

// ResolveTitles calls f.
func (f TitleResolverFunc) ResolveTitles(ctx context.Context, slugs []string) (map[string]string, error) {
	return f(ctx, slugs)
}

// MapResolver is an in-memory TitleResolver, mapping slugs to titles.
type MapResolver map[string]string

// ResolveTitles returns the titles for those slugs present in m.
func (m MapResolver) ResolveTitles(ctx context.Context, slugs []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(slugs))
	for _, s := range slugs {
		if t, ok := m[s]; ok {
			titles[s] = t
		}
	}
	return titles, nil
}

var _ TitleResolver = MapResolver{}
var _ TitleResolver = TitleResolverFunc(nil)
