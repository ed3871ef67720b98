package mock

import (
	"context"

	"github.com/fwojciec/extrules"
)

var _ extrules.SourceCache = (*SourceCache)(nil)

// SourceCache is a mock implementation of extrules.SourceCache.
type SourceCache struct {
	PutSourceFn       func(ctx context.Context, src *extrules.Source) error
	FindSourceByURLFn func(ctx context.Context, url string) (*extrules.Source, error)
}

func (c *SourceCache) PutSource(ctx context.Context, src *extrules.Source) error {
	return c.PutSourceFn(ctx, src)
}

func (c *SourceCache) FindSourceByURL(ctx context.Context, url string) (*extrules.Source, error) {
	return c.FindSourceByURLFn(ctx, url)
}

var _ extrules.SourceTree = (*SourceTree)(nil)

// SourceTree is a mock implementation of extrules.SourceTree.
type SourceTree struct {
	GlobFn     func(pattern string) ([]string, error)
	ReadFileFn func(name string) (string, error)
}

func (t *SourceTree) Glob(pattern string) ([]string, error) {
	return t.GlobFn(pattern)
}

func (t *SourceTree) ReadFile(name string) (string, error) {
	return t.ReadFileFn(name)
}
