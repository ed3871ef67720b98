package mock

import (
	"context"

	"github.com/fwojciec/extrules"
)

var _ extrules.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of extrules.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ extrules.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of extrules.SourceLoader.
type SourceLoader struct {
	LoadFn    func(ctx context.Context, url string) (string, error)
	LoadAllFn func(ctx context.Context, urls []string) ([]string, error)
}

func (l *SourceLoader) Load(ctx context.Context, url string) (string, error) {
	return l.LoadFn(ctx, url)
}

func (l *SourceLoader) LoadAll(ctx context.Context, urls []string) ([]string, error) {
	return l.LoadAllFn(ctx, urls)
}

var _ extrules.DocLister = (*DocLister)(nil)

// DocLister is a mock implementation of extrules.DocLister.
type DocLister struct {
	ListDocsFn func(ctx context.Context, dirURL string) (map[string]bool, error)
}

func (l *DocLister) ListDocs(ctx context.Context, dirURL string) (map[string]bool, error) {
	return l.ListDocsFn(ctx, dirURL)
}

var _ extrules.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of extrules.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
