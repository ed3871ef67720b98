package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/extrules"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of downloads LoadAll runs at once.
const DefaultConcurrency = 4

var _ extrules.SourceLoader = (*Loader)(nil)

// Loader implements extrules.SourceLoader on top of an extrules.Fetcher.
//
// Online, every document is downloaded (rate limited per host and retried
// with backoff), converted to Markdown if it is HTML, and stored in the
// cache. When a download fails and the cache holds a copy, the copy is
// returned instead. Offline, documents come from the cache only.
type Loader struct {
	fetcher     extrules.Fetcher
	converter   extrules.Converter
	cache       extrules.SourceCache
	limiter     extrules.HostLimiter
	logger      *slog.Logger
	offline     bool
	concurrency int
	delays      []time.Duration
	now         func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithConverter sets the converter applied to HTML documents. Without one,
// HTML is returned as is.
func WithConverter(c extrules.Converter) Option {
	return func(l *Loader) { l.converter = c }
}

// WithCache sets the source cache.
func WithCache(c extrules.SourceCache) Option {
	return func(l *Loader) { l.cache = c }
}

// WithLimiter replaces the default per-host limiter.
func WithLimiter(h extrules.HostLimiter) Option {
	return func(l *Loader) { l.limiter = h }
}

// WithLogger sets the logger used for retries and cache fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithOffline serves every document from the cache without network access.
func WithOffline(offline bool) Option {
	return func(l *Loader) { l.offline = offline }
}

// WithConcurrency bounds the number of concurrent downloads in LoadAll.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithRetryDelays sets the backoff delays between attempts.
func WithRetryDelays(delays []time.Duration) Option {
	return func(l *Loader) { l.delays = delays }
}

// NewLoader creates a Loader downloading with fetcher.
func NewLoader(fetcher extrules.Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher:     fetcher,
		limiter:     NewHostLimiter(DefaultRequestsPerSecond),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: DefaultConcurrency,
		delays:      DefaultRetryDelays(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the Markdown content of the document at rawURL.
func (l *Loader) Load(ctx context.Context, rawURL string) (string, error) {
	if l.offline {
		return l.loadCached(ctx, rawURL)
	}

	content, err := l.download(ctx, rawURL)
	if err != nil {
		if l.cache == nil || ctx.Err() != nil {
			return "", err
		}
		src, cacheErr := l.cache.FindSourceByURL(ctx, rawURL)
		if cacheErr != nil {
			return "", err
		}
		l.logger.Warn("download failed, using cached copy", "url", rawURL, "fetchedAt", src.FetchedAt, "error", err)
		return src.Content, nil
	}

	if l.cache != nil {
		src := &extrules.Source{URL: rawURL, Content: content, FetchedAt: l.now().UTC()}
		if err := l.cache.PutSource(ctx, src); err != nil {
			l.logger.Warn("caching source failed", "url", rawURL, "error", err)
		}
	}
	return content, nil
}

// LoadAll loads urls concurrently and returns their contents in input order.
// The first failure cancels the remaining downloads.
func (l *Loader) LoadAll(ctx context.Context, urls []string) ([]string, error) {
	results := make([]string, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			content, err := l.Load(ctx, u)
			if err != nil {
				return err
			}
			results[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) loadCached(ctx context.Context, rawURL string) (string, error) {
	if l.cache == nil {
		return "", extrules.Errorf(extrules.EINVALID, "offline mode requires a source cache")
	}
	src, err := l.cache.FindSourceByURL(ctx, rawURL)
	if extrules.ErrorCode(err) == extrules.ENOTFOUND {
		return "", extrules.Errorf(extrules.ENOTFOUND, "source %s not cached; run once without --offline", rawURL)
	} else if err != nil {
		return "", err
	}
	return src.Content, nil
}

func (l *Loader) download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", extrules.Errorf(extrules.EINVALID, "invalid source URL %q", rawURL)
	}

	fetch := func(ctx context.Context, rawURL string) (string, error) {
		if err := l.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
		return l.fetcher.Fetch(ctx, rawURL)
	}

	body, err := FetchWithRetry(ctx, rawURL, fetch, l.logger, l.delays)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if l.converter != nil && IsHTML(body) {
		md, err := l.converter.Convert(body)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", rawURL, err)
		}
		return md, nil
	}
	return body, nil
}

// IsHTML reports whether body is an HTML document rather than Markdown.
func IsHTML(body string) bool {
	head := strings.ToLower(strings.TrimSpace(body))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<head>")
}
