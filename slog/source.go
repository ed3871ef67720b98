package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/extrules"
)

// Ensure LoggingSourceCache implements extrules.SourceCache.
var _ extrules.SourceCache = (*LoggingSourceCache)(nil)

// LoggingSourceCache wraps a SourceCache with debug logging.
type LoggingSourceCache struct {
	next   extrules.SourceCache
	logger *slog.Logger
}

// NewLoggingSourceCache creates a new LoggingSourceCache.
func NewLoggingSourceCache(next extrules.SourceCache, logger *slog.Logger) *LoggingSourceCache {
	return &LoggingSourceCache{next: next, logger: logger}
}

// PutSource delegates to the wrapped cache and logs the stored hash.
func (c *LoggingSourceCache) PutSource(ctx context.Context, src *extrules.Source) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache put",
			"url", src.URL,
			"hash", src.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.PutSource(ctx, src)
}

// FindSourceByURL delegates to the wrapped cache. A miss is logged as
// such, not as an error.
func (c *LoggingSourceCache) FindSourceByURL(ctx context.Context, url string) (src *extrules.Source, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "hit", err == nil, "duration", time.Since(begin)}
		if err != nil && extrules.ErrorCode(err) != extrules.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("cache find", attrs...)
	}(time.Now())
	return c.next.FindSourceByURL(ctx, url)
}
