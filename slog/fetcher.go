// Package slog provides logging decorators for extrules services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/extrules"
)

// Ensure LoggingFetcher implements extrules.Fetcher.
var _ extrules.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   extrules.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next extrules.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the download.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingDocLister implements extrules.DocLister.
var _ extrules.DocLister = (*LoggingDocLister)(nil)

// LoggingDocLister wraps a DocLister with debug logging.
type LoggingDocLister struct {
	next   extrules.DocLister
	logger *slog.Logger
}

// NewLoggingDocLister creates a new LoggingDocLister.
func NewLoggingDocLister(next extrules.DocLister, logger *slog.Logger) *LoggingDocLister {
	return &LoggingDocLister{next: next, logger: logger}
}

// ListDocs delegates to the wrapped lister and logs the number of documents.
func (l *LoggingDocLister) ListDocs(ctx context.Context, dirURL string) (names map[string]bool, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("list docs",
			"url", dirURL,
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ListDocs(ctx, dirURL)
}
