package extrules

import (
	"context"
	"time"
)

// Source is a downloaded linter document kept in the cache.
type Source struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	return nil
}

// SourceCache stores downloaded documents so generation can run offline.
type SourceCache interface {
	// PutSource creates or replaces the source with the same URL.
	PutSource(ctx context.Context, src *Source) error

	// FindSourceByURL retrieves a source by URL.
	// Returns ENOTFOUND if the source has not been cached.
	FindSourceByURL(ctx context.Context, url string) (*Source, error)
}
