package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/extrules"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ extrules.SourceCache = (*SourceCache)(nil)

// SourceCache implements extrules.SourceCache using SQLite.
type SourceCache struct {
	db *DB
}

// NewSourceCache creates a new SourceCache.
func NewSourceCache(db *DB) *SourceCache {
	return &SourceCache{db: db}
}

// PutSource creates the source or replaces the content of the source with
// the same URL. ID and ContentHash are set on src; an existing source keeps
// its ID. FetchedAt defaults to now.
func (c *SourceCache) PutSource(ctx context.Context, src *extrules.Source) error {
	if err := src.Validate(); err != nil {
		return err
	}

	if src.FetchedAt.IsZero() {
		src.FetchedAt = time.Now().UTC()
	}
	src.ContentHash = hashContent(src.Content)

	return c.db.QueryRowContext(ctx, `
		INSERT INTO sources (id, url, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), src.URL, src.Content, src.ContentHash,
		src.FetchedAt.UTC().Format(time.RFC3339)).Scan(&src.ID)
}

// FindSourceByURL retrieves a source by URL.
func (c *SourceCache) FindSourceByURL(ctx context.Context, url string) (*extrules.Source, error) {
	var src extrules.Source
	var fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, url, content, content_hash, fetched_at
		FROM sources
		WHERE url = ?
	`, url).Scan(&src.ID, &src.URL, &src.Content, &src.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, extrules.Errorf(extrules.ENOTFOUND, "source %s not found", url)
	}
	if err != nil {
		return nil, err
	}

	if src.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &src, nil
}
