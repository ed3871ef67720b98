package extrules

import "context"

// Fetcher retrieves raw documents from URLs.
type Fetcher interface {
	// Fetch downloads the document at url and returns its body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// SourceLoader retrieves documents with caching, retries and format
// normalization applied. Loaded content is Markdown or plain text.
type SourceLoader interface {
	Load(ctx context.Context, url string) (string, error)

	// LoadAll loads urls concurrently. Results are in input order.
	LoadAll(ctx context.Context, urls []string) ([]string, error)
}

// DocLister lists the rule documents published in a documentation
// directory.
type DocLister interface {
	// ListDocs returns the base names (without the .md extension) of the
	// Markdown files in the directory at dirURL.
	ListDocs(ctx context.Context, dirURL string) (map[string]bool, error)
}

// SourceTree reads files from a local checkout of a linter's sources.
type SourceTree interface {
	// Glob returns the sorted names matching pattern, relative to the tree root.
	Glob(pattern string) ([]string, error)

	// ReadFile returns the content of the named file.
	// Returns ENOTFOUND if the file does not exist.
	ReadFile(name string) (string, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
