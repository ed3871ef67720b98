package extrules

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown, keeping tables.
	Convert(html string) (string, error)
}
