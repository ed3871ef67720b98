package extrules

import (
	"regexp"
	"strings"
)

var markdownLinkRe = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)

// SplitRow splits a pipe table row into trimmed cells. The empty elements
// before the leading pipe and after the trailing pipe are dropped; empty
// cells in between are kept.
//
// Example: "| a |  | c |" → ["a", "", "c"]
func SplitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// NonEmptyCells splits a pipe table row and keeps only non-empty cells.
func NonEmptyCells(line string) []string {
	var cells []string
	for _, p := range strings.Split(line, "|") {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// StripLinks replaces Markdown links with their text.
func StripLinks(s string) string {
	return markdownLinkRe.ReplaceAllString(s, "$1")
}
