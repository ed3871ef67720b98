package extrules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSkipRow may be returned by a RowParser to drop a row without reporting it.
// Any other error also drops the row but is passed to TableConfig.OnSkip.
var ErrSkipRow = errors.New("skip row")

// RowParser converts a single raw table line into a value.
type RowParser[T any] func(line string) (T, error)

// TableConfig locates tables in a Markdown document.
type TableConfig struct {
	// Header is a regular expression matched against whole trimmed lines.
	// The first matching line marks the section that precedes the table.
	Header string

	// AllTables continues past the first table and parses every table
	// found in the rest of the document. When false, parsing stops after
	// the first table following the first header match.
	AllTables bool

	// OnSkip is called for each row rejected with an error other than
	// ErrSkipRow. Optional.
	OnSkip func(line string, err error)
}

// ParseTables finds the tables described by cfg in content and converts each
// data row with parse. Rows are returned in document order across tables.
// Rows the parser rejects are dropped; they never abort the scan. A document
// without a header match yields no rows and no error.
func ParseTables[T any](content string, cfg TableConfig, parse RowParser[T]) ([]T, error) {
	if parse == nil {
		return nil, Errorf(EINVALID, "row parser required")
	}

	blocks, err := SplitTables(content, cfg)
	if err != nil {
		return nil, err
	}

	var out []T
	for _, block := range blocks {
		for _, line := range TableRows(block) {
			v, err := parseRow(line, parse)
			if err != nil {
				if cfg.OnSkip != nil && !errors.Is(err, ErrSkipRow) {
					cfg.OnSkip(line, err)
				}
				continue
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// SplitTables returns the raw line blocks of the tables described by cfg.
// Each block still contains the table's column header and separator rows;
// pass it to TableRows to get the data rows.
func SplitTables(content string, cfg TableConfig) ([][]string, error) {
	header, err := compileHeader(cfg.Header)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)

	if !cfg.AllTables {
		for i, line := range lines {
			if header.MatchString(strings.TrimSpace(line)) {
				return [][]string{lines[i:]}, nil
			}
		}
		return nil, nil
	}

	return scanTables(lines, header), nil
}

// TableRows returns the data rows of a single table block: everything after
// the first separator row (a pipe line containing "---") up to the first line
// that does not start with a pipe. Lines before the separator are discarded.
// A block without a separator has no rows.
func TableRows(block []string) []string {
	i := 0
	for i < len(block) && !isSeparatorLine(block[i]) {
		i++
	}
	if i == len(block) {
		return nil
	}
	i++

	j := i
	for j < len(block) && strings.HasPrefix(strings.TrimSpace(block[j]), "|") {
		j++
	}
	return block[i:j]
}

// scanState is the position of the table scanner within a document.
type scanState int

const (
	scanningForHeader scanState = iota
	awaitingTable
	inTable
)

// lineKind classifies a single line for the scanner.
type lineKind int

const (
	kindText lineKind = iota
	kindBlank
	kindHeader
	kindSeparator
	kindRow
)

// scanAction tells the scanner what to do with the current line and block.
type scanAction int

const (
	actionNone scanAction = iota
	actionAppend
	actionClose
)

// scanTables partitions lines into table blocks. Scanning starts at the first
// header match; every later header match, and any non-table line following
// a data row, ends the current block.
func scanTables(lines []string, header *regexp.Regexp) [][]string {
	var (
		blocks [][]string
		block  []string
		state  = scanningForHeader
	)

	for _, line := range lines {
		var action scanAction
		state, action = step(state, classify(line, header), len(block) == 0)

		switch action {
		case actionAppend:
			block = append(block, line)
		case actionClose:
			if len(block) > 0 {
				blocks = append(blocks, block)
			}
			block = nil
		}
	}

	if len(block) > 0 {
		blocks = append(blocks, block)
	}
	return blocks
}

// step is the scanner transition function.
func step(state scanState, kind lineKind, blockEmpty bool) (scanState, scanAction) {
	if state == scanningForHeader {
		if kind == kindHeader {
			return awaitingTable, actionNone
		}
		return scanningForHeader, actionNone
	}

	switch kind {
	case kindHeader:
		if blockEmpty {
			return awaitingTable, actionNone
		}
		return awaitingTable, actionClose
	case kindSeparator:
		// The separator is kept for TableRows but does not start the body.
		return state, actionAppend
	case kindRow:
		return inTable, actionAppend
	case kindBlank, kindText:
		if state == inTable {
			return awaitingTable, actionClose
		}
	}
	return state, actionNone
}

func classify(line string, header *regexp.Regexp) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case header.MatchString(trimmed):
		return kindHeader
	case isTableLine(line):
		if strings.Contains(trimmed, "---") {
			return kindSeparator
		}
		return kindRow
	case trimmed == "":
		return kindBlank
	default:
		return kindText
	}
}

// isTableLine reports whether line looks like a row of a pipe table with at
// least two columns.
func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|") && strings.Count(line, "|") >= 3
}

func isSeparatorLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|") && strings.Contains(line, "---")
}

func compileHeader(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, Errorf(EINVALID, "table header pattern required")
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid table header pattern %q: %v", pattern, err)
	}
	return re, nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseRow runs parse on a single line. A panicking parser counts as a
// failed row.
func parseRow[T any](line string, parse RowParser[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row parser panic: %v", r)
		}
	}()
	return parse(line)
}
