// Package fs provides file-based output and source access for generators.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/extrules"
)

// Ensure RulesWriter implements extrules.RulesWriter at compile time.
var _ extrules.RulesWriter = (*RulesWriter)(nil)

// RulesWriter writes rules as an indented JSON array.
type RulesWriter struct{}

// NewRulesWriter creates a new RulesWriter.
func NewRulesWriter() *RulesWriter {
	return &RulesWriter{}
}

// WriteRules validates every rule and writes the array to path. The file is
// written next to its destination as path.tmp and renamed into place, so a
// failed run never leaves a truncated rules file behind.
func (w *RulesWriter) WriteRules(ctx context.Context, path string, rules []*extrules.Rule) error {
	if path == "" {
		return extrules.Errorf(extrules.EINVALID, "output path required")
	}

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.Key] {
			return extrules.Errorf(extrules.EINVALID, "duplicate rule key %q", r.Key)
		}
		seen[r.Key] = true
	}

	if rules == nil {
		rules = []*extrules.Rule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	data = append(data, '\n')

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
