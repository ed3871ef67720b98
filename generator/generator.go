// Package generator builds the rule metadata of external linters from their
// published documentation or sources.
package generator

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fwojciec/extrules"
)

// MaxTitleLength is the longest rule title the analyzer accepts.
const MaxTitleLength = 200

// Registry holds the available generators by name.
type Registry struct {
	generators map[string]extrules.Generator
}

// NewRegistry creates a Registry containing gens.
func NewRegistry(gens ...extrules.Generator) *Registry {
	r := &Registry{generators: make(map[string]extrules.Generator)}
	for _, g := range gens {
		r.Register(g)
	}
	return r
}

// Register adds g, replacing any generator with the same name.
func (r *Registry) Register(g extrules.Generator) {
	r.generators[g.Name()] = g
}

// Get returns the generator called name.
// Returns ENOTFOUND if no such generator is registered.
func (r *Registry) Get(name string) (extrules.Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, extrules.Errorf(extrules.ENOTFOUND, "unknown tool %q (available: %v)", name, r.Names())
	}
	return g, nil
}

// Names returns the registered generator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// skipLogger returns a TableConfig.OnSkip callback reporting rejected rows
// as warnings.
func skipLogger(logger *slog.Logger, tool string) func(line string, err error) {
	return func(line string, err error) {
		logger.Warn("skipped table row", "tool", tool, "line", line, "error", err)
	}
}

// issueDescription is the description shared by all external rules.
func issueDescription(format, id string) string {
	return fmt.Sprintf(format, id) + "This is not an issue raised by Sonar analyzers.<br/>"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
