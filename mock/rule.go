package mock

import (
	"context"

	"github.com/fwojciec/extrules"
)

// Compile-time interface verification.
var (
	_ extrules.Generator      = (*Generator)(nil)
	_ extrules.RulesWriter    = (*RulesWriter)(nil)
	_ extrules.CatalogService = (*CatalogService)(nil)
)

// Generator is a mock implementation of extrules.Generator.
type Generator struct {
	NameFn     func() string
	GenerateFn func(ctx context.Context) ([]*extrules.Rule, error)
}

func (g *Generator) Name() string {
	return g.NameFn()
}

func (g *Generator) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	return g.GenerateFn(ctx)
}

// RulesWriter is a mock implementation of extrules.RulesWriter.
type RulesWriter struct {
	WriteRulesFn func(ctx context.Context, path string, rules []*extrules.Rule) error
}

func (w *RulesWriter) WriteRules(ctx context.Context, path string, rules []*extrules.Rule) error {
	return w.WriteRulesFn(ctx, path, rules)
}

// CatalogService is a mock implementation of extrules.CatalogService.
type CatalogService struct {
	FindCatalogFn func(tool string) (*extrules.Catalog, error)
}

func (s *CatalogService) FindCatalog(tool string) (*extrules.Catalog, error) {
	return s.FindCatalogFn(tool)
}
