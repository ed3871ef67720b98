package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/extrules"
)

// Ensure LoggingGenerator implements extrules.Generator.
var _ extrules.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   extrules.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next extrules.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Name delegates to the wrapped generator.
func (g *LoggingGenerator) Name() string {
	return g.next.Name()
}

// Generate delegates to the wrapped generator and logs the rule count.
func (g *LoggingGenerator) Generate(ctx context.Context) (rules []*extrules.Rule, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"tool", g.next.Name(),
			"count", len(rules),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx)
}
