package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/extrules"
	"github.com/fwojciec/extrules/generator"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Generators *generator.Registry
	Writer     extrules.RulesWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug messages"`

	Generate GenerateCmd `cmd:"" help:"Generate the rules file of a linter"`
	List     ListCmd     `cmd:"" help:"List the supported linters"`
	Tables   TablesCmd   `cmd:"" help:"Print the rows of Markdown tables as JSON"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Tool    string        `arg:"" help:"Linter to generate rules for (see 'extrules list')"`
	Out     string        `short:"o" help:"Output path (default: <tool>.json)"`
	Sources string        `short:"s" help:"Local checkout of the linter repository (actionlint, spectral, ansible-lint)"`
	DB      string        `name:"db" help:"Source cache path (default: $EXTRULES_DB or ~/.extrules/cache.db)"`
	Offline bool          `help:"Read documents from the source cache only"`
	Catalog string        `help:"Classification catalog replacing the built-in one"`
	Timeout time.Duration `default:"10s" help:"HTTP request timeout"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// TablesCmd is the "tables" subcommand.
type TablesCmd struct {
	File   string `arg:"" help:"Markdown file"`
	Header string `required:"" help:"Regular expression matching the whole line that precedes the table"`
	All    bool   `help:"Parse every table after the first header match"`
}
