package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/extrules"
	"github.com/fwojciec/extrules/download"
	extfs "github.com/fwojciec/extrules/fs"
	"github.com/fwojciec/extrules/generator"
	"github.com/fwojciec/extrules/goquery"
	"github.com/fwojciec/extrules/htmltomarkdown"
	exthttp "github.com/fwojciec/extrules/http"
	extslog "github.com/fwojciec/extrules/slog"
	"github.com/fwojciec/extrules/sqlite"
	"github.com/fwojciec/extrules/yaml"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Source cache path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database backing the source cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("extrules"),
		kong.Description("Generate rule metadata for external linters"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'extrules --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	defer m.Close()

	switch kongCtx.Command() {
	case "generate <tool>":
		if err := m.wireGenerate(&cli.Generate, deps); err != nil {
			return err
		}
	case "list":
		deps.Generators, err = newRegistry(toolset{
			Catalogs: yaml.NewDefaultCatalogService(),
			Logger:   deps.Logger,
		})
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireGenerate opens the source cache and builds the download pipeline used
// by the generators.
func (m *Main) wireGenerate(cmd *GenerateCmd, deps *Dependencies) error {
	if repo, ok := sourceRepos[cmd.Tool]; ok && cmd.Sources == "" {
		fmt.Fprintf(deps.Stderr, "Hint: clone %s and pass its path with --sources\n", repo)
		return extrules.Errorf(extrules.EINVALID, "--sources required for %s", cmd.Tool)
	}

	if cmd.DB != "" {
		m.DBPath = cmd.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set EXTRULES_DB or --db to use a different cache path")
		return fmt.Errorf("failed to open cache at %q: %w", m.DBPath, err)
	}

	logger := deps.Logger.With("run", uuid.NewString())
	deps.Logger = logger

	catalogs, err := catalogService(cmd)
	if err != nil {
		return err
	}

	cache := extslog.NewLoggingSourceCache(sqlite.NewSourceCache(m.DB), logger)
	fetcher := extslog.NewLoggingFetcher(exthttp.NewFetcher(exthttp.WithTimeout(cmd.Timeout)), logger)
	limiter := download.NewHostLimiter(download.DefaultRequestsPerSecond)

	// Documents are converted to Markdown; directory pages stay HTML for
	// the lister. Both share the cache so offline runs can list too.
	common := []download.Option{
		download.WithCache(cache),
		download.WithLimiter(limiter),
		download.WithLogger(logger),
		download.WithOffline(cmd.Offline),
	}
	converter := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://github.com"))
	docs := download.NewLoader(fetcher, append([]download.Option{download.WithConverter(converter)}, common...)...)
	pages := download.NewLoader(fetcher, common...)

	deps.Generators, err = newRegistry(toolset{
		Docs:     docs,
		Lister:   extslog.NewLoggingDocLister(goquery.NewLister(pages), logger),
		Tree:     extfs.NewDir(cmd.Sources),
		Catalogs: catalogs,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	deps.Writer = extfs.NewRulesWriter()
	return nil
}

// sourceRepos are the repositories that must be checked out locally for
// the generators reading source files.
var sourceRepos = map[string]string{
	"actionlint":   "https://github.com/rhysd/actionlint",
	"spectral":     "https://github.com/stoplightio/spectral",
	"ansible-lint": "https://github.com/ansible/ansible-lint",
}

// toolset holds what the generators are built from.
type toolset struct {
	Docs     extrules.SourceLoader
	Lister   extrules.DocLister
	Tree     extrules.SourceTree
	Catalogs extrules.CatalogService
	Logger   *slog.Logger
}

// newRegistry builds every generator, each wrapped with logging.
func newRegistry(ts toolset) (*generator.Registry, error) {
	catalogs := make(map[string]*extrules.Catalog)
	for _, tool := range []string{"hadolint", "tflint", "actionlint", "spectral", "ansible-lint"} {
		c, err := ts.Catalogs.FindCatalog(tool)
		if err != nil {
			return nil, fmt.Errorf("load %s catalog: %w", tool, err)
		}
		catalogs[tool] = c
	}

	gens := []extrules.Generator{
		generator.NewHadolint(ts.Docs, catalogs["hadolint"], ts.Logger),
		generator.NewTFLint(ts.Docs, ts.Lister, catalogs["tflint"], ts.Logger),
		generator.NewActionlint(ts.Tree, catalogs["actionlint"], ts.Logger),
		generator.NewSpectral(ts.Tree, catalogs["spectral"], ts.Logger),
		generator.NewAnsibleLint(ts.Tree, catalogs["ansible-lint"], ts.Logger),
	}

	registry := generator.NewRegistry()
	for _, g := range gens {
		registry.Register(extslog.NewLoggingGenerator(g, ts.Logger))
	}
	return registry, nil
}

// catalogService returns the built-in catalogs, with the tool's catalog
// replaced by the --catalog file when one is given.
func catalogService(cmd *GenerateCmd) (extrules.CatalogService, error) {
	builtin := yaml.NewDefaultCatalogService()
	if cmd.Catalog == "" {
		return builtin, nil
	}

	data, err := os.ReadFile(cmd.Catalog)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := yaml.ParseCatalog(cmd.Tool, data)
	if err != nil {
		return nil, err
	}
	return &catalogOverride{CatalogService: builtin, catalog: c}, nil
}

type catalogOverride struct {
	extrules.CatalogService
	catalog *extrules.Catalog
}

func (o *catalogOverride) FindCatalog(tool string) (*extrules.Catalog, error) {
	if tool == o.catalog.Tool {
		return o.catalog, nil
	}
	return o.CatalogService.FindCatalog(tool)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("EXTRULES_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "extrules.db"
	}
	return filepath.Join(home, ".extrules", "cache.db")
}
