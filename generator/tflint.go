package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/extrules"
)

// TFLintURL is the documentation URL of the TFLint fallback rule.
const TFLintURL = "https://github.com/terraform-linters/tflint"

// Ruleset is a TFLint plugin whose rules are listed in a README.
type Ruleset struct {
	Name   string
	Branch string
}

// BaseURL returns the URL of the ruleset's rule documentation directory.
func (r Ruleset) BaseURL() string {
	return fmt.Sprintf("https://github.com/terraform-linters/tflint-ruleset-%s/blob/%s/docs/rules/", r.Name, r.Branch)
}

// ReadmeURL returns the raw URL of the README listing the ruleset's rules.
func (r Ruleset) ReadmeURL() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/terraform-linters/tflint-ruleset-%s/%s/docs/rules/README.md", r.Name, r.Branch)
}

// TFLintRulesets are the rulesets whose rules are generated, in output order.
var TFLintRulesets = []Ruleset{
	{Name: "terraform", Branch: "main"},
	{Name: "aws", Branch: "master"},
	{Name: "azurerm", Branch: "master"},
	{Name: "google", Branch: "master"},
}

var _ extrules.Generator = (*TFLint)(nil)

// TFLint generates the rules of the TFLint rulesets.
type TFLint struct {
	loader   extrules.SourceLoader
	lister   extrules.DocLister
	catalog  *extrules.Catalog
	logger   *slog.Logger
	rulesets []Ruleset
}

// NewTFLint creates a TFLint generator. Rule documentation directories are
// listed with lister to link rules to their own page.
func NewTFLint(loader extrules.SourceLoader, lister extrules.DocLister, catalog *extrules.Catalog, logger *slog.Logger) *TFLint {
	if logger == nil {
		logger = discardLogger()
	}
	return &TFLint{
		loader:   loader,
		lister:   lister,
		catalog:  catalog,
		logger:   logger,
		rulesets: TFLintRulesets,
	}
}

func (t *TFLint) Name() string { return "tflint" }

// Generate downloads every ruleset README concurrently and extracts their
// rules in ruleset order. A directory that cannot be listed is logged and
// its rules link to the README.
func (t *TFLint) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	urls := make([]string, len(t.rulesets))
	for i, rs := range t.rulesets {
		urls[i] = rs.ReadmeURL()
	}

	readmes, err := t.loader.LoadAll(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("load tflint READMEs: %w", err)
	}

	var rules []*extrules.Rule
	for i, rs := range t.rulesets {
		docs, err := t.lister.ListDocs(ctx, rs.BaseURL())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			t.logger.Warn("listing rule docs failed, linking README", "ruleset", rs.Name, "error", err)
			docs = nil
		}

		found, err := TFLintRules(readmes[i], rs, docs, t.catalog, skipLogger(t.logger, t.Name()))
		if err != nil {
			return nil, err
		}
		rules = append(rules, found...)
	}

	return append(rules, extrules.FallbackRule("tflint", "TFLint", TFLintURL)), nil
}

// TFLintRules extracts the rules of every table of a ruleset README. docs
// holds the rule IDs that have their own documentation page.
func TFLintRules(readme string, rs Ruleset, docs map[string]bool, catalog *extrules.Catalog, onSkip func(string, error)) ([]*extrules.Rule, error) {
	cfg := extrules.TableConfig{
		Header:    `\|(?:Rule|Name)\|.+`,
		AllTables: true,
		OnSkip:    onSkip,
	}
	return extrules.ParseTables(readme, cfg, func(line string) (*extrules.Rule, error) {
		return parseTFLintRow(line, rs, docs, catalog)
	})
}

// parseTFLintRow parses "| [aws_instance_invalid_type](link) | Disallow ... | ✔ |".
// Rows with fewer than two cells, and repeated column headers, are skipped.
func parseTFLintRow(line string, rs Ruleset, docs map[string]bool, catalog *extrules.Catalog) (*extrules.Rule, error) {
	cells := extrules.NonEmptyCells(line)
	if len(cells) < 2 {
		return nil, extrules.ErrSkipRow
	}

	id := strings.TrimSpace(strings.ReplaceAll(extrules.StripLinks(cells[0]), "`", ""))
	message := strings.TrimSpace(extrules.StripLinks(cells[1]))
	if id == "" || message == "" || message == "Description" {
		return nil, extrules.ErrSkipRow
	}

	url := rs.BaseURL() + "README.md"
	if docs[id] {
		url = rs.BaseURL() + id + ".md"
	}

	return &extrules.Rule{
		Key:  id,
		Name: extrules.TitleCase(id),
		URL:  url,
		Description: fmt.Sprintf(`This issue is raised by the rule [%s] from "TFLint". `+
			"This is not an issue raised by Sonar analyzers.<br/><br/>TFLint Message: %s", id, message),
		Tags:           []string{"tflint"},
		Classification: catalog.Classify(id),
	}, nil
}
