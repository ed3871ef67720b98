package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/extrules"
)

// Hadolint locations.
const (
	HadolintReadmeURL = "https://raw.githubusercontent.com/hadolint/hadolint/master/README.md"
	HadolintWikiURL   = "https://github.com/hadolint/hadolint/wiki"
	ShellCheckWikiURL = "https://github.com/koalaman/shellcheck/wiki"
)

var hadolintRuleID = regexp.MustCompile(`\[([A-Z]{2}\d+)]`)

var _ extrules.Generator = (*Hadolint)(nil)

// Hadolint generates the rules of the Hadolint Dockerfile linter, ShellCheck
// rules included, from the rules table of its README.
type Hadolint struct {
	loader  extrules.SourceLoader
	catalog *extrules.Catalog
	logger  *slog.Logger
}

// NewHadolint creates a Hadolint generator. A nil logger discards skip
// warnings.
func NewHadolint(loader extrules.SourceLoader, catalog *extrules.Catalog, logger *slog.Logger) *Hadolint {
	if logger == nil {
		logger = discardLogger()
	}
	return &Hadolint{loader: loader, catalog: catalog, logger: logger}
}

func (h *Hadolint) Name() string { return "hadolint" }

// Generate downloads the README and extracts its rules.
func (h *Hadolint) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	readme, err := h.loader.Load(ctx, HadolintReadmeURL)
	if err != nil {
		return nil, fmt.Errorf("load hadolint README: %w", err)
	}
	return HadolintRules(readme, h.catalog, skipLogger(h.logger, h.Name()))
}

// HadolintRules extracts the rules from the "## Rules" table of the Hadolint
// README. Hadolint rules come first, then ShellCheck rules, each sorted by
// ID, followed by the fallback rule.
func HadolintRules(readme string, catalog *extrules.Catalog, onSkip func(string, error)) ([]*extrules.Rule, error) {
	cfg := extrules.TableConfig{Header: `##\s+Rules.*`, OnSkip: onSkip}
	rules, err := extrules.ParseTables(readme, cfg, func(line string) (*extrules.Rule, error) {
		return parseHadolintRow(line, catalog)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rules, func(i, j int) bool {
		si, sj := isShellCheck(rules[i].Key), isShellCheck(rules[j].Key)
		if si != sj {
			return !si
		}
		return rules[i].Key < rules[j].Key
	})

	return append(rules, extrules.FallbackRule("hadolint", "", HadolintWikiURL)), nil
}

// parseHadolintRow parses "| [DL3000](link) | Error | Use absolute WORKDIR. |".
func parseHadolintRow(line string, catalog *extrules.Catalog) (*extrules.Rule, error) {
	cells := extrules.SplitRow(line)
	if len(cells) != 3 {
		return nil, fmt.Errorf("expected 3 columns, found %d", len(cells))
	}

	m := hadolintRuleID.FindStringSubmatch(cells[0])
	if m == nil {
		return nil, fmt.Errorf("no rule ID in column %q", cells[0])
	}
	id := m[1]

	r := &extrules.Rule{
		Key:            id,
		Name:           cells[2],
		URL:            HadolintWikiURL + "/" + id,
		Description:    issueDescription(`This issue is raised by the rule "%s" from "Hadolint". `, id),
		Tags:           []string{"hadolint"},
		Classification: classifyHadolint(id, cells[1], catalog),
	}
	if isShellCheck(id) {
		r.URL = ShellCheckWikiURL + "/" + id
		r.Description = issueDescription(`This issue is raised by the rule "%s" from "ShellCheck". `, id)
		r.Tags = []string{"shellcheck", "hadolint"}
	}
	return r, nil
}

// classifyHadolint completes the catalog classification of id with the
// severity and impact derived from the README's default severity.
func classifyHadolint(id, defaultSeverity string, catalog *extrules.Catalog) extrules.Classification {
	cl := catalog.Classify(id)

	if cl.Severity == "" {
		switch {
		case isShellCheck(id) && cl.Type == extrules.TypeCodeSmell:
			cl.Severity = extrules.SeverityMajor
		default:
			cl.Severity = hadolintSeverity(defaultSeverity)
		}
	}

	if cl.Impact == "" {
		switch cl.Severity {
		case extrules.SeverityInfo, extrules.SeverityMinor:
			cl.Impact = extrules.ImpactLow
		default:
			cl.Impact = extrules.ImpactMedium
		}
	}
	return cl
}

func hadolintSeverity(s string) string {
	switch strings.ToLower(s) {
	case "error":
		return extrules.SeverityCritical
	case "warning":
		return extrules.SeverityMajor
	case "ignore":
		return extrules.SeverityInfo
	default:
		return extrules.SeverityMinor
	}
}

func isShellCheck(id string) bool {
	return strings.HasPrefix(id, "SC")
}
