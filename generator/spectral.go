package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fwojciec/extrules"
)

// Spectral locations.
const (
	SpectralDocURL      = "https://docs.stoplight.io/docs/spectral/"
	spectralRuleURLTmpl = "https://meta.stoplight.io/docs/spectral/docs/reference/%s-rules.md#%s"
)

// SpectralRuleset is a ruleset source file of the Spectral repository.
type SpectralRuleset struct {
	// Type is the ruleset name used in documentation URLs.
	Type string
	// Path is the ruleset's index.ts relative to the repository root.
	Path string
}

// SpectralRulesets are the rulesets whose rules are generated, in output order.
var SpectralRulesets = []SpectralRuleset{
	{Type: "openapi", Path: "packages/rulesets/src/oas/index.ts"},
	{Type: "asyncapi", Path: "packages/rulesets/src/asyncapi/index.ts"},
	{Type: "arazzo", Path: "packages/rulesets/src/arazzo/index.ts"},
}

var (
	spectralRuleStart   = regexp.MustCompile(`'([^']+)':\s*\{`)
	spectralDescription = regexp.MustCompile(`description:\s*'([^']+)'`)
)

// spectralPseudoKeys are object keys of a ruleset that are not rules.
var spectralPseudoKeys = map[string]bool{
	"documentationUrl": true,
	"formats":          true,
	"aliases":          true,
	"rules":            true,
}

var _ extrules.Generator = (*Spectral)(nil)

// Spectral generates the rules of the Spectral OpenAPI, AsyncAPI and Arazzo
// rulesets from their TypeScript sources.
type Spectral struct {
	tree    extrules.SourceTree
	catalog *extrules.Catalog
	logger  *slog.Logger
}

// NewSpectral creates a Spectral generator reading a checkout of the
// Spectral repository.
func NewSpectral(tree extrules.SourceTree, catalog *extrules.Catalog, logger *slog.Logger) *Spectral {
	if logger == nil {
		logger = discardLogger()
	}
	return &Spectral{tree: tree, catalog: catalog, logger: logger}
}

func (s *Spectral) Name() string { return "spectral" }

// Generate extracts the rules of every ruleset in SpectralRulesets order.
func (s *Spectral) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	var rules []*extrules.Rule
	for _, rs := range SpectralRulesets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := s.tree.ReadFile(rs.Path)
		if err != nil {
			return nil, err
		}
		found := SpectralRules(src, rs.Type, s.catalog)
		s.logger.Debug("extracted ruleset", "tool", s.Name(), "ruleset", rs.Type, "count", len(found))
		rules = append(rules, found...)
	}
	return append(rules, extrules.FallbackRule("spectral", "Spectral", SpectralDocURL)), nil
}

// SpectralRules extracts the rules declared as "'rule-id': { ... }" blocks
// with a description in a ruleset source. Blocks without a description are
// not rules.
func SpectralRules(src, rulesetType string, catalog *extrules.Catalog) []*extrules.Rule {
	var rules []*extrules.Rule
	for _, m := range spectralRuleStart.FindAllStringSubmatchIndex(src, -1) {
		id := src[m[2]:m[3]]
		if spectralPseudoKeys[id] {
			continue
		}

		block, ok := braceBlock(src, m[0])
		if !ok {
			continue
		}
		d := spectralDescription.FindStringSubmatch(block)
		if d == nil {
			continue
		}

		title, ok := catalog.Title(id)
		if !ok {
			title = truncate(d[1], MaxTitleLength)
		}
		rules = append(rules, &extrules.Rule{
			Key:            id,
			Name:           title,
			URL:            fmt.Sprintf(spectralRuleURLTmpl, rulesetType, id),
			Description:    issueDescription(`This issue is raised by the rule "%s" from "Spectral". `, id),
			Tags:           []string{"spectral"},
			Classification: catalog.Classify(id),
		})
	}
	return rules
}

// braceBlock returns the text from the first '{' at or after start through
// its matching '}'. Braces inside strings are counted too.
func braceBlock(src string, start int) (string, bool) {
	open := strings.IndexByte(src[start:], '{')
	if open < 0 {
		return "", false
	}
	open += start

	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open : i+1], true
			}
		}
	}
	return "", false
}
