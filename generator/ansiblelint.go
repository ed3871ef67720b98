package generator

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/extrules"
)

// Ansible Lint locations.
const (
	AnsibleLintDocURL   = "https://ansible.readthedocs.io/projects/lint/rules/"
	AnsibleLintRulesDir = "src/ansiblelint/rules"
)

// ansibleTitleChars are the characters allowed in a title scraped from a
// rule's description.
const ansibleTitleChars = "[\\w\\s.`,:()!|>'-]"

var (
	ansibleID              = regexp.MustCompile(`\s+id\s*=\s*"([\w-]*)"`)
	ansibleShortDesc       = regexp.MustCompile(`shortdesc\s*=\s*"([\w.\s-]*)"`)
	ansibleDescription     = regexp.MustCompile(`description\s*=\s*"(` + ansibleTitleChars + `*)"`)
	ansibleDescriptionLong = regexp.MustCompile(`description\s*=\s*\(?\n*\s*("` + ansibleTitleChars + `*"\n?\s*)*\)?`)
	ansibleString          = regexp.MustCompile("\"([\\w\\s.`,:()!|>-]*)\"\n?\\s*")
)

// ansibleUndocumented are reported by ansible-lint without a rule file.
var ansibleUndocumented = []string{
	"internal-error",
	"load-failure",
	"load-failure[composererror]",
	"load-failure[filenotfounderror]",
	"load-failure[runtimeerror]",
	"load-failure[unicodedecodeerror]",
	"parser-error",
	"warning[outdated-tag]",
}

var _ extrules.Generator = (*AnsibleLint)(nil)

// AnsibleLint generates the rules of ansible-lint from the Python sources of
// its rules.
type AnsibleLint struct {
	tree    extrules.SourceTree
	catalog *extrules.Catalog
	logger  *slog.Logger
}

// NewAnsibleLint creates an AnsibleLint generator reading a checkout of the
// ansible-lint repository.
func NewAnsibleLint(tree extrules.SourceTree, catalog *extrules.Catalog, logger *slog.Logger) *AnsibleLint {
	if logger == nil {
		logger = discardLogger()
	}
	return &AnsibleLint{tree: tree, catalog: catalog, logger: logger}
}

func (a *AnsibleLint) Name() string { return "ansible-lint" }

// Generate extracts the rules of every rule module in file name order, then
// appends the undocumented load and parse rules and the fallback rule.
func (a *AnsibleLint) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	names, err := a.tree.Glob(AnsibleLintRulesDir + "/*.py")
	if err != nil {
		return nil, err
	}

	var rules []*extrules.Rule
	for _, name := range names {
		base := path.Base(name)
		if strings.HasPrefix(base, "__") || base == "conftest.py" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := a.tree.ReadFile(name)
		if err != nil {
			return nil, err
		}
		found, err := AnsibleLintRules(src, a.catalog)
		if extrules.ErrorCode(err) == extrules.ENOTFOUND {
			a.logger.Warn("skipped rule file", "tool", a.Name(), "file", name, "error", err)
			continue
		} else if err != nil {
			return nil, err
		}
		rules = append(rules, found...)
	}

	for _, id := range ansibleUndocumented {
		rules = append(rules, &extrules.Rule{
			Key:         id,
			Name:        "Failed to load or parse file",
			URL:         AnsibleLintDocURL,
			Description: ansibleDescriptionFor(id),
			Tags:        []string{"ansible-lint"},
			Classification: extrules.Classification{
				Type:      extrules.TypeCodeSmell,
				Severity:  extrules.SeverityMajor,
				Attribute: extrules.AttributeConventional,
				Quality:   extrules.QualityMaintainability,
				Impact:    extrules.ImpactMedium,
			},
		})
	}

	fallback := extrules.FallbackRule("ansible-lint", "Ansible Lint", AnsibleLintDocURL)
	fallback.Description = "This reporting may be triggered by a custom ansible-lint rule or by a default " +
		"ansible-lint rule that has not yet been added to the Sonar IaC analyzer"
	return append(rules, fallback), nil
}

// AnsibleLintRules returns the rules declared by one rule module: one rule,
// or one per sub-rule when the catalog expands the module's ID.
//
// Returns ENOTFOUND if the module declares no ID, and EINVALID if no title
// can be found or the title is too long.
func AnsibleLintRules(src string, catalog *extrules.Catalog) ([]*extrules.Rule, error) {
	m := ansibleID.FindStringSubmatch(src)
	if m == nil {
		return nil, extrules.Errorf(extrules.ENOTFOUND, "no rule id")
	}
	id := m[1]

	title := ansibleTitle(src, id, catalog)
	switch {
	case title == "":
		return nil, extrules.Errorf(extrules.EINVALID, "no title for rule %s; add one to the catalog titles", id)
	case len([]rune(title)) > MaxTitleLength:
		return nil, extrules.Errorf(extrules.EINVALID,
			"title for rule %s is too long, max length is %d; add a shorter one to the catalog titles", id, MaxTitleLength)
	}

	var rules []*extrules.Rule
	for _, sub := range catalog.Expand(id) {
		rules = append(rules, &extrules.Rule{
			Key:            sub,
			Name:           title,
			URL:            AnsibleLintDocURL + extrules.BaseID(sub) + "/",
			Description:    ansibleDescriptionFor(id),
			Tags:           []string{"ansible-lint"},
			Classification: catalog.Classify(sub),
		})
	}
	return rules, nil
}

// ansibleTitle looks for a title in the catalog, then in the module's
// shortdesc, then in its single-line description, then in its description
// spread over several string literals.
func ansibleTitle(src, id string, catalog *extrules.Catalog) string {
	if t, ok := catalog.Title(id); ok {
		return t
	}
	if m := ansibleShortDesc.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	if m := ansibleDescription.FindStringSubmatch(src); m != nil {
		return cleanAnsibleTitle(m[1])
	}

	var b strings.Builder
	for _, block := range ansibleDescriptionLong.FindAllString(src, -1) {
		var parts []string
		for _, s := range ansibleString.FindAllStringSubmatch(block, -1) {
			parts = append(parts, s[1])
		}
		b.WriteString(cleanAnsibleTitle(strings.Join(parts, " ")))
	}
	return b.String()
}

func cleanAnsibleTitle(s string) string {
	s = strings.ReplaceAll(s, "  ", " ")
	s = strings.ReplaceAll(s, "``", `"`)
	return strings.TrimSuffix(s, ".")
}

func ansibleDescriptionFor(id string) string {
	return issueDescription(`This issue is raised by the rule "%s" from "Ansible Lint" (aka ansible-lint). `, id)
}
