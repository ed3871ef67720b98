package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/extrules"
)

// ActionlintDocURL documents every actionlint check on a single page.
const ActionlintDocURL = "https://github.com/rhysd/actionlint/blob/main/docs/checks.md"

var (
	actionlintName        = regexp.MustCompile(`name:\s*"([\w-]+)"`)
	actionlintDesc        = regexp.MustCompile(`desc:\s*"((?:[^"\\]|\\.)*)"`)
	actionlintSyntaxCheck = regexp.MustCompile(`"syntax-check":\s*\{"syntax-check",\s*"([^"]+)"\}`)
)

var _ extrules.Generator = (*Actionlint)(nil)

// Actionlint generates the rules of the actionlint GitHub Actions linter
// from the Go sources of its checks.
type Actionlint struct {
	tree    extrules.SourceTree
	catalog *extrules.Catalog
	logger  *slog.Logger
}

// NewActionlint creates an Actionlint generator reading a checkout of the
// actionlint repository.
func NewActionlint(tree extrules.SourceTree, catalog *extrules.Catalog, logger *slog.Logger) *Actionlint {
	if logger == nil {
		logger = discardLogger()
	}
	return &Actionlint{tree: tree, catalog: catalog, logger: logger}
}

func (a *Actionlint) Name() string { return "actionlint" }

// Generate reads every rule_*.go file and extracts the name and description
// of its check. The syntax-check rule, defined in error.go, is added when no
// rule file declares it.
func (a *Actionlint) Generate(ctx context.Context) ([]*extrules.Rule, error) {
	names, err := a.tree.Glob("rule_*.go")
	if err != nil {
		return nil, err
	}

	var rules []*extrules.Rule
	seen := make(map[string]bool)
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := a.tree.ReadFile(name)
		if err != nil {
			return nil, err
		}
		id, title, err := parseActionlintRule(src)
		if err != nil {
			a.logger.Warn("skipped rule file", "tool", a.Name(), "file", name, "error", err)
			continue
		}
		rules = append(rules, a.rule(id, title))
		seen[id] = true
	}

	if !seen["syntax-check"] {
		src, err := a.tree.ReadFile("error.go")
		if err != nil && extrules.ErrorCode(err) != extrules.ENOTFOUND {
			return nil, err
		}
		if m := actionlintSyntaxCheck.FindStringSubmatch(src); m != nil {
			rules = append(rules, a.rule("syntax-check", m[1]))
		} else {
			a.logger.Warn("syntax-check rule not found", "tool", a.Name(), "file", "error.go")
		}
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Key < rules[j].Key })
	return append(rules, extrules.FallbackRule("actionlint", "", ActionlintDocURL)), nil
}

func (a *Actionlint) rule(id, title string) *extrules.Rule {
	return &extrules.Rule{
		Key:            id,
		Name:           title,
		URL:            ActionlintDocURL + "#" + id,
		Description:    issueDescription(`This issue is raised by the rule "%s" from "actionlint". `, id),
		Tags:           []string{"actionlint"},
		Classification: a.catalog.Classify(id),
	}
}

// parseActionlintRule returns the check name and description declared in a
// rule source file. Go escapes in the description are decoded.
func parseActionlintRule(src string) (id, title string, err error) {
	m := actionlintName.FindStringSubmatch(src)
	if m == nil {
		return "", "", extrules.Errorf(extrules.EINVALID, "no rule name")
	}
	id = m[1]

	d := actionlintDesc.FindStringSubmatch(src)
	if d == nil {
		return "", "", extrules.Errorf(extrules.EINVALID, "no description for rule %q", id)
	}
	title, err = strconv.Unquote(`"` + d[1] + `"`)
	if err != nil {
		return "", "", fmt.Errorf("decode description of rule %q: %w", id, err)
	}
	return id, title, nil
}
