package extrules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Rule types.
const (
	TypeBug             = "BUG"
	TypeVulnerability   = "VULNERABILITY"
	TypeCodeSmell       = "CODE_SMELL"
	TypeSecurityHotspot = "SECURITY_HOTSPOT"
)

// Rule severities.
const (
	SeverityInfo     = "INFO"
	SeverityMinor    = "MINOR"
	SeverityMajor    = "MAJOR"
	SeverityCritical = "CRITICAL"
	SeverityBlocker  = "BLOCKER"
)

// Clean code attributes used by the generators.
const (
	AttributeConventional = "CONVENTIONAL"
	AttributeLogical      = "LOGICAL"
	AttributeTrustworthy  = "TRUSTWORTHY"
)

// Software qualities.
const (
	QualityMaintainability = "MAINTAINABILITY"
	QualityReliability     = "RELIABILITY"
	QualitySecurity        = "SECURITY"
)

// Impact levels.
const (
	ImpactLow    = "LOW"
	ImpactMedium = "MEDIUM"
	ImpactHigh   = "HIGH"
)

// Classification describes how an external rule is categorized.
type Classification struct {
	Type      string
	Severity  string
	Attribute string
	Quality   string
	Impact    string
}

// Rule is the metadata of a single external linter rule.
type Rule struct {
	Key         string
	Name        string
	URL         string
	Description string
	Tags        []string
	Classification
}

// Validate returns an error if the rule contains invalid fields.
func (r *Rule) Validate() error {
	if r.Key == "" {
		return Errorf(EINVALID, "rule key required")
	}
	if r.Name == "" {
		return Errorf(EINVALID, "rule %q: name required", r.Key)
	}
	switch r.Type {
	case TypeBug, TypeVulnerability, TypeCodeSmell, TypeSecurityHotspot:
	default:
		return Errorf(EINVALID, "rule %q: invalid type %q", r.Key, r.Type)
	}
	return nil
}

// ruleJSON is the wire format of a Rule in rules.json.
type ruleJSON struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Code        *codeJSON `json:"code,omitempty"`
}

type codeJSON struct {
	Attribute string            `json:"attribute"`
	Impacts   map[string]string `json:"impacts"`
}

// MarshalJSON encodes the rule in the rules.json format.
func (r *Rule) MarshalJSON() ([]byte, error) {
	out := ruleJSON{
		Key:         r.Key,
		Name:        r.Name,
		URL:         r.URL,
		Description: r.Description,
		Tags:        r.Tags,
		Type:        r.Type,
		Severity:    r.Severity,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Severity == "" {
		out.Severity = SeverityMajor
	}
	if r.Attribute != "" {
		out.Code = &codeJSON{Attribute: r.Attribute, Impacts: map[string]string{}}
		if r.Quality != "" {
			out.Code.Impacts[r.Quality] = r.Impact
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a rule from the rules.json format.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var in ruleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Rule{
		Key:         in.Key,
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
		Tags:        in.Tags,
		Classification: Classification{
			Type:     in.Type,
			Severity: in.Severity,
		},
	}
	if in.Code != nil {
		r.Attribute = in.Code.Attribute
		for quality, impact := range in.Code.Impacts {
			r.Quality, r.Impact = quality, impact
		}
	}
	return nil
}

// FallbackRule returns the catch-all rule reported for issues whose rule is
// unknown to the analyzer. toolName defaults to toolID.
func FallbackRule(toolID, toolName, docURL string) *Rule {
	if toolName == "" {
		toolName = toolID
	}
	return &Rule{
		Key:  toolID + ".fallback",
		Name: toolName + " Rule",
		URL:  docURL,
		Description: fmt.Sprintf("This reporting may be triggered by a custom %s rule or by a default %s rule "+
			"that has not yet been added to the Sonar IaC analyzer", toolName, toolName),
		Tags: []string{toolID},
		Classification: Classification{
			Type:      TypeCodeSmell,
			Severity:  SeverityMajor,
			Attribute: AttributeConventional,
			Quality:   QualityMaintainability,
			Impact:    ImpactMedium,
		},
	}
}

// TitleCase turns a snake_case rule ID into a title.
//
// Example: "aws_instance_invalid_type" → "Aws Instance Invalid Type"
func TitleCase(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Generator produces the rules of one external linter.
type Generator interface {
	// Name returns the linter identifier, e.g. "hadolint".
	Name() string

	// Generate scrapes the linter's documentation or sources and returns
	// its rules, including the fallback rule.
	Generate(ctx context.Context) ([]*Rule, error)
}

// RulesWriter persists generated rules.
type RulesWriter interface {
	// WriteRules validates and writes rules to path, replacing any
	// existing file atomically.
	WriteRules(ctx context.Context, path string, rules []*Rule) error
}
