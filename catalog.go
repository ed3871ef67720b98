package extrules

import "strings"

// Match modes for a ClassGroup.
const (
	MatchExact    = "exact"
	MatchPrefix   = "prefix"
	MatchContains = "contains"
)

// ClassGroup assigns one classification to a set of rule IDs.
type ClassGroup struct {
	Name  string
	Match string
	IDs   []string
	Classification
}

// matches reports whether id belongs to the group. Exact matching also
// accepts id with its "[...]" qualifier removed, so "jinja[spacing]" is
// matched by "jinja".
func (g *ClassGroup) matches(id string) bool {
	for _, candidate := range g.IDs {
		switch g.Match {
		case MatchPrefix:
			if strings.HasPrefix(id, candidate) {
				return true
			}
		case MatchContains:
			if strings.Contains(id, candidate) {
				return true
			}
		default:
			if id == candidate || BaseID(id) == candidate {
				return true
			}
		}
	}
	return false
}

// Catalog holds the classification data of one linter: ordered groups of
// rule IDs, a default, title overrides and rule expansions.
type Catalog struct {
	Tool    string
	Groups  []ClassGroup
	Default Classification

	// Titles overrides scraped titles, keyed by full or base rule ID.
	Titles map[string]string

	// Expansions lists the sub-rules reported under a single documented
	// rule, e.g. "fqcn" → ["fqcn[action]", "fqcn[canonical]"].
	Expansions map[string][]string
}

// Validate returns an error if the catalog contains invalid fields.
func (c *Catalog) Validate() error {
	if c.Tool == "" {
		return Errorf(EINVALID, "catalog tool required")
	}
	if c.Default.Type == "" {
		return Errorf(EINVALID, "catalog %q: default type required", c.Tool)
	}
	for _, g := range c.Groups {
		switch g.Match {
		case "", MatchExact, MatchPrefix, MatchContains:
		default:
			return Errorf(EINVALID, "catalog %q: group %q: invalid match %q", c.Tool, g.Name, g.Match)
		}
		if g.Type == "" {
			return Errorf(EINVALID, "catalog %q: group %q: type required", c.Tool, g.Name)
		}
	}
	return nil
}

// Lookup returns the classification of the first group matching id.
func (c *Catalog) Lookup(id string) (Classification, bool) {
	for i := range c.Groups {
		if c.Groups[i].matches(id) {
			return c.Groups[i].Classification, true
		}
	}
	return Classification{}, false
}

// Classify returns the classification of id, falling back to the default.
func (c *Catalog) Classify(id string) Classification {
	if cl, ok := c.Lookup(id); ok {
		return cl
	}
	return c.Default
}

// Title returns the override title for id, trying the full ID first.
func (c *Catalog) Title(id string) (string, bool) {
	if t, ok := c.Titles[id]; ok {
		return t, true
	}
	t, ok := c.Titles[BaseID(id)]
	return t, ok
}

// Expand returns the rule IDs reported under id. IDs without an expansion
// map to themselves.
func (c *Catalog) Expand(id string) []string {
	if ids, ok := c.Expansions[id]; ok && len(ids) > 0 {
		return ids
	}
	return []string{id}
}

// BaseID strips a "[...]" qualifier from a rule ID.
//
// Example: "yaml[line-length]" → "yaml"
func BaseID(id string) string {
	if i := strings.Index(id, "["); i >= 0 {
		return id[:i]
	}
	return id
}

// CatalogService looks up linter catalogs.
type CatalogService interface {
	// FindCatalog returns the catalog of tool.
	// Returns ENOTFOUND if no catalog exists.
	FindCatalog(tool string) (*Catalog, error)
}
