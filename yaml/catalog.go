// Package yaml loads linter classification catalogs from YAML files.
package yaml

import (
	"embed"
	"errors"
	"io/fs"
	"path"

	"github.com/fwojciec/extrules"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var defaultCatalogs embed.FS

// Ensure CatalogService implements extrules.CatalogService at compile time.
var _ extrules.CatalogService = (*CatalogService)(nil)

// CatalogService reads one "<tool>.yaml" file per linter from a filesystem.
type CatalogService struct {
	fsys fs.FS
}

// NewCatalogService creates a CatalogService reading from fsys.
func NewCatalogService(fsys fs.FS) *CatalogService {
	return &CatalogService{fsys: fsys}
}

// NewDefaultCatalogService creates a CatalogService over the built-in catalogs.
func NewDefaultCatalogService() *CatalogService {
	sub, err := fs.Sub(defaultCatalogs, "catalogs")
	if err != nil {
		panic(err)
	}
	return NewCatalogService(sub)
}

// FindCatalog loads and validates the catalog of tool.
func (s *CatalogService) FindCatalog(tool string) (*extrules.Catalog, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(tool)+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, extrules.Errorf(extrules.ENOTFOUND, "no catalog for %q", tool)
	}
	if err != nil {
		return nil, err
	}
	return ParseCatalog(tool, data)
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(tool string, data []byte) (*extrules.Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, extrules.Errorf(extrules.EINVALID, "catalog %q: %v", tool, err)
	}

	c := &extrules.Catalog{
		Tool:       tool,
		Default:    doc.Default.classification(),
		Titles:     doc.Titles,
		Expansions: doc.Expansions,
	}
	for _, g := range doc.Groups {
		c.Groups = append(c.Groups, extrules.ClassGroup{
			Name:           g.Name,
			Match:          g.Match,
			IDs:            g.IDs,
			Classification: g.classificationDoc.classification(),
		})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

type catalogDoc struct {
	Default    classificationDoc   `yaml:"default"`
	Groups     []groupDoc          `yaml:"groups"`
	Titles     map[string]string   `yaml:"titles"`
	Expansions map[string][]string `yaml:"expansions"`
}

type groupDoc struct {
	Name              string   `yaml:"name"`
	Match             string   `yaml:"match"`
	IDs               []string `yaml:"ids"`
	classificationDoc `yaml:",inline"`
}

type classificationDoc struct {
	Type      string `yaml:"type"`
	Severity  string `yaml:"severity"`
	Attribute string `yaml:"attribute"`
	Quality   string `yaml:"quality"`
	Impact    string `yaml:"impact"`
}

func (d classificationDoc) classification() extrules.Classification {
	return extrules.Classification{
		Type:      d.Type,
		Severity:  d.Severity,
		Attribute: d.Attribute,
		Quality:   d.Quality,
		Impact:    d.Impact,
	}
}
