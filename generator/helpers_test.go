package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/extrules"
	"github.com/fwojciec/extrules/yaml"
	"github.com/stretchr/testify/require"
)

// catalog returns the built-in catalog of tool.
func catalog(t *testing.T, tool string) *extrules.Catalog {
	t.Helper()
	c, err := yaml.NewDefaultCatalogService().FindCatalog(tool)
	require.NoError(t, err)
	return c
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func keys(rules []*extrules.Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Key
	}
	return out
}

func byKey(t *testing.T, rules []*extrules.Rule, key string) *extrules.Rule {
	t.Helper()
	for _, r := range rules {
		if r.Key == key {
			return r
		}
	}
	require.Failf(t, "rule not found", "no rule with key %q", key)
	return nil
}
