package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/extrules"
	"github.com/fwojciec/extrules/generator"
	"github.com/fwojciec/extrules/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHadolintRules(t *testing.T) {
	t.Parallel()

	readme := readFixture(t, "hadolint_readme.md")

	t.Run("extracts rules sorted with ShellCheck last and fallback appended", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules(readme, catalog(t, "hadolint"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"DL1001", "DL3000", "DL3002", "DL3006", "DL3025", "DL3047",
			"SC1007", "SC2086",
			"hadolint.fallback",
		}, keys(rules))
	})

	t.Run("builds Hadolint rule metadata", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules(readme, catalog(t, "hadolint"), nil)
		require.NoError(t, err)

		r := byKey(t, rules, "DL3006")
		assert.Equal(t, "Always tag the version of an image explicitly.", r.Name)
		assert.Equal(t, "https://github.com/hadolint/hadolint/wiki/DL3006", r.URL)
		assert.Equal(t, `This issue is raised by the rule "DL3006" from "Hadolint". This is not an issue raised by Sonar analyzers.<br/>`, r.Description)
		assert.Equal(t, []string{"hadolint"}, r.Tags)
	})

	t.Run("builds ShellCheck rule metadata", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules(readme, catalog(t, "hadolint"), nil)
		require.NoError(t, err)

		r := byKey(t, rules, "SC2086")
		assert.Equal(t, "https://github.com/koalaman/shellcheck/wiki/SC2086", r.URL)
		assert.Contains(t, r.Description, `from "ShellCheck"`)
		assert.Equal(t, []string{"shellcheck", "hadolint"}, r.Tags)
	})

	t.Run("keeps quotes and backslashes in titles", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules(readme, catalog(t, "hadolint"), nil)
		require.NoError(t, err)

		assert.Equal(t, "Use arguments JSON notation for CMD and ENTRYPOINT arguments: use `\"` not `\\`.", byKey(t, rules, "DL3025").Name)
	})

	t.Run("classifies rules", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules(readme, catalog(t, "hadolint"), nil)
		require.NoError(t, err)

		tests := []struct {
			key  string
			want extrules.Classification
		}{
			{"DL3000", extrules.Classification{Type: "BUG", Severity: "CRITICAL", Attribute: "LOGICAL", Quality: "RELIABILITY", Impact: "HIGH"}},
			{"SC1007", extrules.Classification{Type: "BUG", Severity: "CRITICAL", Attribute: "LOGICAL", Quality: "RELIABILITY", Impact: "HIGH"}},
			{"DL3002", extrules.Classification{Type: "SECURITY_HOTSPOT", Severity: "MAJOR", Attribute: "TRUSTWORTHY", Quality: "SECURITY", Impact: "MEDIUM"}},
			{"DL1001", extrules.Classification{Type: "CODE_SMELL", Severity: "INFO", Attribute: "CONVENTIONAL", Quality: "MAINTAINABILITY", Impact: "LOW"}},
			{"DL3006", extrules.Classification{Type: "CODE_SMELL", Severity: "MAJOR", Attribute: "CONVENTIONAL", Quality: "MAINTAINABILITY", Impact: "MEDIUM"}},
			{"DL3047", extrules.Classification{Type: "CODE_SMELL", Severity: "MINOR", Attribute: "CONVENTIONAL", Quality: "MAINTAINABILITY", Impact: "LOW"}},
			{"SC2086", extrules.Classification{Type: "CODE_SMELL", Severity: "MAJOR", Attribute: "CONVENTIONAL", Quality: "MAINTAINABILITY", Impact: "MEDIUM"}},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, byKey(t, rules, tt.key).Classification, tt.key)
		}
	})

	t.Run("reports rows with the wrong number of columns", func(t *testing.T) {
		t.Parallel()

		var skipped []string
		_, err := generator.HadolintRules(readme, catalog(t, "hadolint"), func(line string, err error) {
			skipped = append(skipped, line)
		})

		require.NoError(t, err)
		require.Len(t, skipped, 1)
		assert.Contains(t, skipped[0], "DL9999")
	})

	t.Run("returns only the fallback without a rules section", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.HadolintRules("# Hadolint\n\n| a | b | c |\n|---|---|---|\n| x | y | z |\n", catalog(t, "hadolint"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"hadolint.fallback"}, keys(rules))
	})
}

func TestHadolint_Generate(t *testing.T) {
	t.Parallel()

	t.Run("loads the README", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		loader := &mock.SourceLoader{
			LoadFn: func(_ context.Context, url string) (string, error) {
				gotURL = url
				return readFixture(t, "hadolint_readme.md"), nil
			},
		}

		g := generator.NewHadolint(loader, catalog(t, "hadolint"), nil)
		rules, err := g.Generate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "hadolint", g.Name())
		assert.Equal(t, generator.HadolintReadmeURL, gotURL)
		assert.Len(t, rules, 9)
	})

	t.Run("returns load errors", func(t *testing.T) {
		t.Parallel()

		loader := &mock.SourceLoader{
			LoadFn: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		_, err := generator.NewHadolint(loader, catalog(t, "hadolint"), nil).Generate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
