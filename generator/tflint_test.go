package generator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/extrules"
	"github.com/fwojciec/extrules/generator"
	"github.com/fwojciec/extrules/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var awsRuleset = generator.Ruleset{Name: "aws", Branch: "master"}

func TestRuleset_URLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://github.com/terraform-linters/tflint-ruleset-aws/blob/master/docs/rules/", awsRuleset.BaseURL())
	assert.Equal(t, "https://raw.githubusercontent.com/terraform-linters/tflint-ruleset-aws/master/docs/rules/README.md", awsRuleset.ReadmeURL())
}

func TestTFLintRules(t *testing.T) {
	t.Parallel()

	readme := readFixture(t, "tflint_aws_readme.md")

	t.Run("extracts rules from every table", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.TFLintRules(readme, awsRuleset, nil, catalog(t, "tflint"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"aws_alb_invalid_security_group",
			"aws_instance_invalid_type",
			"aws_instance_previous_type",
			"aws_s3_bucket_name",
			"aws_resource_missing_tags",
		}, keys(rules))
	})

	t.Run("links documented rules to their page", func(t *testing.T) {
		t.Parallel()

		docs := map[string]bool{"aws_instance_invalid_type": true}
		rules, err := generator.TFLintRules(readme, awsRuleset, docs, catalog(t, "tflint"), nil)
		require.NoError(t, err)

		assert.Equal(t, awsRuleset.BaseURL()+"aws_instance_invalid_type.md", byKey(t, rules, "aws_instance_invalid_type").URL)
		assert.Equal(t, awsRuleset.BaseURL()+"README.md", byKey(t, rules, "aws_instance_previous_type").URL)
	})

	t.Run("builds rule metadata", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.TFLintRules(readme, awsRuleset, nil, catalog(t, "tflint"), nil)
		require.NoError(t, err)

		r := byKey(t, rules, "aws_instance_invalid_type")
		assert.Equal(t, "Aws Instance Invalid Type", r.Name)
		assert.Equal(t, `This issue is raised by the rule [aws_instance_invalid_type] from "TFLint". `+
			"This is not an issue raised by Sonar analyzers.<br/><br/>TFLint Message: Disallow using invalid instance types", r.Description)
		assert.Equal(t, []string{"tflint"}, r.Tags)
	})

	t.Run("classifies rules with the catalog", func(t *testing.T) {
		t.Parallel()

		rules, err := generator.TFLintRules(readme, awsRuleset, nil, catalog(t, "tflint"), nil)
		require.NoError(t, err)

		assert.Equal(t, extrules.TypeBug, byKey(t, rules, "aws_instance_invalid_type").Type)
		assert.Equal(t, extrules.TypeCodeSmell, byKey(t, rules, "aws_instance_previous_type").Type)
	})

	t.Run("skips rows silently", func(t *testing.T) {
		t.Parallel()

		var skipped int
		_, err := generator.TFLintRules(readme, awsRuleset, nil, catalog(t, "tflint"), func(string, error) {
			skipped++
		})

		require.NoError(t, err)
		assert.Zero(t, skipped)
	})
}

func TestTFLint_Generate(t *testing.T) {
	t.Parallel()

	readmes := func(t *testing.T) map[string]string {
		t.Helper()
		return map[string]string{
			generator.TFLintRulesets[0].ReadmeURL(): readFixture(t, "tflint_terraform_readme.md"),
			generator.TFLintRulesets[1].ReadmeURL(): readFixture(t, "tflint_aws_readme.md"),
			generator.TFLintRulesets[2].ReadmeURL(): "# Rules\n\n|Rule|Description|Enabled|\n| --- | --- | --- |\n|azurerm_linux_virtual_machine_invalid_size|Disallow invalid sizes|✔|\n",
			generator.TFLintRulesets[3].ReadmeURL(): "# Rules\n\n|Name|Description|\n| --- | --- |\n|google_compute_instance_invalid_machine_type|Disallow invalid machine types|\n",
		}
	}

	loaderFor := func(pages map[string]string) *mock.SourceLoader {
		return &mock.SourceLoader{
			LoadAllFn: func(_ context.Context, urls []string) ([]string, error) {
				out := make([]string, len(urls))
				for i, u := range urls {
					out[i] = pages[u]
				}
				return out, nil
			},
		}
	}

	t.Run("generates rules in ruleset order with fallback", func(t *testing.T) {
		t.Parallel()

		lister := &mock.DocLister{
			ListDocsFn: func(_ context.Context, dirURL string) (map[string]bool, error) {
				if strings.Contains(dirURL, "tflint-ruleset-terraform") {
					return map[string]bool{"terraform_deprecated_index": true}, nil
				}
				return map[string]bool{}, nil
			},
		}

		g := generator.NewTFLint(loaderFor(readmes(t)), lister, catalog(t, "tflint"), nil)
		rules, err := g.Generate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "tflint", g.Name())
		require.Len(t, rules, 3+5+1+1+1)
		assert.Equal(t, "terraform_deprecated_index", rules[0].Key)
		assert.Equal(t, "aws_alb_invalid_security_group", rules[3].Key)
		assert.Equal(t, "azurerm_linux_virtual_machine_invalid_size", rules[8].Key)
		assert.Equal(t, "google_compute_instance_invalid_machine_type", rules[9].Key)
		assert.Equal(t, "tflint.fallback", rules[10].Key)
		assert.Equal(t, "TFLint Rule", rules[10].Name)

		assert.True(t, strings.HasSuffix(rules[0].URL, "/terraform_deprecated_index.md"))
		assert.Equal(t, extrules.TypeSecurityHotspot, byKey(t, rules, "terraform_module_pinned_source").Type)
		assert.Equal(t, extrules.TypeCodeSmell, byKey(t, rules, "terraform_deprecated_index").Type)
	})

	t.Run("links README when listing fails", func(t *testing.T) {
		t.Parallel()

		lister := &mock.DocLister{
			ListDocsFn: func(context.Context, string) (map[string]bool, error) {
				return nil, errors.New("HTTP 429")
			},
		}

		rules, err := generator.NewTFLint(loaderFor(readmes(t)), lister, catalog(t, "tflint"), nil).Generate(context.Background())

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(rules[0].URL, "/README.md"))
	})

	t.Run("returns load errors", func(t *testing.T) {
		t.Parallel()

		loader := &mock.SourceLoader{
			LoadAllFn: func(context.Context, []string) ([]string, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := generator.NewTFLint(loader, &mock.DocLister{}, catalog(t, "tflint"), nil).Generate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		lister := &mock.DocLister{
			ListDocsFn: func(context.Context, string) (map[string]bool, error) {
				cancel()
				return nil, context.Canceled
			},
		}

		_, err := generator.NewTFLint(loaderFor(readmes(t)), lister, catalog(t, "tflint"), nil).Generate(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
