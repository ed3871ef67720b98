package extrules_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/extrules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete rule", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{Key: "DL3000", Name: "Use absolute WORKDIR", Classification: extrules.Classification{Type: extrules.TypeBug}}

		assert.NoError(t, r.Validate())
	})

	t.Run("requires key", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{Name: "x", Classification: extrules.Classification{Type: extrules.TypeBug}}

		assert.Equal(t, extrules.EINVALID, extrules.ErrorCode(r.Validate()))
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{Key: "x", Classification: extrules.Classification{Type: extrules.TypeBug}}

		assert.Equal(t, extrules.EINVALID, extrules.ErrorCode(r.Validate()))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{Key: "x", Name: "x", Classification: extrules.Classification{Type: "ISSUE"}}

		assert.Equal(t, extrules.EINVALID, extrules.ErrorCode(r.Validate()))
	})
}

func TestRule_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes code attribute and impacts", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{
			Key:         "DL3000",
			Name:        `Use "absolute" WORKDIR`,
			URL:         "https://github.com/hadolint/hadolint/wiki/DL3000",
			Description: "desc",
			Tags:        []string{"hadolint"},
			Classification: extrules.Classification{
				Type:      extrules.TypeBug,
				Severity:  extrules.SeverityCritical,
				Attribute: extrules.AttributeLogical,
				Quality:   extrules.QualityReliability,
				Impact:    extrules.ImpactHigh,
			},
		}

		data, err := json.Marshal(r)
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"key": "DL3000",
			"name": "Use \"absolute\" WORKDIR",
			"url": "https://github.com/hadolint/hadolint/wiki/DL3000",
			"description": "desc",
			"tags": ["hadolint"],
			"type": "BUG",
			"severity": "CRITICAL",
			"code": {"attribute": "LOGICAL", "impacts": {"RELIABILITY": "HIGH"}}
		}`, string(data))
	})

	t.Run("defaults severity and omits empty code", func(t *testing.T) {
		t.Parallel()

		r := &extrules.Rule{Key: "k", Name: "n", Classification: extrules.Classification{Type: extrules.TypeSecurityHotspot}}

		data, err := json.Marshal(r)
		require.NoError(t, err)

		assert.JSONEq(t, `{"key":"k","name":"n","url":"","description":"","tags":[],"type":"SECURITY_HOTSPOT","severity":"MAJOR"}`, string(data))
	})

	t.Run("decodes what it encodes", func(t *testing.T) {
		t.Parallel()

		in := extrules.FallbackRule("tflint", "TFLint", "https://github.com/terraform-linters/tflint")

		data, err := json.Marshal(in)
		require.NoError(t, err)
		var out extrules.Rule
		require.NoError(t, json.Unmarshal(data, &out))

		assert.Equal(t, *in, out)
	})
}

func TestFallbackRule(t *testing.T) {
	t.Parallel()

	t.Run("uses the tool name in key, name and description", func(t *testing.T) {
		t.Parallel()

		r := extrules.FallbackRule("spectral", "Spectral", "https://docs.stoplight.io/docs/spectral/")

		assert.Equal(t, "spectral.fallback", r.Key)
		assert.Equal(t, "Spectral Rule", r.Name)
		assert.Contains(t, r.Description, "custom Spectral rule")
		assert.Equal(t, []string{"spectral"}, r.Tags)
		assert.Equal(t, extrules.TypeCodeSmell, r.Type)
		assert.NoError(t, r.Validate())
	})

	t.Run("defaults tool name to tool ID", func(t *testing.T) {
		t.Parallel()

		r := extrules.FallbackRule("hadolint", "", "https://github.com/hadolint/hadolint/wiki")

		assert.Equal(t, "hadolint Rule", r.Name)
	})
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Aws Instance Invalid Type", extrules.TitleCase("aws_instance_invalid_type"))
	assert.Equal(t, "Terraform Deprecated Index", extrules.TitleCase("terraform_deprecated_index"))
	assert.Equal(t, "Single", extrules.TitleCase("single"))
}
