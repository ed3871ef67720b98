package extrules_test

import (
	"testing"

	"github.com/fwojciec/extrules"
	"github.com/stretchr/testify/assert"
)

func TestSplitRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"three cells", "| [DL3000](https://x) | Error | Use absolute WORKDIR. |", []string{"[DL3000](https://x)", "Error", "Use absolute WORKDIR."}},
		{"keeps empty inner cells", "| a |  | c |", []string{"a", "", "c"}},
		{"surrounding whitespace", "   | a | b |   ", []string{"a", "b"}},
		{"single cell", "| B |", []string{"B"}},
		{"no trailing pipe", "| a | b", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, extrules.SplitRow(tt.line))
		})
	}
}

func TestNonEmptyCells(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "c"}, extrules.NonEmptyCells("| a |  | c |"))
	assert.Empty(t, extrules.NonEmptyCells("| | |"))
}

func TestStripLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aws_instance_invalid_type", extrules.StripLinks("[aws_instance_invalid_type](aws_instance_invalid_type.md)"))
	assert.Equal(t, "see a and b", extrules.StripLinks("see [a](x) and [b](y)"))
	assert.Equal(t, "plain", extrules.StripLinks("plain"))
}
