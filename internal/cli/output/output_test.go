package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	tests := []struct {
		input string
		want  OutputMode
	}{
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{"MD", ModeMarkdown},
		{"json", ModeJSON},
		{"csv", ModeCSV},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.input))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto on pipe", ModeAuto, false, ModeMarkdown},
		{"explicit json ignores tty", ModeJSON, true, ModeJSON},
		{"explicit markdown on terminal", ModeMarkdown, true, ModeMarkdown},
		{"explicit text on pipe", ModeText, false, ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestHeader(t *testing.T) {
	t.Run("markdown mode", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeMarkdown)
		r.Header(2, "Statements")
		assert.Equal(t, "## Statements\n\n", out.String())
	})

	t.Run("text mode underlines top level", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, true, ModeText)
		r.Header(1, "Statements")
		assert.Equal(t, "Statements\n==========\n", out.String())
	})
}

func TestKeyValue(t *testing.T) {
	t.Run("markdown mode", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeMarkdown)
		r.KeyValue("Type", "select")
		assert.Equal(t, "- **Type:** select\n", out.String())
	})

	t.Run("text mode aligns columns", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, true, ModeText)
		r.KeyValue("Type", "select")
		assert.Contains(t, out.String(), "Type:")
		assert.Contains(t, out.String(), "select")
	})
}
