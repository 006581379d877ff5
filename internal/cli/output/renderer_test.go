package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRendererDefaultsToAuto(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, "")
	assert.Equal(t, ModeAuto, r.mode)
}

func TestEffectiveModeExplicit(t *testing.T) {
	var buf bytes.Buffer
	for _, mode := range []Mode{ModeText, ModeMarkdown, ModeJSON} {
		r := NewRenderer(&buf, &buf, mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestEffectiveModeAutoOnBuffer(t *testing.T) {
	// A bytes.Buffer is not a terminal, so auto resolves to markdown.
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("hello")
	r.Printf("count: %d\n", 3)
	assert.Equal(t, "hello\ncount: 3\n", out.String())

	r.Error("boom")
	assert.Contains(t, errOut.String(), "boom")
	assert.NotContains(t, out.String(), "boom")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"findings": 2}))
	assert.JSONEq(t, `{"findings": 2}`, buf.String())
}
