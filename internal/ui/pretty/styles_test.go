package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []string{
		styles.Bold.Render("text"),
		styles.Error.Render("text"),
		styles.Caret.Render("text"),
		styles.ItemName.Render("text"),
	} {
		assert.Equal(t, "text", style)
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)
	assert.Contains(t, styles.Warning.Render("x"), "x")
	assert.Contains(t, styles.Gutter.Render("x"), "x")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))

	t.Setenv("NO_COLOR", "")
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
	assert.False(t, pretty.IsColorEnabled("", &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}
