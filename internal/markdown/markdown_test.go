package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_BasicMarkdown_ProducesHTML(t *testing.T) {
	out, err := NewRenderer().Render("# Setup\n\nInstall *it*.\n")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Setup</h1>")
	require.Contains(t, out, "<em>it</em>")
}

func TestRender_Empty_ReturnsEmpty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRender_InlineNote_SingleParagraph(t *testing.T) {
	out, err := NewRenderer().Render("A *useful* button.")
	require.NoError(t, err)
	require.Equal(t, "<p>A <em>useful</em> button.</p>\n", out)
}
