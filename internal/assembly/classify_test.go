package assembly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestClassifyMaterials_OneLevel_NeverSubCollection(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "buttons", "primary.html"), "<button></button>")

	placements, err := ClassifyMaterials([]string{filepath.Join(dir, "materials", "**", "*.html")})
	require.NoError(t, err)
	require.Len(t, placements, 1)
	require.Equal(t, "buttons", placements[0].Collection)
	require.Empty(t, placements[0].Sub)
}

func TestClassifyMaterials_TwoLevels_SubCollection(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "components", "buttons", "primary.html"), "x")

	placements, err := ClassifyMaterials([]string{filepath.Join(dir, "materials", "**", "*.html")})
	require.NoError(t, err)
	require.Len(t, placements, 1)
	require.Equal(t, "components", placements[0].Collection)
	require.Equal(t, "buttons", placements[0].Sub)
}

func TestClassifyMaterials_ThreeLevels_CollapsesToImmediateParent(t *testing.T) {
	// Nesting deeper than two levels is classified against the immediate
	// parent and grandparent only; "deep" is not a known top-level
	// directory, so the file lands in a flat collection named after its
	// containing directory.
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "components", "deep", "buttons", "primary.html"), "x")

	placements, err := ClassifyMaterials([]string{filepath.Join(dir, "materials", "**", "*.html")})
	require.NoError(t, err)
	require.Len(t, placements, 1)
	require.Equal(t, "buttons", placements[0].Collection)
	require.Empty(t, placements[0].Sub)
}

func TestClassifyMaterials_OrderingPrefixOnDirectories_Normalized(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "01-components", "buttons", "primary.html"), "x")

	placements, err := ClassifyMaterials([]string{filepath.Join(dir, "materials", "**", "*.html")})
	require.NoError(t, err)
	require.Len(t, placements, 1)
	require.Equal(t, "components", placements[0].Collection)
	require.Equal(t, "buttons", placements[0].Sub)
}

func TestClassifyMaterials_Files_SortedLexicographically(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "b", "two.html"), "x")
	writeTestFile(t, filepath.Join(dir, "materials", "a", "one.html"), "x")

	placements, err := ClassifyMaterials([]string{filepath.Join(dir, "materials", "**", "*.html")})
	require.NoError(t, err)
	require.Len(t, placements, 2)
	require.Equal(t, "a", placements[0].Collection)
	require.Equal(t, "b", placements[1].Collection)
}
