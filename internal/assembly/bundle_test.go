package assembly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/stylebook/internal/config"
	"git.home.luguber.info/inful/stylebook/internal/export"
	"git.home.luguber.info/inful/stylebook/internal/markdown"
	"git.home.luguber.info/inful/stylebook/internal/tmpl"
)

func bundleConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Materials = []string{filepath.Join(dir, "materials", "**", "*.html")}
	cfg.Output = filepath.Join(dir, "dist")
	return cfg
}

func buildBundleState(t *testing.T, cfg *config.Config) *State {
	t.Helper()
	state := NewState(tmpl.NewHandlebars(), markdown.NewRenderer(), nil)
	require.NoError(t, state.BuildMaterials(cfg))
	return state
}

func TestBundleMaterials_MissingAssets_OutputStillWritten(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\ntitle: Big\n---\n<h1>{{title}}</h1>\n")

	cfg := bundleConfig(dir)
	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	out, err := os.ReadFile(filepath.Join(cfg.Output, "bundles", "banner", "banner.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Big</h1>", string(out))
}

func TestBundleMaterials_PresentAssets_CopiedNextToOutput(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\n---\n<h1></h1>\n")
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.css"), "h1{}")
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "toolkit.css"), "*{}")

	cfg := bundleConfig(dir)
	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	css, err := os.ReadFile(filepath.Join(cfg.Output, "bundles", "banner", "banner.css"))
	require.NoError(t, err)
	require.Equal(t, "h1{}", string(css))

	toolkit, err := os.ReadFile(filepath.Join(cfg.Output, "bundles", "banner", "toolkit.css"))
	require.NoError(t, err)
	require.Equal(t, "*{}", string(toolkit))
}

func TestBundleMaterials_ExtensionOverride_Respected(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\nextension: txt\n---\nplain\n")

	cfg := bundleConfig(dir)
	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "banner", "banner.txt"))
	require.NoError(t, err)
}

func TestBundleMaterials_UnflaggedItems_NotBundled(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"), "<h1></h1>")

	cfg := bundleConfig(dir)
	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "banner"))
	require.True(t, os.IsNotExist(err))
}

func TestBundleMaterials_NumberedSource_DirectoryUsesRawBaseName(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "01-banner.html"),
		"---\nbundle: true\n---\nx")

	cfg := bundleConfig(dir)
	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "01-banner", "01-banner.html"))
	require.NoError(t, err)
}

// failingExporter always fails, to prove export errors never abort bundling.
type failingExporter struct{ calls int }

func (f *failingExporter) ExportWidget(export.Widget) error {
	f.calls++
	return os.ErrPermission
}

func TestBundleMaterials_ExporterFailure_DoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\nwebsphere:\n  category: promo\n---\nx")

	cfg := bundleConfig(dir)
	exp := &failingExporter{}
	state := NewState(tmpl.NewHandlebars(), markdown.NewRenderer(), exp)
	require.NoError(t, state.BuildMaterials(cfg))
	require.NoError(t, state.BundleMaterials(cfg))

	require.Equal(t, 1, exp.calls)
	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "banner", "banner.html"))
	require.NoError(t, err)
}

func TestBundleMaterials_ExportFlagFalseOrNull_ExporterNotCalled(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\nwebsphere: false\n---\nx")
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "teaser.html"),
		"---\nbundle: true\nwebsphere:\n---\nx")

	cfg := bundleConfig(dir)
	exp := &failingExporter{}
	state := NewState(tmpl.NewHandlebars(), markdown.NewRenderer(), exp)
	require.NoError(t, state.BuildMaterials(cfg))
	require.NoError(t, state.BundleMaterials(cfg))

	require.Equal(t, 0, exp.calls)
	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "banner", "banner.html"))
	require.NoError(t, err)
}

func TestBundleMaterials_ExportFlagTrue_ExporterCalledWithoutSettings(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "materials", "heroes", "banner.html"),
		"---\nbundle: true\nwebsphere: true\n---\nx")

	cfg := bundleConfig(dir)
	exp := &failingExporter{}
	state := NewState(tmpl.NewHandlebars(), markdown.NewRenderer(), exp)
	require.NoError(t, state.BuildMaterials(cfg))
	require.NoError(t, state.BundleMaterials(cfg))

	require.Equal(t, 1, exp.calls)
}

func TestBundleMaterials_LeftoverStagingDirs_Removed(t *testing.T) {
	dir := t.TempDir()
	cfg := bundleConfig(dir)
	stale := filepath.Join(cfg.Output, "bundles", "toolkit", "old.css")
	writeTestFile(t, stale, "stale")

	state := buildBundleState(t, cfg)
	require.NoError(t, state.BundleMaterials(cfg))

	_, err := os.Stat(filepath.Join(cfg.Output, "bundles", "toolkit"))
	require.True(t, os.IsNotExist(err))
}
