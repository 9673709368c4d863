package assembly

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/stylebook/internal/config"
	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/export"
	"git.home.luguber.info/inful/stylebook/internal/frontmatter"
	"git.home.luguber.info/inful/stylebook/internal/logfields"
)

// assetNames lists the optional co-located compiled-asset pairs copied next
// to every bundled item. A missing source file is not an error.
var assetNames = []string{
	"toolkit.css", "toolkit.js",
	"toolkit-vendor.css", "toolkit-vendor.js",
	"vendor.css", "vendor.js",
}

// BundleMaterials renders every item flagged for bundling standalone and
// emits it with its compiled assets under <output>/bundles/<base>/. This
// runs after all fragments are registered because bundled output may include
// other fragments. Finally, stale asset staging folders from the copy step
// of earlier runs are removed.
func (s *State) BundleMaterials(cfg *config.Config) error {
	items := s.bundledItems()

	var errs []error
	for _, item := range items {
		if err := s.bundleItem(cfg, item); err != nil {
			errs = append(errs, err)
		}
	}

	for _, leftover := range []string{"toolkit", "vendor"} {
		_ = os.RemoveAll(filepath.Join(cfg.Output, "bundles", leftover))
	}

	if len(items) > 0 {
		slog.Info("Bundles written", logfields.RunID(s.RunID), logfields.Count(len(items)))
	}
	return stderrors.Join(errs...)
}

// bundledItems walks the material tree and collects bundle-flagged items in
// stable id order.
func (s *State) bundledItems() []*Item {
	var items []*Item

	var collect func(col *Collection)
	collect = func(col *Collection) {
		for _, node := range col.Items {
			switch n := node.(type) {
			case *Collection:
				collect(n)
			case *Item:
				if n.Bundle {
					items = append(items, n)
				}
			}
		}
	}
	for _, col := range s.Materials {
		collect(col)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })
	return items
}

func (s *State) bundleItem(cfg *config.Config, item *Item) error {
	base := strings.TrimSuffix(filepath.Base(item.path), filepath.Ext(item.path))
	outDir := filepath.Join(cfg.Output, "bundles", base)

	// Standalone render: the fragment wrapped in a trivial include, resolved
	// against the item's own data plus the global context.
	ctx := s.BuildContext(cfg, item.Data, nil)
	html, err := s.engine.Render("{{> "+item.id+"}}", ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("render bundle %s", item.id))
	}

	ext := cfg.Extension
	if v := item.Data.String(frontmatter.KeyExtension); v != "" {
		if !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		ext = v
	}

	if err := writeFile(filepath.Join(outDir, base+ext), []byte(html)); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
			fmt.Sprintf("write bundle %s", item.id))
	}

	s.copyBundleAssets(item, base, outDir)
	s.exportBundle(item, html)

	slog.Debug("Bundle written", logfields.Material(item.id), logfields.Output(outDir))
	return nil
}

// copyBundleAssets best-effort-copies the item-scoped pair and the shared
// toolkit/vendor pairs from the item's directory. Missing sources are
// silently skipped; other copy failures are logged and swallowed.
func (s *State) copyBundleAssets(item *Item, base, outDir string) {
	srcDir := filepath.Dir(item.path)

	names := append([]string{base + ".css", base + ".js"}, assetNames...)
	for _, name := range names {
		err := copyFile(filepath.Join(srcDir, name), filepath.Join(outDir, name))
		if err == nil || stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		slog.Warn("Bundle asset copy failed",
			logfields.Material(item.id),
			logfields.Path(name),
			logfields.Error(err))
	}
}

// exportBundle hands the rendered item to the legacy exporter when its
// triggering data flag carries a truthy value; an explicit false or null
// does not trigger. Export failures are reported but never abort the
// bundling pass.
func (s *State) exportBundle(item *Item, html string) {
	flag, ok := item.Data[frontmatter.KeyExport]
	if s.exporter == nil || !ok || flag == nil || flag == false {
		return
	}

	settings, _ := flag.(map[string]any)
	err := s.exporter.ExportWidget(export.Widget{
		ID:       strings.ReplaceAll(item.id, ".", "-"),
		Name:     item.Name,
		HTML:     html,
		Settings: settings,
	})
	if err != nil {
		slog.Error("Legacy export failed", logfields.Material(item.id), logfields.Error(err))
	}
}
