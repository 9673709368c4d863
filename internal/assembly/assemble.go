package assembly

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/stylebook/internal/config"
	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/export"
	"git.home.luguber.info/inful/stylebook/internal/logfields"
	"git.home.luguber.info/inful/stylebook/internal/markdown"
	"git.home.luguber.info/inful/stylebook/internal/tmpl"
)

// Assemble runs the whole batch transform with a fresh state: data, docs,
// layouts, includes, materials, views, pages, bundles — single-threaded and
// in that order. Re-running fully replaces previous output at the same
// paths.
func Assemble(cfg *config.Config) error {
	state := NewState(
		tmpl.NewHandlebars(),
		markdown.NewRenderer(),
		export.NewLegacyCMS(filepath.Join(cfg.Output, "export")),
	)
	return state.Run(cfg)
}

// Run executes all assembly stages against this state.
func (s *State) Run(cfg *config.Config) error {
	slog.Info("Starting assembly",
		logfields.RunID(s.RunID),
		logfields.Output(cfg.Output))

	stages := []struct {
		name string
		run  func() error
	}{
		{"data", func() error { return s.LoadData(cfg.Data) }},
		{"docs", func() error { return s.LoadDocs(cfg.Docs) }},
		{"layouts", func() error { return s.LoadLayouts(cfg.Layouts) }},
		{"includes", func() error { return s.RegisterIncludes(cfg.Includes) }},
		{"materials", func() error { return s.BuildMaterials(cfg) }},
		{"views", func() error { return s.LoadViews(cfg.Views) }},
		{"pages", func() error { return s.AssemblePages(cfg) }},
		{"bundles", func() error { return s.BundleMaterials(cfg) }},
	}

	for _, stage := range stages {
		if err := stage.run(); err != nil {
			if _, ok := err.(*apperrors.AssemblyError); ok {
				return err
			}
			return apperrors.Wrap(err, apperrors.GetCategory(err), apperrors.SeverityFatal,
				fmt.Sprintf("stage %s", stage.name))
		}
		slog.Debug("Stage completed", logfields.RunID(s.RunID), logfields.Stage(stage.name))
	}

	slog.Info("Assembly completed",
		logfields.RunID(s.RunID),
		slog.Int("collections", len(s.Materials)),
		slog.Int("fragments", len(s.engine.Fragments())),
		slog.Int("pages", len(s.pages)),
		slog.Int("docs", len(s.Docs)))
	return nil
}
