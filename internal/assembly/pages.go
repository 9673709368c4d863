package assembly

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/stylebook/internal/config"
	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/frontmatter"
	"git.home.luguber.info/inful/stylebook/internal/logfields"
)

// AssemblePages renders every parsed view through its layout and writes the
// final pages under the output root, flat or nested one level under the
// view's collection.
func (s *State) AssemblePages(cfg *config.Config) error {
	var errs []error
	for _, page := range s.pages {
		if err := s.assemblePage(cfg, page); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (s *State) assemblePage(cfg *config.Config, page viewPage) error {
	layoutID := cfg.DefaultLayout
	if v := page.fields.String(frontmatter.KeyLayout); v != "" {
		layoutID = v
	}
	layout, ok := s.Layouts[layoutID]
	if !ok {
		return apperrors.New(apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("view %s references unknown layout %q", page.path, layoutID))
	}

	ctx := s.BuildContext(cfg, page.fields, nil)
	html, err := s.engine.RenderWith(layout, ctx, map[string]string{"body": page.body})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("render view %s", page.path))
	}

	rel := page.id + cfg.Extension
	if page.collection != "" {
		rel = filepath.Join(page.collection, rel)
	}
	if dest := page.fields.String(frontmatter.KeyDest); dest != "" {
		rel = dest
	}

	out := filepath.Join(cfg.Output, rel)
	if err := writeFile(out, []byte(html)); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
			fmt.Sprintf("write page for view %s", page.path))
	}

	if destCopy := page.fields.String(frontmatter.KeyDestCopy); destCopy != "" {
		if err := writeFile(filepath.Join(cfg.Output, destCopy), []byte(html)); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
				fmt.Sprintf("write page copy for view %s", page.path))
		}
	}

	slog.Debug("Page assembled", logfields.View(page.id), logfields.Path(out))
	return nil
}
