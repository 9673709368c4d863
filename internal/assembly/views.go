package assembly

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/frontmatter"
	"git.home.luguber.info/inful/stylebook/internal/naming"
)

// LoadViews parses every matched view. View identifiers keep their ordering
// prefix so output pages stay orderable. Views nested one level under a
// collection directory are added to the view metadata tree; top-level views
// are rendered as pages but carry no tree entry.
func (s *State) LoadViews(globs []string) error {
	var errs []error
	for _, g := range globs {
		base, _ := doublestar.SplitPattern(g)

		files, err := globAll([]string{g})
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "glob views")
		}

		for _, f := range files {
			if err := s.loadView(base, f); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return stderrors.Join(errs...)
}

func (s *State) loadView(base, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
			fmt.Sprintf("read view %s", path))
	}

	fields, body, err := frontmatter.Parse(raw)
	if err != nil {
		return apperrors.Parse(path, err)
	}

	dir := filepath.Dir(path)
	collection := ""
	if filepath.Clean(dir) != filepath.Clean(base) {
		collection = naming.Identifier(filepath.Base(dir), false)
	}

	id := naming.Identifier(path, true)
	if collection != "" {
		col, ok := s.Views[collection]
		if !ok {
			col = &Collection{
				Name:    naming.TitleCase(collection),
				Items:   make(map[string]any),
				Exclude: naming.IsHidden(filepath.Base(dir)),
			}
			s.Views[collection] = col
		}
		col.Items[id] = &Item{
			Name:    naming.TitleCase(naming.Identifier(path, false)),
			Data:    fields.Clone(),
			Exclude: naming.IsHidden(filepath.Base(path)),
			id:      id,
			path:    path,
		}
	}

	s.pages = append(s.pages, viewPage{
		path:       path,
		id:         id,
		collection: collection,
		fields:     fields,
		body:       frontmatter.TrimBlankLines(body),
	})
	return nil
}
