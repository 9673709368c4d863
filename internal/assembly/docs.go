package assembly

import (
	stderrors "errors"
	"fmt"
	"os"

	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/naming"
)

// LoadDocs renders every matched markdown doc and stores it under the
// file's id.
func (s *State) LoadDocs(globs []string) error {
	files, err := globAll(globs)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "glob docs")
	}

	var errs []error
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			errs = append(errs, apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
				fmt.Sprintf("read doc %s", f)))
			continue
		}

		html, err := s.md.Render(string(raw))
		if err != nil {
			errs = append(errs, apperrors.Parse(f, err))
			continue
		}

		id := naming.Identifier(f, false)
		s.Docs[id] = Doc{Name: naming.TitleCase(id), Content: html}
	}
	return stderrors.Join(errs...)
}
