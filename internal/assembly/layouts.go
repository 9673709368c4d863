package assembly

import (
	stderrors "errors"
	"fmt"
	"os"

	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/naming"
)

// LoadLayouts reads every matched layout into the state by filtered id.
// Layouts are not registered as fragments; the page assembler renders them
// directly with the view body attached.
func (s *State) LoadLayouts(globs []string) error {
	files, err := globAll(globs)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "glob layouts")
	}

	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
				fmt.Sprintf("read layout %s", f))
		}
		s.Layouts[naming.Identifier(f, false)] = string(raw)
	}
	return nil
}

// RegisterIncludes registers every layout include as a fragment under its
// filtered id, before any material is processed, so both materials and
// pages can include them.
func (s *State) RegisterIncludes(globs []string) error {
	files, err := globAll(globs)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "glob includes")
	}

	var errs []error
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			errs = append(errs, apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
				fmt.Sprintf("read include %s", f)))
			continue
		}

		id := naming.Identifier(f, false)
		if id == "" {
			errs = append(errs, apperrors.EmptyID(f))
			continue
		}
		if prev, taken := s.sources[id]; taken {
			errs = append(errs, apperrors.Collision(id, prev, f))
			continue
		}
		if err := s.engine.Register(id, string(raw)); err != nil {
			errs = append(errs, apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError,
				fmt.Sprintf("register include %s", f)))
			continue
		}
		s.sources[id] = f
	}
	return stderrors.Join(errs...)
}
