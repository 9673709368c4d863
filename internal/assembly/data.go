package assembly

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/naming"
)

// LoadData parses every matched data file (YAML or JSON by extension) and
// stores its contents under the file's id. A malformed file fails with its
// path attached; other files are still loaded.
func (s *State) LoadData(globs []string) error {
	files, err := globAll(globs)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "glob data files")
	}

	var errs []error
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			errs = append(errs, apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
				fmt.Sprintf("read data file %s", f)))
			continue
		}

		var value any
		switch strings.ToLower(filepath.Ext(f)) {
		case ".json":
			err = json.Unmarshal(raw, &value)
		default:
			err = yaml.Unmarshal(raw, &value)
		}
		if err != nil {
			errs = append(errs, apperrors.Parse(f, err))
			continue
		}

		s.Data[naming.Identifier(f, false)] = value
	}
	return stderrors.Join(errs...)
}
