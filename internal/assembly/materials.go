package assembly

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/stylebook/internal/config"
	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
	"git.home.luguber.info/inful/stylebook/internal/frontmatter"
	"git.home.luguber.info/inful/stylebook/internal/logfields"
	"git.home.luguber.info/inful/stylebook/internal/naming"
)

// BuildMaterials runs the two-pass registry build over the material globs:
// pass 1 stubs the collection tree from directory shape, pass 2 populates
// items, stores namespaced data copies and registers each fragment with the
// engine. Per-file failures are collected; the stage fails as a whole if any
// file failed, without corrupting fragments registered for other files.
func (s *State) BuildMaterials(cfg *config.Config) error {
	placements, err := ClassifyMaterials(cfg.Materials)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityFatal, "classify materials")
	}

	for _, p := range placements {
		s.stubCollection(p)
	}

	var errs []error
	for _, p := range placements {
		if err := s.registerMaterial(cfg, p); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return stderrors.Join(errs...)
	}

	slog.Debug("Materials registered",
		logfields.RunID(s.RunID),
		logfields.Count(len(placements)))
	return nil
}

// stubCollection ensures the collection (and sub-collection) node for a
// placement exists, seeded with display name and exclusion flag computed
// from the directory's name.
func (s *State) stubCollection(p Placement) {
	col, ok := s.Materials[p.Collection]
	if !ok {
		col = &Collection{
			Name:    naming.TitleCase(p.Collection),
			Items:   make(map[string]any),
			Exclude: naming.IsHidden(filepath.Base(p.CollectionDir)),
		}
		s.Materials[p.Collection] = col
	}

	if p.Sub == "" {
		return
	}
	if _, ok := col.Items[p.Sub]; !ok {
		col.Items[p.Sub] = &Collection{
			Name:    naming.TitleCase(p.Sub),
			Items:   make(map[string]any),
			Exclude: naming.IsHidden(filepath.Base(p.SubDir)),
		}
	}
}

// registerMaterial populates one item node and registers its fragment.
func (s *State) registerMaterial(cfg *config.Config, p Placement) error {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFilesystem, apperrors.SeverityError,
			fmt.Sprintf("read material %s", p.Path))
	}

	fields, body, err := frontmatter.Parse(raw)
	if err != nil {
		return apperrors.Parse(p.Path, err)
	}

	fileID := naming.Identifier(p.Path, false)
	if fileID == "" {
		return apperrors.EmptyID(p.Path)
	}
	qualified := fileID
	if p.Sub != "" {
		qualified = p.Sub + "." + fileID
	}

	if prev, taken := s.sources[qualified]; taken {
		return apperrors.Collision(qualified, prev, p.Path)
	}

	// The reserved notes field is rendered separately and dropped from the
	// stored data payload.
	data := fields.Clone()
	var notes string
	if src, ok := data[frontmatter.KeyNotes].(string); ok && src != "" {
		notes, err = s.md.Render(src)
		if err != nil {
			return apperrors.Parse(p.Path, err)
		}
	}
	delete(data, frontmatter.KeyNotes)

	item := &Item{
		Name:    naming.TitleCase(fileID),
		Notes:   notes,
		Data:    data,
		Exclude: naming.IsHidden(filepath.Base(p.Path)),
		Bundle:  data.Bool(frontmatter.KeyBundle),
		Updated: data[frontmatter.KeyUpdated],
		id:      qualified,
		path:    p.Path,
	}

	col := s.Materials[p.Collection]
	if p.Sub != "" {
		// Nested items are keyed by their qualified id inside the
		// sub-collection's item map.
		col.Items[p.Sub].(*Collection).Items[qualified] = item
	} else {
		col.Items[fileID] = item
	}

	// Copy of the item's data under the dash-joined id, for access from
	// outside the fragment.
	s.NamespacedData[strings.ReplaceAll(qualified, ".", "-")] = data.Clone()

	fragment := NamespaceFields(frontmatter.TrimBlankLines(body), qualified, data.Keys())
	fragment = decorate(cfg, qualified, fragment)

	if err := s.engine.Register(qualified, fragment); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("register material %s", p.Path))
	}
	s.sources[qualified] = p.Path

	slog.Debug("Material registered",
		logfields.Material(qualified),
		logfields.Collection(p.Collection),
		logfields.Path(p.Path))
	return nil
}

// decorate applies the configured fragment wrapping: a hard-reset container
// and/or descriptive start/end markers.
func decorate(cfg *config.Config, id, fragment string) string {
	if cfg.Wrap.Reset {
		fragment = "<div class=\"sb-reset\">\n" + fragment + "\n</div>"
	}
	if cfg.Wrap.Comments {
		fragment = fmt.Sprintf("<!-- start: %s -->\n%s\n<!-- end: %s -->", id, fragment, id)
	}
	return fragment
}
