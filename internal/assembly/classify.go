package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/stylebook/internal/naming"
	"git.home.luguber.info/inful/stylebook/internal/util/sets"
)

// Placement is the classification fact for one material file: which
// collection node holds it, and whether that node is nested inside a
// top-level collection.
type Placement struct {
	Path string

	// Collection is the id of the top-level collection node.
	Collection    string
	CollectionDir string

	// Sub is the sub-collection id, empty for flat placement.
	Sub    string
	SubDir string
}

// ClassifyMaterials matches the material globs and classifies every file
// against the set of known top-level material directories.
//
// A file is placed in a sub-collection iff its grandparent directory's
// identifier is one of the immediate subdirectories of a glob's base
// directory. The test is purely structural: nesting deeper than two levels
// collapses onto the immediate parent directory.
func ClassifyMaterials(globs []string) ([]Placement, error) {
	var files []string
	topDirs := sets.New[string]()

	for _, g := range globs {
		matches, err := doublestar.FilepathGlob(g, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("material glob %q: %w", g, err)
		}
		files = append(files, matches...)

		base, _ := doublestar.SplitPattern(g)
		dirs, err := subdirectories(base)
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			topDirs.Add(naming.Identifier(d, false))
		}
	}
	sort.Strings(files)

	placements := make([]Placement, 0, len(files))
	for _, f := range files {
		dir := filepath.Dir(f)
		parent := filepath.Dir(dir)
		parentID := naming.Identifier(filepath.Base(parent), false)

		if topDirs.Has(parentID) {
			placements = append(placements, Placement{
				Path:          f,
				Collection:    parentID,
				CollectionDir: parent,
				Sub:           naming.Identifier(filepath.Base(dir), false),
				SubDir:        dir,
			})
			continue
		}
		placements = append(placements, Placement{
			Path:          f,
			Collection:    naming.Identifier(filepath.Base(dir), false),
			CollectionDir: dir,
		})
	}
	return placements, nil
}

// subdirectories returns the basenames of base's immediate subdirectories.
func subdirectories(base string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(base, "*"))
	if err != nil {
		return nil, fmt.Errorf("enumerate subdirectories of %q: %w", base, err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Base(m))
	}
	return dirs, nil
}
