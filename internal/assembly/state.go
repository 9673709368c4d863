// Package assembly implements the material registry and context assembly
// engine: it discovers content fragments, classifies them into the
// collection hierarchy, rewrites their field references into globally unique
// ids, registers them with the template engine and builds the merged render
// context for every page.
package assembly

import (
	"github.com/google/uuid"

	"git.home.luguber.info/inful/stylebook/internal/export"
	"git.home.luguber.info/inful/stylebook/internal/frontmatter"
	"git.home.luguber.info/inful/stylebook/internal/markdown"
	"git.home.luguber.info/inful/stylebook/internal/tmpl"
)

// State is the registry built fresh on every assembly run and threaded
// explicitly through each stage. It is never shared between runs.
type State struct {
	// RunID tags all log records of one assembly run.
	RunID string

	// Materials is the collection tree: collection -> item, or
	// collection -> sub-collection -> item.
	Materials map[string]*Collection

	// Views is the view metadata tree, one optional collection level.
	Views map[string]*Collection

	// Docs maps doc ids to rendered doc pages.
	Docs map[string]Doc

	// Data holds parsed data-file contents keyed by file id.
	Data map[string]any

	// NamespacedData exposes each item's front-matter data under its
	// dash-joined qualified id for access from outside the fragment.
	NamespacedData map[string]map[string]any

	// Layouts holds raw layout sources keyed by filtered id.
	Layouts map[string]string

	pages    []viewPage
	sources  map[string]string // fragment id -> source path, for collision detection
	engine   tmpl.Engine
	md       *markdown.Renderer
	exporter export.Exporter
}

// NewState creates an empty State for one run. exporter may be nil to
// disable the legacy export entirely.
func NewState(engine tmpl.Engine, md *markdown.Renderer, exporter export.Exporter) *State {
	return &State{
		RunID:          uuid.NewString(),
		Materials:      make(map[string]*Collection),
		Views:          make(map[string]*Collection),
		Docs:           make(map[string]Doc),
		Data:           make(map[string]any),
		NamespacedData: make(map[string]map[string]any),
		Layouts:        make(map[string]string),
		sources:        make(map[string]string),
		engine:         engine,
		md:             md,
		exporter:       exporter,
	}
}

// Collection is a one- or two-level grouping of materials (or views)
// inferred from directory structure. Items holds *Item values, or nested
// *Collection values for sub-collections. Map order is not defined; display
// ordering is the consumer's responsibility.
type Collection struct {
	Name    string
	Items   map[string]any
	Exclude bool
}

// Item is a single material or view entry in a collection tree.
type Item struct {
	Name    string
	Notes   string // rendered HTML, empty when the material has no notes
	Data    frontmatter.Fields
	Exclude bool
	Bundle  bool
	Updated any // opaque timestamp passthrough

	id   string // fully qualified fragment id
	path string // source file, used by the bundler and collision reports
}

// Doc is a rendered documentation page.
type Doc struct {
	Name    string
	Content string
}

// viewPage is a parsed view pending page assembly.
type viewPage struct {
	path       string
	id         string // preserved identifier, stays orderable
	collection string // "" for top-level views
	fields     frontmatter.Fields
	body       string
}

// Context converts the collection subtree into the map shape templates
// consume.
func (c *Collection) Context() map[string]any {
	items := make(map[string]any, len(c.Items))
	for key, node := range c.Items {
		switch n := node.(type) {
		case *Collection:
			items[key] = n.Context()
		case *Item:
			items[key] = n.Context()
		}
	}
	return map[string]any{
		"name":    c.Name,
		"items":   items,
		"exclude": c.Exclude,
	}
}

// Context converts the item into the map shape templates consume.
func (i *Item) Context() map[string]any {
	ctx := map[string]any{
		"name":    i.Name,
		"notes":   i.Notes,
		"data":    map[string]any(i.Data),
		"exclude": i.Exclude,
		"bundle":  i.Bundle,
	}
	if i.Updated != nil {
		ctx["updated"] = i.Updated
	}
	return ctx
}

// Context converts the doc into the map shape templates consume.
func (d Doc) Context() map[string]any {
	return map[string]any{
		"name":    d.Name,
		"content": d.Content,
	}
}
