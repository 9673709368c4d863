package assembly

import (
	"git.home.luguber.info/inful/stylebook/internal/config"
)

// BuildContext merges the data a single render call sees, in increasing
// precedence: page data, data-file contents, the namespaced material data,
// the three metadata buckets under their configured keys, then the
// call-site extras. Later entries override earlier ones on key collision,
// so page-specific and call-site data always win over globally collected
// data.
func (s *State) BuildContext(cfg *config.Config, pageData map[string]any, extra map[string]any) map[string]any {
	ctx := make(map[string]any)

	for k, v := range pageData {
		ctx[k] = v
	}
	for id, v := range s.Data {
		ctx[id] = v
	}
	for id, data := range s.NamespacedData {
		ctx[id] = data
	}

	ctx[cfg.Keys.Materials] = collectionsContext(s.Materials)
	ctx[cfg.Keys.Views] = collectionsContext(s.Views)
	ctx[cfg.Keys.Docs] = docsContext(s.Docs)

	for k, v := range extra {
		ctx[k] = v
	}
	return ctx
}

func collectionsContext(tree map[string]*Collection) map[string]any {
	out := make(map[string]any, len(tree))
	for id, col := range tree {
		out[id] = col.Context()
	}
	return out
}

func docsContext(docs map[string]Doc) map[string]any {
	out := make(map[string]any, len(docs))
	for id, d := range docs {
		out[id] = d.Context()
	}
	return out
}
