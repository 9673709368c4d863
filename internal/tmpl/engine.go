// Package tmpl wraps the template-rendering collaborator behind a small
// interface: register named fragments once, then render arbitrary template
// text against a context, with inclusion-by-id of registered fragments.
package tmpl

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aymerick/raymond"
)

// Engine is the contract the assembly core requires from the templating
// collaborator. Registered fragments are includable by id from any template
// text passed to Render or RenderWith.
type Engine interface {
	// Register makes source available as an includable fragment under id.
	// Registering an id twice is an error.
	Register(id, source string) error

	// Has reports whether id has been registered.
	Has(id string) bool

	// Render compiles source and executes it against ctx.
	Render(source string, ctx map[string]any) (string, error)

	// RenderWith is Render with additional call-local fragments that are
	// visible only for this render (e.g. the page body inside a layout).
	RenderWith(source string, ctx map[string]any, partials map[string]string) (string, error)

	// Fragments returns the registered fragment ids in sorted order.
	Fragments() []string
}

// Handlebars is the raymond-backed Engine. Fragments are parsed once at
// registration and attached as partials to every subsequent render.
type Handlebars struct {
	partials map[string]*raymond.Template
}

// NewHandlebars creates an empty Handlebars engine.
func NewHandlebars() *Handlebars {
	return &Handlebars{partials: make(map[string]*raymond.Template)}
}

// Register implements Engine.
func (h *Handlebars) Register(id, source string) error {
	if id == "" {
		return fmt.Errorf("register fragment: empty id")
	}
	if _, ok := h.partials[id]; ok {
		return fmt.Errorf("register fragment %q: already registered", id)
	}

	tpl, err := raymond.Parse(source)
	if err != nil {
		return fmt.Errorf("register fragment %q: %w", id, err)
	}
	h.partials[id] = tpl
	return nil
}

// Has implements Engine.
func (h *Handlebars) Has(id string) bool {
	_, ok := h.partials[id]
	return ok
}

// Fragments implements Engine.
func (h *Handlebars) Fragments() []string {
	ids := make([]string, 0, len(h.partials))
	for id := range h.partials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render implements Engine.
func (h *Handlebars) Render(source string, ctx map[string]any) (string, error) {
	return h.RenderWith(source, ctx, nil)
}

// RenderWith implements Engine. Call-local partials shadow registered
// fragments of the same id for this render only.
func (h *Handlebars) RenderWith(source string, ctx map[string]any, partials map[string]string) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	tpl.RegisterHelper("each", sortedEach)

	for id, src := range partials {
		sub, err := raymond.Parse(src)
		if err != nil {
			return "", fmt.Errorf("parse partial %q: %w", id, err)
		}
		tpl.RegisterPartialTemplate(id, sub)
	}
	for id, p := range h.partials {
		if _, shadowed := partials[id]; shadowed {
			continue
		}
		tpl.RegisterPartialTemplate(id, p)
	}

	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// sortedEach shadows the builtin each helper on every template this engine
// executes. Go maps iterate in random order, so listing a registry bucket
// must walk its keys sorted or repeated runs over an unchanged tree would
// emit differently ordered bytes.
func sortedEach(context any, options *raymond.Options) any {
	if !raymond.IsTrue(context) {
		return options.Inverse()
	}

	var out strings.Builder
	val := reflect.ValueOf(context)
	switch val.Kind() {
	case reflect.Map:
		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for i, key := range keys {
			data := newIterDataFrame(options, len(keys), i, key.Interface())
			out.WriteString(options.FnCtxData(val.MapIndex(key).Interface(), data))
		}
	case reflect.Array, reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			data := newIterDataFrame(options, val.Len(), i, nil)
			out.WriteString(options.FnCtxData(val.Index(i).Interface(), data))
		}
	default:
		return options.FnWith(context)
	}
	return out.String()
}

// newIterDataFrame builds the private data frame raymond's builtin each
// helper would (@index, @key, @first, @last) using only exported API.
func newIterDataFrame(options *raymond.Options, length, i int, key any) *raymond.DataFrame {
	data := options.NewDataFrame()
	data.Set("index", i)
	data.Set("key", key)
	data.Set("first", i == 0)
	data.Set("last", i == length-1)
	return data
}
