// Package frontmatter parses the YAML metadata block (`---` delimited) that
// may prefix any content file, and exposes the reserved keys the assembly
// engine consumes.
package frontmatter

import (
	"bytes"
	"errors"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reserved front-matter keys consumed by the engine. Everything else is
// passed through untouched as fragment data.
const (
	// KeyNotes holds markdown documentation for a material. It is stripped
	// from the stored data and rendered separately.
	KeyNotes = "notes"

	// KeyBundle flags a material for standalone rendering and asset
	// packaging. Only the exact boolean true enables it.
	KeyBundle = "bundle"

	// KeyUpdated is an opaque timestamp passed through to the registry.
	KeyUpdated = "updated"

	// KeyExtension overrides the bundler's output file extension.
	KeyExtension = "extension"

	// KeyLayout selects the layout a view is wrapped into.
	KeyLayout = "layout"

	// KeyDest and KeyDestCopy override a view's output path (move vs. copy).
	KeyDest     = "dest"
	KeyDestCopy = "dest-copy"

	// KeyExport triggers the legacy CMS widget export for a bundled item.
	KeyExport = "websphere"
)

// ErrMissingClosingDelimiter indicates an opening front-matter delimiter
// without a matching closing one.
var ErrMissingClosingDelimiter = errors.New("front matter opened but closing delimiter is missing")

// Fields is a parsed front-matter key/value map.
type Fields map[string]any

// Parse splits content into front matter and body and parses the front
// matter as YAML. Files without a front-matter block yield empty Fields and
// the full content as body.
func Parse(content []byte) (Fields, string, error) {
	raw, body, err := split(content)
	if err != nil {
		return nil, "", err
	}

	fields := Fields{}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return nil, "", err
		}
		if fields == nil {
			fields = Fields{}
		}
	}
	return fields, string(body), nil
}

// split separates the `---` delimited block from the body. Both LF and CRLF
// inputs are accepted.
func split(content []byte) (raw, body []byte, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		// Empty block.
		return nil, rest[len(open):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without trailing newline still counts.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}

	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Bool reports whether key is set to the exact boolean true.
func (f Fields) Bool(key string) bool {
	v, ok := f[key].(bool)
	return ok && v
}

// String returns the string value of key, or "" when absent or not a string.
func (f Fields) String(key string) string {
	v, _ := f[key].(string)
	return v
}

// Has reports whether key is present at all, regardless of its value.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy. Nested values are shared; the engine only
// ever adds or removes top-level keys.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// TrimBlankLines removes leading and trailing blank lines from a body,
// keeping inner blank lines intact.
func TrimBlankLines(body string) string {
	lines := strings.Split(body, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
