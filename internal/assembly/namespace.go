package assembly

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/stylebook/internal/util/sets"
)

// NamespaceFields rewrites every reference to one of the fragment's own
// field names inside body into its globally unique form: `{{title}}` becomes
// `{{<dashed-id>.title}}`, with the qualified id's dots replaced by dashes.
// Block open/close sigils (`{{#title}}`, `{{/title}}`) are preserved.
//
// Only whole tokens are rewritten: a similarly named but distinct field like
// `{{titles}}` or a helper call `{{uc title}}` is left untouched. References
// to other fragments' fields are never rewritten because only this
// fragment's own field names participate.
func NamespaceFields(body, qualifiedID string, fields []string) string {
	if len(fields) == 0 {
		return body
	}

	prefix := strings.ReplaceAll(qualifiedID, ".", "-")
	names := sets.New(fields...)

	var out strings.Builder
	out.Grow(len(body))

	for i := 0; i < len(body); {
		open := strings.Index(body[i:], "{{")
		if open < 0 {
			out.WriteString(body[i:])
			break
		}
		open += i
		out.WriteString(body[i:open])

		// Raw (triple-stache) tokens use a longer delimiter pair.
		marker, closer := "{{", "}}"
		if strings.HasPrefix(body[open:], "{{{") {
			marker, closer = "{{{", "}}}"
		}

		end := strings.Index(body[open+len(marker):], closer)
		if end < 0 {
			out.WriteString(body[open:])
			break
		}
		end += open + len(marker)

		token := body[open+len(marker) : end]
		out.WriteString(marker)
		out.WriteString(rewriteToken(token, prefix, names))
		out.WriteString(closer)
		i = end + len(closer)
	}
	return out.String()
}

// rewriteToken qualifies the token's reference name if it matches one of the
// fragment's field names exactly.
func rewriteToken(token, prefix string, names sets.Set[string]) string {
	rest := strings.TrimLeft(token, " \t")
	lead := token[:len(token)-len(rest)]

	var sigil string
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == '/') {
		sigil, rest = string(rest[0]), rest[1:]
	}

	// The reference name ends at the first whitespace; anything after it
	// (helper arguments, hash pairs) stays as-is.
	name, tail := rest, ""
	if idx := strings.IndexFunc(rest, unicode.IsSpace); idx >= 0 {
		name, tail = rest[:idx], rest[idx:]
	}

	if !names.Has(name) {
		return token
	}
	return lead + sigil + prefix + "." + name + tail
}
