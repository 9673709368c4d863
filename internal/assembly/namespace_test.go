package assembly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamespaceFields_SimpleReference_Qualified(t *testing.T) {
	out := NamespaceFields("Title: {{title}}", "buttons.primary", []string{"title"})
	require.Equal(t, "Title: {{buttons-primary.title}}", out)
}

func TestNamespaceFields_BlockTokens_SigilPreserved(t *testing.T) {
	body := "{{#wide}}<div class=\"wide\">{{label}}</div>{{/wide}}"
	out := NamespaceFields(body, "hero", []string{"wide", "label"})
	require.Equal(t, "{{#hero.wide}}<div class=\"wide\">{{hero.label}}</div>{{/hero.wide}}", out)
}

func TestNamespaceFields_TripleStache_Qualified(t *testing.T) {
	out := NamespaceFields("{{{markup}}}", "cards.feature", []string{"markup"})
	require.Equal(t, "{{{cards-feature.markup}}}", out)
}

func TestNamespaceFields_SubstringName_Untouched(t *testing.T) {
	// "titles" must not be corrupted by the "title" field.
	out := NamespaceFields("{{titles}} {{title}}", "x", []string{"title"})
	require.Equal(t, "{{titles}} {{x.title}}", out)
}

func TestNamespaceFields_HelperArguments_Untouched(t *testing.T) {
	// Only the leading reference name is considered; "title" here is a
	// helper argument, not a field reference token.
	out := NamespaceFields("{{uc title}}", "x", []string{"title"})
	require.Equal(t, "{{uc title}}", out)
}

func TestNamespaceFields_ForeignFields_Untouched(t *testing.T) {
	out := NamespaceFields("{{other}} and {{title}}", "x", []string{"title"})
	require.Equal(t, "{{other}} and {{x.title}}", out)
}

func TestNamespaceFields_NoFields_BodyUnchanged(t *testing.T) {
	body := "{{anything}} at all"
	require.Equal(t, body, NamespaceFields(body, "x", nil))
}

func TestNamespaceFields_UnterminatedToken_PassedThrough(t *testing.T) {
	body := "text {{title"
	require.Equal(t, body, NamespaceFields(body, "x", []string{"title"}))
}

func TestNamespaceFields_InnerWhitespace_Kept(t *testing.T) {
	out := NamespaceFields("{{ title }}", "buttons.primary", []string{"title"})
	require.Equal(t, "{{ buttons-primary.title }}", out)
}
