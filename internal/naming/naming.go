// Package naming derives canonical identifiers and display names from
// content file paths. All functions are pure string transforms.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Leading ordering prefix: digits, dots and dashes, optionally followed
	// by the hidden marker token.
	orderingPrefix = regexp.MustCompile(`^[0-9.\-]+(__)?`)

	// Hidden marker: a leading digit/dot run followed by a double underscore.
	hiddenMarker = regexp.MustCompile(`^[0-9.]+__`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

var (
	titleCaser     = cases.Title(language.English)
	wordSeparators = strings.NewReplacer("-", " ", "_", " ")
)

// Identifier turns a file or directory path into its canonical identifier.
//
// The extension is stripped. Unless preserveNumbers is set, a leading
// ordering prefix (digits/dots/dashes plus an optional hidden marker) is
// removed; preserveNumbers keeps the prefix so identifiers stay orderable.
// Whitespace runs are collapsed to single dashes.
//
// An identifier that is empty after stripping is permitted.
func Identifier(path string, preserveNumbers bool) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !preserveNumbers {
		base = orderingPrefix.ReplaceAllString(base, "")
	}
	base = strings.TrimSpace(base)
	return whitespaceRun.ReplaceAllString(base, "-")
}

// IsHidden reports whether the path's basename carries the hidden marker
// ("02__drafts.html" is hidden, "02-drafts.html" is not). Hidden items stay
// in the registry but are flagged so navigation can omit them.
func IsHidden(path string) bool {
	return hiddenMarker.MatchString(filepath.Base(path))
}

// TitleCase produces a display name from an identifier: dashes and
// underscores become spaces and each word is title-cased.
func TitleCase(id string) string {
	return titleCaser.String(wordSeparators.Replace(id))
}
