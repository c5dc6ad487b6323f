// Package naming provides the identifier conversions shared by the generators.
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Underscore converts a CamelCase identifier to snake_case.
// "AcmeBlog" becomes "acme_blog", "HTTPKernel" becomes "http_kernel".
func Underscore(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + s[size:]
}

// SplitPath splits an entity or namespace name on any of the
// separators `\`, `/` and `.`, dropping empty segments.
func SplitPath(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '\\' || r == '/' || r == '.'
	})
	return parts
}

// SlashPath normalises name to forward-slash separators.
func SlashPath(name string) string {
	return strings.Join(SplitPath(name), "/")
}

// BackslashPath normalises name to backslash separators, the form used for
// namespaces inside generated sources.
func BackslashPath(name string) string {
	return strings.Join(SplitPath(name), `\`)
}
