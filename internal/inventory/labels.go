package inventory

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalizeImageURL resolves a possibly relative image path against the inventory host.
func normalizeImageURL(baseURL, raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimRight(baseURL, "/") + u
}

// capitalizeFirst upper-cases the first non-space letter and keeps the rest untouched,
// including leading whitespace.
func capitalizeFirst(text string) string {
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	if rest == "" {
		return text
	}
	lead := text[:len(text)-len(rest)]
	rest = norm.NFC.String(rest)
	_, size := utf8.DecodeRuneInString(rest)
	return lead + cases.Upper(language.Spanish).String(rest[:size]) + rest[size:]
}

func capitalizeLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = capitalizeFirst(label)
	}
	return out
}
