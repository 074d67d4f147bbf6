package sows

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch deja el texto en minúsculas y sin tildes, así "Lóla" encuentra "lola".
// El repo de postgres lo aplica al término antes de compararlo con columnas traducidas.
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

func contains(hay, needle string) bool {
	return strings.Contains(hay, needle)
}
