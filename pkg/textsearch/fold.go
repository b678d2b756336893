// Package textsearch normaliza texto para búsquedas insensibles a mayúsculas y tildes.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Spanish)

// Fold pasa a minúsculas y elimina las marcas diacríticas: "Opción" -> "opcion".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return lower.String(strings.TrimSpace(out))
}

// Contains informa si alguno de los textos contiene term tras normalizar ambos.
// Un término vacío coincide siempre.
func Contains(term string, texts ...string) bool {
	needle := Fold(term)
	if needle == "" {
		return true
	}
	for _, t := range texts {
		if strings.Contains(Fold(t), needle) {
			return true
		}
	}
	return false
}
