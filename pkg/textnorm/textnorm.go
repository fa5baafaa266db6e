// Package textnorm normaliza texto libre en español (tildes, eñes, espacios)
// para comparaciones y generación de códigos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics elimina tildes y diéresis: "Pantalón Ñandú" -> "Pantalon Nandu".
// Un transform.Transformer no es seguro para uso concurrente, por eso se crea en cada llamada.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// UpperAlnum pasa a mayúsculas, quita tildes, descarta todo lo que no sea letra ASCII,
// dígito o espacio y colapsa los espacios.
func UpperAlnum(s string) string {
	s = strings.ToUpper(StripDiacritics(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// EqualFold compara dos códigos ignorando mayúsculas y espacios exteriores.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
