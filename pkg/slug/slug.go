// Package slug genera identificadores legibles para URLs de productos.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generate normaliza a minúsculas ASCII: "Laptop ASUS Vivobook 14\" (2023)" -> "laptop-asus-vivobook-14-2023".
// Los diacríticos se pliegan (é -> e); espacios, '_' y '-' separan palabras con un solo guion
// y la puntuación se elimina sin dejar separador ("2.4GHz" -> "24ghz").
func Generate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '_', r == '-':
			pending = true
		}
	}
	return b.String()
}

// WithSuffix añade un sufijo corto para resolver colisiones ("laptop-asus" -> "laptop-asus-3f9a").
func WithSuffix(s, suffix string) string {
	base := Generate(s)
	suffix = Generate(suffix)
	if suffix == "" {
		return base
	}
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
