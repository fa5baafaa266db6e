package movement

import (
	"strconv"
	"strings"

	"github.com/jhoicas/gestiva/pkg/textnorm"
)

const (
	maxReferenceTokens = 4
	maxReferenceLen    = 25
	maxSuffixedLen     = 30
	fallbackRefLen     = 8
	fallbackReference  = "PROD"
)

// stopWords artículos, conjunciones y preposiciones que no aportan a un código de producto.
var stopWords = map[string]struct{}{
	"EL": {}, "LA": {}, "LOS": {}, "LAS": {}, "UN": {}, "UNA": {}, "UNOS": {}, "UNAS": {}, "LO": {},
	"Y": {}, "E": {}, "O": {}, "U": {}, "NI": {}, "QUE": {},
	"DE": {}, "DEL": {}, "AL": {}, "A": {}, "EN": {}, "CON": {}, "SIN": {}, "POR": {}, "PARA": {},
	"SOBRE": {}, "ENTRE": {}, "HASTA": {}, "DESDE": {}, "HACIA": {}, "SEGUN": {}, "TRAS": {},
}

// GenerateReference deriva un código de producto corto y legible a partir de una descripción libre.
// Es determinista: misma descripción y mismo conjunto existing producen el mismo código.
// existing son las referencias ya tomadas (catálogo y otras líneas del borrador); la
// comparación no distingue mayúsculas.
func GenerateReference(description string, existing []string) string {
	return uniqueReference(baseReference(description), existing)
}

// baseReference aplica normalización, tokens y prefijos, sin verificar colisiones.
func baseReference(description string) string {
	normalized := textnorm.UpperAlnum(description)
	tokens := meaningfulTokens(normalized)

	if len(tokens) == 0 {
		compact := strings.ReplaceAll(normalized, " ", "")
		if compact == "" {
			return fallbackReference
		}
		if len(compact) > fallbackRefLen {
			compact = compact[:fallbackRefLen]
		}
		return compact
	}

	if len(tokens) > maxReferenceTokens {
		tokens = tokens[:maxReferenceTokens]
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok[:prefixLen(tok)]
	}
	code := strings.Join(parts, "-")
	if len(code) > maxReferenceLen {
		for i, p := range parts {
			if len(p) > 3 {
				parts[i] = p[:3]
			}
		}
		code = strings.Join(parts, "-")
		if len(code) > maxReferenceLen {
			code = code[:maxReferenceLen]
		}
	}
	return strings.ToUpper(code)
}

// prefixLen tokens cortos se conservan completos; los largos se abrevian más.
func prefixLen(tok string) int {
	switch n := len(tok); {
	case n <= 3:
		return n
	case n <= 5:
		return 4
	default:
		return 3
	}
}

// meaningfulTokens descarta tokens de una letra, stop words y repetidos, conservando el orden.
func meaningfulTokens(normalized string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// uniqueReference agrega -1, -2, … hasta no colisionar. Si el sufijo deja el código por
// encima de 30 caracteres, la base se recorta primero a 25.
func uniqueReference(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, ref := range existing {
		taken[strings.ToUpper(strings.TrimSpace(ref))] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 1; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		stem := base
		if len(stem)+len(suffix) > maxSuffixedLen && len(stem) > maxReferenceLen {
			stem = stem[:maxReferenceLen]
		}
		candidate := stem + suffix
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// looksLikeDescription un valor con espacios o de más de 15 caracteres se trata como
// descripción y no como referencia.
func looksLikeDescription(typed string) bool {
	return strings.Contains(typed, " ") || len([]rune(typed)) > 15
}
