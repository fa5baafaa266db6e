package movement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	tests := []struct {
		name        string
		description string
		existing    []string
		want        string
	}{
		{"tres tokens con stop word", "Blusa de lino natural", nil, "BLUS-LINO-NAT"},
		{"tildes y signos", "Pantalón  índigo, talla-M!", nil, "PAN-IND-TAL"},
		{"tokens cortos completos", "Pan con sal", nil, "PAN-SAL"},
		{"máximo cuatro tokens", "camisa manga larga azul cielo", nil, "CAM-MANG-LARG-AZUL"},
		{"tokens repetidos", "azul azul AZUL oscuro", nil, "AZUL-OSC"},
		{"solo stop words", "de la", nil, "DELA"},
		{"solo una letra", "x", nil, "X"},
		{"fallback a ocho caracteres", "a b c d e f g h i j", nil, "ABCDEFGH"},
		{"vacío", "  ¡¿?!  ", nil, "PROD"},
		{"colisión", "Blusa de lino natural", []string{"blus-lino-nat"}, "BLUS-LINO-NAT-1"},
		{"colisiones encadenadas", "Blusa de lino natural", []string{"BLUS-LINO-NAT", "BLUS-LINO-NAT-1"}, "BLUS-LINO-NAT-2"},
		{"fallback con colisión", "", []string{"PROD"}, "PROD-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateReference(tt.description, tt.existing))
		})
	}
}

func TestGenerateReference_Determinista(t *testing.T) {
	catalog := []string{"CAM-AZUL", "BLUS-LINO-NAT"}
	for _, d := range []string{"Camisa de azul", "Blusa de lino natural", "tornillo 3/8 galvanizado", ""} {
		first := GenerateReference(d, catalog)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, GenerateReference(d, catalog), "misma entrada, mismo código: %q", d)
		}
	}
}

func TestGenerateReference_NoColisionaConCatalogo(t *testing.T) {
	catalog := []string{"CAMISA-AZUL"}
	got := GenerateReference("Camisa de azul", catalog)
	assert.NotEqual(t, "CAMISA-AZUL", got)

	// el código derivado ya existe: se agrega sufijo
	catalog = append(catalog, GenerateReference("Camisa de azul", nil))
	got = GenerateReference("Camisa de azul", catalog)
	assert.Equal(t, "CAM-AZUL-1", got)
	assert.NotContains(t, catalog, got)
}

func TestGenerateReference_LongitudMaxima(t *testing.T) {
	d := "supercalifragilistico extraordinariamente maravillosamente espectacular"
	base := GenerateReference(d, nil)
	assert.LessOrEqual(t, len(base), maxReferenceLen)
	assert.Equal(t, strings.ToUpper(base), base)

	got := GenerateReference(d, []string{base})
	assert.LessOrEqual(t, len(got), maxSuffixedLen)
	assert.True(t, strings.HasSuffix(got, "-1"))
}

func TestUniqueReference_RecortaBaseLarga(t *testing.T) {
	base := strings.Repeat("A", 29)
	got := uniqueReference(base, []string{base})
	assert.Equal(t, strings.Repeat("A", 25)+"-1", got)
}

func TestLooksLikeDescription(t *testing.T) {
	assert.True(t, looksLikeDescription("blusa lino"))
	assert.True(t, looksLikeDescription("BLUSALINONATURAL1"))
	assert.False(t, looksLikeDescription("BLUS-001"))
}
