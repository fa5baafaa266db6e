package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Pantalon Nandu", StripDiacritics("Pantalón Ñandú"))
	assert.Equal(t, "pinguino", StripDiacritics("pingüino"))
	assert.Equal(t, "ABC 123", StripDiacritics("ABC 123"))
}

func TestUpperAlnum(t *testing.T) {
	cases := map[string]string{
		"Blusa de lino natural":    "BLUSA DE LINO NATURAL",
		"  camisa,   azul  (M) ":   "CAMISA AZUL M",
		"Café 100% orgánico 500g":  "CAFE 100 ORGANICO 500G",
		"---":                      "",
		"tab\tseparado\ny salto":   "TAB SEPARADO Y SALTO",
	}
	for in, want := range cases {
		assert.Equal(t, want, UpperAlnum(in), in)
	}
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold(" cli-001 ", "CLI-001"))
	assert.False(t, EqualFold("CLI-001", "CLI-002"))
}
