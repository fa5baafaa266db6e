package backend

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// decimalOrZero acepta número, texto numérico o null (null = 0).
type decimalOrZero struct {
	decimal.Decimal
}

func (d *decimalOrZero) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}
	return d.Decimal.UnmarshalJSON(b)
}
