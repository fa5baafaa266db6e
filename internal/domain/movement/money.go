package movement

import "github.com/shopspring/decimal"

// AmountTolerance tolerancia para comparar montos en pesos (un centavo).
// La comparten el cálculo de totales, la sincronización de pagos y la validación.
var AmountTolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// round2 redondea a centavos.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// floor2 trunca a centavos; nunca supera el valor original.
func floor2(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}

// pct devuelve base × rate/100.
func pct(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred)
}

// withinTolerance |a-b| <= AmountTolerance.
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(AmountTolerance)
}

func fmtMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
