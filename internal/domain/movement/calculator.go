package movement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// TotalsInput datos que determinan los totales de un movimiento.
type TotalsInput struct {
	Type            entity.MovementType
	ExpenseCategory string
	Details         []entity.MovementDetail
	Payments        []entity.PaymentDetail
	Receivables     []entity.RelatedAccount
	RetentionRate   decimal.Decimal // solo compras
	DeductionRate   decimal.Decimal // solo compras
}

// LineSubtotal cantidad × precio × (1 − descuento/100).
func LineSubtotal(d entity.MovementDetail) decimal.Decimal {
	gross := d.Quantity.Mul(d.UnitPrice)
	if d.DiscountRate.IsZero() {
		return gross
	}
	return gross.Mul(decimal.NewFromInt(1).Sub(d.DiscountRate.Div(hundred)))
}

// LineTax subtotal de la línea × tarifa/100.
func LineTax(d entity.MovementDetail) decimal.Decimal {
	return pct(LineSubtotal(d), d.TaxRate)
}

// CalculateTotals deriva los totales según el tipo de movimiento:
//   - RECEIPT: total = suma de abonos a cartera.
//   - EXPENSE de flete: total = suma de pagos.
//   - resto: subtotal e IVA por línea; en compras, retención y deducción solo si su tarifa > 0.
func CalculateTotals(in TotalsInput) entity.MovementTotals {
	zero := entity.MovementTotals{
		Subtotal:       decimal.Zero,
		TaxTotal:       decimal.Zero,
		RetentionTotal: decimal.Zero,
		DeductionTotal: decimal.Zero,
		Total:          decimal.Zero,
	}

	switch {
	case in.Type == entity.MovementReceipt:
		zero.Total = SumReceivables(in.Receivables)
		return zero
	case in.Type == entity.MovementExpense && in.ExpenseCategory == entity.ExpenseCategoryShipping:
		zero.Total = SumPayments(in.Payments)
		return zero
	}

	t := zero
	isPurchase := in.Type == entity.MovementPurchase
	for _, d := range in.Details {
		discounted := LineSubtotal(d)
		t.Subtotal = t.Subtotal.Add(discounted)
		t.TaxTotal = t.TaxTotal.Add(pct(discounted, d.TaxRate))
		if isPurchase && in.RetentionRate.GreaterThan(decimal.Zero) {
			t.RetentionTotal = t.RetentionTotal.Add(pct(discounted, in.RetentionRate))
		}
		if isPurchase && in.DeductionRate.GreaterThan(decimal.Zero) {
			t.DeductionTotal = t.DeductionTotal.Add(pct(discounted, in.DeductionRate))
		}
	}
	t.Total = t.Subtotal.Add(t.TaxTotal).Sub(t.DeductionTotal).Sub(t.RetentionTotal)
	return t
}

// DraftTotals calcula los totales de un borrador.
func DraftTotals(d *entity.MovementDraft) entity.MovementTotals {
	details := make([]entity.MovementDetail, len(d.Lines))
	for i, l := range d.Lines {
		details[i] = l.MovementDetail
	}
	return CalculateTotals(TotalsInput{
		Type:            d.Type,
		ExpenseCategory: d.ExpenseCategory,
		Details:         details,
		Payments:        d.Payments,
		Receivables:     d.Receivables,
		RetentionRate:   d.RetentionRate,
		DeductionRate:   d.DeductionRate,
	})
}

// SumPayments suma los montos de los pagos.
func SumPayments(payments []entity.PaymentDetail) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// SumReceivables suma los abonos seleccionados.
func SumReceivables(selected []entity.RelatedAccount) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range selected {
		sum = sum.Add(r.Value)
	}
	return sum
}
