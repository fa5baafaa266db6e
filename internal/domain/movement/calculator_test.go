package movement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func detail(qty, price, discount, tax string) entity.MovementDetail {
	return entity.MovementDetail{
		ProductReference: "REF",
		Quantity:         d(qty),
		UnitPrice:        d(price),
		DiscountRate:     d(discount),
		TaxRate:          d(tax),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

func TestCalculateTotals_VentaConIVA(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:    entity.MovementSale,
		Details: []entity.MovementDetail{detail("2", "10000", "0", "19")},
	})
	assertDec(t, "20000", got.Subtotal, "subtotal")
	assertDec(t, "3800", got.TaxTotal, "iva")
	assertDec(t, "23800", got.Total, "total")
	assert.True(t, got.RetentionTotal.IsZero())
	assert.True(t, got.DeductionTotal.IsZero())
}

func TestCalculateTotals_CompraConRetencionYDeduccion(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:          entity.MovementPurchase,
		Details:       []entity.MovementDetail{detail("5", "1000", "0", "0")},
		RetentionRate: d("2.5"),
		DeductionRate: d("1"),
	})
	assertDec(t, "5000", got.Subtotal, "subtotal")
	assertDec(t, "0", got.TaxTotal, "iva")
	assertDec(t, "125", got.RetentionTotal, "retención")
	assertDec(t, "50", got.DeductionTotal, "deducción")
	assertDec(t, "4825", got.Total, "total")
}

func TestCalculateTotals_CompraSinTarifasNoAplicaRetencion(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type: entity.MovementPurchase,
		Details: []entity.MovementDetail{
			detail("3", "1500", "10", "19"),
			detail("1", "99.99", "0", "5"),
		},
	})
	assert.True(t, got.RetentionTotal.IsZero(), "retención debe ser exactamente 0")
	assert.True(t, got.DeductionTotal.IsZero(), "deducción debe ser exactamente 0")
}

func TestCalculateTotals_RetencionSoloEnCompras(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:          entity.MovementSale,
		Details:       []entity.MovementDetail{detail("1", "1000", "0", "0")},
		RetentionRate: d("2.5"),
		DeductionRate: d("1"),
	})
	assert.True(t, got.RetentionTotal.IsZero())
	assert.True(t, got.DeductionTotal.IsZero())
	assertDec(t, "1000", got.Total, "total")
}

func TestCalculateTotals_IVAUniforme19(t *testing.T) {
	details := []entity.MovementDetail{
		detail("3", "12345.67", "0", "19"),
		detail("7", "0.33", "0", "19"),
		detail("1.5", "800", "0", "19"),
	}
	got := CalculateTotals(TotalsInput{Type: entity.MovementSpecialOut, Details: details})
	assertDec(t, got.Subtotal.Mul(d("0.19")).String(), got.TaxTotal, "iva = 19% del subtotal")
}

func TestCalculateTotals_Descuento(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:    entity.MovementSale,
		Details: []entity.MovementDetail{detail("4", "2500", "10", "19")},
	})
	assertDec(t, "9000", got.Subtotal, "subtotal con descuento")
	assertDec(t, "1710", got.TaxTotal, "iva sobre valor descontado")
	assertDec(t, "10710", got.Total, "total")
}

func TestCalculateTotals_Recibo(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:        entity.MovementReceipt,
		Details:     []entity.MovementDetail{detail("1", "999", "0", "19")},
		Receivables: []entity.RelatedAccount{{Reference: "FV-001", Value: d("10000")}, {Reference: "FV-002", Value: d("5000")}},
	})
	assertDec(t, "15000", got.Total, "total = suma de abonos")
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TaxTotal.IsZero())
}

func TestCalculateTotals_GastoDeFlete(t *testing.T) {
	got := CalculateTotals(TotalsInput{
		Type:            entity.MovementExpense,
		ExpenseCategory: entity.ExpenseCategoryShipping,
		Payments: []entity.PaymentDetail{
			{Method: entity.PaymentCash, Amount: d("30000")},
			{Method: entity.PaymentTransfer, Amount: d("12000.50")},
		},
	})
	assertDec(t, "42000.50", got.Total, "total = suma de pagos")
	assert.True(t, got.Subtotal.IsZero())
}

func TestLineSubtotalYLineTax(t *testing.T) {
	l := detail("2", "10000", "50", "19")
	assertDec(t, "10000", LineSubtotal(l), "subtotal")
	assertDec(t, "1900", LineTax(l), "iva")
}
