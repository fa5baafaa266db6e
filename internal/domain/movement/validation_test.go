package movement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

func saleDraft(t *testing.T, qty string) *entity.MovementDraft {
	return reduceAll(t, draftOf(t, entity.MovementSale), testCatalog(),
		SetClient{Code: "C-01"},
		AddLine{},
		SelectProduct{Index: 0, Typed: "CAM-AZUL"},
		UpdateLine{Index: 0, Quantity: ptr(d(qty))},
	)
}

func TestValidateForSubmit_VentaValida(t *testing.T) {
	assert.NoError(t, ValidateForSubmit(saleDraft(t, "2"), testCatalog()))
}

func TestValidateForSubmit_Errores(t *testing.T) {
	cat := testCatalog()
	tests := []struct {
		name  string
		build func(t *testing.T) *entity.MovementDraft
		want  error
	}{
		{"venta sin cliente", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, saleDraft(t, "1"), cat, SetClient{Code: ""})
		}, ErrMissingCounterpart},
		{"cliente nuevo sin nombre", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, saleDraft(t, "1"), cat, SetClient{Code: "C-NEW"})
		}, ErrMissingCounterpart},
		{"compra sin proveedor", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, draftOf(t, entity.MovementPurchase), cat, AddLine{}, SelectProduct{Index: 0, Typed: "CAM-AZUL"})
		}, ErrMissingCounterpart},
		{"recibo sin cliente", func(t *testing.T) *entity.MovementDraft {
			return draftOf(t, entity.MovementReceipt)
		}, ErrMissingCounterpart},
		{"línea sin producto", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, saleDraft(t, "1"), cat, AddLine{})
		}, ErrEmptyProduct},
		{"sin líneas", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, draftOf(t, entity.MovementSale), cat, SetClient{Code: "C-01"})
		}, ErrNoDetails},
		{"cantidad cero", func(t *testing.T) *entity.MovementDraft {
			return saleDraft(t, "0")
		}, ErrInvalidLine},
		{"stock insuficiente", func(t *testing.T) *entity.MovementDraft {
			return saleDraft(t, "11")
		}, ErrInsufficientStock},
		{"producto desconocido en venta", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, saleDraft(t, "1"), cat, SelectProduct{Index: 0, Typed: "NO-EXISTE"})
		}, ErrUnknownProduct},
		{"pago incompleto", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, saleDraft(t, "1"), cat, AddPayment{Method: entity.PaymentCash, Amount: d("1")})
		}, ErrPaymentMismatch},
		{"recibo sin cuentas", func(t *testing.T) *entity.MovementDraft {
			return receiptWithStatement(t)
		}, ErrNoReceivablesSelected},
		{"flete sin ruta", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, draftOf(t, entity.MovementExpense), cat,
				SetExpenseCategory{Category: entity.ExpenseCategoryShipping},
				UpdatePayment{Index: 0, Amount: ptr(d("100"))})
		}, ErrMissingRoute},
		{"flete con origen igual a destino", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, draftOf(t, entity.MovementExpense), cat,
				SetExpenseCategory{Category: entity.ExpenseCategoryShipping},
				SetRoute{Origin: "Bodega", Destination: "bodega "},
				UpdatePayment{Index: 0, Amount: ptr(d("100"))})
		}, ErrSameRoute},
		{"flete sin pago", func(t *testing.T) *entity.MovementDraft {
			return reduceAll(t, draftOf(t, entity.MovementExpense), cat,
				SetExpenseCategory{Category: entity.ExpenseCategoryShipping},
				SetRoute{Origin: "Bodega", Destination: "Tienda"})
		}, ErrPaymentMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForSubmit(tt.build(t), cat)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "esperado %v, obtenido %v", tt.want, err)
		})
	}
}

func TestValidateForSubmit_StockReportaDisponible(t *testing.T) {
	err := ValidateForSubmit(saleDraft(t, "11"), testCatalog())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Details, "stock disponible 10")
}

func TestValidateForSubmit_StockSumaLineasDelMismoProducto(t *testing.T) {
	dr := reduceAll(t, saleDraft(t, "6"), testCatalog(),
		AddLine{},
		SelectProduct{Index: 1, Typed: "CAM-AZUL"},
		UpdateLine{Index: 1, Quantity: ptr(d("5"))},
	)
	assert.ErrorIs(t, ValidateForSubmit(dr, testCatalog()), ErrInsufficientStock)
}

func TestValidateForSubmit_ReciboEscenario(t *testing.T) {
	dr := reduceAll(t, receiptWithStatement(t), testCatalog(),
		ToggleSettlement{Reference: "FV-001"},
		ToggleSettlement{Reference: "FV-002"},
	)
	assert.NoError(t, ValidateForSubmit(dr, testCatalog()), "pago sincronizado a 15000")

	dr = reduceAll(t, dr, testCatalog(), UpdatePayment{Index: 0, Amount: ptr(d("14000"))})
	assert.ErrorIs(t, ValidateForSubmit(dr, testCatalog()), ErrPaymentMismatch)
}

func TestValidateForSubmit_CompraConProductoNuevo(t *testing.T) {
	dr := reduceAll(t, draftOf(t, entity.MovementPurchase), testCatalog(),
		SetSupplier{Code: "P-01"},
		AddLine{},
		SelectProduct{Index: 0, Typed: "Blusa de lino natural"},
		UpdateLine{Index: 0, Quantity: ptr(d("5")), UnitPrice: ptr(d("1000"))},
	)
	assert.NoError(t, ValidateForSubmit(dr, testCatalog()))
}

func TestValidateForSubmit_GastoSinCategoriaNoExigeCobertura(t *testing.T) {
	dr := reduceAll(t, draftOf(t, entity.MovementExpense), testCatalog(),
		AddLine{},
		SelectProduct{Index: 0, Typed: "ARRIENDO"},
		UpdateLine{Index: 0, UnitPrice: ptr(d("1500000"))},
		AddPayment{Method: entity.PaymentCredit, Amount: d("0")},
	)
	assert.NoError(t, ValidateForSubmit(dr, testCatalog()))
}
