package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del borrador (ver movement.NewDraftLifecycle).
const (
	DraftStatusEditing    = "editing"
	DraftStatusSubmitting = "submitting"
	DraftStatusSubmitted  = "submitted"
)

// NewClientInfo datos del cliente nuevo que se crea junto con una venta.
type NewClientInfo struct {
	Name  string
	Email string
	Phone string
}

// DraftLine línea del borrador: el detalle más la marca de producto nuevo.
type DraftLine struct {
	MovementDetail
	IsNewProduct bool
}

// MovementDraft estado mutable de un movimiento en edición. Es propiedad del usuario
// que lo creó hasta que se envía; al aceptarse en el backend se descarta.
type MovementDraft struct {
	ID        string
	UserID    string
	CompanyID string
	Status    string

	Type         MovementType
	DocumentDate *time.Time
	Notes        string

	ClientCode   string
	IsNewClient  bool
	NewClient    NewClientInfo
	SupplierCode string

	RetentionRate decimal.Decimal // solo compras; 0 = no aplica
	DeductionRate decimal.Decimal // solo compras; 0 = no aplica

	ExpenseCategory     string
	OriginLocation      string
	DestinationLocation string
	RelatedMovementID   string

	Lines       []DraftLine
	Payments    []PaymentDetail
	Receivables []RelatedAccount
	Statement   *ReceivablesStatement // cartera del cliente cargada para RECEIPT

	Totals MovementTotals

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShippingExpense gasto de flete: sin líneas, origen/destino obligatorios.
func (d *MovementDraft) IsShippingExpense() bool {
	return d.Type == MovementExpense && d.ExpenseCategory == ExpenseCategoryShipping
}

// HasLineItems indica si el tipo de movimiento lleva líneas de producto.
func (d *MovementDraft) HasLineItems() bool {
	return d.Type != MovementReceipt && !d.IsShippingExpense()
}
