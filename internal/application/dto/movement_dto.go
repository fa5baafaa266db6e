package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftRequest abre un borrador de movimiento.
type CreateDraftRequest struct {
	Type string `json:"type" validate:"required,oneof=SALE PURCHASE RECEIPT EXPENSE SPECIAL_IN SPECIAL_OUT WEIGHING MAQUILA"`
}

// NewClientRequest datos del cliente que se crea junto con la venta.
type NewClientRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`
}

// RouteRequest ruta de un gasto de flete.
type RouteRequest struct {
	Origin            string `json:"origin" validate:"max=200"`
	Destination       string `json:"destination" validate:"max=200"`
	RelatedMovementID string `json:"related_movement_id"`
}

// UpdateDraftRequest cambios de cabecera; solo se aplican los campos presentes.
// El orden de aplicación es: tipo, fecha, notas, cliente, cliente nuevo, proveedor,
// tarifas, categoría y ruta.
type UpdateDraftRequest struct {
	Type            *string           `json:"type" validate:"omitempty,oneof=SALE PURCHASE RECEIPT EXPENSE SPECIAL_IN SPECIAL_OUT WEIGHING MAQUILA"`
	DocumentDate    *string           `json:"document_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           *string           `json:"notes" validate:"omitempty,max=1000"`
	ClientCode      *string           `json:"client_code" validate:"omitempty,max=50"`
	NewClient       *NewClientRequest `json:"new_client"`
	SupplierCode    *string           `json:"supplier_code" validate:"omitempty,max=50"`
	RetentionRate   *decimal.Decimal  `json:"retention_rate"`
	DeductionRate   *decimal.Decimal  `json:"deduction_rate"`
	ExpenseCategory *string           `json:"expense_category" validate:"omitempty,max=50"`
	Route           *RouteRequest     `json:"route"`
}

// LineRequest alta o modificación de una línea. En el alta, Product es lo digitado en
// el selector de producto.
type LineRequest struct {
	Product          *string          `json:"product" validate:"omitempty,max=200"`
	Description      *string          `json:"description" validate:"omitempty,max=500"`
	Quantity         *decimal.Decimal `json:"quantity"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	DiscountRate     *decimal.Decimal `json:"discount_rate"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	Weight           *decimal.Decimal `json:"weight"`
	ProductSalePrice *decimal.Decimal `json:"product_sale_price"`
}

// SelectProductRequest valor digitado en el selector de producto.
type SelectProductRequest struct {
	Value string `json:"value" validate:"max=200"`
}

// PaymentRequest nuevo pago.
type PaymentRequest struct {
	Method   string          `json:"method" validate:"required,oneof=CASH TRANSFER CHECK CARD CREDIT"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,len=3"`
}

// UpdatePaymentRequest cambio parcial de un pago.
type UpdatePaymentRequest struct {
	Method   *string          `json:"method" validate:"omitempty,oneof=CASH TRANSFER CHECK CARD CREDIT"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency" validate:"omitempty,len=3"`
}

// SettlementAmountRequest abono a una cuenta seleccionada.
type SettlementAmountRequest struct {
	Value decimal.Decimal `json:"value"`
}

// NewClientResponse datos del cliente nuevo.
type NewClientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// LineResponse línea con sus valores derivados.
type LineResponse struct {
	Index            int              `json:"index"`
	ProductReference string           `json:"product_reference"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	DiscountRate     decimal.Decimal  `json:"discount_rate"`
	TaxRate          decimal.Decimal  `json:"tax_rate"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	ProductSalePrice *decimal.Decimal `json:"product_sale_price,omitempty"`
	IsNewProduct     bool             `json:"is_new_product"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	Tax              decimal.Decimal  `json:"tax"`
}

// PaymentResponse pago del borrador.
type PaymentResponse struct {
	Index    int             `json:"index"`
	Method   string          `json:"method"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	IsCredit bool            `json:"is_credit"`
}

// SettlementResponse cuenta por cobrar seleccionada.
type SettlementResponse struct {
	Reference string          `json:"reference"`
	Value     decimal.Decimal `json:"value"`
}

// ReceivableItemResponse cuenta por cobrar de la cartera.
type ReceivableItemResponse struct {
	OriginConsecutive string          `json:"origin_consecutive"`
	Balance           decimal.Decimal `json:"balance"`
	Status            string          `json:"status"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	Selectable        bool            `json:"selectable"`
	Selected          bool            `json:"selected"`
}

// ReceivablesStatementResponse cartera del cliente.
type ReceivablesStatementResponse struct {
	ClientCode string                   `json:"client_code"`
	Balance    decimal.Decimal          `json:"balance"`
	Items      []ReceivableItemResponse `json:"items"`
}

// TotalsResponse totales del borrador más la conciliación de pagos.
// Difference = total − pagado (positivo: falta; negativo: sobra).
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	RetentionTotal decimal.Decimal `json:"retention_total"`
	DeductionTotal decimal.Decimal `json:"deduction_total"`
	Total          decimal.Decimal `json:"total"`
	Paid           decimal.Decimal `json:"paid"`
	Difference     decimal.Decimal `json:"difference"`
}

// DraftResponse estado completo del borrador tras cada acción.
type DraftResponse struct {
	ID                  string                        `json:"id"`
	Status              string                        `json:"status"`
	Type                string                        `json:"type"`
	DocumentDate        string                        `json:"document_date,omitempty"`
	Notes               string                        `json:"notes,omitempty"`
	ClientCode          string                        `json:"client_code,omitempty"`
	IsNewClient         bool                          `json:"is_new_client"`
	NewClient           *NewClientResponse            `json:"new_client,omitempty"`
	SupplierCode        string                        `json:"supplier_code,omitempty"`
	RetentionRate       decimal.Decimal               `json:"retention_rate"`
	DeductionRate       decimal.Decimal               `json:"deduction_rate"`
	ExpenseCategory     string                        `json:"expense_category,omitempty"`
	OriginLocation      string                        `json:"origin_location,omitempty"`
	DestinationLocation string                        `json:"destination_location,omitempty"`
	RelatedMovementID   string                        `json:"related_movement_id,omitempty"`
	Lines               []LineResponse                `json:"lines"`
	Payments            []PaymentResponse             `json:"payments"`
	Receivables         []SettlementResponse          `json:"receivables"`
	Statement           *ReceivablesStatementResponse `json:"statement,omitempty"`
	Totals              TotalsResponse                `json:"totals"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

// MovementResponse movimiento registrado en el backend.
type MovementResponse struct {
	ID             string          `json:"id"`
	Consecutive    string          `json:"consecutive"`
	ProcessType    string          `json:"process_type"`
	Status         string          `json:"status"`
	IsCancellation bool            `json:"is_cancellation"`
	Total          decimal.Decimal `json:"total"`
	DocumentDate   string          `json:"document_date,omitempty"`
}
