package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento (processType en el backend).
type MovementType string

const (
	MovementSale       MovementType = "SALE"        // venta a cliente
	MovementPurchase   MovementType = "PURCHASE"    // compra a proveedor
	MovementReceipt    MovementType = "RECEIPT"     // recibo de caja contra cartera
	MovementExpense    MovementType = "EXPENSE"     // gasto
	MovementSpecialIn  MovementType = "SPECIAL_IN"  // entrada especial de inventario
	MovementSpecialOut MovementType = "SPECIAL_OUT" // salida especial de inventario
	MovementWeighing   MovementType = "WEIGHING"    // pesaje
	MovementMaquila    MovementType = "MAQUILA"     // maquila (transformación por terceros)
)

// MovementTypes todos los tipos válidos, en el orden en que los muestra el formulario.
var MovementTypes = []MovementType{
	MovementSale, MovementPurchase, MovementReceipt, MovementExpense,
	MovementSpecialIn, MovementSpecialOut, MovementWeighing, MovementMaquila,
}

// Valid indica si t es un tipo conocido.
func (t MovementType) Valid() bool {
	for _, k := range MovementTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ExpenseCategoryShipping categoría de gasto de flete: sin líneas, el valor es lo pagado.
const ExpenseCategoryShipping = "shipping"

// PaymentMethod medio de pago.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCheck    PaymentMethod = "CHECK"
	PaymentCard     PaymentMethod = "CARD"
	PaymentCredit   PaymentMethod = "CREDIT"
)

// Valid indica si m es un medio de pago conocido.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCheck, PaymentCard, PaymentCredit:
		return true
	}
	return false
}

// MovementDetail línea de producto de un movimiento.
// UnitPrice es costo en compras y precio de venta en los demás tipos.
// DiscountRate y TaxRate son porcentajes 0–100.
type MovementDetail struct {
	ProductReference string
	Description      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	UnitCost         *decimal.Decimal
	DiscountRate     decimal.Decimal
	TaxRate          decimal.Decimal
	Weight           *decimal.Decimal
	ProductSalePrice *decimal.Decimal // solo al crear producto desde una compra
}

// PaymentDetail un pago del movimiento. IsCredit siempre refleja Method == CREDIT.
type PaymentDetail struct {
	Method   PaymentMethod
	Amount   decimal.Decimal
	Currency string
	IsCredit bool
}

// RelatedAccount abono a una cuenta por cobrar existente (recibos de caja).
type RelatedAccount struct {
	Reference string // consecutivo de origen de la cuenta por cobrar
	Value     decimal.Decimal
}

// MovementTotals totales derivados; nunca se persisten del lado de Gestiva.
type MovementTotals struct {
	Subtotal       decimal.Decimal
	TaxTotal       decimal.Decimal
	RetentionTotal decimal.Decimal
	DeductionTotal decimal.Decimal
	Total          decimal.Decimal
}

// Estados de un movimiento ya persistido en el backend.
const (
	MovementStatusActive    = "ACTIVE"
	MovementStatusCancelled = "CANCELLED"
)

// Movement movimiento persistido, tal como lo devuelve el backend.
type Movement struct {
	ID             string
	Consecutive    string
	ProcessType    MovementType
	Status         string
	IsCancellation bool // el movimiento es a su vez la anulación de otro
	Total          decimal.Decimal
	DocumentDate   time.Time
}
