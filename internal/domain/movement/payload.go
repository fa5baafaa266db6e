package movement

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// DateLayout formato de documentDate (fecha ISO sin hora).
const DateLayout = "2006-01-02"

// CreatePayload cuerpo de POST /movements en el backend contable. Los montos viajan como
// números JSON exactos (json.Number) para no pasar por float64.
type CreatePayload struct {
	ProcessType  entity.MovementType `json:"processType"`
	DocumentDate string              `json:"documentDate"`
	Notes        string              `json:"notes,omitempty"`

	ClientCode  string `json:"clientCode,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`

	SupplierCode  string      `json:"supplierCode,omitempty"`
	RetentionRate json.Number `json:"retentionRate,omitempty"`
	DeductionRate json.Number `json:"deductionRate,omitempty"`

	ExpenseCategory     string `json:"expenseCategory,omitempty"`
	OriginLocation      string `json:"originLocation,omitempty"`
	DestinationLocation string `json:"destinationLocation,omitempty"`
	RelatedMovementID   string `json:"relatedMovementId,omitempty"`

	Details             []PayloadDetail     `json:"details"`
	Payments            []PayloadPayment    `json:"payments"`
	ReceivablesToSettle []PayloadSettlement `json:"receivablesToSettle,omitempty"`
}

// PayloadDetail línea del movimiento.
type PayloadDetail struct {
	ProductReference string      `json:"productReference"`
	Description      string      `json:"description,omitempty"`
	Quantity         json.Number `json:"quantity"`
	UnitPrice        json.Number `json:"unitPrice"`
	UnitCost         json.Number `json:"unitCost,omitempty"`
	DiscountRate     json.Number `json:"discountRate"`
	TaxRate          json.Number `json:"taxRate"`
	Weight           json.Number `json:"weight,omitempty"`
	ProductSalePrice json.Number `json:"productSalePrice,omitempty"`
}

// PayloadPayment pago del movimiento.
type PayloadPayment struct {
	Method   entity.PaymentMethod `json:"method"`
	Amount   json.Number          `json:"amount"`
	Currency string               `json:"currency,omitempty"`
	IsCredit bool                 `json:"isCredit"`
}

// PayloadSettlement abono a una cuenta por cobrar.
type PayloadSettlement struct {
	Reference string      `json:"reference"`
	Value     json.Number `json:"value"`
}

// BuildCreatePayload arma el cuerpo de creación. Cada grupo de campos viaja solo para el
// tipo que lo usa: cliente nuevo solo si IsNewClient, tarifas solo en compras y mayores a
// cero, ruta solo en fletes, cartera solo en recibos. documentDate por defecto es now.
func BuildCreatePayload(d *entity.MovementDraft, now time.Time) CreatePayload {
	date := now
	if d.DocumentDate != nil {
		date = *d.DocumentDate
	}
	p := CreatePayload{
		ProcessType:  d.Type,
		DocumentDate: date.Format(DateLayout),
		Notes:        d.Notes,
		Details:      []PayloadDetail{},
		Payments:     make([]PayloadPayment, 0, len(d.Payments)),
	}

	switch d.Type {
	case entity.MovementSale, entity.MovementReceipt:
		p.ClientCode = d.ClientCode
		if d.Type == entity.MovementSale && d.IsNewClient {
			p.ClientName = d.NewClient.Name
			p.ClientEmail = d.NewClient.Email
			p.ClientPhone = d.NewClient.Phone
		}
	case entity.MovementPurchase:
		p.SupplierCode = d.SupplierCode
		if d.RetentionRate.IsPositive() {
			p.RetentionRate = number(d.RetentionRate)
		}
		if d.DeductionRate.IsPositive() {
			p.DeductionRate = number(d.DeductionRate)
		}
	case entity.MovementExpense:
		p.ExpenseCategory = d.ExpenseCategory
		if d.IsShippingExpense() {
			p.OriginLocation = d.OriginLocation
			p.DestinationLocation = d.DestinationLocation
			p.RelatedMovementID = d.RelatedMovementID
		}
	default:
		p.ClientCode = d.ClientCode
	}

	if d.HasLineItems() {
		for _, l := range d.Lines {
			p.Details = append(p.Details, payloadDetail(l, d.Type))
		}
	}
	for _, pay := range d.Payments {
		p.Payments = append(p.Payments, PayloadPayment{
			Method:   pay.Method,
			Amount:   number(pay.Amount),
			Currency: pay.Currency,
			IsCredit: pay.Method == entity.PaymentCredit,
		})
	}
	if d.Type == entity.MovementReceipt {
		p.ReceivablesToSettle = make([]PayloadSettlement, 0, len(d.Receivables))
		for _, r := range d.Receivables {
			p.ReceivablesToSettle = append(p.ReceivablesToSettle, PayloadSettlement{Reference: r.Reference, Value: number(r.Value)})
		}
	}
	return p
}

func payloadDetail(l entity.DraftLine, t entity.MovementType) PayloadDetail {
	out := PayloadDetail{
		ProductReference: l.ProductReference,
		Description:      l.Description,
		Quantity:         number(l.Quantity),
		UnitPrice:        number(l.UnitPrice),
		DiscountRate:     number(l.DiscountRate),
		TaxRate:          number(l.TaxRate),
	}
	if l.UnitCost != nil {
		out.UnitCost = number(*l.UnitCost)
	}
	if l.Weight != nil {
		out.Weight = number(*l.Weight)
	}
	if l.IsNewProduct && t == entity.MovementPurchase {
		sale := l.UnitPrice
		if l.ProductSalePrice != nil && l.ProductSalePrice.IsPositive() {
			sale = *l.ProductSalePrice
		}
		out.ProductSalePrice = number(sale)
	}
	return out
}

func number(v decimal.Decimal) json.Number {
	return json.Number(v.String())
}
