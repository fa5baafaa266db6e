package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client cliente (tercero de ventas y recibos). Code es único y se compara sin distinguir mayúsculas.
type Client struct {
	ID    string
	Code  string
	Name  string
	Email string
	Phone string
}

// Supplier proveedor; misma forma que Client.
type Supplier struct {
	ID    string
	Code  string
	Name  string
	Email string
	Phone string
}

// Product producto del catálogo. Reference es la llave que usan las líneas de movimiento.
type Product struct {
	ID          string
	Reference   string
	Description string
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Stock       decimal.Decimal
}

// ReceivableItem una cuenta por cobrar pendiente de un cliente.
type ReceivableItem struct {
	OriginConsecutive string
	Balance           decimal.Decimal
	Status            string
	DueDate           *time.Time
}

// ReceivablesStatement estado de cartera de un cliente.
type ReceivablesStatement struct {
	ClientCode string
	Balance    decimal.Decimal
	Items      []ReceivableItem
}

// Find busca una cuenta por su consecutivo de origen (sin distinguir mayúsculas).
func (s *ReceivablesStatement) Find(reference string) (ReceivableItem, bool) {
	if s == nil {
		return ReceivableItem{}, false
	}
	for _, it := range s.Items {
		if strings.EqualFold(it.OriginConsecutive, strings.TrimSpace(reference)) {
			return it, true
		}
	}
	return ReceivableItem{}, false
}
