package movement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/pkg/textnorm"
)

// ValidateForSubmit revisa el borrador antes de enviarlo al backend. Devuelve el primer
// error encontrado como *ValidationError con un mensaje accionable; el borrador no se modifica.
func ValidateForSubmit(d *entity.MovementDraft, catalog Catalog) error {
	if !d.Type.Valid() {
		return invalid(ErrInvalidType, "tipo %q no soportado", d.Type)
	}
	if err := validateCounterpart(d); err != nil {
		return err
	}
	if d.IsShippingExpense() {
		if err := validateRoute(d); err != nil {
			return err
		}
	}
	if d.HasLineItems() {
		if err := validateLines(d, catalog); err != nil {
			return err
		}
	}
	if d.Type == entity.MovementReceipt {
		if err := ValidateSettlement(d.Receivables, d.Statement); err != nil {
			return err
		}
	}
	for i, p := range d.Payments {
		if err := checkPayment(p.Method, p.Amount); err != nil {
			return invalid(ErrInvalidPayment, "pago %d: %s", i+1, err.(*ValidationError).Details)
		}
	}
	totals := DraftTotals(d)
	return CheckCoverage(d.Type, d.ExpenseCategory, totals.Total, d.Payments)
}

func validateCounterpart(d *entity.MovementDraft) error {
	switch d.Type {
	case entity.MovementSale:
		if d.ClientCode == "" {
			return invalid(ErrMissingCounterpart, "seleccione o cree un cliente para la venta")
		}
		if d.IsNewClient && d.NewClient.Name == "" {
			return invalid(ErrMissingCounterpart, "el cliente nuevo %s requiere nombre", d.ClientCode)
		}
	case entity.MovementReceipt:
		if d.ClientCode == "" {
			return invalid(ErrMissingCounterpart, "seleccione el cliente del recibo")
		}
	case entity.MovementPurchase:
		if strings.TrimSpace(d.SupplierCode) == "" {
			return invalid(ErrMissingCounterpart, "seleccione el proveedor de la compra")
		}
	}
	return nil
}

func validateRoute(d *entity.MovementDraft) error {
	if d.OriginLocation == "" || d.DestinationLocation == "" {
		return invalid(ErrMissingRoute, "indique origen y destino del flete")
	}
	if textnorm.EqualFold(d.OriginLocation, d.DestinationLocation) {
		return invalid(ErrSameRoute, "origen y destino son %q", d.OriginLocation)
	}
	return nil
}

// validateLines en ventas el stock se controla por producto, sumando las líneas que lo repiten.
func validateLines(d *entity.MovementDraft, catalog Catalog) error {
	if len(d.Lines) == 0 {
		return invalid(ErrNoDetails, "agregue al menos una línea de producto")
	}
	requested := make(map[string]decimal.Decimal)
	for i, l := range d.Lines {
		n := i + 1
		if strings.TrimSpace(l.ProductReference) == "" {
			return invalid(ErrEmptyProduct, "línea %d: seleccione un producto", n)
		}
		if !l.Quantity.IsPositive() {
			return invalid(ErrInvalidLine, "línea %d (%s): la cantidad debe ser mayor a cero", n, l.ProductReference)
		}
		if l.UnitPrice.IsNegative() {
			return invalid(ErrInvalidLine, "línea %d (%s): el precio no puede ser negativo", n, l.ProductReference)
		}
		if !validRate(l.DiscountRate) || !validRate(l.TaxRate) {
			return invalid(ErrInvalidLine, "línea %d (%s): descuento e IVA deben estar entre 0 y 100", n, l.ProductReference)
		}
		if d.Type != entity.MovementSale {
			continue
		}
		p, ok := catalog.FindProduct(l.ProductReference)
		if !ok {
			return invalid(ErrUnknownProduct, "línea %d: el producto %s no existe", n, l.ProductReference)
		}
		key := strings.ToUpper(p.Reference)
		requested[key] = requested[key].Add(l.Quantity)
		if requested[key].GreaterThan(p.Stock) {
			return invalid(ErrInsufficientStock, "línea %d (%s): stock disponible %s, solicitado %s",
				n, p.Reference, p.Stock.String(), requested[key].String())
		}
	}
	return nil
}
