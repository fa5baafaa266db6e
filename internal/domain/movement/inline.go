package movement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// ResolveClient asigna el cliente del borrador. En ventas, un código que no está en el
// catálogo marca el cliente como nuevo y habilita nombre, correo y teléfono; un código
// existente quita la marca y limpia esos campos.
func ResolveClient(d *entity.MovementDraft, code string, catalog Catalog) {
	code = strings.TrimSpace(code)
	if code == "" {
		d.ClientCode = ""
		d.IsNewClient = false
		d.NewClient = entity.NewClientInfo{}
		return
	}
	if cl, ok := catalog.FindClient(code); ok {
		d.ClientCode = cl.Code
		d.IsNewClient = false
		d.NewClient = entity.NewClientInfo{}
		return
	}
	d.ClientCode = code
	if d.Type != entity.MovementSale {
		d.IsNewClient = false
		d.NewClient = entity.NewClientInfo{}
		return
	}
	d.IsNewClient = true
}

// ResolveLineProduct asigna el producto de la línea index a partir de lo que el usuario digitó.
//
// Si coincide con una referencia del catálogo se copian descripción y precio (costo en
// compras, precio de venta en el resto). En compras, un valor sin coincidencia crea un
// producto nuevo: si parece descripción se deriva la referencia con GenerateReference,
// si no se usa tal cual como referencia.
func ResolveLineProduct(d *entity.MovementDraft, index int, typed string, catalog Catalog) error {
	if index < 0 || index >= len(d.Lines) {
		return ErrIndexOutOfRange
	}
	line := &d.Lines[index]
	typed = strings.TrimSpace(typed)

	if typed == "" {
		line.ProductReference = ""
		line.IsNewProduct = false
		line.ProductSalePrice = nil
		return nil
	}

	if p, ok := catalog.FindProduct(typed); ok {
		line.ProductReference = p.Reference
		line.IsNewProduct = false
		line.ProductSalePrice = nil
		applyCatalogProduct(line, p, d.Type)
		return nil
	}

	// los datos del producto anterior no aplican a una referencia desconocida
	if !line.IsNewProduct {
		if _, ok := catalog.FindProduct(line.ProductReference); ok {
			line.Description = ""
			line.UnitPrice = decimal.Zero
			line.UnitCost = nil
		}
	}

	if d.Type != entity.MovementPurchase {
		// la validación de envío decide si una referencia desconocida es aceptable
		line.ProductReference = typed
		line.IsNewProduct = false
		line.ProductSalePrice = nil
		return nil
	}

	line.IsNewProduct = true
	line.UnitCost = nil
	if looksLikeDescription(typed) {
		line.Description = typed
		line.ProductReference = GenerateReference(typed, takenReferences(d, index, catalog))
		return nil
	}
	line.ProductReference = typed
	if strings.TrimSpace(line.Description) == "" {
		line.Description = typed
	}
	return nil
}

// applyCatalogProduct copia descripción, costo y precio del catálogo: costo en compras,
// precio de venta en el resto.
func applyCatalogProduct(line *entity.DraftLine, p entity.Product, t entity.MovementType) {
	line.Description = p.Description
	cost := p.CostPrice
	line.UnitCost = &cost
	if t == entity.MovementPurchase {
		line.UnitPrice = p.CostPrice
	} else {
		line.UnitPrice = p.SalePrice
	}
}

// RepriceCatalogLines vuelve a tomar del catálogo el precio de las líneas con producto
// existente. Se usa al cambiar de tipo, cuando la base de precio pasa de venta a costo
// o al revés.
func RepriceCatalogLines(d *entity.MovementDraft, catalog Catalog) {
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.IsNewProduct || line.ProductReference == "" {
			continue
		}
		if p, ok := catalog.FindProduct(line.ProductReference); ok {
			applyCatalogProduct(line, p, d.Type)
		}
	}
}

// takenReferences catálogo más las referencias de las demás líneas del borrador.
func takenReferences(d *entity.MovementDraft, skip int, catalog Catalog) []string {
	refs := catalog.References()
	for i, l := range d.Lines {
		if i != skip && l.ProductReference != "" {
			refs = append(refs, l.ProductReference)
		}
	}
	return refs
}
