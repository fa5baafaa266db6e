package movement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/pkg/textnorm"
)

// Action una edición del formulario de movimientos. Reduce la aplica sobre una copia
// del borrador y luego recalcula totales y sincroniza el pago único.
type Action interface {
	apply(d *entity.MovementDraft, catalog Catalog) error
}

// NewDraft borrador vacío con un pago en efectivo en cero.
func NewDraft(id, userID, companyID string, t entity.MovementType, now time.Time) (*entity.MovementDraft, error) {
	if !t.Valid() {
		return nil, invalid(ErrInvalidType, "tipo %q no soportado", t)
	}
	d := &entity.MovementDraft{
		ID:        id,
		UserID:    userID,
		CompanyID: companyID,
		Status:    entity.DraftStatusEditing,
		Type:      t,
		Payments:  []entity.PaymentDetail{NewPayment(entity.PaymentCash, decimal.Zero, "")},
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.Totals = DraftTotals(d)
	return d, nil
}

// Reduce aplica la acción y deriva el estado en el mismo paso: primero totales, después
// la sincronización del pago único contra el total anterior. Si la acción falla se
// devuelve el borrador original sin cambios.
func Reduce(draft *entity.MovementDraft, action Action, catalog Catalog) (*entity.MovementDraft, error) {
	if draft.Status != entity.DraftStatusEditing {
		return draft, ErrDraftLocked
	}
	next := CloneDraft(draft)
	if err := action.apply(next, catalog); err != nil {
		return draft, err
	}
	prevTotal := draft.Totals.Total
	next.Totals = DraftTotals(next)
	next.Payments = SyncSinglePayment(next.Payments, prevTotal, next.Totals.Total)
	return next, nil
}

// CloneDraft copia profunda de las colecciones del borrador.
func CloneDraft(d *entity.MovementDraft) *entity.MovementDraft {
	c := *d
	c.Lines = append([]entity.DraftLine(nil), d.Lines...)
	c.Payments = append([]entity.PaymentDetail(nil), d.Payments...)
	c.Receivables = append([]entity.RelatedAccount(nil), d.Receivables...)
	if d.Statement != nil {
		st := *d.Statement
		st.Items = append([]entity.ReceivableItem(nil), d.Statement.Items...)
		c.Statement = &st
	}
	if d.DocumentDate != nil {
		dt := *d.DocumentDate
		c.DocumentDate = &dt
	}
	return &c
}

func clearSettlement(d *entity.MovementDraft) {
	d.Receivables = nil
	d.Statement = nil
}

// SetType cambia el tipo de movimiento. Salir de RECEIPT descarta la cartera seleccionada;
// entrar o salir de PURCHASE vuelve a tomar los precios del catálogo.
type SetType struct {
	Type entity.MovementType
}

func (a SetType) apply(d *entity.MovementDraft, catalog Catalog) error {
	if !a.Type.Valid() {
		return invalid(ErrInvalidType, "tipo %q no soportado", a.Type)
	}
	if a.Type == d.Type {
		return nil
	}
	priceBasisChanged := a.Type == entity.MovementPurchase || d.Type == entity.MovementPurchase
	d.Type = a.Type
	if a.Type != entity.MovementReceipt {
		clearSettlement(d)
	}
	if a.Type != entity.MovementExpense {
		d.ExpenseCategory = ""
		d.OriginLocation, d.DestinationLocation, d.RelatedMovementID = "", "", ""
	}
	if a.Type != entity.MovementPurchase {
		for i := range d.Lines {
			d.Lines[i].IsNewProduct = false
			d.Lines[i].ProductSalePrice = nil
		}
	}
	if priceBasisChanged {
		RepriceCatalogLines(d, catalog)
	}
	ResolveClient(d, d.ClientCode, catalog)
	return nil
}

// SetDocumentDate fecha del documento; nil = hoy al enviar.
type SetDocumentDate struct {
	Date *time.Time
}

func (a SetDocumentDate) apply(d *entity.MovementDraft, _ Catalog) error {
	d.DocumentDate = a.Date
	return nil
}

// SetNotes observaciones libres.
type SetNotes struct {
	Notes string
}

func (a SetNotes) apply(d *entity.MovementDraft, _ Catalog) error {
	d.Notes = a.Notes
	return nil
}

// SetClient selecciona (o limpia, con código vacío) el cliente. Cambiar de cliente
// descarta la cartera cargada y las cuentas seleccionadas.
type SetClient struct {
	Code string
}

func (a SetClient) apply(d *entity.MovementDraft, catalog Catalog) error {
	if !textnorm.EqualFold(a.Code, d.ClientCode) {
		clearSettlement(d)
	}
	ResolveClient(d, a.Code, catalog)
	return nil
}

// SetNewClient datos del cliente nuevo. Solo aplica cuando el código no existe en el catálogo.
type SetNewClient struct {
	Name  string
	Email string
	Phone string
}

func (a SetNewClient) apply(d *entity.MovementDraft, _ Catalog) error {
	if !d.IsNewClient {
		return invalid(ErrMissingCounterpart, "el cliente %q ya existe o no se ha indicado", d.ClientCode)
	}
	d.NewClient = entity.NewClientInfo{
		Name:  strings.TrimSpace(a.Name),
		Email: strings.TrimSpace(a.Email),
		Phone: strings.TrimSpace(a.Phone),
	}
	return nil
}

// SetSupplier proveedor de la compra.
type SetSupplier struct {
	Code string
}

func (a SetSupplier) apply(d *entity.MovementDraft, catalog Catalog) error {
	code := strings.TrimSpace(a.Code)
	if s, ok := catalog.FindSupplier(code); ok {
		code = s.Code
	}
	d.SupplierCode = code
	return nil
}

// SetPurchaseRates porcentajes de retención y deducción. 0 = no aplica.
type SetPurchaseRates struct {
	RetentionRate decimal.Decimal
	DeductionRate decimal.Decimal
}

func (a SetPurchaseRates) apply(d *entity.MovementDraft, _ Catalog) error {
	if !validRate(a.RetentionRate) || !validRate(a.DeductionRate) {
		return invalid(ErrInvalidLine, "retención y deducción deben estar entre 0 y 100")
	}
	d.RetentionRate = a.RetentionRate
	d.DeductionRate = a.DeductionRate
	return nil
}

// SetExpenseCategory categoría del gasto. Solo EXPENSE.
type SetExpenseCategory struct {
	Category string
}

func (a SetExpenseCategory) apply(d *entity.MovementDraft, _ Catalog) error {
	if d.Type != entity.MovementExpense {
		return invalid(ErrInvalidType, "la categoría de gasto solo aplica a gastos")
	}
	d.ExpenseCategory = strings.TrimSpace(a.Category)
	if d.ExpenseCategory != entity.ExpenseCategoryShipping {
		d.OriginLocation, d.DestinationLocation, d.RelatedMovementID = "", "", ""
	}
	return nil
}

// SetRoute origen, destino y movimiento relacionado de un flete.
type SetRoute struct {
	Origin            string
	Destination       string
	RelatedMovementID string
}

func (a SetRoute) apply(d *entity.MovementDraft, _ Catalog) error {
	if !d.IsShippingExpense() {
		return invalid(ErrMissingRoute, "la ruta solo aplica a gastos de flete")
	}
	d.OriginLocation = strings.TrimSpace(a.Origin)
	d.DestinationLocation = strings.TrimSpace(a.Destination)
	d.RelatedMovementID = strings.TrimSpace(a.RelatedMovementID)
	return nil
}

// AddLine agrega una línea vacía con cantidad 1.
type AddLine struct{}

func (AddLine) apply(d *entity.MovementDraft, _ Catalog) error {
	if !d.HasLineItems() {
		return invalid(ErrInvalidLine, "este tipo de movimiento no lleva líneas de producto")
	}
	d.Lines = append(d.Lines, entity.DraftLine{
		MovementDetail: entity.MovementDetail{
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    decimal.Zero,
			DiscountRate: decimal.Zero,
			TaxRate:      decimal.Zero,
		},
	})
	return nil
}

// RemoveLine elimina la línea Index.
type RemoveLine struct {
	Index int
}

func (a RemoveLine) apply(d *entity.MovementDraft, _ Catalog) error {
	if a.Index < 0 || a.Index >= len(d.Lines) {
		return ErrIndexOutOfRange
	}
	d.Lines = append(d.Lines[:a.Index:a.Index], d.Lines[a.Index+1:]...)
	return nil
}

// UpdateLine parche parcial de una línea: los campos nil no cambian.
type UpdateLine struct {
	Index            int
	Description      *string
	Quantity         *decimal.Decimal
	UnitPrice        *decimal.Decimal
	DiscountRate     *decimal.Decimal
	TaxRate          *decimal.Decimal
	Weight           *decimal.Decimal
	ProductSalePrice *decimal.Decimal
}

func (a UpdateLine) apply(d *entity.MovementDraft, _ Catalog) error {
	if a.Index < 0 || a.Index >= len(d.Lines) {
		return ErrIndexOutOfRange
	}
	l := &d.Lines[a.Index]
	n := a.Index + 1
	if a.Quantity != nil && a.Quantity.IsNegative() {
		return invalid(ErrInvalidLine, "línea %d: la cantidad no puede ser negativa", n)
	}
	if a.UnitPrice != nil && a.UnitPrice.IsNegative() {
		return invalid(ErrInvalidLine, "línea %d: el precio no puede ser negativo", n)
	}
	if a.DiscountRate != nil && !validRate(*a.DiscountRate) {
		return invalid(ErrInvalidLine, "línea %d: el descuento debe estar entre 0 y 100", n)
	}
	if a.TaxRate != nil && !validRate(*a.TaxRate) {
		return invalid(ErrInvalidLine, "línea %d: el IVA debe estar entre 0 y 100", n)
	}
	if a.ProductSalePrice != nil && !l.IsNewProduct {
		return invalid(ErrInvalidLine, "línea %d: el precio de venta inicial solo aplica a productos nuevos", n)
	}

	if a.Description != nil {
		l.Description = strings.TrimSpace(*a.Description)
	}
	if a.Quantity != nil {
		l.Quantity = *a.Quantity
	}
	if a.UnitPrice != nil {
		l.UnitPrice = *a.UnitPrice
	}
	if a.DiscountRate != nil {
		l.DiscountRate = *a.DiscountRate
	}
	if a.TaxRate != nil {
		l.TaxRate = *a.TaxRate
	}
	if a.Weight != nil {
		w := *a.Weight
		l.Weight = &w
	}
	if a.ProductSalePrice != nil {
		p := *a.ProductSalePrice
		l.ProductSalePrice = &p
	}
	return nil
}

// SelectProduct valor digitado en el selector de producto de la línea Index.
type SelectProduct struct {
	Index int
	Typed string
}

func (a SelectProduct) apply(d *entity.MovementDraft, catalog Catalog) error {
	return ResolveLineProduct(d, a.Index, a.Typed, catalog)
}

// AddPayment agrega un pago. Con dos o más pagos deja de haber sincronización automática.
type AddPayment struct {
	Method   entity.PaymentMethod
	Amount   decimal.Decimal
	Currency string
}

func (a AddPayment) apply(d *entity.MovementDraft, _ Catalog) error {
	if err := checkPayment(a.Method, a.Amount); err != nil {
		return err
	}
	d.Payments = append(d.Payments, NewPayment(a.Method, a.Amount, a.Currency))
	return nil
}

// RemovePayment elimina el pago Index.
type RemovePayment struct {
	Index int
}

func (a RemovePayment) apply(d *entity.MovementDraft, _ Catalog) error {
	if a.Index < 0 || a.Index >= len(d.Payments) {
		return ErrIndexOutOfRange
	}
	d.Payments = append(d.Payments[:a.Index:a.Index], d.Payments[a.Index+1:]...)
	return nil
}

// UpdatePayment parche parcial de un pago.
type UpdatePayment struct {
	Index    int
	Method   *entity.PaymentMethod
	Amount   *decimal.Decimal
	Currency *string
}

func (a UpdatePayment) apply(d *entity.MovementDraft, _ Catalog) error {
	if a.Index < 0 || a.Index >= len(d.Payments) {
		return ErrIndexOutOfRange
	}
	p := d.Payments[a.Index]
	method, amount := p.Method, p.Amount
	if a.Method != nil {
		method = *a.Method
	}
	if a.Amount != nil {
		amount = *a.Amount
	}
	if err := checkPayment(method, amount); err != nil {
		return err
	}
	p = ApplyPaymentMethod(p, method)
	p.Amount = amount
	if a.Currency != nil {
		p.Currency = strings.TrimSpace(*a.Currency)
	}
	d.Payments[a.Index] = p
	return nil
}

// ToggleSettlement selecciona o quita una cuenta por cobrar.
type ToggleSettlement struct {
	Reference string
}

func (a ToggleSettlement) apply(d *entity.MovementDraft, _ Catalog) error {
	if d.Type != entity.MovementReceipt {
		return invalid(ErrInvalidType, "la cartera solo aplica a recibos")
	}
	sel, err := ToggleReceivable(d.Receivables, d.Statement, a.Reference)
	if err != nil {
		return err
	}
	d.Receivables = sel
	return nil
}

// SetSettlementAmount cambia el abono de una cuenta seleccionada.
type SetSettlementAmount struct {
	Reference string
	Value     decimal.Decimal
}

func (a SetSettlementAmount) apply(d *entity.MovementDraft, _ Catalog) error {
	if d.Type != entity.MovementReceipt {
		return invalid(ErrInvalidType, "la cartera solo aplica a recibos")
	}
	sel, err := SetReceivableAmount(d.Receivables, d.Statement, a.Reference, a.Value)
	if err != nil {
		return err
	}
	d.Receivables = sel
	return nil
}

// LoadStatement carga (o refresca) la cartera del cliente del recibo. Las cuentas ya
// seleccionadas que sigan en la cartera se conservan acotadas a su saldo actual.
type LoadStatement struct {
	Statement *entity.ReceivablesStatement
}

func (a LoadStatement) apply(d *entity.MovementDraft, _ Catalog) error {
	if d.Type != entity.MovementReceipt || a.Statement == nil {
		return ErrReferenceDataUnavailable
	}
	if !textnorm.EqualFold(a.Statement.ClientCode, d.ClientCode) {
		return invalid(ErrReferenceDataUnavailable, "la cartera de %s no corresponde al cliente %s",
			a.Statement.ClientCode, d.ClientCode)
	}
	st := *a.Statement
	st.Items = append([]entity.ReceivableItem(nil), a.Statement.Items...)
	d.Statement = &st

	kept := d.Receivables[:0]
	for _, r := range d.Receivables {
		item, ok := st.Find(r.Reference)
		if !ok || !Selectable(item) {
			continue
		}
		r.Value = ClampSettlement(r.Value, item.Balance)
		kept = append(kept, r)
	}
	d.Receivables = kept
	return nil
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(hundred)
}

func checkPayment(method entity.PaymentMethod, amount decimal.Decimal) error {
	if !method.Valid() {
		return invalid(ErrInvalidPayment, "medio de pago %q no soportado", method)
	}
	if amount.IsNegative() {
		return invalid(ErrInvalidPayment, "el monto no puede ser negativo")
	}
	return nil
}
