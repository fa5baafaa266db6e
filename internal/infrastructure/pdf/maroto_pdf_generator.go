// Package pdf genera el pre-comprobante de un borrador de movimiento: la vista previa
// que el usuario revisa antes de enviar. No es un documento fiscal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de movimiento  │  Borrador + Fecha             │
//	│  TERCERO: Cliente / Proveedor / Ruta del flete               │
//	│  TABLA: Cant | Referencia / Descripción | P.Unit | IVA | Sub │
//	│  CARTERA: Consecutivo | Abono (solo recibos)                 │
//	│  PAGOS: Medio | Valor                                        │
//	│  TOTALES: Subtotal / IVA / Retención / Deducción / TOTAL     │
//	│  FOOTER: QR con el id del borrador + leyenda                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var typeTitles = map[entity.MovementType]string{
	entity.MovementSale:       "VENTA",
	entity.MovementPurchase:   "COMPRA",
	entity.MovementReceipt:    "RECIBO DE CAJA",
	entity.MovementExpense:    "GASTO",
	entity.MovementSpecialIn:  "ENTRADA ESPECIAL",
	entity.MovementSpecialOut: "SALIDA ESPECIAL",
	entity.MovementWeighing:   "PESAJE",
	entity.MovementMaquila:    "MAQUILA",
}

var methodLabels = map[entity.PaymentMethod]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentTransfer: "Transferencia",
	entity.PaymentCheck:    "Cheque",
	entity.PaymentCard:     "Tarjeta",
	entity.PaymentCredit:   "Crédito",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa movement.PreviewRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// RenderDraft genera el PDF del borrador tal como está y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderDraft(draft *entity.MovementDraft) ([]byte, error) {
	if draft == nil {
		return nil, fmt.Errorf("pdf: borrador nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pre-comprobante "+typeTitle(draft.Type), true).
		Build()

	m := maroto.New(cfg)
	totals := domainmov.DraftTotals(draft)

	m.AddRows(headerRow(draft, g.documentDate(draft)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartRow(draft))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if draft.HasLineItems() {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(draft.Lines)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	if draft.Type == entity.MovementReceipt {
		m.AddRows(settlementRows(draft.Receivables)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(paymentRows(draft.Payments)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals, draft.Payments))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(draft)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) documentDate(d *entity.MovementDraft) time.Time {
	if d.DocumentDate != nil {
		return *d.DocumentDate
	}
	return g.now()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de movimiento (izq) y borrador + fecha (der).
func headerRow(d *entity.MovementDraft, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(typeTitle(d.Type), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("PRE-COMPROBANTE (sin validez contable)", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BORRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(d.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// counterpartRow: cliente, proveedor o ruta según el tipo.
func counterpartRow(d *entity.MovementDraft) core.Row {
	title, main, detail := "TERCERO", "-", ""
	switch {
	case d.Type == entity.MovementPurchase:
		title, main = "PROVEEDOR", nonEmpty(d.SupplierCode, "-")
		if d.RetentionRate.IsPositive() || d.DeductionRate.IsPositive() {
			detail = fmt.Sprintf("Retención: %s%%   |   Deducción: %s%%",
				d.RetentionRate.String(), d.DeductionRate.String())
		}
	case d.IsShippingExpense():
		title = "RUTA DEL FLETE"
		main = nonEmpty(d.OriginLocation, "-") + " - " + nonEmpty(d.DestinationLocation, "-")
		if d.RelatedMovementID != "" {
			detail = "Movimiento relacionado: " + d.RelatedMovementID
		}
	case d.Type == entity.MovementExpense:
		title, main = "GASTO", nonEmpty(d.ExpenseCategory, "-")
	case d.IsNewClient:
		title, main = "CLIENTE NUEVO", nonEmpty(d.NewClient.Name, d.ClientCode)
		detail = fmt.Sprintf("Código: %s   |   Email: %s   |   Tel: %s",
			d.ClientCode, nonEmpty(d.NewClient.Email, "-"), nonEmpty(d.NewClient.Phone, "-"))
	case d.ClientCode != "":
		title, main = "CLIENTE", d.ClientCode
	}
	if d.Notes != "" {
		detail = strings.TrimSpace(detail + "   Notas: " + d.Notes)
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(main, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Cant.", 1, align.Center),
		headerCell("Referencia / Descripción", 5, align.Left),
		headerCell("Precio Unit.", 2, align.Right),
		headerCell("IVA%", 1, align.Center),
		headerCell("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea; las de producto nuevo se marcan con (nuevo).
func tableDetailRows(lines []entity.DraftLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		desc := nonEmpty(l.ProductReference, "(sin producto)")
		if l.Description != "" {
			desc += " · " + l.Description
		}
		if l.IsNewProduct {
			desc += " (nuevo)"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxRate.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				money(domainmov.LineSubtotal(l.MovementDetail)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// settlementRows: cuentas por cobrar que abona el recibo.
func settlementRows(selected []entity.RelatedAccount) []core.Row {
	rows := []core.Row{
		row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
			headerCell("Cuenta por cobrar", 8, align.Left),
			headerCell("Abono", 4, align.Right),
		),
	}
	if len(selected) == 0 {
		return append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Sin cuentas seleccionadas", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	for _, r := range selected {
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(r.Reference, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money(r.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// paymentRows: medios de pago.
func paymentRows(payments []entity.PaymentDetail) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range payments {
		label := methodLabels[p.Method]
		if label == "" {
			label = string(p.Method)
		}
		if p.Currency != "" {
			label += " (" + p.Currency + ")"
		}
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t entity.MovementTotals, payments []entity.PaymentDetail) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA:"),
			label("Retención:"),
			label("Deducción:"),
			label("TOTAL:"),
			label("Diferencia:"),
		),
		col.New(3).Add(
			value(money(t.Subtotal)),
			value(money(t.TaxTotal)),
			value(money(t.RetentionTotal.Neg())),
			value(money(t.DeductionTotal.Neg())),
			grand(money(t.Total)),
			value(money(domainmov.Difference(t.Total, payments))),
		),
		col.New(3),
	)
}

// footerRows: QR con el id del borrador y leyenda.
func footerRows(d *entity.MovementDraft) []core.Row {
	return []core.Row{
		row.New(30).Add(
			col.New(3).Add(code.NewQr(d.ID, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Vista previa generada antes del envío. El consecutivo y los "+
					"saldos definitivos los asigna el sistema contable al registrar el movimiento.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("DOCUMENTO NO VÁLIDO COMO SOPORTE", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 18, Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeTitle(t entity.MovementType) string {
	if s, ok := typeTitles[t]; ok {
		return s
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// money formatea con puntos de miles y dos decimales con coma. Ej: 1234567.5 → "$1.234.567,50"
func money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	return sign + "$" + thousands(intPart) + "," + frac
}

// thousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func thousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
