package movement

import (
	"github.com/jhoicas/gestiva/internal/application/catalog"
	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
)

func toDraftResponse(d *entity.MovementDraft) *dto.DraftResponse {
	out := &dto.DraftResponse{
		ID:                  d.ID,
		Status:              d.Status,
		Type:                string(d.Type),
		Notes:               d.Notes,
		ClientCode:          d.ClientCode,
		IsNewClient:         d.IsNewClient,
		SupplierCode:        d.SupplierCode,
		RetentionRate:       d.RetentionRate,
		DeductionRate:       d.DeductionRate,
		ExpenseCategory:     d.ExpenseCategory,
		OriginLocation:      d.OriginLocation,
		DestinationLocation: d.DestinationLocation,
		RelatedMovementID:   d.RelatedMovementID,
		Lines:               make([]dto.LineResponse, len(d.Lines)),
		Payments:            make([]dto.PaymentResponse, len(d.Payments)),
		Receivables:         make([]dto.SettlementResponse, len(d.Receivables)),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if d.DocumentDate != nil {
		out.DocumentDate = d.DocumentDate.Format(domainmov.DateLayout)
	}
	if d.IsNewClient {
		out.NewClient = &dto.NewClientResponse{Name: d.NewClient.Name, Email: d.NewClient.Email, Phone: d.NewClient.Phone}
	}
	for i, l := range d.Lines {
		out.Lines[i] = dto.LineResponse{
			Index:            i,
			ProductReference: l.ProductReference,
			Description:      l.Description,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			UnitCost:         l.UnitCost,
			DiscountRate:     l.DiscountRate,
			TaxRate:          l.TaxRate,
			Weight:           l.Weight,
			ProductSalePrice: l.ProductSalePrice,
			IsNewProduct:     l.IsNewProduct,
			Subtotal:         domainmov.LineSubtotal(l.MovementDetail),
			Tax:              domainmov.LineTax(l.MovementDetail),
		}
	}
	for i, p := range d.Payments {
		out.Payments[i] = dto.PaymentResponse{Index: i, Method: string(p.Method), Amount: p.Amount, Currency: p.Currency, IsCredit: p.IsCredit}
	}
	for i, r := range d.Receivables {
		out.Receivables[i] = dto.SettlementResponse{Reference: r.Reference, Value: r.Value}
	}
	out.Statement = catalog.StatementResponse(d.Statement, func(ref string) bool {
		return domainmov.IsSelected(d.Receivables, ref)
	})
	out.Totals = dto.TotalsResponse{
		Subtotal:       d.Totals.Subtotal,
		TaxTotal:       d.Totals.TaxTotal,
		RetentionTotal: d.Totals.RetentionTotal,
		DeductionTotal: d.Totals.DeductionTotal,
		Total:          d.Totals.Total,
		Paid:           domainmov.SumPayments(d.Payments),
		Difference:     domainmov.Difference(d.Totals.Total, d.Payments),
	}
	return out
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:             m.ID,
		Consecutive:    m.Consecutive,
		ProcessType:    string(m.ProcessType),
		Status:         m.Status,
		IsCancellation: m.IsCancellation,
		Total:          m.Total,
	}
	if !m.DocumentDate.IsZero() {
		out.DocumentDate = m.DocumentDate.Format(domainmov.DateLayout)
	}
	return out
}
