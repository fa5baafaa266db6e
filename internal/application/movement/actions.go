package movement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
)

// headerActions traduce un PATCH de cabecera a acciones del reductor, en orden estable.
// d es el borrador actual; se usa para completar las tarifas que no vienen en la petición.
func headerActions(d *entity.MovementDraft, in dto.UpdateDraftRequest) ([]domainmov.Action, error) {
	var actions []domainmov.Action
	if in.Type != nil {
		actions = append(actions, domainmov.SetType{Type: entity.MovementType(*in.Type)})
	}
	if in.DocumentDate != nil {
		if *in.DocumentDate == "" {
			actions = append(actions, domainmov.SetDocumentDate{Date: nil})
		} else {
			dt, err := time.Parse(domainmov.DateLayout, *in.DocumentDate)
			if err != nil {
				return nil, fmt.Errorf("%w: document_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
			}
			actions = append(actions, domainmov.SetDocumentDate{Date: &dt})
		}
	}
	if in.Notes != nil {
		actions = append(actions, domainmov.SetNotes{Notes: *in.Notes})
	}
	if in.ClientCode != nil {
		actions = append(actions, domainmov.SetClient{Code: *in.ClientCode})
	}
	if in.NewClient != nil {
		actions = append(actions, domainmov.SetNewClient{Name: in.NewClient.Name, Email: in.NewClient.Email, Phone: in.NewClient.Phone})
	}
	if in.SupplierCode != nil {
		actions = append(actions, domainmov.SetSupplier{Code: *in.SupplierCode})
	}
	if in.RetentionRate != nil || in.DeductionRate != nil {
		rates := domainmov.SetPurchaseRates{RetentionRate: d.RetentionRate, DeductionRate: d.DeductionRate}
		if in.RetentionRate != nil {
			rates.RetentionRate = *in.RetentionRate
		}
		if in.DeductionRate != nil {
			rates.DeductionRate = *in.DeductionRate
		}
		actions = append(actions, rates)
	}
	if in.ExpenseCategory != nil {
		actions = append(actions, domainmov.SetExpenseCategory{Category: *in.ExpenseCategory})
	}
	if in.Route != nil {
		actions = append(actions, domainmov.SetRoute{
			Origin:            in.Route.Origin,
			Destination:       in.Route.Destination,
			RelatedMovementID: in.Route.RelatedMovementID,
		})
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no hay cambios", domain.ErrInvalidInput)
	}
	return actions, nil
}

// lineActions selección de producto (si viene) y luego el parche de valores, de modo que
// un precio explícito prevalece sobre el que trae el catálogo.
func lineActions(index int, in dto.LineRequest) []domainmov.Action {
	var actions []domainmov.Action
	if in.Product != nil {
		actions = append(actions, domainmov.SelectProduct{Index: index, Typed: *in.Product})
	}
	patch := domainmov.UpdateLine{
		Index:            index,
		Description:      in.Description,
		Quantity:         in.Quantity,
		UnitPrice:        in.UnitPrice,
		DiscountRate:     in.DiscountRate,
		TaxRate:          in.TaxRate,
		Weight:           in.Weight,
		ProductSalePrice: in.ProductSalePrice,
	}
	if patch.Description != nil || patch.Quantity != nil || patch.UnitPrice != nil || patch.DiscountRate != nil ||
		patch.TaxRate != nil || patch.Weight != nil || patch.ProductSalePrice != nil {
		actions = append(actions, patch)
	}
	return actions
}

func updatePaymentAction(index int, in dto.UpdatePaymentRequest) domainmov.Action {
	a := domainmov.UpdatePayment{Index: index, Amount: in.Amount, Currency: in.Currency}
	if in.Method != nil {
		m := entity.PaymentMethod(*in.Method)
		a.Method = &m
	}
	return a
}

func addPaymentAction(in dto.PaymentRequest) domainmov.Action {
	return domainmov.AddPayment{Method: entity.PaymentMethod(in.Method), Amount: in.Amount, Currency: in.Currency}
}

func settlementAmountAction(reference string, value decimal.Decimal) domainmov.Action {
	return domainmov.SetSettlementAmount{Reference: reference, Value: value}
}
