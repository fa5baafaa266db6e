package movement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/pkg/textnorm"
)

// Selectable una cuenta por cobrar admite abonos mientras tenga saldo.
func Selectable(item entity.ReceivableItem) bool {
	return item.Balance.GreaterThan(decimal.Zero)
}

// IsSelected indica si la referencia ya está en la selección.
func IsSelected(selected []entity.RelatedAccount, reference string) bool {
	return indexOfReceivable(selected, reference) >= 0
}

// ToggleReceivable agrega la cuenta con abono igual a su saldo completo (truncado a centavos)
// o la quita si ya estaba.
// Quitarla descarta cualquier monto parcial digitado.
func ToggleReceivable(selected []entity.RelatedAccount, statement *entity.ReceivablesStatement, reference string) ([]entity.RelatedAccount, error) {
	if statement == nil {
		return selected, ErrReferenceDataUnavailable
	}
	if i := indexOfReceivable(selected, reference); i >= 0 {
		out := make([]entity.RelatedAccount, 0, len(selected)-1)
		out = append(out, selected[:i]...)
		return append(out, selected[i+1:]...), nil
	}

	item, ok := statement.Find(reference)
	if !ok {
		return selected, invalid(ErrSettlementOutOfBounds, "la cuenta %s no pertenece a la cartera del cliente", reference)
	}
	if !Selectable(item) {
		return selected, invalid(ErrSettlementOutOfBounds, "la cuenta %s no tiene saldo pendiente", item.OriginConsecutive)
	}
	out := make([]entity.RelatedAccount, len(selected), len(selected)+1)
	copy(out, selected)
	return append(out, entity.RelatedAccount{Reference: item.OriginConsecutive, Value: floor2(item.Balance)}), nil
}

// SetReceivableAmount fija el abono de una cuenta ya seleccionada, acotado a [0, saldo]
// y redondeado a centavos.
func SetReceivableAmount(selected []entity.RelatedAccount, statement *entity.ReceivablesStatement, reference string, value decimal.Decimal) ([]entity.RelatedAccount, error) {
	if statement == nil {
		return selected, ErrReferenceDataUnavailable
	}
	i := indexOfReceivable(selected, reference)
	if i < 0 {
		return selected, invalid(ErrSettlementOutOfBounds, "la cuenta %s no está seleccionada", reference)
	}
	item, ok := statement.Find(reference)
	if !ok {
		return selected, invalid(ErrSettlementOutOfBounds, "la cuenta %s no pertenece a la cartera del cliente", reference)
	}
	out := make([]entity.RelatedAccount, len(selected))
	copy(out, selected)
	out[i].Value = ClampSettlement(value, item.Balance)
	return out, nil
}

// ClampSettlement redondea a centavos y acota a [0, saldo]. Si el redondeo supera el
// saldo (saldos con más de dos decimales) se usa el saldo truncado.
func ClampSettlement(value, balance decimal.Decimal) decimal.Decimal {
	if value.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	value = round2(value)
	if value.GreaterThan(balance) {
		return floor2(balance)
	}
	return value
}

// ValidateSettlement exige al menos una cuenta y que cada abono cumpla 0 < valor <= saldo.
// El error nombra la referencia, el monto digitado y el saldo disponible.
func ValidateSettlement(selected []entity.RelatedAccount, statement *entity.ReceivablesStatement) error {
	if len(selected) == 0 {
		return invalid(ErrNoReceivablesSelected, "seleccione al menos una cuenta por cobrar")
	}
	if statement == nil {
		return ErrReferenceDataUnavailable
	}
	for _, r := range selected {
		item, ok := statement.Find(r.Reference)
		if !ok {
			return invalid(ErrSettlementOutOfBounds, "la cuenta %s no pertenece a la cartera del cliente", r.Reference)
		}
		if !r.Value.GreaterThan(decimal.Zero) || r.Value.GreaterThan(item.Balance) {
			return invalid(ErrSettlementOutOfBounds, "el abono a %s (%s) debe ser mayor a cero y no superar el saldo disponible (%s)",
				r.Reference, fmtMoney(r.Value), fmtMoney(item.Balance))
		}
	}
	return nil
}

func indexOfReceivable(selected []entity.RelatedAccount, reference string) int {
	for i, r := range selected {
		if textnorm.EqualFold(r.Reference, reference) {
			return i
		}
	}
	return -1
}
