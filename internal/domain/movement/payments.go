package movement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// NewPayment crea un pago con IsCredit coherente con el medio.
func NewPayment(method entity.PaymentMethod, amount decimal.Decimal, currency string) entity.PaymentDetail {
	return ApplyPaymentMethod(entity.PaymentDetail{Amount: amount, Currency: currency}, method)
}

// ApplyPaymentMethod asigna el medio de pago; CREDIT fuerza IsCredit=true y cualquier otro lo apaga.
func ApplyPaymentMethod(p entity.PaymentDetail, method entity.PaymentMethod) entity.PaymentDetail {
	p.Method = method
	p.IsCredit = method == entity.PaymentCredit
	return p
}

// SyncSinglePayment con exactamente un pago, si el total cambió y el pago difiere en más de
// AmountTolerance, el pago pasa a ser el total redondeado a centavos. Con dos o más pagos
// no se toca nada: el usuario está repartiendo el pago a propósito.
func SyncSinglePayment(payments []entity.PaymentDetail, previousTotal, newTotal decimal.Decimal) []entity.PaymentDetail {
	if len(payments) != 1 || newTotal.Equal(previousTotal) {
		return payments
	}
	if withinTolerance(payments[0].Amount, newTotal) {
		return payments
	}
	out := []entity.PaymentDetail{payments[0]}
	out[0].Amount = round2(newTotal)
	return out
}

// Difference total − suma de pagos. Positivo = falta pagar; negativo = sobra.
func Difference(total decimal.Decimal, payments []entity.PaymentDetail) decimal.Decimal {
	return total.Sub(SumPayments(payments))
}

// CheckCoverage valida que los pagos cubran el total según el tipo de movimiento:
//   - RECEIPT: pagos >= total sin tolerancia (el excedente queda como saldo a favor).
//   - EXPENSE de flete: pagos > 0.
//   - EXPENSE sin categoría de flete: la cuenta por pagar la valida el backend.
//   - resto: |total − pagos| <= AmountTolerance.
func CheckCoverage(t entity.MovementType, expenseCategory string, total decimal.Decimal, payments []entity.PaymentDetail) error {
	paid := SumPayments(payments)
	switch {
	case t == entity.MovementReceipt:
		if paid.LessThan(total) {
			return invalid(ErrPaymentMismatch, "los pagos (%s) no cubren el total abonado (%s); faltan %s",
				fmtMoney(paid), fmtMoney(total), fmtMoney(total.Sub(paid)))
		}
		return nil
	case t == entity.MovementExpense && expenseCategory == entity.ExpenseCategoryShipping:
		if !paid.GreaterThan(decimal.Zero) {
			return invalid(ErrPaymentMismatch, "el gasto de flete debe tener un valor pagado mayor a cero")
		}
		return nil
	case t == entity.MovementExpense:
		return nil
	}

	diff := total.Sub(paid)
	if diff.Abs().GreaterThan(AmountTolerance) {
		if diff.IsPositive() {
			return invalid(ErrPaymentMismatch, "faltan %s por pagar (total %s, pagos %s)",
				fmtMoney(diff), fmtMoney(total), fmtMoney(paid))
		}
		return invalid(ErrPaymentMismatch, "los pagos exceden el total en %s (total %s, pagos %s)",
			fmtMoney(diff.Neg()), fmtMoney(total), fmtMoney(paid))
	}
	return nil
}
