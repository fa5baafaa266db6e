package movement

import (
	"errors"
	"fmt"
)

// Errores de validación del movimiento. Todos se detectan antes de llamar al backend
// y dejan el borrador intacto para corregirlo.
var (
	ErrMissingCounterpart    = errors.New("falta el tercero del movimiento")
	ErrEmptyProduct          = errors.New("línea sin producto")
	ErrUnknownProduct        = errors.New("producto no existe en el catálogo")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidLine           = errors.New("línea inválida")
	ErrNoDetails             = errors.New("el movimiento no tiene líneas")
	ErrPaymentMismatch       = errors.New("los pagos no cuadran con el total")
	ErrSettlementOutOfBounds = errors.New("abono fuera de rango")
	ErrNoReceivablesSelected = errors.New("no hay cuentas por cobrar seleccionadas")
	ErrMissingRoute          = errors.New("origen y destino son obligatorios")
	ErrSameRoute             = errors.New("origen y destino no pueden ser iguales")
	ErrInvalidType           = errors.New("tipo de movimiento inválido")
	ErrInvalidPayment        = errors.New("pago inválido")

	// ErrReferenceDataUnavailable la operación depende de datos que aún no se han cargado
	// (por ejemplo la cartera del cliente).
	ErrReferenceDataUnavailable = errors.New("datos de referencia no cargados")
	// ErrDraftLocked el borrador se está enviando y no admite cambios.
	ErrDraftLocked = errors.New("el borrador se está enviando")
	// ErrNotCancellable el movimiento ya está anulado o es una anulación.
	ErrNotCancellable = errors.New("el movimiento no se puede anular")
	// ErrIndexOutOfRange índice de línea o pago inexistente.
	ErrIndexOutOfRange = errors.New("índice fuera de rango")
)

// ValidationError envuelve un error centinela con un mensaje accionable para el usuario.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}
