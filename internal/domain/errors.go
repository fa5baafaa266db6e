package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrBackendRejected el backend contable rechazó la operación (regla de negocio o validación remota).
	ErrBackendRejected = errors.New("rechazado por el backend")
	// ErrBackendUnavailable no hubo respuesta utilizable del backend (red, 5xx, JSON inválido).
	ErrBackendUnavailable = errors.New("backend no disponible")
)

// BackendError conserva el status y el mensaje devueltos por el backend para mostrarlos al usuario.
type BackendError struct {
	Err        error // ErrBackendRejected o ErrBackendUnavailable
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Err.Error() + ": " + e.Message
	}
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }
