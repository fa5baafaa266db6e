package repository

import (
	"context"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/movement"
)

// LedgerGateway puerto hacia el backend contable, dueño de la persistencia de movimientos
// y catálogos. token es el Bearer del usuario, que se reenvía tal cual.
// Los rechazos llegan como *domain.BackendError.
type LedgerGateway interface {
	ListClients(ctx context.Context, token string) ([]entity.Client, error)
	ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error)
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	GetReceivables(ctx context.Context, token, clientCode string) (*entity.ReceivablesStatement, error)

	CreateMovement(ctx context.Context, token string, payload movement.CreatePayload) (*entity.Movement, error)
	GetMovement(ctx context.Context, token, id string) (*entity.Movement, error)
	CancelMovement(ctx context.Context, token, id string) (*entity.Movement, error)
}
