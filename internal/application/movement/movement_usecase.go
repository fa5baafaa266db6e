package movement

import (
	"context"

	"github.com/jhoicas/gestiva/internal/application/dto"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/pkg/logger"
)

// MovementUseCase operaciones sobre movimientos ya registrados en el backend.
type MovementUseCase struct {
	gateway repository.LedgerGateway
	catalog CatalogReader
	log     *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(gateway repository.LedgerGateway, catalog CatalogReader, log *logger.Logger) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{gateway: gateway, catalog: catalog, log: log.Named("movements")}
}

// Cancel anula un movimiento. Uno ya anulado, o que es en sí una anulación, se rechaza
// antes de llamar al backend.
func (uc *MovementUseCase) Cancel(ctx context.Context, caller dto.Caller, id string) (*dto.MovementResponse, error) {
	m, err := uc.gateway.GetMovement(ctx, caller.Token, id)
	if err != nil {
		return nil, err
	}
	if err := domainmov.CheckCancellable(ctx, *m); err != nil {
		return nil, err
	}
	cancelled, err := uc.gateway.CancelMovement(ctx, caller.Token, id)
	if err != nil {
		uc.log.Warn().Err(err).Str("movement_id", id).Msg("anulación rechazada")
		return nil, err
	}
	_ = uc.catalog.Invalidate(ctx, caller.CompanyID)
	uc.log.Info().Str("movement_id", id).Str("consecutive", m.Consecutive).Msg("movimiento anulado")
	return toMovementResponse(cancelled), nil
}
