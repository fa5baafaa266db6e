package movement

import (
	"context"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
)

// CatalogReader catálogos y cartera que consumen los borradores. Implementado por catalog.UseCase.
type CatalogReader interface {
	Snapshot(ctx context.Context, caller dto.Caller) (domainmov.Catalog, error)
	Receivables(ctx context.Context, caller dto.Caller, clientCode string) (*entity.ReceivablesStatement, error)
	Invalidate(ctx context.Context, companyID string) error
}

// PreviewRenderer genera el PDF de vista previa (pre-comprobante) de un borrador.
type PreviewRenderer interface {
	RenderDraft(draft *entity.MovementDraft) ([]byte, error)
}
