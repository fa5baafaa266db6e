package repository

import (
	"context"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// DraftRepository almacena borradores en edición. Get devuelve (nil, nil) si no existe o expiró.
type DraftRepository interface {
	Save(ctx context.Context, draft *entity.MovementDraft) error
	Get(ctx context.Context, id string) (*entity.MovementDraft, error)
	Delete(ctx context.Context, id string) error
}
