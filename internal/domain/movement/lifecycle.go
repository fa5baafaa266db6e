package movement

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

// Eventos del ciclo de vida del borrador.
const (
	EventSubmit = "submit"
	EventAccept = "accept"
	EventReject = "reject"
	EventCancel = "cancel"
)

// DraftLifecycle máquina de estados del borrador:
//
//	editing --submit--> submitting --accept--> submitted
//	                    submitting --reject--> editing
type DraftLifecycle struct {
	draft *entity.MovementDraft
	fsm   *fsm.FSM
}

// NewDraftLifecycle crea la máquina a partir del estado actual del borrador.
func NewDraftLifecycle(draft *entity.MovementDraft) *DraftLifecycle {
	status := draft.Status
	if status == "" {
		status = entity.DraftStatusEditing
	}
	return &DraftLifecycle{
		draft: draft,
		fsm: fsm.NewFSM(
			status,
			fsm.Events{
				{Name: EventSubmit, Src: []string{entity.DraftStatusEditing}, Dst: entity.DraftStatusSubmitting},
				{Name: EventAccept, Src: []string{entity.DraftStatusSubmitting}, Dst: entity.DraftStatusSubmitted},
				{Name: EventReject, Src: []string{entity.DraftStatusSubmitting}, Dst: entity.DraftStatusEditing},
			},
			fsm.Callbacks{},
		),
	}
}

// Submit bloquea el borrador mientras se envía. Un borrador que ya se está enviando
// devuelve ErrDraftLocked.
func (l *DraftLifecycle) Submit(ctx context.Context) error {
	if !l.fsm.Can(EventSubmit) {
		return fmt.Errorf("%w: estado %s", ErrDraftLocked, l.fsm.Current())
	}
	return l.fire(ctx, EventSubmit)
}

// Accept el backend registró el movimiento.
func (l *DraftLifecycle) Accept(ctx context.Context) error {
	return l.fire(ctx, EventAccept)
}

// Reject el backend rechazó el movimiento; el borrador vuelve a edición intacto.
func (l *DraftLifecycle) Reject(ctx context.Context) error {
	return l.fire(ctx, EventReject)
}

// Current estado actual.
func (l *DraftLifecycle) Current() string {
	return l.fsm.Current()
}

func (l *DraftLifecycle) fire(ctx context.Context, event string) error {
	if err := l.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("borrador %s: evento %s: %w", l.draft.ID, event, err)
	}
	l.draft.Status = l.fsm.Current()
	return nil
}

// CheckCancellable aplica la transición ACTIVE -> CANCELLED sobre una copia en memoria
// para decidir, antes de llamar al backend, si el movimiento se puede anular.
// Un movimiento ya anulado o que es en sí mismo una anulación no se puede anular.
func CheckCancellable(ctx context.Context, m entity.Movement) error {
	if m.IsCancellation {
		return invalid(ErrNotCancellable, "el movimiento %s es una anulación", m.Consecutive)
	}
	machine := fsm.NewFSM(
		m.Status,
		fsm.Events{
			{Name: EventCancel, Src: []string{entity.MovementStatusActive}, Dst: entity.MovementStatusCancelled},
		},
		fsm.Callbacks{},
	)
	if err := machine.Event(ctx, EventCancel); err != nil {
		return invalid(ErrNotCancellable, "el movimiento %s está en estado %s", m.Consecutive, m.Status)
	}
	return nil
}
