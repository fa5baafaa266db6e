package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/pkg/logger"
	"github.com/jhoicas/gestiva/pkg/textnorm"
)

// DraftUseCase casos de uso del formulario de movimientos. Cada edición llega como una o
// más acciones que se aplican con domainmov.Reduce sobre el borrador guardado.
type DraftUseCase struct {
	drafts  repository.DraftRepository
	gateway repository.LedgerGateway
	catalog CatalogReader
	preview PreviewRenderer
	locks   *draftLocks
	log     *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(
	drafts repository.DraftRepository,
	gateway repository.LedgerGateway,
	catalog CatalogReader,
	preview PreviewRenderer,
	log *logger.Logger,
) *DraftUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftUseCase{
		drafts:  drafts,
		gateway: gateway,
		catalog: catalog,
		preview: preview,
		locks:   newDraftLocks(),
		log:     log.Named("drafts"),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Create abre un borrador del tipo indicado con un pago en efectivo en cero.
func (uc *DraftUseCase) Create(ctx context.Context, caller dto.Caller, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	d, err := domainmov.NewDraft(uc.newID(), caller.UserID, caller.CompanyID, entity.MovementType(in.Type), uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	uc.log.Info().Str("draft_id", d.ID).Str("user_id", caller.UserID).Str("type", string(d.Type)).Msg("borrador creado")
	return toDraftResponse(d), nil
}

// Get devuelve el borrador del usuario.
func (uc *DraftUseCase) Get(ctx context.Context, caller dto.Caller, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// Discard elimina el borrador. Un borrador que se está enviando no se puede descartar.
func (uc *DraftUseCase) Discard(ctx context.Context, caller dto.Caller, id string) error {
	unlock := uc.locks.lock(id)
	defer unlock()

	d, err := uc.load(ctx, caller, id)
	if err != nil {
		return err
	}
	if d.Status == entity.DraftStatusSubmitting {
		return domainmov.ErrDraftLocked
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar borrador: %w", err)
	}
	uc.log.Info().Str("draft_id", id).Msg("borrador descartado")
	return nil
}

// UpdateHeader cambia tipo, fecha, notas, terceros, tarifas o ruta.
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, caller dto.Caller, id string, in dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, func(d *entity.MovementDraft) ([]domainmov.Action, error) {
		return headerActions(d, in)
	})
}

// AddLine agrega una línea y, si vienen, selecciona el producto y fija sus valores.
func (uc *DraftUseCase) AddLine(ctx context.Context, caller dto.Caller, id string, in dto.LineRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, func(d *entity.MovementDraft) ([]domainmov.Action, error) {
		return append([]domainmov.Action{domainmov.AddLine{}}, lineActions(len(d.Lines), in)...), nil
	})
}

// UpdateLine modifica la línea index.
func (uc *DraftUseCase) UpdateLine(ctx context.Context, caller dto.Caller, id string, index int, in dto.LineRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, func(*entity.MovementDraft) ([]domainmov.Action, error) {
		actions := lineActions(index, in)
		if len(actions) == 0 {
			return nil, fmt.Errorf("%w: no hay cambios", domain.ErrInvalidInput)
		}
		return actions, nil
	})
}

// SelectProduct asigna a la línea index lo digitado en el selector de producto.
func (uc *DraftUseCase) SelectProduct(ctx context.Context, caller dto.Caller, id string, index int, in dto.SelectProductRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(domainmov.SelectProduct{Index: index, Typed: in.Value}))
}

// RemoveLine elimina la línea index.
func (uc *DraftUseCase) RemoveLine(ctx context.Context, caller dto.Caller, id string, index int) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(domainmov.RemoveLine{Index: index}))
}

// AddPayment agrega un pago.
func (uc *DraftUseCase) AddPayment(ctx context.Context, caller dto.Caller, id string, in dto.PaymentRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(addPaymentAction(in)))
}

// UpdatePayment modifica el pago index.
func (uc *DraftUseCase) UpdatePayment(ctx context.Context, caller dto.Caller, id string, index int, in dto.UpdatePaymentRequest) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(updatePaymentAction(index, in)))
}

// RemovePayment elimina el pago index.
func (uc *DraftUseCase) RemovePayment(ctx context.Context, caller dto.Caller, id string, index int) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(domainmov.RemovePayment{Index: index}))
}

// ToggleReceivable selecciona o quita una cuenta por cobrar del recibo.
func (uc *DraftUseCase) ToggleReceivable(ctx context.Context, caller dto.Caller, id, reference string) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(domainmov.ToggleSettlement{Reference: reference}))
}

// SetReceivableAmount fija el abono de una cuenta seleccionada.
func (uc *DraftUseCase) SetReceivableAmount(ctx context.Context, caller dto.Caller, id, reference string, value decimal.Decimal) (*dto.DraftResponse, error) {
	return uc.apply(ctx, caller, id, single(settlementAmountAction(reference, value)))
}

// Apply aplica acciones ya construidas, todas o ninguna.
func (uc *DraftUseCase) Apply(ctx context.Context, caller dto.Caller, id string, actions ...domainmov.Action) (*dto.DraftResponse, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no hay cambios", domain.ErrInvalidInput)
	}
	return uc.apply(ctx, caller, id, func(*entity.MovementDraft) ([]domainmov.Action, error) {
		return actions, nil
	})
}

func single(a domainmov.Action) func(*entity.MovementDraft) ([]domainmov.Action, error) {
	return func(*entity.MovementDraft) ([]domainmov.Action, error) {
		return []domainmov.Action{a}, nil
	}
}

// apply carga el borrador, aplica todas las acciones o ninguna, completa la cartera del
// recibo si hace falta y guarda.
func (uc *DraftUseCase) apply(
	ctx context.Context,
	caller dto.Caller,
	id string,
	build func(*entity.MovementDraft) ([]domainmov.Action, error),
) (*dto.DraftResponse, error) {
	unlock := uc.locks.lock(id)
	defer unlock()

	d, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if d.Status != entity.DraftStatusEditing {
		return nil, domainmov.ErrDraftLocked
	}
	actions, err := build(d)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}

	next := d
	for _, a := range actions {
		if next, err = domainmov.Reduce(next, a, cat); err != nil {
			uc.log.Debug().Err(err).Str("draft_id", id).Str("action", fmt.Sprintf("%T", a)).Msg("acción rechazada")
			return nil, err
		}
	}
	next = uc.ensureStatement(ctx, caller, next, cat)
	next.UpdatedAt = uc.now()

	if err := uc.drafts.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return toDraftResponse(next), nil
}

// ensureStatement en recibos con cliente y sin su cartera cargada, la trae del backend.
// Si falla, el borrador queda sin cartera y las acciones que la necesitan responden
// ErrReferenceDataUnavailable.
func (uc *DraftUseCase) ensureStatement(ctx context.Context, caller dto.Caller, d *entity.MovementDraft, cat domainmov.Catalog) *entity.MovementDraft {
	if d.Type != entity.MovementReceipt || d.ClientCode == "" {
		return d
	}
	if d.Statement != nil && textnorm.EqualFold(d.Statement.ClientCode, d.ClientCode) {
		return d
	}
	st, err := uc.catalog.Receivables(ctx, caller, d.ClientCode)
	if err != nil {
		uc.log.Warn().Err(err).Str("draft_id", d.ID).Str("client_code", d.ClientCode).Msg("no se pudo cargar la cartera")
		return d
	}
	if st.ClientCode == "" {
		st.ClientCode = d.ClientCode
	}
	next, err := domainmov.Reduce(d, domainmov.LoadStatement{Statement: st}, cat)
	if err != nil {
		uc.log.Warn().Err(err).Str("draft_id", d.ID).Msg("cartera descartada")
		return d
	}
	uc.log.Debug().Str("draft_id", d.ID).Int("items", len(st.Items)).Msg("cartera cargada")
	return next
}

// Submit valida, bloquea el borrador y envía el movimiento al backend. Si el backend lo
// acepta el borrador se elimina; si lo rechaza vuelve a edición sin cambios y el error
// trae el mensaje del backend. No hay reintentos.
func (uc *DraftUseCase) Submit(ctx context.Context, caller dto.Caller, id string) (*dto.MovementResponse, error) {
	d, lc, err := uc.beginSubmit(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	payload := domainmov.BuildCreatePayload(d, uc.now())
	created, sendErr := uc.gateway.CreateMovement(ctx, caller.Token, payload)

	// el resultado se registra aunque el cliente HTTP haya cancelado la petición
	ctx = context.WithoutCancel(ctx)
	unlock := uc.locks.lock(id)
	defer unlock()

	if sendErr != nil {
		if err := lc.Reject(ctx); err != nil {
			return nil, err
		}
		d.UpdatedAt = uc.now()
		if err := uc.drafts.Save(ctx, d); err != nil {
			uc.log.Error().Err(err).Str("draft_id", id).Msg("no se pudo liberar el borrador rechazado")
		}
		uc.log.Warn().Err(sendErr).Str("draft_id", id).Str("type", string(d.Type)).Msg("movimiento rechazado")
		return nil, sendErr
	}

	if err := lc.Accept(ctx); err != nil {
		return nil, err
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		uc.log.Error().Err(err).Str("draft_id", id).Msg("no se pudo eliminar el borrador enviado")
	}
	_ = uc.catalog.Invalidate(ctx, caller.CompanyID)
	uc.log.Info().
		Str("draft_id", id).
		Str("movement_id", created.ID).
		Str("consecutive", created.Consecutive).
		Str("type", string(d.Type)).
		Str("total", d.Totals.Total.StringFixed(2)).
		Msg("movimiento registrado")
	return toMovementResponse(created), nil
}

// beginSubmit valida y pasa el borrador a submitting bajo el candado.
func (uc *DraftUseCase) beginSubmit(ctx context.Context, caller dto.Caller, id string) (*entity.MovementDraft, *domainmov.DraftLifecycle, error) {
	unlock := uc.locks.lock(id)
	defer unlock()

	d, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, nil, err
	}
	if d.Status != entity.DraftStatusEditing {
		return nil, nil, domainmov.ErrDraftLocked
	}
	cat, err := uc.catalog.Snapshot(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	d.Totals = domainmov.DraftTotals(d)
	if err := domainmov.ValidateForSubmit(d, cat); err != nil {
		uc.log.Info().Err(err).Str("draft_id", id).Msg("borrador no válido para enviar")
		return nil, nil, err
	}
	lc := domainmov.NewDraftLifecycle(d)
	if err := lc.Submit(ctx); err != nil {
		return nil, nil, err
	}
	d.UpdatedAt = uc.now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return d, lc, nil
}

// Preview PDF del borrador tal como está.
func (uc *DraftUseCase) Preview(ctx context.Context, caller dto.Caller, id string) ([]byte, error) {
	d, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return uc.preview.RenderDraft(d)
}

// load trae el borrador y verifica que pertenezca al usuario.
func (uc *DraftUseCase) load(ctx context.Context, caller dto.Caller, id string) (*entity.MovementDraft, error) {
	d, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer borrador: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}
