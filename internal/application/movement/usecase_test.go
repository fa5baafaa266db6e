package movement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/infrastructure/draftstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func decPtr(s string) *decimal.Decimal { v := dec(s); return &v }
func strPtr(s string) *string           { return &s }

type fakeLedger struct {
	mu          sync.Mutex
	created     []domainmov.CreatePayload
	createErr   error
	movement    *entity.Movement
	cancelCalls int
}

func (f *fakeLedger) ListClients(context.Context, string) ([]entity.Client, error)     { return nil, nil }
func (f *fakeLedger) ListSuppliers(context.Context, string) ([]entity.Supplier, error) { return nil, nil }
func (f *fakeLedger) ListProducts(context.Context, string) ([]entity.Product, error)   { return nil, nil }
func (f *fakeLedger) GetReceivables(context.Context, string, string) (*entity.ReceivablesStatement, error) {
	return nil, errors.New("no usado")
}

func (f *fakeLedger) CreateMovement(_ context.Context, _ string, p domainmov.CreatePayload) (*entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Movement{ID: "m-1", Consecutive: "FV-100", ProcessType: p.ProcessType, Status: entity.MovementStatusActive}, nil
}

func (f *fakeLedger) GetMovement(context.Context, string, string) (*entity.Movement, error) {
	if f.movement == nil {
		return nil, domain.ErrNotFound
	}
	return f.movement, nil
}

func (f *fakeLedger) CancelMovement(_ context.Context, _ string, id string) (*entity.Movement, error) {
	f.cancelCalls++
	m := *f.movement
	m.Status = entity.MovementStatusCancelled
	return &m, nil
}

type fakeCatalog struct {
	statements  map[string]*entity.ReceivablesStatement
	invalidated int
}

func (f *fakeCatalog) Snapshot(context.Context, dto.Caller) (domainmov.Catalog, error) {
	return domainmov.Catalog{
		Clients:   []entity.Client{{ID: "1", Code: "C-01", Name: "Tienda"}},
		Suppliers: []entity.Supplier{{ID: "2", Code: "P-01", Name: "Textiles"}},
		Products: []entity.Product{
			{ID: "10", Reference: "CAM-AZUL", Description: "Camisa azul", SalePrice: dec("10000"), CostPrice: dec("6000"), Stock: dec("5")},
		},
	}, nil
}

func (f *fakeCatalog) Receivables(_ context.Context, _ dto.Caller, code string) (*entity.ReceivablesStatement, error) {
	st, ok := f.statements[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (f *fakeCatalog) Invalidate(context.Context, string) error {
	f.invalidated++
	return nil
}

type fakePreview struct{}

func (fakePreview) RenderDraft(d *entity.MovementDraft) ([]byte, error) {
	return []byte("%PDF-" + d.ID), nil
}

var (
	owner    = dto.Caller{UserID: "u-1", CompanyID: "co-1", Token: "tok"}
	intruder = dto.Caller{UserID: "u-2", CompanyID: "co-1", Token: "tok2"}
)

func newTestUseCase(t *testing.T) (*DraftUseCase, *fakeLedger, *fakeCatalog, *draftstore.MemoryStore) {
	t.Helper()
	store := draftstore.NewMemoryStore(time.Hour)
	ledger := &fakeLedger{}
	cat := &fakeCatalog{statements: map[string]*entity.ReceivablesStatement{
		"C-01": {
			ClientCode: "C-01",
			Balance:    dec("15000"),
			Items: []entity.ReceivableItem{
				{OriginConsecutive: "FV-001", Balance: dec("10000"), Status: "PENDING"},
				{OriginConsecutive: "FV-002", Balance: dec("5000"), Status: "PENDING"},
			},
		},
	}}
	uc := NewDraftUseCase(store, ledger, cat, fakePreview{}, nil)
	uc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	n := 0
	uc.newID = func() string { n++; return fmt.Sprintf("d-%d", n) }
	return uc, ledger, cat, store
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

func TestDraft_CrearYObtener(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})
	require.NoError(t, err)
	assert.Equal(t, "d-1", out.ID)
	assert.Equal(t, entity.DraftStatusEditing, out.Status)
	require.Len(t, out.Payments, 1)
	assert.Equal(t, "CASH", out.Payments[0].Method)

	_, err = uc.Get(ctx, intruder, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(ctx, owner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_VentaCompleta(t *testing.T) {
	uc, ledger, cat, store := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	_, err := uc.UpdateHeader(ctx, owner, d.ID, dto.UpdateDraftRequest{ClientCode: strPtr("C-01")})
	require.NoError(t, err)
	out, err := uc.AddLine(ctx, owner, d.ID, dto.LineRequest{Product: strPtr("CAM-AZUL"), Quantity: decPtr("2"), TaxRate: decPtr("19")})
	require.NoError(t, err)

	assertDec(t, "20000", out.Totals.Subtotal, "subtotal")
	assertDec(t, "3800", out.Totals.TaxTotal, "iva")
	assertDec(t, "23800", out.Totals.Total, "total")
	assertDec(t, "23800", out.Payments[0].Amount, "pago sincronizado")
	assertDec(t, "0", out.Totals.Difference, "sin diferencia")
	assertDec(t, "20000", out.Lines[0].Subtotal, "subtotal de línea")

	mov, err := uc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "FV-100", mov.Consecutive)
	require.Len(t, ledger.created, 1)
	assert.Equal(t, "C-01", ledger.created[0].ClientCode)
	assert.Equal(t, "2026-03-15", ledger.created[0].DocumentDate)
	assert.Equal(t, 1, cat.invalidated, "el catálogo se invalida tras registrar")

	left, _ := store.Get(ctx, d.ID)
	assert.Nil(t, left, "el borrador aceptado se descarta")
}

func TestDraft_AccionesAtomicas(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "PURCHASE"})

	_, err := uc.UpdateHeader(ctx, owner, d.ID, dto.UpdateDraftRequest{
		SupplierCode:  strPtr("P-01"),
		RetentionRate: decPtr("150"),
	})
	assert.ErrorIs(t, err, domainmov.ErrInvalidLine)

	got, _ := uc.Get(ctx, owner, d.ID)
	assert.Empty(t, got.SupplierCode, "si una acción falla no se aplica ninguna")
}

func TestDraft_ReciboCargaCarteraYEnvia(t *testing.T) {
	uc, ledger, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "RECEIPT"})

	out, err := uc.UpdateHeader(ctx, owner, d.ID, dto.UpdateDraftRequest{ClientCode: strPtr("C-01")})
	require.NoError(t, err)
	require.NotNil(t, out.Statement, "la cartera se carga al elegir cliente")
	assert.Len(t, out.Statement.Items, 2)

	_, err = uc.ToggleReceivable(ctx, owner, d.ID, "FV-001")
	require.NoError(t, err)
	out, err = uc.ToggleReceivable(ctx, owner, d.ID, "FV-002")
	require.NoError(t, err)
	assertDec(t, "15000", out.Totals.Total, "total del recibo")
	assert.True(t, out.Statement.Items[0].Selected)

	out, err = uc.SetReceivableAmount(ctx, owner, d.ID, "FV-002", dec("8000"))
	require.NoError(t, err)
	assertDec(t, "5000", out.Receivables[1].Value, "acotado al saldo")

	_, err = uc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)
	require.Len(t, ledger.created, 1)
	p := ledger.created[0]
	assert.Empty(t, p.Details)
	require.Len(t, p.ReceivablesToSettle, 2)
	assert.Equal(t, "FV-001", p.ReceivablesToSettle[0].Reference)
}

func TestDraft_ReciboSinCartera(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "RECEIPT"})

	out, err := uc.UpdateHeader(ctx, owner, d.ID, dto.UpdateDraftRequest{ClientCode: strPtr("C-99")})
	require.NoError(t, err, "la falla al cargar la cartera no bloquea la edición")
	assert.Nil(t, out.Statement)

	_, err = uc.ToggleReceivable(ctx, owner, d.ID, "FV-001")
	assert.ErrorIs(t, err, domainmov.ErrReferenceDataUnavailable)
}

func TestDraft_ValidacionNoLlamaAlBackend(t *testing.T) {
	uc, ledger, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	_, err := uc.Submit(ctx, owner, d.ID)
	assert.ErrorIs(t, err, domainmov.ErrMissingCounterpart)
	assert.Empty(t, ledger.created)

	got, _ := uc.Get(ctx, owner, d.ID)
	assert.Equal(t, entity.DraftStatusEditing, got.Status)
}

func TestDraft_RechazoDelBackendConservaBorrador(t *testing.T) {
	uc, ledger, _, _ := newTestUseCase(t)
	ledger.createErr = &domain.BackendError{Err: domain.ErrBackendRejected, StatusCode: 400, Message: "consecutivo agotado"}
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})
	_, err := uc.UpdateHeader(ctx, owner, d.ID, dto.UpdateDraftRequest{ClientCode: strPtr("C-01")})
	require.NoError(t, err)
	_, err = uc.AddLine(ctx, owner, d.ID, dto.LineRequest{Product: strPtr("CAM-AZUL")})
	require.NoError(t, err)

	_, err = uc.Submit(ctx, owner, d.ID)
	assert.ErrorIs(t, err, domain.ErrBackendRejected)
	assert.Contains(t, err.Error(), "consecutivo agotado")

	got, err := uc.Get(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStatusEditing, got.Status)
	assert.Len(t, got.Lines, 1, "el borrador queda intacto para corregir")

	_, err = uc.AddPayment(ctx, owner, d.ID, dto.PaymentRequest{Method: "CARD", Amount: dec("0")})
	assert.NoError(t, err, "tras el rechazo se puede seguir editando")
}

func TestDraft_BloqueadoMientrasSeEnvia(t *testing.T) {
	uc, _, _, store := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	raw, _ := store.Get(ctx, d.ID)
	raw.Status = entity.DraftStatusSubmitting
	require.NoError(t, store.Save(ctx, raw))

	_, err := uc.AddLine(ctx, owner, d.ID, dto.LineRequest{})
	assert.ErrorIs(t, err, domainmov.ErrDraftLocked)
	_, err = uc.Submit(ctx, owner, d.ID)
	assert.ErrorIs(t, err, domainmov.ErrDraftLocked)
	assert.ErrorIs(t, uc.Discard(ctx, owner, d.ID), domainmov.ErrDraftLocked)
}

func TestDraft_DescartarYPreview(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	pdf, err := uc.Preview(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+d.ID, string(pdf))

	assert.ErrorIs(t, uc.Discard(ctx, intruder, d.ID), domain.ErrForbidden)
	require.NoError(t, uc.Discard(ctx, owner, d.ID))
	_, err = uc.Get(ctx, owner, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_EdicionesConcurrentes(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.AddLine(ctx, owner, d.ID, dto.LineRequest{})
		}()
	}
	wg.Wait()

	got, _ := uc.Get(ctx, owner, d.ID)
	assert.Len(t, got.Lines, 20, "ninguna edición se pierde")
}

func TestMovement_Cancel(t *testing.T) {
	ledger := &fakeLedger{movement: &entity.Movement{ID: "m-1", Consecutive: "FV-1", Status: entity.MovementStatusActive}}
	cat := &fakeCatalog{}
	uc := NewMovementUseCase(ledger, cat, nil)

	out, err := uc.Cancel(context.Background(), owner, "m-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusCancelled, out.Status)
	assert.Equal(t, 1, ledger.cancelCalls)
	assert.Equal(t, 1, cat.invalidated)

	ledger.movement.Status = entity.MovementStatusCancelled
	_, err = uc.Cancel(context.Background(), owner, "m-1")
	assert.ErrorIs(t, err, domainmov.ErrNotCancellable)
	assert.Equal(t, 1, ledger.cancelCalls, "no se llama al backend")

	ledger.movement = &entity.Movement{ID: "m-2", Status: entity.MovementStatusActive, IsCancellation: true}
	_, err = uc.Cancel(context.Background(), owner, "m-2")
	assert.ErrorIs(t, err, domainmov.ErrNotCancellable)
}

func TestDraft_ApplyVariasAcciones(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()
	d, _ := uc.Create(ctx, owner, dto.CreateDraftRequest{Type: "SALE"})

	out, err := uc.Apply(ctx, owner, d.ID,
		domainmov.AddLine{},
		domainmov.SelectProduct{Index: 0, Typed: "cam-azul"},
		domainmov.AddPayment{Method: entity.PaymentCard, Amount: dec("0")},
	)
	require.NoError(t, err)
	assert.Equal(t, "CAM-AZUL", out.Lines[0].ProductReference)
	assert.Len(t, out.Payments, 2)

	_, err = uc.Apply(ctx, owner, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
