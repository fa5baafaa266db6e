package draftstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

func TestMemoryStore_GuardaCopias(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	d := &entity.MovementDraft{ID: "d-1", Type: entity.MovementSale, Payments: []entity.PaymentDetail{{Method: entity.PaymentCash, Amount: decimal.NewFromInt(10)}}}
	require.NoError(t, s.Save(ctx, d))

	d.Payments[0].Amount = decimal.NewFromInt(99)
	got, err := s.Get(ctx, "d-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Payments[0].Amount), "el almacén no comparte slices con el llamador")

	got.Payments[0].Amount = decimal.NewFromInt(1)
	again, _ := s.Get(ctx, "d-1")
	assert.True(t, decimal.NewFromInt(10).Equal(again.Payments[0].Amount))
}

func TestMemoryStore_NoExiste(t *testing.T) {
	got, err := NewMemoryStore(0).Get(context.Background(), "nada")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiraYSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, &entity.MovementDraft{ID: "a"}))
	require.NoError(t, s.Save(ctx, &entity.MovementDraft{ID: "b"}))
	now = now.Add(2 * time.Minute)
	require.NoError(t, s.Save(ctx, &entity.MovementDraft{ID: "c"}))

	assert.Equal(t, 2, s.Sweep())
	got, _ := s.Get(ctx, "a")
	assert.Nil(t, got)
	got, _ = s.Get(ctx, "c")
	assert.NotNil(t, got)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Save(ctx, &entity.MovementDraft{ID: "x"}))
	require.NoError(t, s.Delete(ctx, "x"))
	got, _ := s.Get(ctx, "x")
	assert.Nil(t, got)
}
