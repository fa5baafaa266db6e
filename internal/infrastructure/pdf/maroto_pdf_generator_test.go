package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

func sampleDraft(t entity.MovementType) *entity.MovementDraft {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &entity.MovementDraft{
		ID:           "0b6f3c1e-7d2a-4e44-9a51-2f0c1d9e8a77",
		Status:       entity.DraftStatusEditing,
		Type:         t,
		DocumentDate: &date,
		ClientCode:   "C-01",
		SupplierCode: "P-01",
		Lines: []entity.DraftLine{
			{MovementDetail: entity.MovementDetail{
				ProductReference: "CAM-AZUL",
				Description:      "Camisa azul",
				Quantity:         decimal.NewFromInt(2),
				UnitPrice:        decimal.NewFromInt(10000),
				TaxRate:          decimal.NewFromInt(19),
			}},
			{MovementDetail: entity.MovementDetail{
				ProductReference: "BLUS-LINO-NAT",
				Quantity:         decimal.NewFromInt(1),
				UnitPrice:        decimal.NewFromInt(30000),
			}, IsNewProduct: true},
		},
		Payments: []entity.PaymentDetail{
			{Method: entity.PaymentCash, Amount: decimal.NewFromInt(53800)},
		},
		Receivables: []entity.RelatedAccount{{Reference: "FV-001", Value: decimal.NewFromInt(1000)}},
	}
}

func TestRenderDraft_GeneraPDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	for _, mt := range entity.MovementTypes {
		t.Run(string(mt), func(t *testing.T) {
			out, err := g.RenderDraft(sampleDraft(mt))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
		})
	}
}

func TestRenderDraft_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator().RenderDraft(nil)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0,00",
		"25000":     "$25.000,00",
		"1234567.5": "$1.234.567,50",
		"-3800.456": "-$3.800,46",
		"999.999":   "$1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "100", thousands("100"))
	assert.Equal(t, "1.000.000", thousands("1000000"))
}
