package movement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

var payloadNow = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

func payloadJSON(t *testing.T, dr *entity.MovementDraft) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(BuildCreatePayload(dr, payloadNow))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestBuildCreatePayload_VentaClienteNuevo(t *testing.T) {
	dr := reduceAll(t, saleDraft(t, "2"), testCatalog(),
		SetClient{Code: "C-77"},
		SetNewClient{Name: "Ana Gómez", Email: "ana@example.com", Phone: "3001234567"},
		SetNotes{Notes: "entrega en tienda"},
	)
	p := payloadJSON(t, dr)

	assert.Equal(t, "SALE", p["processType"])
	assert.Equal(t, "2026-03-15", p["documentDate"])
	assert.Equal(t, "C-77", p["clientCode"])
	assert.Equal(t, "Ana Gómez", p["clientName"])
	assert.Equal(t, "entrega en tienda", p["notes"])
	assert.NotContains(t, p, "retentionRate")
	assert.NotContains(t, p, "receivablesToSettle")
	assert.NotContains(t, p, "originLocation")

	details := p["details"].([]interface{})
	require.Len(t, details, 1)
	line := details[0].(map[string]interface{})
	assert.Equal(t, "CAM-AZUL", line["productReference"])
	assert.EqualValues(t, 2, line["quantity"])
	assert.NotContains(t, line, "productSalePrice")

	pays := p["payments"].([]interface{})
	require.Len(t, pays, 1)
	assert.EqualValues(t, 90000, pays[0].(map[string]interface{})["amount"])
}

func TestBuildCreatePayload_ClienteExistenteSinCamposNuevos(t *testing.T) {
	p := payloadJSON(t, saleDraft(t, "1"))
	assert.Equal(t, "C-01", p["clientCode"])
	assert.NotContains(t, p, "clientName")
	assert.NotContains(t, p, "clientEmail")
}

func TestBuildCreatePayload_CompraTarifasYProductoNuevo(t *testing.T) {
	dr := reduceAll(t, draftOf(t, entity.MovementPurchase), testCatalog(),
		SetSupplier{Code: "P-01"},
		SetPurchaseRates{RetentionRate: d("2.5")},
		AddLine{},
		SelectProduct{Index: 0, Typed: "Blusa de lino natural"},
		UpdateLine{Index: 0, Quantity: ptr(d("5")), UnitPrice: ptr(d("1000"))},
	)
	p := payloadJSON(t, dr)

	assert.Equal(t, "P-01", p["supplierCode"])
	assert.EqualValues(t, 2.5, p["retentionRate"])
	assert.NotContains(t, p, "deductionRate", "tarifa en cero no viaja")
	assert.NotContains(t, p, "clientCode")

	line := p["details"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "BLUS-LINO-NAT", line["productReference"])
	assert.EqualValues(t, 1000, line["productSalePrice"], "sin precio de venta se usa el costo")

	dr = reduceAll(t, dr, testCatalog(), UpdateLine{Index: 0, ProductSalePrice: ptr(d("1800"))})
	line = payloadJSON(t, dr)["details"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 1800, line["productSalePrice"])
}

func TestBuildCreatePayload_Recibo(t *testing.T) {
	dr := reduceAll(t, receiptWithStatement(t), testCatalog(),
		ToggleSettlement{Reference: "FV-001"},
	)
	p := payloadJSON(t, dr)

	assert.Empty(t, p["details"], "el recibo no lleva líneas")
	settle := p["receivablesToSettle"].([]interface{})
	require.Len(t, settle, 1)
	assert.Equal(t, "FV-001", settle[0].(map[string]interface{})["reference"])
	assert.EqualValues(t, 10000, settle[0].(map[string]interface{})["value"])
}

func TestBuildCreatePayload_FleteYFecha(t *testing.T) {
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	dr := reduceAll(t, draftOf(t, entity.MovementExpense), testCatalog(),
		SetExpenseCategory{Category: entity.ExpenseCategoryShipping},
		SetRoute{Origin: "Bodega", Destination: "Tienda", RelatedMovementID: "mov-9"},
		UpdatePayment{Index: 0, Amount: ptr(d("30000"))},
		SetDocumentDate{Date: &date},
	)
	p := payloadJSON(t, dr)

	assert.Equal(t, "2026-02-28", p["documentDate"])
	assert.Equal(t, "shipping", p["expenseCategory"])
	assert.Equal(t, "Bodega", p["originLocation"])
	assert.Equal(t, "Tienda", p["destinationLocation"])
	assert.Equal(t, "mov-9", p["relatedMovementId"])
	assert.Empty(t, p["details"])
}
