package movement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestiva/internal/domain/entity"
)

func testCatalog() Catalog {
	return Catalog{
		Clients:   []entity.Client{{ID: "1", Code: "C-01", Name: "Tienda La Esquina"}},
		Suppliers: []entity.Supplier{{ID: "2", Code: "P-01", Name: "Textiles del Valle"}},
		Products: []entity.Product{
			{ID: "10", Reference: "CAM-AZUL", Description: "Camisa azul", SalePrice: d("45000"), CostPrice: d("28000"), Stock: d("10")},
			{ID: "11", Reference: "PANT-001", Description: "Pantalón drill", SalePrice: d("80000"), CostPrice: d("50000"), Stock: d("2")},
		},
	}
}

func draftOf(t *testing.T, typ entity.MovementType) *entity.MovementDraft {
	t.Helper()
	dr, err := NewDraft("d-1", "u-1", "co-1", typ, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return dr
}

func TestResolveClient_VentaClienteNuevo(t *testing.T) {
	dr := draftOf(t, entity.MovementSale)
	cat := testCatalog()

	ResolveClient(dr, "C-99", cat)
	assert.True(t, dr.IsNewClient)
	assert.Equal(t, "C-99", dr.ClientCode)

	dr.NewClient = entity.NewClientInfo{Name: "Ana", Phone: "300"}
	ResolveClient(dr, "c-01", cat)
	assert.False(t, dr.IsNewClient, "código existente quita la marca")
	assert.Equal(t, "C-01", dr.ClientCode, "se toma el código del catálogo")
	assert.Empty(t, dr.NewClient.Name, "se limpian los campos del cliente nuevo")
}

func TestResolveClient_ReciboNoCreaClientes(t *testing.T) {
	dr := draftOf(t, entity.MovementReceipt)
	ResolveClient(dr, "C-99", testCatalog())
	assert.False(t, dr.IsNewClient)
}

func TestResolveLineProduct_ProductoExistente(t *testing.T) {
	cat := testCatalog()

	sale := draftOf(t, entity.MovementSale)
	sale.Lines = []entity.DraftLine{{}}
	require.NoError(t, ResolveLineProduct(sale, 0, "cam-azul", cat))
	assert.Equal(t, "CAM-AZUL", sale.Lines[0].ProductReference)
	assertDec(t, "45000", sale.Lines[0].UnitPrice, "venta usa precio de venta")
	assert.False(t, sale.Lines[0].IsNewProduct)

	purchase := draftOf(t, entity.MovementPurchase)
	purchase.Lines = []entity.DraftLine{{}}
	require.NoError(t, ResolveLineProduct(purchase, 0, "CAM-AZUL", cat))
	assertDec(t, "28000", purchase.Lines[0].UnitPrice, "compra usa costo")
	require.NotNil(t, purchase.Lines[0].UnitCost)
}

// Compra con descripción libre sin coincidencia: producto nuevo con referencia derivada.
func TestResolveLineProduct_DescripcionGeneraReferencia(t *testing.T) {
	dr := draftOf(t, entity.MovementPurchase)
	dr.Lines = []entity.DraftLine{{}}

	require.NoError(t, ResolveLineProduct(dr, 0, "Blusa de lino natural", testCatalog()))
	l := dr.Lines[0]
	assert.True(t, l.IsNewProduct)
	assert.Equal(t, "BLUS-LINO-NAT", l.ProductReference)
	assert.Equal(t, "Blusa de lino natural", l.Description)
}

func TestResolveLineProduct_ReferenciaDirecta(t *testing.T) {
	dr := draftOf(t, entity.MovementPurchase)
	dr.Lines = []entity.DraftLine{{}, {}}
	dr.Lines[1].Description = "Medias tobilleras"

	require.NoError(t, ResolveLineProduct(dr, 0, "MED-002", testCatalog()))
	assert.True(t, dr.Lines[0].IsNewProduct)
	assert.Equal(t, "MED-002", dr.Lines[0].ProductReference)
	assert.Equal(t, "MED-002", dr.Lines[0].Description, "sin descripción se usa lo digitado")

	require.NoError(t, ResolveLineProduct(dr, 1, "MED-003", testCatalog()))
	assert.Equal(t, "Medias tobilleras", dr.Lines[1].Description, "la descripción existente se conserva")
}

func TestResolveLineProduct_NoRepiteReferenciaEntreLineas(t *testing.T) {
	dr := draftOf(t, entity.MovementPurchase)
	dr.Lines = []entity.DraftLine{{}, {}}
	cat := testCatalog()

	require.NoError(t, ResolveLineProduct(dr, 0, "Blusa de lino natural", cat))
	require.NoError(t, ResolveLineProduct(dr, 1, "Blusa de lino natural", cat))
	assert.Equal(t, "BLUS-LINO-NAT", dr.Lines[0].ProductReference)
	assert.Equal(t, "BLUS-LINO-NAT-1", dr.Lines[1].ProductReference)
}

func TestResolveLineProduct_IndiceInvalido(t *testing.T) {
	dr := draftOf(t, entity.MovementPurchase)
	assert.ErrorIs(t, ResolveLineProduct(dr, 3, "X", testCatalog()), ErrIndexOutOfRange)
}
