package pos_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/ledger/ledgertest"
	"github.com/orbis-erp/orbis-api/internal/application/pos"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

const (
	testCompanyID   = "co-1"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
)

// newHarness siembra la bodega del local y dos productos con stock: gaseosa
// (IVA 19%) y pan (exento).
func newHarness() *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Local centro"})
	h.SeedProduct(entity.Product{
		ID: "prod-gaseosa", CompanyID: testCompanyID, SKU: "GAS-350",
		Name: "Gaseosa 350ml", Price: decimal.NewFromInt(3000),
		Cost: decimal.NewFromInt(1500), TaxRate: decimal.NewFromFloat(0.19),
	})
	h.SeedProduct(entity.Product{
		ID: "prod-pan", CompanyID: testCompanyID, SKU: "PAN-001",
		Name: "Pan blandito", Price: decimal.NewFromInt(500),
		Cost: decimal.NewFromInt(200), TaxRate: decimal.Zero,
	})
	h.SeedStock(testCompanyID, "prod-gaseosa", testWarehouseID, decimal.NewFromInt(10))
	h.SeedStock(testCompanyID, "prod-pan", testWarehouseID, decimal.NewFromInt(10))
	return h
}

func checkoutRequest(lines ...dto.CheckoutLineInput) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		WarehouseID:   testWarehouseID,
		PaymentMethod: entity.PaymentCash,
		Lines:         lines,
	}
}

// Venta de dos líneas: descuenta stock, calcula totales con impuesto por
// producto y graba un movimiento por línea bajo la misma referencia.
func TestCheckout_VentaMultilinea(t *testing.T) {
	h := newHarness()
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	resp, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-gaseosa", Quantity: decimal.NewFromInt(2)},
		dto.CheckoutLineInput{ProductID: "prod-pan", Quantity: decimal.NewFromInt(3)},
	))
	require.NoError(t, err)

	// Neto: 2*3000 + 3*500 = 7500. IVA: 6000*0.19 = 1140.
	assert.True(t, resp.NetTotal.Equal(decimal.NewFromInt(7500)), "neto esperado 7500, fue %s", resp.NetTotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.NewFromInt(1140)), "IVA esperado 1140, fue %s", resp.TaxTotal)
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(8640)))
	assert.Equal(t, entity.StatusPosted, resp.Status)
	assert.Equal(t, "POS-000001", resp.Number)
	assert.Equal(t, 2, resp.LineCount)

	assert.True(t, h.Stock(testCompanyID, "prod-gaseosa", testWarehouseID).Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, h.Stock(testCompanyID, "prod-pan", testWarehouseID).Quantity.Equal(decimal.NewFromInt(7)))

	require.Len(t, h.Movements, 2, "un movimiento por línea")
	for _, mov := range h.Movements {
		assert.Equal(t, entity.DocTypePOSSale, mov.Ref.Type)
		assert.Equal(t, resp.ID, mov.TransactionID, "los movimientos comparten la transacción de la venta")
	}
}

// Todo o nada: si la segunda línea no tiene stock, la primera tampoco se
// descuenta y no queda venta ni movimiento alguno.
func TestCheckout_AbortaCompletoSiUnaLineaSinStock(t *testing.T) {
	h := newHarness()
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	_, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-gaseosa", Quantity: decimal.NewFromInt(2)},
		dto.CheckoutLineInput{ProductID: "prod-pan", Quantity: decimal.NewFromInt(99)},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.Stock(testCompanyID, "prod-gaseosa", testWarehouseID).Quantity.Equal(decimal.NewFromInt(10)),
		"la primera línea debe revertirse con la venta")
	assert.Empty(t, h.Movements, "una venta abortada no deja movimientos")
	assert.Empty(t, h.POSSales, "una venta abortada no se persiste")
}

// Precio de línea en cero toma el precio de lista del producto.
func TestCheckout_PrecioCeroUsaPrecioDeLista(t *testing.T) {
	h := newHarness()
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	resp, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-pan", Quantity: decimal.NewFromInt(1)},
	))
	require.NoError(t, err)
	assert.True(t, resp.NetTotal.Equal(decimal.NewFromInt(500)),
		"sin precio explícito debe facturarse al precio de lista")
}

// Precio explícito de línea manda sobre el de lista.
func TestCheckout_PrecioExplicitoManda(t *testing.T) {
	h := newHarness()
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	resp, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-pan", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(450)},
	))
	require.NoError(t, err)
	assert.True(t, resp.NetTotal.Equal(decimal.NewFromInt(450)))
}

// Cantidad no positiva → rechazo antes de abrir transacción.
func TestCheckout_CantidadNoPositiva(t *testing.T) {
	h := newHarness()
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	_, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-pan", Quantity: decimal.Zero},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La bodega del checkout debe pertenecer a la empresa del token: una bodega
// ajena o inexistente rechaza la venta sin mutar stock ni dejar movimientos.
func TestCheckout_BodegaAjenaOInexistenteRechazada(t *testing.T) {
	h := newHarness()
	h.SeedWarehouse(entity.Warehouse{ID: "wh-ajena", CompanyID: "co-otra", Name: "Bodega ajena"})
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	for _, warehouseID := range []string{"wh-ajena", "wh-inexistente"} {
		_, err := uc.Checkout(context.Background(), testCompanyID, testUserID, dto.CheckoutRequest{
			WarehouseID:   warehouseID,
			PaymentMethod: entity.PaymentCash,
			Lines: []dto.CheckoutLineInput{
				{ProductID: "prod-gaseosa", Quantity: decimal.NewFromInt(2)},
			},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound, "bodega %s debe rechazarse", warehouseID)
	}

	assert.True(t, h.Stock(testCompanyID, "prod-gaseosa", testWarehouseID).Quantity.Equal(decimal.NewFromInt(10)),
		"el stock de la empresa no debe mutar")
	assert.Empty(t, h.Movements)
	assert.Empty(t, h.POSSales)
}

// Producto de otra empresa no es visible para la venta.
func TestCheckout_ProductoAjeno(t *testing.T) {
	h := newHarness()
	h.SeedProduct(entity.Product{ID: "prod-ajeno", CompanyID: "co-otra", SKU: "X", Price: decimal.NewFromInt(100)})
	uc := pos.NewCheckoutUseCase(h, ledger.New())

	_, err := uc.Checkout(context.Background(), testCompanyID, testUserID, checkoutRequest(
		dto.CheckoutLineInput{ProductID: "prod-ajeno", Quantity: decimal.NewFromInt(1)},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
