package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	appinv "github.com/orbis-erp/orbis-api/internal/application/inventory"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/ledger/ledgertest"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

const (
	testCompanyID = "co-1"
	testUserID    = "user-1"
	bodegaOrigen  = "wh-origen"
	bodegaDestino = "wh-destino"
)

// newHarness siembra un producto simple y un producto por lote con stock en la
// bodega de origen.
func newHarness() *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: bodegaOrigen, CompanyID: testCompanyID, Name: "Bodega origen"})
	h.SeedWarehouse(entity.Warehouse{ID: bodegaDestino, CompanyID: testCompanyID, Name: "Bodega destino"})
	h.SeedProduct(entity.Product{
		ID: "prod-simple", CompanyID: testCompanyID, SKU: "CAJ-001", Name: "Caja plástica",
		Price: decimal.NewFromInt(9000), Cost: decimal.NewFromInt(4000),
	})
	h.SeedProduct(entity.Product{
		ID: "prod-lote", CompanyID: testCompanyID, SKU: "VAC-010", Name: "Vacuna refrigerada",
		Price: decimal.NewFromInt(30000), Cost: decimal.NewFromInt(15000),
		BatchManaged: true,
	})
	h.SeedStock(testCompanyID, "prod-simple", bodegaOrigen, decimal.NewFromInt(30))
	h.SeedStock(testCompanyID, "prod-lote", bodegaOrigen, decimal.NewFromInt(12))
	vence := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: bodegaOrigen,
		BatchNumber: "L-2026-12", Quantity: decimal.NewFromInt(12),
		ExpiryDate: &vence, Manufacturer: "BioLab",
	})
	return h
}

func newUseCase(h *ledgertest.Harness) *appinv.TransferUseCase {
	return appinv.NewTransferUseCase(h, ledger.New())
}

// Un traslado posteado descuenta origen, acredita destino y deja dos
// movimientos TRANSFER por línea compartiendo el mismo transaction_id.
func TestTransfer_TrasladoSimple(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "TRF-000001", resp.Number)
	assert.Equal(t, entity.StatusPosted, resp.Status)
	assert.Equal(t, 1, resp.LineCount)

	assert.True(t, h.Stock(testCompanyID, "prod-simple", bodegaOrigen).Quantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, h.Stock(testCompanyID, "prod-simple", bodegaDestino).Quantity.Equal(decimal.NewFromInt(10)))

	require.Len(t, h.Movements, 2, "cada línea deja salida en origen y entrada en destino")
	for _, mov := range h.Movements {
		assert.Equal(t, entity.MovementTypeTRANSFER, mov.Type)
		assert.Equal(t, entity.DocTypeStockTransfer, mov.Ref.Type)
		assert.Equal(t, resp.ID, mov.TransactionID)
	}
	assert.True(t, h.Movements[0].Quantity.IsNegative(), "la salida en origen va en negativo")
	assert.True(t, h.Movements[1].Quantity.Equal(decimal.NewFromInt(10)))
}

// El lote conserva su identidad (vencimiento y fabricante) en la bodega destino.
func TestTransfer_LoteConservaIdentidadEnDestino(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(5), BatchNumber: "L-2026-12"},
		},
	})
	require.NoError(t, err)

	origen := h.Batch(testCompanyID, "prod-lote", bodegaOrigen, "L-2026-12")
	assert.True(t, origen.Quantity.Equal(decimal.NewFromInt(7)))

	destino := h.Batch(testCompanyID, "prod-lote", bodegaDestino, "L-2026-12")
	require.Equal(t, "L-2026-12", destino.BatchNumber, "el lote debe existir en la bodega destino")
	assert.True(t, destino.Quantity.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, destino.ExpiryDate)
	assert.Equal(t, time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), *destino.ExpiryDate)
	assert.Equal(t, "BioLab", destino.Manufacturer)
}

// Trasladar un producto por lote sin indicar el lote es un error del llamador.
func TestTransfer_ProductoPorLoteExigeLote(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrBatchRequired)
}

func TestTransfer_LoteInexistenteEnOrigen(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(2), BatchNumber: "L-NO-EXISTE"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestTransfer_MismaBodegaRechazado(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaOrigen,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si la segunda línea falla por stock, la primera también se revierte.
func TestTransfer_RevierteCompletoSinStock(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(10)},
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(99), BatchNumber: "L-2026-12"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.Stock(testCompanyID, "prod-simple", bodegaOrigen).Quantity.Equal(decimal.NewFromInt(30)),
		"el traslado entero debe revertirse")
	assert.True(t, h.Stock(testCompanyID, "prod-simple", bodegaDestino).Quantity.IsZero())
	assert.Empty(t, h.Movements)
	assert.Empty(t, h.Transfers)
}

// La bodega destino debe pertenecer a la empresa: un traslado hacia una bodega
// ajena se rechaza y la salida en origen se revierte.
func TestTransfer_BodegaDestinoAjena(t *testing.T) {
	h := newHarness()
	h.SeedWarehouse(entity.Warehouse{ID: "wh-ajena", CompanyID: "co-otra", Name: "Bodega ajena"})
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   "wh-ajena",
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, h.Stock(testCompanyID, "prod-simple", bodegaOrigen).Quantity.Equal(decimal.NewFromInt(30)),
		"la salida en origen debe revertirse")
	assert.Empty(t, h.Movements)
	assert.Empty(t, h.Transfers)
}

func TestTransfer_CantidadNoPositiva(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		Lines: []dto.TransferLineInput{
			{ProductID: "prod-simple", Quantity: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
