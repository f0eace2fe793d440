package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/ledger/ledgertest"
	"github.com/orbis-erp/orbis-api/internal/application/production"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

const (
	testCompanyID   = "co-1"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
)

// newHarness siembra la bodega de planta, el producto terminado y dos materias
// primas con stock.
func newHarness() *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Planta"})
	h.SeedProduct(entity.Product{
		ID: "prod-final", CompanyID: testCompanyID, SKU: "MESA-01", Name: "Mesa de pino",
	})
	h.SeedProduct(entity.Product{
		ID: "mat-tablero", CompanyID: testCompanyID, SKU: "TAB-01", Name: "Tablero",
		Cost: decimal.NewFromInt(50),
	})
	h.SeedProduct(entity.Product{
		ID: "mat-pata", CompanyID: testCompanyID, SKU: "PAT-01", Name: "Pata torneada",
		Cost: decimal.NewFromInt(10),
	})
	h.SeedStock(testCompanyID, "mat-tablero", testWarehouseID, decimal.NewFromInt(20))
	h.SeedStock(testCompanyID, "mat-pata", testWarehouseID, decimal.NewFromInt(80))
	return h
}

func newUseCase(h *ledgertest.Harness) *production.UseCase {
	return production.NewUseCase(h, ledger.New(), h.Repos().ProductionOrders)
}

func createOrder(t *testing.T, h *ledgertest.Harness, uc *production.UseCase) *dto.ProductionOrderResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateProductionOrderRequest{
		WarehouseID: testWarehouseID,
		ProductID:   "prod-final",
		PlannedQty:  decimal.NewFromInt(10),
		Components: []dto.ProductionComponentInput{
			{ProductID: "mat-tablero", RequiredQty: decimal.NewFromInt(10)},
			{ProductID: "mat-pata", RequiredQty: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	return resp
}

// Crear la orden compromete los componentes sin tocar el físico ni el ledger.
func TestProduction_CrearComprometeComponentes(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	resp := createOrder(t, h, uc)
	assert.Equal(t, "PRD-000001", resp.Number)
	assert.Equal(t, entity.StatusPending, resp.Status)

	tablero := h.Stock(testCompanyID, "mat-tablero", testWarehouseID)
	assert.True(t, tablero.Committed.Equal(decimal.NewFromInt(10)), "el tablero queda comprometido")
	assert.True(t, tablero.Quantity.Equal(decimal.NewFromInt(20)), "el físico no se toca al crear")
	assert.True(t, h.Stock(testCompanyID, "mat-pata", testWarehouseID).Committed.Equal(decimal.NewFromInt(40)))
	assert.Empty(t, h.Movements, "comprometer no genera movimientos de ledger")
}

// Emitir materiales descuenta el físico, acumula lo emitido y libera el
// compromiso en la misma cantidad.
func TestProduction_EmitirDescuentaYLiberaCompromiso(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)
	order := createOrder(t, h, uc)

	resp, err := uc.Issue(context.Background(), testCompanyID, testUserID, order.ID, dto.IssueMaterialsRequest{
		Lines: []dto.IssueLineInput{
			{ComponentID: order.Components[0].ID, Quantity: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)

	tablero := h.Stock(testCompanyID, "mat-tablero", testWarehouseID)
	assert.True(t, tablero.Quantity.Equal(decimal.NewFromInt(14)), "el físico baja con la emisión")
	assert.True(t, tablero.Committed.Equal(decimal.NewFromInt(4)), "lo emitido libera compromiso")

	assert.True(t, resp.Components[0].IssuedQty.Equal(decimal.NewFromInt(6)))

	require.Len(t, h.Movements, 1)
	mov := h.Movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, entity.DocTypeProductionIssue, mov.Ref.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-6)))
}

// No se puede emitir más de lo requerido pendiente del componente.
func TestProduction_EmitirMasDeLoRequerido(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)
	order := createOrder(t, h, uc)

	_, err := uc.Issue(context.Background(), testCompanyID, testUserID, order.ID, dto.IssueMaterialsRequest{
		Lines: []dto.IssueLineInput{
			{ComponentID: order.Components[0].ID, Quantity: decimal.NewFromInt(11)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, h.Stock(testCompanyID, "mat-tablero", testWarehouseID).Quantity.Equal(decimal.NewFromInt(20)))
}

// Emitir sin stock físico aborta la emisión completa.
func TestProduction_EmitirSinStockAborta(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "mat-tablero", testWarehouseID, decimal.NewFromInt(2))
	uc := newUseCase(h)
	order := createOrder(t, h, uc)

	_, err := uc.Issue(context.Background(), testCompanyID, testUserID, order.ID, dto.IssueMaterialsRequest{
		Lines: []dto.IssueLineInput{
			{ComponentID: order.Components[1].ID, Quantity: decimal.NewFromInt(40)},
			{ComponentID: order.Components[0].ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.Stock(testCompanyID, "mat-pata", testWarehouseID).Quantity.Equal(decimal.NewFromInt(80)),
		"la línea buena debe revertirse con la emisión")
	assert.Empty(t, h.Movements)
}

// Recibir producto terminado ingresa stock al costo indicado y mueve el estado
// con la regla de completitud: parcial primero, completada al llegar al plan.
func TestProduction_RecibirTerminadoAvanzaEstado(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)
	order := createOrder(t, h, uc)

	resp, err := uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, dto.ReceiveFinishedRequest{
		Quantity: decimal.NewFromInt(4),
		UnitCost: decimal.NewFromInt(90),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPartial, resp.Status, "recibir 4 de 10 deja la orden PARTIAL")
	assert.True(t, h.Stock(testCompanyID, "prod-final", testWarehouseID).Quantity.Equal(decimal.NewFromInt(4)))

	resp, err = uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, dto.ReceiveFinishedRequest{
		Quantity: decimal.NewFromInt(6),
		UnitCost: decimal.NewFromInt(90),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, resp.Status)
	assert.True(t, h.Stock(testCompanyID, "prod-final", testWarehouseID).Quantity.Equal(decimal.NewFromInt(10)))

	// La orden completada ya no admite más recepciones.
	_, err = uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, dto.ReceiveFinishedRequest{
		Quantity: decimal.NewFromInt(1),
		UnitCost: decimal.NewFromInt(90),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// El producto terminado entra como movimiento IN referenciando la orden.
func TestProduction_RecepcionGeneraEntradaDeLedger(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)
	order := createOrder(t, h, uc)

	_, err := uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, dto.ReceiveFinishedRequest{
		Quantity: decimal.NewFromInt(10),
		UnitCost: decimal.NewFromInt(90),
	})
	require.NoError(t, err)

	require.Len(t, h.Movements, 1)
	mov := h.Movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, entity.DocTypeProductionReceipt, mov.Ref.Type)
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromInt(90)))
}
