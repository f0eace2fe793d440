package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/ledger/ledgertest"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID   = "co-1"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// newHarness arma el estado en memoria con la bodega de la empresa, una bodega
// ajena, un producto simple y uno por lote.
func newHarness() *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega principal"})
	h.SeedWarehouse(entity.Warehouse{ID: "wh-ajena", CompanyID: "co-otra", Name: "Bodega de otra empresa"})
	h.SeedProduct(entity.Product{
		ID:        "prod-simple",
		CompanyID: testCompanyID,
		SKU:       "SKU-001",
		Name:      "Tornillo 3mm",
		Cost:      decimal.Zero,
	})
	h.SeedProduct(entity.Product{
		ID:           "prod-lote",
		CompanyID:    testCompanyID,
		SKU:          "SKU-002",
		Name:         "Antibiótico 500mg",
		Cost:         decimal.NewFromInt(10),
		BatchManaged: true,
	})
	return h
}

func entryInput(productID string, qty, cost int64) ledger.ApplyInput {
	unitCost := decimal.NewFromInt(cost)
	return ledger.ApplyInput{
		CompanyID:     testCompanyID,
		ProductID:     productID,
		WarehouseID:   testWarehouseID,
		Type:          entity.MovementTypeIN,
		Quantity:      decimal.NewFromInt(qty),
		UnitCost:      &unitCost,
		TransactionID: "tx-1",
		Ref:           entity.DocumentRef{Type: entity.DocTypeManual},
		UserID:        testUserID,
	}
}

func exitInput(productID string, qty int64) ledger.ApplyInput {
	return ledger.ApplyInput{
		CompanyID:     testCompanyID,
		ProductID:     productID,
		WarehouseID:   testWarehouseID,
		Type:          entity.MovementTypeOUT,
		Quantity:      decimal.NewFromInt(qty),
		TransactionID: "tx-1",
		Ref:           entity.DocumentRef{Type: entity.DocTypeManual},
		UserID:        testUserID,
	}
}

func expiry(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada suma al físico, recalcula el costo promedio ponderado y graba
// exactamente UN movimiento con cantidad positiva.
func TestApplyEntry_ActualizaSaldoCostoYMovimiento(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	// 10 unidades a $100 sobre stock cero → costo promedio 100.
	require.NoError(t, l.ApplyEntry(h.Repos(), entryInput("prod-simple", 10, 100), testNow))

	stock := h.Stock(testCompanyID, "prod-simple", testWarehouseID)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)), "el físico debe quedar en 10")

	product := h.Products["prod-simple"]
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(100)),
		"el costo promedio debe ser 100 tras la primera entrada")

	require.Len(t, h.Movements, 1, "debe grabarse exactamente un movimiento por entrada")
	mov := h.Movements[0]
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(10)), "entrada con cantidad positiva")
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, testUserID, mov.CreatedBy)
}

// Costo promedio ponderado: ((10*100) + (10*200)) / 20 = 150.
func TestApplyEntry_CostoPromedioPonderado(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	require.NoError(t, l.ApplyEntry(h.Repos(), entryInput("prod-simple", 10, 100), testNow))
	require.NoError(t, l.ApplyEntry(h.Repos(), entryInput("prod-simple", 10, 200), testNow))

	product := h.Products["prod-simple"]
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(150)),
		"el costo promedio ponderado debe ser 150, fue %s", product.Cost)
}

// Producto con lote: la entrada exige número de lote.
func TestApplyEntry_ProductoPorLoteExigeLote(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	err := l.ApplyEntry(h.Repos(), entryInput("prod-lote", 5, 10), testNow)
	assert.ErrorIs(t, err, domain.ErrBatchRequired)
	assert.Empty(t, h.Movements, "una entrada rechazada no debe grabar movimiento")
}

// Producto con lote: la entrada crea o incrementa el lote indicado.
func TestApplyEntry_CreaLote(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	in := entryInput("prod-lote", 5, 10)
	in.BatchNumber = "L-001"
	in.ExpiryDate = expiry(2027, 1, 1)
	require.NoError(t, l.ApplyEntry(h.Repos(), in, testNow))

	batch := h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-001")
	assert.True(t, batch.Quantity.Equal(decimal.NewFromInt(5)), "el lote debe quedar con saldo 5")
	require.NotNil(t, batch.ExpiryDate)

	// Segunda entrada al mismo lote: incrementa, no duplica.
	require.NoError(t, l.ApplyEntry(h.Repos(), in, testNow))
	batch = h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-001")
	assert.True(t, batch.Quantity.Equal(decimal.NewFromInt(10)))
}

// Entrada sin costo unitario → inválida.
func TestApplyEntry_SinCostoUnitario(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	in := entryInput("prod-simple", 5, 0)
	in.UnitCost = nil
	err := l.ApplyEntry(h.Repos(), in, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto de otra empresa → prohibido.
func TestApplyEntry_ProductoDeOtraEmpresa(t *testing.T) {
	h := newHarness()
	h.SeedProduct(entity.Product{ID: "prod-ajeno", CompanyID: "co-otra", SKU: "X"})
	l := ledger.New()

	err := l.ApplyEntry(h.Repos(), entryInput("prod-ajeno", 5, 10), testNow)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Bodega de otra empresa o inexistente → no encontrada, sin tocar nada.
func TestApplyEntry_BodegaAjenaOInexistente(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	in := entryInput("prod-simple", 5, 10)
	in.WarehouseID = "wh-ajena"
	assert.ErrorIs(t, l.ApplyEntry(h.Repos(), in, testNow), domain.ErrNotFound,
		"una bodega ajena se responde como inexistente")

	in.WarehouseID = "wh-fantasma"
	assert.ErrorIs(t, l.ApplyEntry(h.Repos(), in, testNow), domain.ErrNotFound)

	assert.Empty(t, h.Movements)
	assert.True(t, h.Stock(testCompanyID, "prod-simple", "wh-ajena").Quantity.IsZero())
}

// La salida valida la bodega igual que la entrada.
func TestApplyExit_BodegaAjenaRechazada(t *testing.T) {
	h := newHarness()
	l := ledger.New()
	require.NoError(t, l.ApplyEntry(h.Repos(), entryInput("prod-simple", 10, 100), testNow))

	out := exitInput("prod-simple", 5)
	out.WarehouseID = "wh-ajena"
	assert.ErrorIs(t, l.ApplyExit(h.Repos(), out, testNow), domain.ErrNotFound)
	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).Quantity.Equal(decimal.NewFromInt(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

// La salida que excede el saldo se rechaza con ErrInsufficientStock y no toca
// el stock: nunca se recorta en silencio.
func TestApplyExit_RechazaSinSaldo(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(3))
	l := ledger.New()

	err := l.ApplyExit(h.Repos(), exitInput("prod-simple", 5), testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock := h.Stock(testCompanyID, "prod-simple", testWarehouseID)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(3)),
		"un rechazo no debe modificar el saldo")
	assert.Empty(t, h.Movements, "un rechazo no debe grabar movimiento")
}

// La salida registra el movimiento con cantidad negativa al costo promedio.
func TestApplyExit_MovimientoNegativoAlCostoPromedio(t *testing.T) {
	h := newHarness()
	l := ledger.New()
	require.NoError(t, l.ApplyEntry(h.Repos(), entryInput("prod-simple", 10, 100), testNow))

	require.NoError(t, l.ApplyExit(h.Repos(), exitInput("prod-simple", 4), testNow))

	stock := h.Stock(testCompanyID, "prod-simple", testWarehouseID)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(6)))

	require.Len(t, h.Movements, 2)
	mov := h.Movements[1]
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-4)), "salida con cantidad negativa")
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromInt(100)), "salida al costo promedio vigente")
	assert.True(t, mov.TotalCost.Equal(decimal.NewFromInt(-400)))
}

// FEFO: sin lote explícito, se debita primero el lote con vencimiento más
// próximo; los lotes sin vencimiento quedan al final.
func TestApplyExit_FEFODebitaPrimerVencimiento(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "prod-lote", testWarehouseID, decimal.NewFromInt(30))
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-LEJANO", Quantity: decimal.NewFromInt(10), ExpiryDate: expiry(2027, 6, 1),
	})
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-PROXIMO", Quantity: decimal.NewFromInt(10), ExpiryDate: expiry(2026, 6, 1),
	})
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-SIN-VENC", Quantity: decimal.NewFromInt(10),
	})
	l := ledger.New()

	// 15 unidades: 10 del próximo a vencer + 5 del siguiente.
	require.NoError(t, l.ApplyExit(h.Repos(), exitInput("prod-lote", 15), testNow))

	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-PROXIMO").Quantity.IsZero(),
		"el lote con vencimiento más próximo debe agotarse primero")
	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-LEJANO").Quantity.Equal(decimal.NewFromInt(5)),
		"el segundo lote debe aportar el resto")
	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-SIN-VENC").Quantity.Equal(decimal.NewFromInt(10)),
		"los lotes sin vencimiento van al final y no deben tocarse")
}

// Cuando la asignación FEFO cae en un único lote, el movimiento lo referencia.
func TestApplyExit_MovimientoConLoteUnico(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "prod-lote", testWarehouseID, decimal.NewFromInt(10))
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-001", Quantity: decimal.NewFromInt(10), ExpiryDate: expiry(2027, 1, 1),
	})
	l := ledger.New()

	require.NoError(t, l.ApplyExit(h.Repos(), exitInput("prod-lote", 4), testNow))

	require.Len(t, h.Movements, 1)
	assert.Equal(t, "L-001", h.Movements[0].BatchNumber,
		"asignación en un solo lote debe quedar referenciada en el movimiento")
}

// Lote explícito inexistente → ErrBatchNotFound.
func TestApplyExit_LoteExplicitoInexistente(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "prod-lote", testWarehouseID, decimal.NewFromInt(10))
	l := ledger.New()

	in := exitInput("prod-lote", 4)
	in.BatchNumber = "L-NO-EXISTE"
	err := l.ApplyExit(h.Repos(), in, testNow)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

// El saldo por lotes manda: si el físico alcanza pero los lotes no, se rechaza.
func TestApplyExit_LotesInsuficientesRechazan(t *testing.T) {
	h := newHarness()
	h.SeedStock(testCompanyID, "prod-lote", testWarehouseID, decimal.NewFromInt(20))
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-001", Quantity: decimal.NewFromInt(5),
	})
	l := ledger.New()

	err := l.ApplyExit(h.Repos(), exitInput("prod-lote", 10), testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-001").Quantity.Equal(decimal.NewFromInt(5)),
		"el lote no debe quedar debitado parcialmente")
}

// Cantidad cero o negativa → inválida en ambas direcciones.
func TestApply_CantidadNoPositiva(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	in := exitInput("prod-simple", 0)
	assert.ErrorIs(t, l.ApplyExit(h.Repos(), in, testNow), domain.ErrInvalidInput)

	entrada := entryInput("prod-simple", 0, 10)
	assert.ErrorIs(t, l.ApplyEntry(h.Repos(), entrada, testNow), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades de planeación (OnOrder / Committed)
// ──────────────────────────────────────────────────────────────────────────────

// OnOrder y Committed son planeación: se ajustan sin generar movimiento y
// nunca bajan de cero.
func TestAdjustOnOrder_SinMovimientoYPisoCero(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	require.NoError(t, l.AdjustOnOrder(h.Repos(), testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(8), testNow))
	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).OnOrder.Equal(decimal.NewFromInt(8)))
	assert.Empty(t, h.Movements, "ajustar lo pedido no genera movimiento de ledger")

	// Resta mayor que el acumulado: piso en cero, no negativo.
	require.NoError(t, l.AdjustOnOrder(h.Repos(), testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(-20), testNow))
	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).OnOrder.IsZero())
}

func TestAdjustCommitted_SinMovimientoYPisoCero(t *testing.T) {
	h := newHarness()
	l := ledger.New()

	require.NoError(t, l.AdjustCommitted(h.Repos(), testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(5), testNow))
	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).Committed.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, h.Movements)

	require.NoError(t, l.AdjustCommitted(h.Repos(), testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(-9), testNow))
	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).Committed.IsZero())
}
