package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/ledger/ledgertest"
	"github.com/orbis-erp/orbis-api/internal/application/purchasing"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

const (
	testCompanyID   = "co-1"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
	testOrderID     = "po-1"
	testLineID      = "pol-1"
)

// newHarnessConOrden siembra un producto y una orden de compra APPROVED de 10
// unidades a $100, con on_order ya sumado (como lo deja la aprobación).
func newHarnessConOrden(status string) *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega principal"})
	h.SeedProduct(entity.Product{
		ID: "prod-1", CompanyID: testCompanyID, SKU: "SKU-001",
		Name: "Caja de tornillos", Cost: decimal.Zero,
	})
	h.PurchaseOrders[testOrderID] = &entity.PurchaseOrder{
		ID:          testOrderID,
		CompanyID:   testCompanyID,
		SupplierID:  "sup-1",
		WarehouseID: testWarehouseID,
		Number:      "PO-000001",
		Status:      status,
		Lines: []*entity.PurchaseOrderLine{{
			ID:        testLineID,
			OrderID:   testOrderID,
			ProductID: "prod-1",
			Quantity:  decimal.NewFromInt(10),
			UnitCost:  decimal.NewFromInt(100),
		}},
	}
	// La aprobación dejó las 10 unidades pedidas.
	_ = ledger.New().AdjustOnOrder(h.Repos(), testCompanyID, "prod-1", testWarehouseID, decimal.NewFromInt(10), time.Now())
	return h
}

func receiptRequest(qty int64) dto.CreateGoodsReceiptRequest {
	return dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: testOrderID,
		Lines: []dto.GoodsReceiptLineInput{{
			OrderLineID: testLineID,
			Quantity:    decimal.NewFromInt(qty),
		}},
	}
}

// Recepción parcial: entra el stock, baja on_order, acumula lo recibido en la
// línea y la orden pasa a PARTIAL.
func TestGoodsReceipt_RecepcionParcial(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(4))
	require.NoError(t, err)

	assert.Equal(t, "GRN-000001", resp.Number)
	assert.Equal(t, entity.StatusPosted, resp.Status)
	assert.Equal(t, entity.StatusPartial, resp.OrderStatus, "recibir 4 de 10 deja la orden PARTIAL")

	stock := h.Stock(testCompanyID, "prod-1", testWarehouseID)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(4)), "el físico debe subir a 4")
	assert.True(t, stock.OnOrder.Equal(decimal.NewFromInt(6)), "lo recibido deja de estar pedido")

	order := h.PurchaseOrders[testOrderID]
	assert.Equal(t, entity.StatusPartial, order.Status)
	assert.True(t, order.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(4)))

	require.Len(t, h.Movements, 1)
	mov := h.Movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, entity.DocTypeGoodsReceipt, mov.Ref.Type)
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromInt(100)),
		"sin costo explícito se recibe al costo de la línea del PO")
}

// Dos recepciones que completan la orden → COMPLETED.
func TestGoodsReceipt_RecepcionCompleta(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(4))
	require.NoError(t, err)
	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(6))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCompleted, resp.OrderStatus)
	assert.Equal(t, entity.StatusCompleted, h.PurchaseOrders[testOrderID].Status)
	assert.True(t, h.Stock(testCompanyID, "prod-1", testWarehouseID).Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, h.Stock(testCompanyID, "prod-1", testWarehouseID).OnOrder.IsZero())
	assert.Equal(t, "GRN-000002", resp.Number, "el consecutivo GRN avanza por recepción")
}

// Sobre-recepción: más de lo pendiente se rechaza y nada cambia.
func TestGoodsReceipt_RechazaSobreRecepcion(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(11))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, h.Stock(testCompanyID, "prod-1", testWarehouseID).Quantity.IsZero(),
		"una recepción rechazada no debe mover stock")
	assert.Empty(t, h.Movements)
	assert.Equal(t, entity.StatusApproved, h.PurchaseOrders[testOrderID].Status)
}

// Segunda recepción limitada a lo pendiente, no a lo ordenado.
func TestGoodsReceipt_PendienteDescuentaLoYaRecibido(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(7))
	require.NoError(t, err)

	// Quedan 3 pendientes: recibir 4 debe rechazarse.
	_, err = uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Recibir contra una orden DRAFT o ya completada → estado inválido.
func TestGoodsReceipt_EstadoInvalidoDeLaOrden(t *testing.T) {
	for _, status := range []string{entity.StatusDraft, entity.StatusCompleted, entity.StatusCancelled} {
		h := newHarnessConOrden(status)
		uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

		_, err := uc.Create(context.Background(), testCompanyID, testUserID, receiptRequest(1))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "estado %s no admite recepción", status)
	}
}

// La orden de otra empresa no es visible.
func TestGoodsReceipt_OrdenDeOtraEmpresa(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	_, err := uc.Create(context.Background(), "co-otra", testUserID, receiptRequest(1))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Costo explícito de la recepción manda sobre el de la línea del PO.
func TestGoodsReceipt_CostoExplicito(t *testing.T) {
	h := newHarnessConOrden(entity.StatusApproved)
	uc := purchasing.NewGoodsReceiptUseCase(h, ledger.New())

	costo := decimal.NewFromInt(120)
	in := receiptRequest(10)
	in.Lines[0].UnitCost = &costo
	_, err := uc.Create(context.Background(), testCompanyID, testUserID, in)
	require.NoError(t, err)

	require.Len(t, h.Movements, 1)
	assert.True(t, h.Movements[0].UnitCost.Equal(costo))
	assert.True(t, h.Products["prod-1"].Cost.Equal(costo),
		"el costo promedio sobre stock cero es el costo de la entrada")
}
