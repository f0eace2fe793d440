package purchasing_test

import (
	"context"
	"testing"

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

// fakeSuppliers repositorio de proveedores en memoria.
type fakeSuppliers struct {
	byID map[string]*entity.Supplier
}

func (f *fakeSuppliers) Create(s *entity.Supplier) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSuppliers) GetByID(id string) (*entity.Supplier, error) {
	return f.byID[id], nil
}

func (f *fakeSuppliers) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range f.byID {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newOrderUseCase(h *ledgertest.Harness) *purchasing.PurchaseOrderUseCase {
	suppliers := &fakeSuppliers{byID: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", CompanyID: testCompanyID, Name: "Ferretería El Tornillo"},
	}}
	return purchasing.NewPurchaseOrderUseCase(h, ledger.New(), h.Repos().PurchaseOrders, suppliers)
}

func orderRequest(warehouseID string) dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		SupplierID:  "sup-1",
		WarehouseID: warehouseID,
		Lines: []dto.PurchaseOrderLineInput{{
			ProductID: "prod-1",
			Quantity:  decimal.NewFromInt(10),
			UnitCost:  decimal.NewFromInt(100),
		}},
	}
}

// Crear queda en DRAFT sin tocar inventario; aprobar suma lo ordenado al
// on_order de la bodega destino.
func TestPurchaseOrder_CrearYAprobar(t *testing.T) {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega principal"})
	h.SeedProduct(entity.Product{ID: "prod-1", CompanyID: testCompanyID, SKU: "SKU-001", Name: "Caja de tornillos"})
	uc := newOrderUseCase(h)

	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, orderRequest(testWarehouseID))
	require.NoError(t, err)
	assert.Equal(t, "PO-000001", resp.Number)
	assert.Equal(t, entity.StatusDraft, resp.Status)
	assert.True(t, h.Stock(testCompanyID, "prod-1", testWarehouseID).OnOrder.IsZero(),
		"crear no compromete on_order")

	approved, err := uc.Approve(context.Background(), testCompanyID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, approved.Status)
	assert.True(t, h.Stock(testCompanyID, "prod-1", testWarehouseID).OnOrder.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, h.Movements, "on_order es planeación, no deja movimiento de ledger")
}

// La bodega destino de la orden debe pertenecer a la empresa del token.
func TestPurchaseOrder_BodegaAjenaOInexistenteRechazada(t *testing.T) {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega principal"})
	h.SeedWarehouse(entity.Warehouse{ID: "wh-ajena", CompanyID: "co-otra", Name: "Bodega ajena"})
	h.SeedProduct(entity.Product{ID: "prod-1", CompanyID: testCompanyID, SKU: "SKU-001", Name: "Caja de tornillos"})
	uc := newOrderUseCase(h)

	for _, warehouseID := range []string{"wh-ajena", "wh-inexistente"} {
		_, err := uc.Create(context.Background(), testCompanyID, testUserID, orderRequest(warehouseID))
		assert.ErrorIs(t, err, domain.ErrNotFound, "bodega %s debe rechazarse", warehouseID)
	}
	assert.Empty(t, h.PurchaseOrders, "una orden rechazada no se persiste")
}
