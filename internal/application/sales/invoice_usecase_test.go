package sales_test

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
	"github.com/orbis-erp/orbis-api/internal/application/sales"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

const (
	testCompanyID   = "co-1"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
	testCustomerID  = "cust-1"
)

// fakeCustomers repositorio de clientes en memoria para los tests de ventas.
type fakeCustomers struct {
	byID map[string]*entity.Customer
}

func (f *fakeCustomers) Create(c *entity.Customer) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCustomers) GetByID(id string) (*entity.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomers) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCustomers() *fakeCustomers {
	return &fakeCustomers{byID: map[string]*entity.Customer{
		testCustomerID: {ID: testCustomerID, CompanyID: testCompanyID, Name: "Droguería La 14"},
	}}
}

// newHarness siembra un producto simple con stock y un medicamento por lote
// con dos lotes de vencimiento distinto.
func newHarness() *ledgertest.Harness {
	h := ledgertest.New()
	h.SeedWarehouse(entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega de despacho"})
	h.SeedProduct(entity.Product{
		ID: "prod-simple", CompanyID: testCompanyID, SKU: "JAB-001", Name: "Jabón",
		Price: decimal.NewFromInt(2000), Cost: decimal.NewFromInt(800),
		TaxRate: decimal.NewFromFloat(0.19),
	})
	h.SeedProduct(entity.Product{
		ID: "prod-lote", CompanyID: testCompanyID, SKU: "MED-500", Name: "Acetaminofén 500mg",
		Price: decimal.NewFromInt(5000), Cost: decimal.NewFromInt(1200),
		TaxRate: decimal.Zero, BatchManaged: true,
	})
	h.SeedStock(testCompanyID, "prod-simple", testWarehouseID, decimal.NewFromInt(50))
	h.SeedStock(testCompanyID, "prod-lote", testWarehouseID, decimal.NewFromInt(20))
	proximo := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	lejano := time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC)
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-PROXIMO", Quantity: decimal.NewFromInt(10), ExpiryDate: &proximo,
	})
	h.SeedBatch(entity.Batch{
		CompanyID: testCompanyID, ProductID: "prod-lote", WarehouseID: testWarehouseID,
		BatchNumber: "L-LEJANO", Quantity: decimal.NewFromInt(10), ExpiryDate: &lejano,
	})
	return h
}

func newUseCase(h *ledgertest.Harness) *sales.InvoiceUseCase {
	return sales.NewInvoiceUseCase(h, ledger.New(), h.Repos().SalesInvoices, newCustomers())
}

// Factura de dos líneas: descuenta stock, liquida el impuesto de cada producto
// y graba un movimiento por línea bajo la referencia de la factura.
func TestInvoice_FacturaMultilinea(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateInvoiceRequest{
		CustomerID:  testCustomerID,
		WarehouseID: testWarehouseID,
		Lines: []dto.InvoiceLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(5)},
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	// Neto: 5*2000 + 3*5000 = 25000. IVA: 10000*0.19 = 1900 (el medicamento es exento).
	assert.Equal(t, "INV-000001", resp.Number)
	assert.True(t, resp.NetTotal.Equal(decimal.NewFromInt(25000)), "neto esperado 25000, fue %s", resp.NetTotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.NewFromInt(1900)))
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(26900)))
	assert.Equal(t, entity.StatusPosted, resp.Status)
	require.Len(t, resp.Lines, 2)

	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).Quantity.Equal(decimal.NewFromInt(45)))
	assert.True(t, h.Stock(testCompanyID, "prod-lote", testWarehouseID).Quantity.Equal(decimal.NewFromInt(17)))

	require.Len(t, h.Movements, 2)
	for _, mov := range h.Movements {
		assert.Equal(t, entity.DocTypeSalesInvoice, mov.Ref.Type)
		assert.Equal(t, resp.ID, mov.TransactionID)
	}
}

// El medicamento por lote sale por FEFO: primero el lote con vencimiento más próximo.
func TestInvoice_ProductoPorLoteSaleFEFO(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateInvoiceRequest{
		CustomerID:  testCustomerID,
		WarehouseID: testWarehouseID,
		Lines: []dto.InvoiceLineInput{
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-PROXIMO").Quantity.Equal(decimal.NewFromInt(6)),
		"debe debitarse el lote con vencimiento más próximo")
	assert.True(t, h.Batch(testCompanyID, "prod-lote", testWarehouseID, "L-LEJANO").Quantity.Equal(decimal.NewFromInt(10)))
}

// Si una línea no tiene stock, la factura completa se revierte.
func TestInvoice_RevierteCompletaSinStock(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateInvoiceRequest{
		CustomerID:  testCustomerID,
		WarehouseID: testWarehouseID,
		Lines: []dto.InvoiceLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(5)},
			{ProductID: "prod-lote", Quantity: decimal.NewFromInt(99)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.Stock(testCompanyID, "prod-simple", testWarehouseID).Quantity.Equal(decimal.NewFromInt(50)),
		"la línea buena debe revertirse con la factura")
	assert.Empty(t, h.Movements)
	assert.Empty(t, h.SalesInvoices)
}

// Cliente inexistente o de otra empresa → no encontrado.
func TestInvoice_ClienteInvalido(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateInvoiceRequest{
		CustomerID:  "cust-no-existe",
		WarehouseID: testWarehouseID,
		Lines: []dto.InvoiceLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// GetByID rechaza facturas de otra empresa.
func TestInvoice_GetByIDValidaPertenencia(t *testing.T) {
	h := newHarness()
	uc := newUseCase(h)

	resp, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateInvoiceRequest{
		CustomerID:  testCustomerID,
		WarehouseID: testWarehouseID,
		Lines: []dto.InvoiceLineInput{
			{ProductID: "prod-simple", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = uc.GetByID("co-otra", resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
