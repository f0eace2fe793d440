package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/sequence"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// InvoiceUseCase facturación de venta: descuenta inventario línea por línea y
// calcula totales con el impuesto de cada producto. Si alguna línea no tiene
// stock, la factura completa se revierte.
type InvoiceUseCase struct {
	tx        ledger.TxRunner
	ledger    *ledger.StockLedger
	invoices  repository.SalesInvoiceRepository
	customers repository.CustomerRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx ledger.TxRunner, l *ledger.StockLedger, invoices repository.SalesInvoiceRepository, customers repository.CustomerRepository) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, ledger: l, invoices: invoices, customers: customers}
}

// Create postea una factura. El precio de línea en cero toma el precio de
// lista del producto; la tasa de impuesto siempre es la del producto.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	invoice := &entity.SalesInvoice{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		Status:      entity.StatusPosted,
		NetTotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		GrandTotal:  decimal.Zero,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.tx.Run(ctx, func(r ledger.Repos) error {
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeSalesInvoice)
		if err != nil {
			return err
		}
		invoice.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeSalesInvoice, ID: invoice.ID, Number: number}

		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			subtotal := line.Quantity.Mul(unitPrice)
			tax := subtotal.Mul(product.TaxRate)

			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity,
				BatchNumber:   line.BatchNumber,
				TransactionID: invoice.ID,
				Ref:           ref,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyExit(r, apply, now); err != nil {
				return err
			}

			invoice.Lines = append(invoice.Lines, &entity.SalesInvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   invoice.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
				TaxRate:     product.TaxRate,
				Subtotal:    subtotal,
				BatchNumber: line.BatchNumber,
			})
			invoice.NetTotal = invoice.NetTotal.Add(subtotal)
			invoice.TaxTotal = invoice.TaxTotal.Add(tax)
		}
		invoice.GrandTotal = invoice.NetTotal.Add(invoice.TaxTotal)
		return r.SalesInvoices.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetByID obtiene una factura con sus líneas validando pertenencia.
func (uc *InvoiceUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toInvoiceResponse(invoice), nil
}

// List lista facturas por empresa con paginación.
func (uc *InvoiceUseCase) List(companyID string, limit, offset int) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoices.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, *toInvoiceResponse(inv))
	}
	return items, nil
}

func toInvoiceResponse(inv *entity.SalesInvoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		CustomerID:  inv.CustomerID,
		WarehouseID: inv.WarehouseID,
		Status:      inv.Status,
		NetTotal:    inv.NetTotal,
		TaxTotal:    inv.TaxTotal,
		GrandTotal:  inv.GrandTotal,
		Date:        inv.Date,
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}
