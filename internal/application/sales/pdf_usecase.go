package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// DeliveryLineForPDF línea de remisión enriquecida con los datos del producto.
type DeliveryLineForPDF struct {
	ProductSKU  string
	ProductName string
	Quantity    decimal.Decimal
	BatchNumber string
}

// DeliveryPDFGenerator puerto para generar la nota de entrega imprimible.
type DeliveryPDFGenerator interface {
	GenerateDeliveryPDF(ctx context.Context, delivery *entity.Delivery, company *entity.Company, customer *entity.Customer, lines []DeliveryLineForPDF) ([]byte, error)
}

// PDFUseCase genera la nota de entrega (PDF) de una remisión posteada.
type PDFUseCase struct {
	deliveries repository.DeliveryRepository
	companies  repository.CompanyRepository
	customers  repository.CustomerRepository
	products   repository.ProductRepository
	generator  DeliveryPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	deliveries repository.DeliveryRepository,
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	generator DeliveryPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		deliveries: deliveries,
		companies:  companies,
		customers:  customers,
		products:   products,
		generator:  generator,
	}
}

// DownloadDeliveryPDF recupera la remisión con empresa, cliente y productos y
// genera la nota de entrega. Retorna (bytes, filename, error).
func (uc *PDFUseCase) DownloadDeliveryPDF(ctx context.Context, companyID, deliveryID string) ([]byte, string, error) {
	delivery, err := uc.deliveries.GetByID(deliveryID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener remisión: %w", err)
	}
	if delivery == nil {
		return nil, "", domain.ErrNotFound
	}
	if delivery.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(delivery.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]DeliveryLineForPDF, 0, len(delivery.Lines))
	for _, l := range delivery.Lines {
		product, err := uc.products.GetByID(l.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
		}
		line := DeliveryLineForPDF{Quantity: l.Quantity, BatchNumber: l.BatchNumber}
		if product != nil {
			line.ProductSKU = product.SKU
			line.ProductName = product.Name
		}
		lines = append(lines, line)
	}

	pdfBytes, err := uc.generator.GenerateDeliveryPDF(ctx, delivery, company, customer, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("remision-%s.pdf", delivery.Number), nil
}
