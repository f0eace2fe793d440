package repository

import "github.com/orbis-erp/orbis-api/internal/domain/entity"

// SalesInvoiceRepository define el puerto de persistencia para facturas de venta.
type SalesInvoiceRepository interface {
	Create(invoice *entity.SalesInvoice) error
	GetByID(id string) (*entity.SalesInvoice, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.SalesInvoice, error)
}

// DeliveryRepository define el puerto de persistencia para remisiones.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error)
}

// CreditNoteRepository define el puerto de persistencia para notas crédito
// (devoluciones de cliente).
type CreditNoteRepository interface {
	Create(note *entity.CreditNote) error
	GetByID(id string) (*entity.CreditNote, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.CreditNote, error)
}
