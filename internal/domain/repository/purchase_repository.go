package repository

import (
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas; nil si no existe.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera para la transición de estado.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
	UpdateLineReceived(lineID string, receivedQty decimal.Decimal) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}

// GoodsReceiptRepository define el puerto de persistencia para GRN.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.GoodsReceipt, error)
}

// DebitNoteRepository define el puerto de persistencia para notas débito
// (devoluciones a proveedor).
type DebitNoteRepository interface {
	Create(note *entity.DebitNote) error
	GetByID(id string) (*entity.DebitNote, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.DebitNote, error)
}
