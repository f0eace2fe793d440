package repository

import (
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	// GetForUpdate bloquea la cabecera para emitir/recibir sin carreras.
	GetForUpdate(id string) (*entity.ProductionOrder, error)
	UpdateStatus(id, status string) error
	UpdateComponentIssued(componentID string, issuedQty decimal.Decimal) error
	UpdateReceivedQty(id string, receivedQty decimal.Decimal) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error)
}
