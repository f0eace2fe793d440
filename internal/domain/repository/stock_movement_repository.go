package repository

import (
	"time"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de
// movimientos. Los movimientos son append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
