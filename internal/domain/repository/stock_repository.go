package repository

import "github.com/orbis-erp/orbis-api/internal/domain/entity"

// StockRepository define el puerto para localizar/actualizar el registro de
// inventario por producto+bodega. Usado dentro de transacciones para
// garantizar consistencia.
type StockRepository interface {
	Get(companyID, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si no existe, devuelve
	// un registro en cero (creación perezosa al primer Upsert).
	GetForUpdate(companyID, productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.Stock, error)
}

// BatchRepository define el puerto para lotes de productos con manejo por lote.
type BatchRepository interface {
	// GetForUpdate bloquea el lote indicado; nil si no existe.
	GetForUpdate(companyID, productID, warehouseID, batchNumber string) (*entity.Batch, error)
	// ListForUpdate bloquea y devuelve los lotes con saldo > 0 en orden FEFO:
	// vencimiento más próximo primero, lotes sin vencimiento al final.
	ListForUpdate(companyID, productID, warehouseID string) ([]*entity.Batch, error)
	Upsert(batch *entity.Batch) error
	List(companyID, productID, warehouseID string) ([]*entity.Batch, error)
}
