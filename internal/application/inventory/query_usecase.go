package inventory

import (
	"time"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura: saldos y kardex. No abre
// transacciones ni bloquea filas.
type QueryUseCase struct {
	stocks    repository.StockRepository
	batches   repository.BatchRepository
	movements repository.StockMovementRepository
	products  repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(stocks repository.StockRepository, batches repository.BatchRepository, movements repository.StockMovementRepository, products repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{stocks: stocks, batches: batches, movements: movements, products: products}
}

// GetStock devuelve el saldo de un producto en una bodega, con el detalle de
// lotes si el producto se maneja por lote.
func (uc *QueryUseCase) GetStock(companyID, productID, warehouseID string) (*dto.StockResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	stock, err := uc.stocks.Get(companyID, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockResponse{ProductID: productID, WarehouseID: warehouseID}
	if stock != nil {
		resp.Quantity = stock.Quantity
		resp.Committed = stock.Committed
		resp.OnOrder = stock.OnOrder
		resp.Available = stock.Available()
		resp.UpdatedAt = stock.UpdatedAt
	}

	if product.BatchManaged {
		batches, err := uc.batches.List(companyID, productID, warehouseID)
		if err != nil {
			return nil, err
		}
		for _, b := range batches {
			resp.Batches = append(resp.Batches, dto.BatchResponse{
				BatchNumber:  b.BatchNumber,
				Quantity:     b.Quantity,
				ExpiryDate:   b.ExpiryDate,
				Manufacturer: b.Manufacturer,
				UnitCost:     b.UnitCost,
			})
		}
	}
	return resp, nil
}

// ListWarehouseStock lista los saldos de una bodega con paginación.
func (uc *QueryUseCase) ListWarehouseStock(companyID, warehouseID string, limit, offset int) ([]dto.StockResponse, error) {
	stocks, err := uc.stocks.ListByWarehouse(companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			Committed:   s.Committed,
			OnOrder:     s.OnOrder,
			Available:   s.Available(),
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return items, nil
}

// HistoryByProduct kardex de un producto, con filtro opcional de fechas.
func (uc *QueryUseCase) HistoryByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movements.ListByProduct(companyID, productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// HistoryByWarehouse movimientos de una bodega, con filtro opcional de fechas.
func (uc *QueryUseCase) HistoryByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movements.ListByWarehouse(companyID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []*entity.StockMovement) []dto.MovementResponse {
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			BatchNumber:   m.BatchNumber,
			RefType:       m.Ref.Type,
			RefID:         m.Ref.ID,
			RefNumber:     m.Ref.Number,
			Notes:         m.Notes,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
		})
	}
	return items
}
