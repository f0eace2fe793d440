package purchasing

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

// PurchaseOrderUseCase órdenes de compra: creación en DRAFT y aprobación.
// Aprobar suma las cantidades ordenadas al on_order de cada producto.
type PurchaseOrderUseCase struct {
	tx        ledger.TxRunner
	ledger    *ledger.StockLedger
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(tx ledger.TxRunner, l *ledger.StockLedger, orders repository.PurchaseOrderRepository, suppliers repository.SupplierRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{tx: tx, ledger: l, orders: orders, suppliers: suppliers}
}

// Create crea una orden de compra en DRAFT. No toca inventario: las cantidades
// planeadas entran a on_order al aprobar.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SupplierID:  in.SupplierID,
		WarehouseID: in.WarehouseID,
		Status:      entity.StatusDraft,
		Notes:       in.Notes,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}
	for _, line := range in.Lines {
		order.Lines = append(order.Lines, &entity.PurchaseOrderLine{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			ReceivedQty: decimal.Zero,
			UnitCost:    line.UnitCost,
		})
	}

	err = uc.tx.Run(ctx, func(r ledger.Repos) error {
		if err := ledger.CheckWarehouse(r, companyID, in.WarehouseID); err != nil {
			return err
		}
		for _, line := range order.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
		}
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypePurchaseOrder)
		if err != nil {
			return err
		}
		order.Number = number
		return r.PurchaseOrders.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// Approve pasa la orden de DRAFT a APPROVED y suma cada línea al on_order del
// producto en la bodega destino. Solo órdenes en DRAFT son aprobables.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, companyID, orderID string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		var err error
		order, err = r.PurchaseOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status != entity.StatusDraft {
			return domain.ErrInvalidStatus
		}

		now := time.Now()
		for _, line := range order.Lines {
			if err := uc.ledger.AdjustOnOrder(r, companyID, line.ProductID, order.WarehouseID, line.Quantity, now); err != nil {
				return err
			}
		}
		order.Status = entity.StatusApproved
		return r.PurchaseOrders.UpdateStatus(order.ID, entity.StatusApproved)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas validando pertenencia.
func (uc *PurchaseOrderUseCase) GetByID(companyID, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toPurchaseOrderResponse(order), nil
}

// List lista órdenes por empresa, con filtro opcional de estado.
func (uc *PurchaseOrderUseCase) List(companyID, status string, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	orders, err := uc.orders.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toPurchaseOrderResponse(o))
	}
	return items, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		SupplierID:  o.SupplierID,
		WarehouseID: o.WarehouseID,
		Status:      o.Status,
		Notes:       o.Notes,
		Date:        o.Date,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			ReceivedQty: l.ReceivedQty,
			UnitCost:    l.UnitCost,
		})
	}
	return resp
}
