package production

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

// UseCase órdenes de producción. Crear compromete los componentes (committed);
// emitir materiales los descuenta del físico y libera el compromiso; recibir
// producto terminado lo ingresa al costo indicado y avanza el estado de la
// orden según lo recibido contra lo planeado.
type UseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
	orders repository.ProductionOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, l *ledger.StockLedger, orders repository.ProductionOrderRepository) *UseCase {
	return &UseCase{tx: tx, ledger: l, orders: orders}
}

// Create crea la orden y compromete las cantidades requeridas de cada
// componente en la bodega de producción. No descuenta físico todavía.
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if !in.PlannedQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, comp := range in.Components {
		if !comp.RequiredQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Status:      entity.StatusPending,
		PlannedQty:  in.PlannedQty,
		ReceivedQty: decimal.Zero,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}
	for _, comp := range in.Components {
		order.Components = append(order.Components, &entity.ProductionComponent{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   comp.ProductID,
			RequiredQty: comp.RequiredQty,
			IssuedQty:   decimal.Zero,
		})
	}

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		finished, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if finished == nil || finished.CompanyID != companyID {
			return domain.ErrNotFound
		}
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeProductionOrder)
		if err != nil {
			return err
		}
		order.Number = number

		for _, comp := range order.Components {
			if err := uc.ledger.AdjustCommitted(r, companyID, comp.ProductID, in.WarehouseID, comp.RequiredQty, now); err != nil {
				return err
			}
		}
		return r.ProductionOrders.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// Issue emite materiales a producción: salida de ledger por línea, acumula
// IssuedQty y libera el compromiso en la misma cantidad. No permite emitir
// más de lo requerido pendiente.
func (uc *UseCase) Issue(ctx context.Context, companyID, userID, orderID string, in dto.IssueMaterialsRequest) (*dto.ProductionOrderResponse, error) {
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.ProductionOrder
	now := time.Now()
	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		var err error
		order, err = r.ProductionOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status == entity.StatusCancelled || order.Status == entity.StatusCompleted {
			return domain.ErrInvalidStatus
		}
		ref := entity.DocumentRef{Type: entity.DocTypeProductionIssue, ID: order.ID, Number: order.Number}

		components := make(map[string]*entity.ProductionComponent, len(order.Components))
		for _, c := range order.Components {
			components[c.ID] = c
		}

		txID := uuid.New().String()
		for _, line := range in.Lines {
			comp, ok := components[line.ComponentID]
			if !ok {
				return domain.ErrNotFound
			}
			pending := comp.RequiredQty.Sub(comp.IssuedQty)
			if line.Quantity.GreaterThan(pending) {
				return domain.ErrInvalidInput
			}

			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     comp.ProductID,
				WarehouseID:   order.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity,
				BatchNumber:   line.BatchNumber,
				TransactionID: txID,
				Ref:           ref,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyExit(r, apply, now); err != nil {
				return err
			}

			comp.IssuedQty = comp.IssuedQty.Add(line.Quantity)
			if err := r.ProductionOrders.UpdateComponentIssued(comp.ID, comp.IssuedQty); err != nil {
				return err
			}
			// Lo emitido ya no está comprometido.
			if err := uc.ledger.AdjustCommitted(r, companyID, comp.ProductID, order.WarehouseID, line.Quantity.Neg(), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// Receive ingresa producto terminado al costo unitario indicado y mueve el
// estado de la orden con la regla común de completitud.
func (uc *UseCase) Receive(ctx context.Context, companyID, userID, orderID string, in dto.ReceiveFinishedRequest) (*dto.ProductionOrderResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var order *entity.ProductionOrder
	now := time.Now()
	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		var err error
		order, err = r.ProductionOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status == entity.StatusCancelled || order.Status == entity.StatusCompleted {
			return domain.ErrInvalidStatus
		}

		cost := in.UnitCost
		apply := ledger.ApplyInput{
			CompanyID:     companyID,
			ProductID:     order.ProductID,
			WarehouseID:   order.WarehouseID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.Quantity,
			UnitCost:      &cost,
			BatchNumber:   in.BatchNumber,
			ExpiryDate:    in.ExpiryDate,
			TransactionID: uuid.New().String(),
			Ref:           entity.DocumentRef{Type: entity.DocTypeProductionReceipt, ID: order.ID, Number: order.Number},
			UserID:        userID,
		}
		if err := uc.ledger.ApplyEntry(r, apply, now); err != nil {
			return err
		}

		order.ReceivedQty = order.ReceivedQty.Add(in.Quantity)
		if err := r.ProductionOrders.UpdateReceivedQty(order.ID, order.ReceivedQty); err != nil {
			return err
		}
		order.Status = entity.CompletionStatus(order.PlannedQty, order.ReceivedQty)
		return r.ProductionOrders.UpdateStatus(order.ID, order.Status)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// GetByID obtiene una orden con sus componentes validando pertenencia.
func (uc *UseCase) GetByID(companyID, id string) (*dto.ProductionOrderResponse, error) {
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
	return toResponse(order), nil
}

// List lista órdenes por empresa, con filtro opcional de estado.
func (uc *UseCase) List(companyID, status string, limit, offset int) ([]dto.ProductionOrderResponse, error) {
	orders, err := uc.orders.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toResponse(o))
	}
	return items, nil
}

func toResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	resp := &dto.ProductionOrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		WarehouseID: o.WarehouseID,
		ProductID:   o.ProductID,
		Status:      o.Status,
		PlannedQty:  o.PlannedQty,
		ReceivedQty: o.ReceivedQty,
		Date:        o.Date,
	}
	for _, c := range o.Components {
		resp.Components = append(resp.Components, dto.ProductionComponentResponse{
			ID:          c.ID,
			ProductID:   c.ProductID,
			RequiredQty: c.RequiredQty,
			IssuedQty:   c.IssuedQty,
		})
	}
	return resp
}
