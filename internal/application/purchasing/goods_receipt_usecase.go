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
)

// GoodsReceiptUseCase recepción de mercancía (GRN) contra una orden de compra.
// En una sola transacción: entrada de ledger por línea, acumulado recibido en
// el PO, descuento de on_order y transición de estado del PO
// (PENDING/PARTIAL/COMPLETED según lo recibido contra lo ordenado).
type GoodsReceiptUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewGoodsReceiptUseCase construye el caso de uso.
func NewGoodsReceiptUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *GoodsReceiptUseCase {
	return &GoodsReceiptUseCase{tx: tx, ledger: l}
}

// Create postea un GRN. La orden debe estar APPROVED o PARTIAL; cada línea
// referencia una línea del PO y no puede exceder lo pendiente por recibir.
func (uc *GoodsReceiptUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateGoodsReceiptRequest) (*dto.GoodsReceiptResponse, error) {
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	receipt := &entity.GoodsReceipt{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		PurchaseOrderID: in.PurchaseOrderID,
		Status:          entity.StatusPosted,
		Notes:           in.Notes,
		Date:            now,
		CreatedAt:       now,
		CreatedBy:       userID,
	}
	orderStatus := ""

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		order, err := r.PurchaseOrders.GetForUpdate(in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status != entity.StatusApproved && order.Status != entity.StatusPartial {
			return domain.ErrInvalidStatus
		}
		receipt.WarehouseID = order.WarehouseID

		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeGoodsReceipt)
		if err != nil {
			return err
		}
		receipt.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeGoodsReceipt, ID: receipt.ID, Number: number}

		orderLines := make(map[string]*entity.PurchaseOrderLine, len(order.Lines))
		for _, l := range order.Lines {
			orderLines[l.ID] = l
		}

		for _, line := range in.Lines {
			orderLine, ok := orderLines[line.OrderLineID]
			if !ok {
				return domain.ErrNotFound
			}
			pending := orderLine.Quantity.Sub(orderLine.ReceivedQty)
			if line.Quantity.GreaterThan(pending) {
				return domain.ErrInvalidInput
			}
			unitCost := orderLine.UnitCost
			if line.UnitCost != nil {
				unitCost = *line.UnitCost
			}

			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     orderLine.ProductID,
				WarehouseID:   order.WarehouseID,
				Type:          entity.MovementTypeIN,
				Quantity:      line.Quantity,
				UnitCost:      &unitCost,
				BatchNumber:   line.BatchNumber,
				ExpiryDate:    line.ExpiryDate,
				Manufacturer:  line.Manufacturer,
				TransactionID: receipt.ID,
				Ref:           ref,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyEntry(r, apply, now); err != nil {
				return err
			}

			orderLine.ReceivedQty = orderLine.ReceivedQty.Add(line.Quantity)
			if err := r.PurchaseOrders.UpdateLineReceived(orderLine.ID, orderLine.ReceivedQty); err != nil {
				return err
			}
			// Lo recibido deja de estar pedido.
			if err := uc.ledger.AdjustOnOrder(r, companyID, orderLine.ProductID, order.WarehouseID, line.Quantity.Neg(), now); err != nil {
				return err
			}

			receipt.Lines = append(receipt.Lines, &entity.GoodsReceiptLine{
				ID:           uuid.New().String(),
				ReceiptID:    receipt.ID,
				OrderLineID:  orderLine.ID,
				ProductID:    orderLine.ProductID,
				Quantity:     line.Quantity,
				UnitCost:     unitCost,
				BatchNumber:  line.BatchNumber,
				ExpiryDate:   line.ExpiryDate,
				Manufacturer: line.Manufacturer,
			})
		}

		if err := r.GoodsReceipts.Create(receipt); err != nil {
			return err
		}
		orderStatus = entity.CompletionStatus(order.OrderedTotal(), order.ReceivedTotal())
		return r.PurchaseOrders.UpdateStatus(order.ID, orderStatus)
	})
	if err != nil {
		return nil, err
	}

	return &dto.GoodsReceiptResponse{
		ID:              receipt.ID,
		Number:          receipt.Number,
		PurchaseOrderID: receipt.PurchaseOrderID,
		WarehouseID:     receipt.WarehouseID,
		Status:          receipt.Status,
		OrderStatus:     orderStatus,
		Date:            receipt.Date,
		LineCount:       len(receipt.Lines),
	}, nil
}
