package inventory

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

// TransferUseCase traslados documentados entre bodegas. Cada línea genera dos
// movimientos (salida en origen, entrada en destino) y todo el documento se
// postea o se revierte en bloque.
type TransferUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *TransferUseCase {
	return &TransferUseCase{tx: tx, ledger: l}
}

// Create postea un traslado multi-línea. Los productos con lote exigen número
// de lote explícito: el lote conserva su identidad en la bodega destino.
func (uc *TransferUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.StatusPosted,
		Notes:           in.Notes,
		Date:            now,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeStockTransfer)
		if err != nil {
			return err
		}
		transfer.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeStockTransfer, ID: transfer.ID, Number: number}

		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			var expiry *time.Time
			manufacturer := ""
			if product.BatchManaged {
				if line.BatchNumber == "" {
					return domain.ErrBatchRequired
				}
				src, err := r.Batches.GetForUpdate(companyID, line.ProductID, in.FromWarehouseID, line.BatchNumber)
				if err != nil {
					return err
				}
				if src == nil {
					return domain.ErrBatchNotFound
				}
				expiry = src.ExpiryDate
				manufacturer = src.Manufacturer
			}

			exit := ledger.ApplyInput{
				CompanyID: companyID, ProductID: line.ProductID, WarehouseID: in.FromWarehouseID,
				Type: entity.MovementTypeTRANSFER, Quantity: line.Quantity, BatchNumber: line.BatchNumber,
				TransactionID: transfer.ID, Ref: ref, UserID: userID,
			}
			if err := uc.ledger.ApplyExit(r, exit, now); err != nil {
				return err
			}
			cost := product.Cost
			enter := ledger.ApplyInput{
				CompanyID: companyID, ProductID: line.ProductID, WarehouseID: in.ToWarehouseID,
				Type: entity.MovementTypeTRANSFER, Quantity: line.Quantity, UnitCost: &cost,
				BatchNumber: line.BatchNumber, ExpiryDate: expiry, Manufacturer: manufacturer,
				TransactionID: transfer.ID, Ref: ref, UserID: userID,
			}
			if err := uc.ledger.ApplyEntry(r, enter, now); err != nil {
				return err
			}

			transfer.Lines = append(transfer.Lines, &entity.StockTransferLine{
				ID:          uuid.New().String(),
				TransferID:  transfer.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				BatchNumber: line.BatchNumber,
			})
		}
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransferResponse{
		ID:              transfer.ID,
		Number:          transfer.Number,
		FromWarehouseID: transfer.FromWarehouseID,
		ToWarehouseID:   transfer.ToWarehouseID,
		Status:          transfer.Status,
		Date:            transfer.Date,
		LineCount:       len(transfer.Lines),
	}, nil
}
