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

// DebitNoteUseCase devolución de mercancía a proveedor sobre un GRN: salida de
// ledger por línea, al costo promedio vigente.
type DebitNoteUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewDebitNoteUseCase construye el caso de uso.
func NewDebitNoteUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *DebitNoteUseCase {
	return &DebitNoteUseCase{tx: tx, ledger: l}
}

// Create postea una nota débito contra un GRN existente de la empresa.
func (uc *DebitNoteUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateDebitNoteRequest) (*dto.NoteResponse, error) {
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	note := &entity.DebitNote{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		GoodsReceiptID: in.GoodsReceiptID,
		Status:         entity.StatusPosted,
		Reason:         in.Reason,
		Date:           now,
		CreatedAt:      now,
		CreatedBy:      userID,
	}

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		receipt, err := r.GoodsReceipts.GetByID(in.GoodsReceiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.CompanyID != companyID {
			return domain.ErrForbidden
		}
		note.WarehouseID = receipt.WarehouseID

		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeDebitNote)
		if err != nil {
			return err
		}
		note.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeDebitNote, ID: note.ID, Number: number}

		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				WarehouseID:   receipt.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity,
				BatchNumber:   line.BatchNumber,
				TransactionID: note.ID,
				Ref:           ref,
				Notes:         in.Reason,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyExit(r, apply, now); err != nil {
				return err
			}
			note.Lines = append(note.Lines, &entity.NoteLine{
				ID:          uuid.New().String(),
				NoteID:      note.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitCost:    product.Cost,
				BatchNumber: line.BatchNumber,
			})
		}
		return r.DebitNotes.Create(note)
	})
	if err != nil {
		return nil, err
	}

	return &dto.NoteResponse{
		ID:        note.ID,
		Number:    note.Number,
		Status:    note.Status,
		Reason:    note.Reason,
		Date:      note.Date,
		LineCount: len(note.Lines),
	}, nil
}
