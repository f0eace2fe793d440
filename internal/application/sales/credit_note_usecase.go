package sales

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

// CreditNoteUseCase devolución de cliente sobre una factura: reingresa la
// mercancía al costo promedio vigente del producto.
type CreditNoteUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewCreditNoteUseCase construye el caso de uso.
func NewCreditNoteUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *CreditNoteUseCase {
	return &CreditNoteUseCase{tx: tx, ledger: l}
}

// Create postea una nota crédito contra una factura existente de la empresa.
// Los productos con lote exigen el lote devuelto.
func (uc *CreditNoteUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateCreditNoteRequest) (*dto.NoteResponse, error) {
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	note := &entity.CreditNote{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		SalesInvoiceID: in.SalesInvoiceID,
		Status:         entity.StatusPosted,
		Reason:         in.Reason,
		Date:           now,
		CreatedAt:      now,
		CreatedBy:      userID,
	}

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		invoice, err := r.SalesInvoices.GetByID(in.SalesInvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != companyID {
			return domain.ErrForbidden
		}
		note.WarehouseID = invoice.WarehouseID

		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeCreditNote)
		if err != nil {
			return err
		}
		note.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeCreditNote, ID: note.ID, Number: number}

		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			cost := product.Cost
			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				WarehouseID:   invoice.WarehouseID,
				Type:          entity.MovementTypeIN,
				Quantity:      line.Quantity,
				UnitCost:      &cost,
				BatchNumber:   line.BatchNumber,
				TransactionID: note.ID,
				Ref:           ref,
				Notes:         in.Reason,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyEntry(r, apply, now); err != nil {
				return err
			}
			note.Lines = append(note.Lines, &entity.NoteLine{
				ID:          uuid.New().String(),
				NoteID:      note.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitCost:    cost,
				BatchNumber: line.BatchNumber,
			})
		}
		return r.CreditNotes.Create(note)
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
