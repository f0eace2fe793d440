package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// MovementUseCase movimientos manuales de inventario: entradas, salidas,
// ajustes y traslados rápidos sin documento origen. Todo pasa por el ledger
// dentro de una transacción.
type MovementUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *MovementUseCase {
	return &MovementUseCase{tx: tx, ledger: l}
}

// Register aplica un movimiento manual. Las entradas (IN, ajuste positivo)
// exigen unit_cost; los ajustes aceptan cantidad negativa y se aplican como
// salida. TRANSFER mueve entre dos bodegas en la misma transacción.
func (uc *MovementUseCase) Register(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (string, error) {
	movType := entity.MovementType(in.Type)
	if !movType.IsValid() {
		return "", domain.ErrInvalidInput
	}
	if movType == entity.MovementTypeTRANSFER {
		return uc.registerTransfer(ctx, companyID, userID, in)
	}
	if in.WarehouseID == "" || in.Quantity.IsZero() {
		return "", domain.ErrInvalidInput
	}

	txID := uuid.New().String()
	now := time.Now()
	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		apply := ledger.ApplyInput{
			CompanyID:     companyID,
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Type:          movType,
			Quantity:      in.Quantity.Abs(),
			UnitCost:      in.UnitCost,
			BatchNumber:   in.BatchNumber,
			ExpiryDate:    in.ExpiryDate,
			Manufacturer:  in.Manufacturer,
			TransactionID: txID,
			Ref:           entity.DocumentRef{Type: entity.DocTypeManual},
			Notes:         in.Notes,
			UserID:        userID,
		}
		entry := movType == entity.MovementTypeIN ||
			(movType == entity.MovementTypeADJUSTMENT && in.Quantity.GreaterThan(decimal.Zero))
		if entry {
			return uc.ledger.ApplyEntry(r, apply, now)
		}
		return uc.ledger.ApplyExit(r, apply, now)
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

// registerTransfer traslado manual: salida en origen y entrada en destino con
// el mismo transaction_id, al costo promedio vigente del producto.
func (uc *MovementUseCase) registerTransfer(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (string, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.FromWarehouseID == in.ToWarehouseID {
		return "", domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	txID := uuid.New().String()
	now := time.Now()
	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		product, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		var expiry *time.Time
		manufacturer := ""
		if product.BatchManaged {
			// La identidad del lote viaja con la mercancía: se exige lote
			// explícito y se copian sus datos al destino.
			if in.BatchNumber == "" {
				return domain.ErrBatchRequired
			}
			src, err := r.Batches.GetForUpdate(companyID, in.ProductID, in.FromWarehouseID, in.BatchNumber)
			if err != nil {
				return err
			}
			if src == nil {
				return domain.ErrBatchNotFound
			}
			expiry = src.ExpiryDate
			manufacturer = src.Manufacturer
		}

		ref := entity.DocumentRef{Type: entity.DocTypeManual}
		exit := ledger.ApplyInput{
			CompanyID: companyID, ProductID: in.ProductID, WarehouseID: in.FromWarehouseID,
			Type: entity.MovementTypeTRANSFER, Quantity: in.Quantity, BatchNumber: in.BatchNumber,
			TransactionID: txID, Ref: ref, Notes: in.Notes, UserID: userID,
		}
		if err := uc.ledger.ApplyExit(r, exit, now); err != nil {
			return err
		}
		cost := product.Cost
		enter := ledger.ApplyInput{
			CompanyID: companyID, ProductID: in.ProductID, WarehouseID: in.ToWarehouseID,
			Type: entity.MovementTypeTRANSFER, Quantity: in.Quantity, UnitCost: &cost,
			BatchNumber: in.BatchNumber, ExpiryDate: expiry, Manufacturer: manufacturer,
			TransactionID: txID, Ref: ref, Notes: in.Notes, UserID: userID,
		}
		return uc.ledger.ApplyEntry(r, enter, now)
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}
