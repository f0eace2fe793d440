package pos

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

// CheckoutUseCase venta de punto de venta: todo el carrito se postea en una
// transacción. Si una línea no tiene stock, la venta completa aborta; nunca
// queda una venta a medias con algunas líneas descontadas.
type CheckoutUseCase struct {
	tx     ledger.TxRunner
	ledger *ledger.StockLedger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(tx ledger.TxRunner, l *ledger.StockLedger) *CheckoutUseCase {
	return &CheckoutUseCase{tx: tx, ledger: l}
}

// Checkout postea la venta. El precio de línea en cero toma el precio de
// lista; los productos con lote salen por FEFO.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, companyID, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	sale := &entity.POSSale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		WarehouseID:   in.WarehouseID,
		CustomerID:    in.CustomerID,
		Status:        entity.StatusPosted,
		PaymentMethod: in.PaymentMethod,
		NetTotal:      decimal.Zero,
		TaxTotal:      decimal.Zero,
		GrandTotal:    decimal.Zero,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	err := uc.tx.Run(ctx, func(r ledger.Repos) error {
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypePOSSale)
		if err != nil {
			return err
		}
		sale.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypePOSSale, ID: sale.ID, Number: number}

		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			subtotal := line.Quantity.Mul(unitPrice)
			tax := subtotal.Mul(product.TaxRate)

			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity,
				TransactionID: sale.ID,
				Ref:           ref,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyExit(r, apply, now); err != nil {
				return err
			}

			sale.Lines = append(sale.Lines, &entity.POSSaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				TaxRate:   product.TaxRate,
				Subtotal:  subtotal,
			})
			sale.NetTotal = sale.NetTotal.Add(subtotal)
			sale.TaxTotal = sale.TaxTotal.Add(tax)
		}
		sale.GrandTotal = sale.NetTotal.Add(sale.TaxTotal)
		return r.POSSales.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		ID:            sale.ID,
		Number:        sale.Number,
		WarehouseID:   sale.WarehouseID,
		Status:        sale.Status,
		PaymentMethod: sale.PaymentMethod,
		NetTotal:      sale.NetTotal,
		TaxTotal:      sale.TaxTotal,
		GrandTotal:    sale.GrandTotal,
		Date:          sale.Date,
		LineCount:     len(sale.Lines),
	}, nil
}
