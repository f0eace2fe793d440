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
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// DeliveryUseCase remisiones: salida de inventario a un cliente sin
// facturación. Mismo recorrido de ledger que la factura, sin totales.
type DeliveryUseCase struct {
	tx         ledger.TxRunner
	ledger     *ledger.StockLedger
	deliveries repository.DeliveryRepository
	customers  repository.CustomerRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(tx ledger.TxRunner, l *ledger.StockLedger, deliveries repository.DeliveryRepository, customers repository.CustomerRepository) *DeliveryUseCase {
	return &DeliveryUseCase{tx: tx, ledger: l, deliveries: deliveries, customers: customers}
}

// Create postea una remisión multi-línea.
func (uc *DeliveryUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	delivery := &entity.Delivery{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		Status:      entity.StatusPosted,
		Notes:       in.Notes,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.tx.Run(ctx, func(r ledger.Repos) error {
		number, err := sequence.NextNumber(r.Sequences, companyID, entity.DocTypeDelivery)
		if err != nil {
			return err
		}
		delivery.Number = number
		ref := entity.DocumentRef{Type: entity.DocTypeDelivery, ID: delivery.ID, Number: number}

		for _, line := range in.Lines {
			apply := ledger.ApplyInput{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity,
				BatchNumber:   line.BatchNumber,
				TransactionID: delivery.ID,
				Ref:           ref,
				Notes:         in.Notes,
				UserID:        userID,
			}
			if err := uc.ledger.ApplyExit(r, apply, now); err != nil {
				return err
			}
			delivery.Lines = append(delivery.Lines, &entity.DeliveryLine{
				ID:          uuid.New().String(),
				DeliveryID:  delivery.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				BatchNumber: line.BatchNumber,
			})
		}
		return r.Deliveries.Create(delivery)
	})
	if err != nil {
		return nil, err
	}

	return &dto.DeliveryResponse{
		ID:          delivery.ID,
		Number:      delivery.Number,
		CustomerID:  delivery.CustomerID,
		WarehouseID: delivery.WarehouseID,
		Status:      delivery.Status,
		Date:        delivery.Date,
		LineCount:   len(delivery.Lines),
	}, nil
}

// GetByID obtiene una remisión validando pertenencia. Devuelve la entidad
// completa: la usa también la generación del PDF de remisión.
func (uc *DeliveryUseCase) GetByID(companyID, id string) (*entity.Delivery, error) {
	delivery, err := uc.deliveries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, nil
	}
	if delivery.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return delivery, nil
}
