package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/inventory"
)

// StockLedger es el motor único de movimientos de inventario. Toda operación
// que toque stock (GRN, factura, remisión, traslado, producción, POS, notas,
// movimientos manuales) pasa por ApplyEntry/ApplyExit dentro de un TxRunner:
//
//  1. valida que bodega y producto pertenezcan a la empresa del caller,
//  2. localiza (o crea en cero) el registro de stock y lo bloquea,
//  3. asigna lote (explícito o FEFO) si el producto se maneja por lote,
//  4. muta la cantidad física rechazando salidas sin saldo,
//  5. graba exactamente UN movimiento append-only con referencia al documento.
type StockLedger struct{}

// New construye el ledger (sin estado; las dependencias llegan por Repos).
func New() *StockLedger { return &StockLedger{} }

// ApplyInput entrada para aplicar un movimiento al ledger.
type ApplyInput struct {
	CompanyID     string
	ProductID     string
	WarehouseID   string
	Type          entity.MovementType
	Quantity      decimal.Decimal  // siempre positiva; el signo lo pone el ledger
	UnitCost      *decimal.Decimal // obligatorio en entradas
	BatchNumber   string           // entradas de lote: obligatorio; salidas: vacío = FEFO
	ExpiryDate    *time.Time
	Manufacturer  string
	TransactionID string // agrupa los movimientos de la misma petición/documento
	Ref           entity.DocumentRef
	Notes         string
	UserID        string
}

func (in *ApplyInput) validate() error {
	if in.ProductID == "" || in.WarehouseID == "" || in.CompanyID == "" {
		return domain.ErrInvalidInput
	}
	if !in.Type.IsValid() {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CheckWarehouse valida que la bodega exista y pertenezca a la empresa. Una
// bodega ajena se responde igual que una inexistente para no revelar recursos
// de otros tenants.
func CheckWarehouse(r Repos, companyID, warehouseID string) error {
	warehouse, err := r.Warehouses.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return nil
}

// loadProduct valida que el producto exista y pertenezca a la empresa.
func loadProduct(r Repos, companyID, productID string) (*entity.Product, error) {
	product, err := r.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// ApplyEntry aplica una entrada: suma al físico, recalcula el costo promedio
// ponderado del producto y registra el movimiento con cantidad positiva.
// Para productos con lote, BatchNumber es obligatorio y el lote se crea o
// incrementa.
func (l *StockLedger) ApplyEntry(r Repos, in ApplyInput, now time.Time) error {
	if err := in.validate(); err != nil {
		return err
	}
	if in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if err := CheckWarehouse(r, in.CompanyID, in.WarehouseID); err != nil {
		return err
	}
	product, err := loadProduct(r, in.CompanyID, in.ProductID)
	if err != nil {
		return err
	}

	stock, err := r.Stocks.GetForUpdate(in.CompanyID, in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}

	unitCost := *in.UnitCost
	newCost := inventory.CostCalculator(stock.Quantity, product.Cost, in.Quantity, unitCost)
	if err := r.Products.UpdateCost(in.ProductID, newCost); err != nil {
		return err
	}

	if product.BatchManaged {
		if in.BatchNumber == "" {
			return fmt.Errorf("%w: %s", domain.ErrBatchRequired, product.SKU)
		}
		batch, err := r.Batches.GetForUpdate(in.CompanyID, in.ProductID, in.WarehouseID, in.BatchNumber)
		if err != nil {
			return err
		}
		if batch == nil {
			batch = &entity.Batch{
				ID:           uuid.New().String(),
				CompanyID:    in.CompanyID,
				ProductID:    in.ProductID,
				WarehouseID:  in.WarehouseID,
				BatchNumber:  in.BatchNumber,
				Quantity:     decimal.Zero,
				ExpiryDate:   in.ExpiryDate,
				Manufacturer: in.Manufacturer,
				UnitCost:     unitCost,
				CreatedAt:    now,
			}
		}
		batch.Quantity = batch.Quantity.Add(in.Quantity)
		if in.ExpiryDate != nil {
			batch.ExpiryDate = in.ExpiryDate
		}
		batch.UpdatedAt = now
		if err := r.Batches.Upsert(batch); err != nil {
			return err
		}
	}

	stock.Quantity = stock.Quantity.Add(in.Quantity)
	stock.UpdatedAt = now
	if err := r.Stocks.Upsert(stock); err != nil {
		return err
	}

	return l.record(r, in, in.Quantity, unitCost, in.BatchNumber, now)
}

// ApplyExit aplica una salida: rechaza con ErrInsufficientStock si la cantidad
// excede el saldo físico (nunca recorta en silencio), debita lote(s) y
// registra el movimiento con cantidad negativa al costo promedio vigente.
func (l *StockLedger) ApplyExit(r Repos, in ApplyInput, now time.Time) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := CheckWarehouse(r, in.CompanyID, in.WarehouseID); err != nil {
		return err
	}
	product, err := loadProduct(r, in.CompanyID, in.ProductID)
	if err != nil {
		return err
	}

	stock, err := r.Stocks.GetForUpdate(in.CompanyID, in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(in.Quantity) {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.SKU)
	}

	movementBatch := ""
	if product.BatchManaged {
		movementBatch, err = l.debitBatches(r, in, product, now)
		if err != nil {
			return err
		}
	}

	stock.Quantity = stock.Quantity.Sub(in.Quantity)
	stock.UpdatedAt = now
	if err := r.Stocks.Upsert(stock); err != nil {
		return err
	}

	return l.record(r, in, in.Quantity.Neg(), product.Cost, movementBatch, now)
}

// debitBatches descuenta la cantidad de los lotes del producto. Con
// BatchNumber explícito usa ese lote; sin él asigna por FEFO (vencimiento más
// próximo primero, lotes sin vencimiento al final). Devuelve el número de lote
// para el movimiento cuando la asignación cayó en un único lote.
func (l *StockLedger) debitBatches(r Repos, in ApplyInput, product *entity.Product, now time.Time) (string, error) {
	if in.BatchNumber != "" {
		batch, err := r.Batches.GetForUpdate(in.CompanyID, in.ProductID, in.WarehouseID, in.BatchNumber)
		if err != nil {
			return "", err
		}
		if batch == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrBatchNotFound, in.BatchNumber)
		}
		if batch.Quantity.LessThan(in.Quantity) {
			return "", fmt.Errorf("%w: lote %s de %s", domain.ErrInsufficientStock, in.BatchNumber, product.SKU)
		}
		batch.Quantity = batch.Quantity.Sub(in.Quantity)
		batch.UpdatedAt = now
		if err := r.Batches.Upsert(batch); err != nil {
			return "", err
		}
		return in.BatchNumber, nil
	}

	batches, err := r.Batches.ListForUpdate(in.CompanyID, in.ProductID, in.WarehouseID)
	if err != nil {
		return "", err
	}
	remaining := in.Quantity
	var touched []*entity.Batch
	for _, batch := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(batch.Quantity, remaining)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		batch.Quantity = batch.Quantity.Sub(take)
		batch.UpdatedAt = now
		remaining = remaining.Sub(take)
		touched = append(touched, batch)
	}
	if remaining.GreaterThan(decimal.Zero) {
		// El saldo por lotes no cubre la salida aunque el físico sí: los lotes
		// mandan, se rechaza igual que una salida sin stock.
		return "", fmt.Errorf("%w: lotes de %s", domain.ErrInsufficientStock, product.SKU)
	}
	for _, batch := range touched {
		if err := r.Batches.Upsert(batch); err != nil {
			return "", err
		}
	}
	if len(touched) == 1 {
		return touched[0].BatchNumber, nil
	}
	return "", nil
}

// record graba la entrada append-only del ledger: exactamente una por llamada.
func (l *StockLedger) record(r Repos, in ApplyInput, signedQty, unitCost decimal.Decimal, batchNumber string, now time.Time) error {
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		TransactionID: in.TransactionID,
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          in.Type,
		Quantity:      signedQty,
		UnitCost:      unitCost,
		TotalCost:     signedQty.Mul(unitCost),
		BatchNumber:   batchNumber,
		Ref:           in.Ref,
		Notes:         in.Notes,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     in.UserID,
	}
	return r.Movements.Create(mov)
}

// AdjustOnOrder suma delta (puede ser negativo) a la cantidad pedida a
// proveedores del registro de stock. Cantidad de planeación: no genera
// movimiento de ledger. El resultado nunca baja de cero.
func (l *StockLedger) AdjustOnOrder(r Repos, companyID, productID, warehouseID string, delta decimal.Decimal, now time.Time) error {
	if err := CheckWarehouse(r, companyID, warehouseID); err != nil {
		return err
	}
	stock, err := r.Stocks.GetForUpdate(companyID, productID, warehouseID)
	if err != nil {
		return err
	}
	stock.OnOrder = decimal.Max(decimal.Zero, stock.OnOrder.Add(delta))
	stock.UpdatedAt = now
	return r.Stocks.Upsert(stock)
}

// AdjustCommitted suma delta (puede ser negativo) a la cantidad comprometida
// por producción. Igual que OnOrder: planeación, sin movimiento, piso en cero.
func (l *StockLedger) AdjustCommitted(r Repos, companyID, productID, warehouseID string, delta decimal.Decimal, now time.Time) error {
	if err := CheckWarehouse(r, companyID, warehouseID); err != nil {
		return err
	}
	stock, err := r.Stocks.GetForUpdate(companyID, productID, warehouseID)
	if err != nil {
		return err
	}
	stock.Committed = decimal.Max(decimal.Zero, stock.Committed.Add(delta))
	stock.UpdatedAt = now
	return r.Stocks.Upsert(stock)
}
