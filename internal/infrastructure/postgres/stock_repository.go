package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `company_id, product_id, warehouse_id, quantity, committed, on_order, updated_at`

// Get obtiene el registro de stock; nil si no existe.
func (r *StockRepo) Get(companyID, productID, warehouseID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + `
		FROM stocks WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3`
	return r.scanOne(query, companyID, productID, warehouseID)
}

// GetForUpdate bloquea la fila de stock (SELECT FOR UPDATE). Si no existe la
// crea primero en cero: dos primeras entradas concurrentes para el mismo
// (empresa, producto, bodega) serializan sobre la misma fila en vez de leer
// ambas un registro en cero y pisarse el Upsert.
func (r *StockRepo) GetForUpdate(companyID, productID, warehouseID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stocks (company_id, product_id, warehouse_id, quantity, committed, on_order, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, now())
		ON CONFLICT (company_id, product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, companyID, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("init stock: %w", err)
	}
	query := `SELECT ` + stockColumns + `
		FROM stocks WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 FOR UPDATE`
	return r.scanOne(query, companyID, productID, warehouseID)
}

// Upsert inserta o actualiza el registro de stock.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (company_id, product_id, warehouse_id, quantity, committed, on_order, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, product_id, warehouse_id)
		DO UPDATE SET quantity = $4, committed = $5, on_order = $6, updated_at = $7`
	_, err := r.q.Exec(context.Background(), query,
		stock.CompanyID, stock.ProductID, stock.WarehouseID,
		stock.Quantity, stock.Committed, stock.OnOrder, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista los saldos de una bodega con paginación.
func (r *StockRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + `
		FROM stocks WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY product_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.CompanyID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.Committed, &s.OnOrder, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.CompanyID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.Committed, &s.OnOrder, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, company_id, product_id, warehouse_id, batch_number, quantity, expiry_date, manufacturer, unit_cost, created_at, updated_at`

// GetForUpdate bloquea el lote indicado; nil si no existe.
func (r *BatchRepo) GetForUpdate(companyID, productID, warehouseID, batchNumber string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND batch_number = $4
		FOR UPDATE`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, companyID, productID, warehouseID, batchNumber).Scan(
		&b.ID, &b.CompanyID, &b.ProductID, &b.WarehouseID, &b.BatchNumber,
		&b.Quantity, &b.ExpiryDate, &b.Manufacturer, &b.UnitCost, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListForUpdate bloquea y devuelve los lotes con saldo en orden FEFO:
// vencimiento más próximo primero, lotes sin vencimiento al final.
func (r *BatchRepo) ListForUpdate(companyID, productID, warehouseID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC
		FOR UPDATE`
	return r.list(query, companyID, productID, warehouseID)
}

// Upsert inserta o actualiza un lote por su clave natural.
func (r *BatchRepo) Upsert(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, company_id, product_id, warehouse_id, batch_number, quantity, expiry_date, manufacturer, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, product_id, warehouse_id, batch_number)
		DO UPDATE SET quantity = $6, expiry_date = $7, manufacturer = $8, unit_cost = $9, updated_at = $11`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.ProductID, batch.WarehouseID, batch.BatchNumber,
		batch.Quantity, batch.ExpiryDate, batch.Manufacturer, batch.UnitCost,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// List devuelve los lotes con saldo de un producto en una bodega (solo lectura).
func (r *BatchRepo) List(companyID, productID, warehouseID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC`
	return r.list(query, companyID, productID, warehouseID)
}

func (r *BatchRepo) list(query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		var expiry *time.Time
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.ProductID, &b.WarehouseID, &b.BatchNumber,
			&b.Quantity, &expiry, &b.Manufacturer, &b.UnitCost, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.ExpiryDate = expiry
		list = append(list, &b)
	}
	return list, rows.Err()
}
