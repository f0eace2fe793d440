package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación del puerto ProductionOrderRepository
// sobre PostgreSQL (cabecera + componentes).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionOrderColumns = `id, company_id, warehouse_id, product_id, number, status, planned_qty, received_qty, date, created_at, updated_at, created_by`

// Create persiste la orden con sus componentes.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (` + productionOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.WarehouseID, order.ProductID, order.Number,
		order.Status, order.PlannedQty, order.ReceivedQty, order.Date,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert production order: %w", err)
	}
	for _, comp := range order.Components {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO production_components (id, order_id, product_id, required_qty, issued_qty)
			VALUES ($1, $2, $3, $4, $5)`,
			comp.ID, comp.OrderID, comp.ProductID, comp.RequiredQty, comp.IssuedQty,
		)
		if err != nil {
			return fmt.Errorf("insert production component: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus componentes; nil si no existe.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera para emitir/recibir sin carreras.
func (r *ProductionOrderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.get(id, true)
}

func (r *ProductionOrderRepo) get(id string, forUpdate bool) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.WarehouseID, &o.ProductID, &o.Number,
		&o.Status, &o.PlannedQty, &o.ReceivedQty, &o.Date, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, required_qty, issued_qty
		FROM production_components WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list production components: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.ProductionComponent
		if err := rows.Scan(&c.ID, &c.OrderID, &c.ProductID, &c.RequiredQty, &c.IssuedQty); err != nil {
			return nil, fmt.Errorf("scan production component: %w", err)
		}
		o.Components = append(o.Components, &c)
	}
	return &o, rows.Err()
}

// UpdateStatus actualiza el estado de la cabecera.
func (r *ProductionOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update production order status: %w", err)
	}
	return nil
}

// UpdateComponentIssued escribe el acumulado emitido de un componente.
func (r *ProductionOrderRepo) UpdateComponentIssued(componentID string, issuedQty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE production_components SET issued_qty = $2 WHERE id = $1`, componentID, issuedQty)
	if err != nil {
		return fmt.Errorf("update production component: %w", err)
	}
	return nil
}

// UpdateReceivedQty escribe el acumulado de producto terminado recibido.
func (r *ProductionOrderRepo) UpdateReceivedQty(id string, receivedQty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET received_qty = $2, updated_at = now() WHERE id = $1`, id, receivedQty)
	if err != nil {
		return fmt.Errorf("update production order received: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes por empresa, con filtro opcional de estado
// (solo cabeceras).
func (r *ProductionOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.WarehouseID, &o.ProductID, &o.Number,
			&o.Status, &o.PlannedQty, &o.ReceivedQty, &o.Date, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
