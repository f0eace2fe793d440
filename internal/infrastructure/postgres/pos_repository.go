package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.POSSaleRepository = (*POSSaleRepo)(nil)

// POSSaleRepo implementación del puerto POSSaleRepository sobre PostgreSQL
// (cabecera + líneas).
type POSSaleRepo struct {
	q Querier
}

// NewPOSSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPOSSaleRepository(q Querier) *POSSaleRepo {
	return &POSSaleRepo{q: q}
}

const posSaleColumns = `id, company_id, warehouse_id, customer_id, number, status, payment_method, net_total, tax_total, grand_total, date, created_at, created_by`

// Create persiste la venta POS con sus líneas.
func (r *POSSaleRepo) Create(sale *entity.POSSale) error {
	query := `
		INSERT INTO pos_sales (` + posSaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.WarehouseID, sale.CustomerID, sale.Number,
		sale.Status, sale.PaymentMethod, sale.NetTotal, sale.TaxTotal, sale.GrandTotal,
		sale.Date, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert pos sale: %w", err)
	}
	for _, line := range sale.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO pos_sale_lines (id, sale_id, product_id, quantity, unit_price, tax_rate, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, line.SaleID, line.ProductID, line.Quantity,
			line.UnitPrice, line.TaxRate, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert pos sale line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas; nil si no existe.
func (r *POSSaleRepo) GetByID(id string) (*entity.POSSale, error) {
	query := `SELECT ` + posSaleColumns + ` FROM pos_sales WHERE id = $1`
	var s entity.POSSale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.WarehouseID, &s.CustomerID, &s.Number,
		&s.Status, &s.PaymentMethod, &s.NetTotal, &s.TaxTotal, &s.GrandTotal,
		&s.Date, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pos sale: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, quantity, unit_price, tax_rate, subtotal
		FROM pos_sale_lines WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list pos sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.POSSaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.TaxRate, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan pos sale line: %w", err)
		}
		s.Lines = append(s.Lines, &l)
	}
	return &s, rows.Err()
}

// ListByCompany lista ventas POS por empresa (solo cabeceras).
func (r *POSSaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.POSSale, error) {
	query := `SELECT ` + posSaleColumns + `
		FROM pos_sales WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pos sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.POSSale
	for rows.Next() {
		var s entity.POSSale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.WarehouseID, &s.CustomerID, &s.Number,
			&s.Status, &s.PaymentMethod, &s.NetTotal, &s.TaxTotal, &s.GrandTotal,
			&s.Date, &s.CreatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan pos sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
