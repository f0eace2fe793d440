package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación del puerto StockTransferRepository sobre
// PostgreSQL (cabecera + líneas).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste el traslado con sus líneas.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.CompanyID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Number, transfer.Status, transfer.Notes, transfer.Date, transfer.CreatedAt, transfer.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, line := range transfer.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO stock_transfer_lines (id, transfer_id, product_id, quantity, batch_number)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.TransferID, line.ProductID, line.Quantity, line.BatchNumber,
		)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el traslado con sus líneas; nil si no existe.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `
		SELECT id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, date, created_at, created_by
		FROM stock_transfers WHERE id = $1`
	var t entity.StockTransfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Number,
		&t.Status, &t.Notes, &t.Date, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, transfer_id, product_id, quantity, batch_number
		FROM stock_transfer_lines WHERE transfer_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.StockTransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.Quantity, &l.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		t.Lines = append(t.Lines, &l)
	}
	return &t, rows.Err()
}

// ListByCompany lista traslados por empresa (solo cabeceras).
func (r *StockTransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, date, created_at, created_by
		FROM stock_transfers WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Number,
			&t.Status, &t.Notes, &t.Date, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
