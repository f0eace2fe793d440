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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (cabecera + líneas).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, company_id, supplier_id, warehouse_id, number, status, notes, date, created_at, updated_at, created_by`

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.SupplierID, order.WarehouseID, order.Number,
		order.Status, order.Notes, order.Date, order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range order.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_lines (id, order_id, product_id, quantity, received_qty, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.ReceivedQty, line.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera para la transición de estado.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.SupplierID, &o.WarehouseID, &o.Number,
		&o.Status, &o.Notes, &o.Date, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.lines(o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *PurchaseOrderRepo) lines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, quantity, received_qty, unit_cost
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.ReceivedQty, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus actualiza el estado de la cabecera.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateLineReceived escribe el acumulado recibido de una línea.
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, receivedQty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_lines SET received_qty = $2 WHERE id = $1`, lineID, receivedQty)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes por empresa, con filtro opcional de estado.
func (r *PurchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.SupplierID, &o.WarehouseID, &o.Number,
			&o.Status, &o.Notes, &o.Date, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		lines, err := r.lines(o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
	}
	return list, nil
}

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación del puerto GoodsReceiptRepository.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste el GRN con sus líneas.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, company_id, purchase_order_id, warehouse_id, number, status, notes, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.CompanyID, receipt.PurchaseOrderID, receipt.WarehouseID,
		receipt.Number, receipt.Status, receipt.Notes, receipt.Date, receipt.CreatedAt, receipt.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	for _, line := range receipt.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO goods_receipt_lines (id, receipt_id, order_line_id, product_id, quantity, unit_cost, batch_number, expiry_date, manufacturer)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, line.ReceiptID, line.OrderLineID, line.ProductID, line.Quantity,
			line.UnitCost, line.BatchNumber, line.ExpiryDate, line.Manufacturer,
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el GRN con sus líneas; nil si no existe.
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, company_id, purchase_order_id, warehouse_id, number, status, notes, date, created_at, created_by
		FROM goods_receipts WHERE id = $1`
	var g entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.CompanyID, &g.PurchaseOrderID, &g.WarehouseID, &g.Number,
		&g.Status, &g.Notes, &g.Date, &g.CreatedAt, &g.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, receipt_id, order_line_id, product_id, quantity, unit_cost, batch_number, expiry_date, manufacturer
		FROM goods_receipt_lines WHERE receipt_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.OrderLineID, &l.ProductID, &l.Quantity,
			&l.UnitCost, &l.BatchNumber, &l.ExpiryDate, &l.Manufacturer); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		g.Lines = append(g.Lines, &l)
	}
	return &g, rows.Err()
}

// ListByCompany lista GRN por empresa con paginación (solo cabeceras).
func (r *GoodsReceiptRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT id, company_id, purchase_order_id, warehouse_id, number, status, notes, date, created_at, created_by
		FROM goods_receipts WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var g entity.GoodsReceipt
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.PurchaseOrderID, &g.WarehouseID, &g.Number,
			&g.Status, &g.Notes, &g.Date, &g.CreatedAt, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

var _ repository.DebitNoteRepository = (*DebitNoteRepo)(nil)

// DebitNoteRepo implementación del puerto DebitNoteRepository.
type DebitNoteRepo struct {
	q Querier
}

// NewDebitNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDebitNoteRepository(q Querier) *DebitNoteRepo {
	return &DebitNoteRepo{q: q}
}

// Create persiste la nota débito con sus líneas.
func (r *DebitNoteRepo) Create(note *entity.DebitNote) error {
	query := `
		INSERT INTO debit_notes (id, company_id, goods_receipt_id, warehouse_id, number, status, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.CompanyID, note.GoodsReceiptID, note.WarehouseID, note.Number,
		note.Status, note.Reason, note.Date, note.CreatedAt, note.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert debit note: %w", err)
	}
	return insertNoteLines(r.q, "debit_note_lines", note.Lines)
}

// GetByID devuelve la nota con sus líneas; nil si no existe.
func (r *DebitNoteRepo) GetByID(id string) (*entity.DebitNote, error) {
	query := `
		SELECT id, company_id, goods_receipt_id, warehouse_id, number, status, reason, date, created_at, created_by
		FROM debit_notes WHERE id = $1`
	var n entity.DebitNote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.CompanyID, &n.GoodsReceiptID, &n.WarehouseID, &n.Number,
		&n.Status, &n.Reason, &n.Date, &n.CreatedAt, &n.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debit note: %w", err)
	}
	lines, err := listNoteLines(r.q, "debit_note_lines", id)
	if err != nil {
		return nil, err
	}
	n.Lines = lines
	return &n, nil
}

// ListByCompany lista notas débito por empresa (solo cabeceras).
func (r *DebitNoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.DebitNote, error) {
	query := `
		SELECT id, company_id, goods_receipt_id, warehouse_id, number, status, reason, date, created_at, created_by
		FROM debit_notes WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list debit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebitNote
	for rows.Next() {
		var n entity.DebitNote
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.GoodsReceiptID, &n.WarehouseID, &n.Number,
			&n.Status, &n.Reason, &n.Date, &n.CreatedAt, &n.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan debit note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// insertNoteLines inserta líneas de nota crédito/débito (misma forma de tabla).
func insertNoteLines(q Querier, table string, lines []*entity.NoteLine) error {
	for _, line := range lines {
		_, err := q.Exec(context.Background(),
			`INSERT INTO `+table+` (id, note_id, product_id, quantity, unit_cost, batch_number)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.NoteID, line.ProductID, line.Quantity, line.UnitCost, line.BatchNumber,
		)
		if err != nil {
			return fmt.Errorf("insert note line: %w", err)
		}
	}
	return nil
}

func listNoteLines(q Querier, table, noteID string) ([]*entity.NoteLine, error) {
	rows, err := q.Query(context.Background(),
		`SELECT id, note_id, product_id, quantity, unit_cost, batch_number FROM `+table+` WHERE note_id = $1 ORDER BY id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list note lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.NoteLine
	for rows.Next() {
		var l entity.NoteLine
		if err := rows.Scan(&l.ID, &l.NoteID, &l.ProductID, &l.Quantity, &l.UnitCost, &l.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan note line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}
