package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

var _ repository.SalesInvoiceRepository = (*SalesInvoiceRepo)(nil)

// SalesInvoiceRepo implementación del puerto SalesInvoiceRepository sobre
// PostgreSQL (cabecera + líneas).
type SalesInvoiceRepo struct {
	q Querier
}

// NewSalesInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesInvoiceRepository(q Querier) *SalesInvoiceRepo {
	return &SalesInvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, warehouse_id, number, status, net_total, tax_total, grand_total, date, created_at, updated_at, created_by`

// Create persiste la factura con sus líneas.
func (r *SalesInvoiceRepo) Create(invoice *entity.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.WarehouseID, invoice.Number,
		invoice.Status, invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal,
		invoice.Date, invoice.CreatedAt, invoice.UpdatedAt, invoice.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, line := range invoice.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sales_invoice_lines (id, invoice_id, product_id, quantity, unit_price, tax_rate, subtotal, batch_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID, line.InvoiceID, line.ProductID, line.Quantity,
			line.UnitPrice, line.TaxRate, line.Subtotal, line.BatchNumber,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la factura con sus líneas; nil si no existe.
func (r *SalesInvoiceRepo) GetByID(id string) (*entity.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE id = $1`
	var inv entity.SalesInvoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.WarehouseID, &inv.Number,
		&inv.Status, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Date, &inv.CreatedAt, &inv.UpdatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, invoice_id, product_id, quantity, unit_price, tax_rate, subtotal, batch_number
		FROM sales_invoice_lines WHERE invoice_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesInvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity,
			&l.UnitPrice, &l.TaxRate, &l.Subtotal, &l.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, &l)
	}
	return &inv, rows.Err()
}

// ListByCompany lista facturas por empresa (solo cabeceras).
func (r *SalesInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM sales_invoices WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesInvoice
	for rows.Next() {
		var inv entity.SalesInvoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.WarehouseID, &inv.Number,
			&inv.Status, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.Date, &inv.CreatedAt, &inv.UpdatedAt, &inv.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la remisión con sus líneas.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, company_id, customer_id, warehouse_id, number, status, notes, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.CompanyID, delivery.CustomerID, delivery.WarehouseID,
		delivery.Number, delivery.Status, delivery.Notes, delivery.Date, delivery.CreatedAt, delivery.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for _, line := range delivery.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO delivery_lines (id, delivery_id, product_id, quantity, batch_number)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.DeliveryID, line.ProductID, line.Quantity, line.BatchNumber,
		)
		if err != nil {
			return fmt.Errorf("insert delivery line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la remisión con sus líneas; nil si no existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `
		SELECT id, company_id, customer_id, warehouse_id, number, status, notes, date, created_at, created_by
		FROM deliveries WHERE id = $1`
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.CustomerID, &d.WarehouseID, &d.Number,
		&d.Status, &d.Notes, &d.Date, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, delivery_id, product_id, quantity, batch_number
		FROM delivery_lines WHERE delivery_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list delivery lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DeliveryLine
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.ProductID, &l.Quantity, &l.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan delivery line: %w", err)
		}
		d.Lines = append(d.Lines, &l)
	}
	return &d, rows.Err()
}

// ListByCompany lista remisiones por empresa (solo cabeceras).
func (r *DeliveryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT id, company_id, customer_id, warehouse_id, number, status, notes, date, created_at, created_by
		FROM deliveries WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.CustomerID, &d.WarehouseID, &d.Number,
			&d.Status, &d.Notes, &d.Date, &d.CreatedAt, &d.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implementación del puerto CreditNoteRepository.
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

// Create persiste la nota crédito con sus líneas.
func (r *CreditNoteRepo) Create(note *entity.CreditNote) error {
	query := `
		INSERT INTO credit_notes (id, company_id, sales_invoice_id, warehouse_id, number, status, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.CompanyID, note.SalesInvoiceID, note.WarehouseID, note.Number,
		note.Status, note.Reason, note.Date, note.CreatedAt, note.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert credit note: %w", err)
	}
	return insertNoteLines(r.q, "credit_note_lines", note.Lines)
}

// GetByID devuelve la nota con sus líneas; nil si no existe.
func (r *CreditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	query := `
		SELECT id, company_id, sales_invoice_id, warehouse_id, number, status, reason, date, created_at, created_by
		FROM credit_notes WHERE id = $1`
	var n entity.CreditNote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.CompanyID, &n.SalesInvoiceID, &n.WarehouseID, &n.Number,
		&n.Status, &n.Reason, &n.Date, &n.CreatedAt, &n.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit note: %w", err)
	}
	lines, err := listNoteLines(r.q, "credit_note_lines", id)
	if err != nil {
		return nil, err
	}
	n.Lines = lines
	return &n, nil
}

// ListByCompany lista notas crédito por empresa (solo cabeceras).
func (r *CreditNoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CreditNote, error) {
	query := `
		SELECT id, company_id, sales_invoice_id, warehouse_id, number, status, reason, date, created_at, created_by
		FROM credit_notes WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list credit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditNote
	for rows.Next() {
		var n entity.CreditNote
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.SalesInvoiceID, &n.WarehouseID, &n.Number,
			&n.Status, &n.Reason, &n.Date, &n.CreatedAt, &n.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan credit note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
