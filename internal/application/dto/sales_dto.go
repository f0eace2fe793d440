package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID  string             `json:"customer_id" validate:"required"`
	WarehouseID string             `json:"warehouse_id" validate:"required"`
	Lines       []InvoiceLineInput `json:"lines" validate:"required,min=1,dive"`
}

// InvoiceLineInput línea de factura; unit_price en cero usa el precio del producto.
type InvoiceLineInput struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// InvoiceResponse factura posteada.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	Number      string                `json:"number"`
	CustomerID  string                `json:"customer_id"`
	WarehouseID string                `json:"warehouse_id"`
	Status      string                `json:"status"`
	NetTotal    decimal.Decimal       `json:"net_total"`
	TaxTotal    decimal.Decimal       `json:"tax_total"`
	GrandTotal  decimal.Decimal       `json:"grand_total"`
	Date        time.Time             `json:"date"`
	Lines       []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea de factura para respuestas.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	CustomerID  string              `json:"customer_id" validate:"required"`
	WarehouseID string              `json:"warehouse_id" validate:"required"`
	Notes       string              `json:"notes"`
	Lines       []DeliveryLineInput `json:"lines" validate:"required,min=1,dive"`
}

// DeliveryLineInput línea de remisión.
type DeliveryLineInput struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// DeliveryResponse remisión posteada.
type DeliveryResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	CustomerID  string    `json:"customer_id"`
	WarehouseID string    `json:"warehouse_id"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	LineCount   int       `json:"line_count"`
}

// CreateCreditNoteRequest body para POST /api/credit-notes (devolución de cliente).
type CreateCreditNoteRequest struct {
	SalesInvoiceID string          `json:"sales_invoice_id" validate:"required"`
	Reason         string          `json:"reason"`
	Lines          []NoteLineInput `json:"lines" validate:"required,min=1,dive"`
}
