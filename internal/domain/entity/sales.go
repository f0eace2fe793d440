package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice factura de venta: descuenta inventario al postearse y calcula
// totales con impuesto por producto.
type SalesInvoice struct {
	ID          string
	CompanyID   string
	CustomerID  string
	WarehouseID string
	Number      string
	Status      string
	NetTotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	Lines       []*SalesInvoiceLine
}

// SalesInvoiceLine línea de factura de venta.
type SalesInvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
	BatchNumber string
}

// Delivery remisión o nota de entrega: salida de inventario sin facturación.
type Delivery struct {
	ID          string
	CompanyID   string
	CustomerID  string
	WarehouseID string
	Number      string
	Status      string
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
	Lines       []*DeliveryLine
}

// DeliveryLine línea de remisión.
type DeliveryLine struct {
	ID          string
	DeliveryID  string
	ProductID   string
	Quantity    decimal.Decimal
	BatchNumber string
}

// CreditNote devolución de un cliente sobre una factura: reingresa inventario.
type CreditNote struct {
	ID             string
	CompanyID      string
	SalesInvoiceID string
	WarehouseID    string
	Number         string
	Status         string
	Reason         string
	Date           time.Time
	CreatedAt      time.Time
	CreatedBy      string
	Lines          []*NoteLine
}
