package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt (GRN) confirma la recepción física de mercancía de una orden de
// compra. Al postearse genera una entrada de ledger por línea y actualiza las
// cantidades recibidas del PO.
type GoodsReceipt struct {
	ID              string
	CompanyID       string
	PurchaseOrderID string
	WarehouseID     string
	Number          string
	Status          string // POSTED (se crea ya posteado, en la misma tx)
	Notes           string
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
	Lines           []*GoodsReceiptLine
}

// GoodsReceiptLine línea recibida. Para productos con lote, BatchNumber y
// ExpiryDate son obligatorios.
type GoodsReceiptLine struct {
	ID           string
	ReceiptID    string
	OrderLineID  string
	ProductID    string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	BatchNumber  string
	ExpiryDate   *time.Time
	Manufacturer string
}

// DebitNote devolución de mercancía a un proveedor sobre un GRN ya recibido.
// Al postearse genera una salida de ledger por línea.
type DebitNote struct {
	ID             string
	CompanyID      string
	GoodsReceiptID string
	WarehouseID    string
	Number         string
	Status         string
	Reason         string
	Date           time.Time
	CreatedAt      time.Time
	CreatedBy      string
	Lines          []*NoteLine
}

// NoteLine línea de una nota crédito o débito.
type NoteLine struct {
	ID          string
	NoteID      string
	ProductID   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	BatchNumber string
}
