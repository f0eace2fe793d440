package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en POS.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// POSSale venta de punto de venta (checkout): multi-línea, descuenta
// inventario al postearse; aborta completa si alguna línea no tiene stock.
type POSSale struct {
	ID            string
	CompanyID     string
	WarehouseID   string
	CustomerID    string // opcional: venta a consumidor final si vacío
	Number        string
	Status        string
	PaymentMethod string
	NetTotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
	Lines         []*POSSaleLine
}

// POSSaleLine línea de venta POS.
type POSSaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
}
