package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/pos/checkout.
type CheckoutRequest struct {
	WarehouseID   string              `json:"warehouse_id" validate:"required"`
	CustomerID    string              `json:"customer_id,omitempty"` // vacío = consumidor final
	PaymentMethod string              `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER"`
	Lines         []CheckoutLineInput `json:"lines" validate:"required,min=1,dive"`
}

// CheckoutLineInput línea de venta POS; unit_price en cero usa el precio del producto.
type CheckoutLineInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CheckoutResponse venta POS posteada.
type CheckoutResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	WarehouseID   string          `json:"warehouse_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	NetTotal      decimal.Decimal `json:"net_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Date          time.Time       `json:"date"`
	LineCount     int             `json:"line_count"`
}
