package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el registro de inventario de un producto en una bodega.
// Se crea perezosamente en el primer movimiento. Quantity es el saldo físico;
// Committed lo reservado por órdenes de producción pendientes; OnOrder lo
// pedido a proveedores y aún no recibido.
type Stock struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Committed   decimal.Decimal
	OnOrder     decimal.Decimal
	UpdatedAt   time.Time
}

// Available devuelve el saldo disponible para salidas (físico menos comprometido).
func (s *Stock) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Committed)
}

// Batch representa un lote de un producto con manejo por lote en una bodega.
// Quantity es el saldo vigente del lote; ExpiryDate nil = sin vencimiento.
type Batch struct {
	ID           string
	CompanyID    string
	ProductID    string
	WarehouseID  string
	BatchNumber  string
	Quantity     decimal.Decimal
	ExpiryDate   *time.Time
	Manufacturer string
	UnitCost     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired indica si el lote está vencido a la fecha dada.
func (b *Batch) Expired(at time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(at)
}
