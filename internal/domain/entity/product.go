package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde movimientos; el saldo se maneja
// por bodega en Stock. BatchManaged indica si el producto se controla por lote
// (con vencimiento): sus entradas exigen número de lote y sus salidas se
// asignan por lote (FEFO si el caller no lo indica).
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate      decimal.Decimal // tasa de impuesto: 0, 0.05, 0.19, ...
	UnitMeasure  string
	BatchManaged bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
