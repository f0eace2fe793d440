package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder orden de producción: fabrica PlannedQty del producto
// ProductID consumiendo los componentes de Components.
// Al crearse compromete (committed) los componentes; emitir materiales los
// descuenta del físico y libera el compromiso; recibir producto terminado
// ingresa ReceivedQty del producto final.
type ProductionOrder struct {
	ID          string
	CompanyID   string
	WarehouseID string
	ProductID   string // producto terminado
	Number      string
	Status      string
	PlannedQty  decimal.Decimal
	ReceivedQty decimal.Decimal // producto terminado ya ingresado
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	Components  []*ProductionComponent
}

// ProductionComponent componente requerido por la orden. IssuedQty acumula lo
// emitido a producción.
type ProductionComponent struct {
	ID          string
	OrderID     string
	ProductID   string
	RequiredQty decimal.Decimal
	IssuedQty   decimal.Decimal
}
