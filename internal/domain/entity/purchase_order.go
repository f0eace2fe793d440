package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder es una orden de compra a un proveedor.
// Ciclo: DRAFT -> APPROVED (suma on_order) -> PARTIAL/COMPLETED según recepciones.
type PurchaseOrder struct {
	ID          string
	CompanyID   string
	SupplierID  string
	WarehouseID string
	Number      string
	Status      string
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	Lines       []*PurchaseOrderLine
}

// PurchaseOrderLine línea de una orden de compra. ReceivedQty acumula lo
// recibido vía GRN; el estado del documento sale de CompletionStatus.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    decimal.Decimal
	ReceivedQty decimal.Decimal
	UnitCost    decimal.Decimal
}

// OrderedTotal suma las cantidades ordenadas de todas las líneas.
func (po *PurchaseOrder) OrderedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.Quantity)
	}
	return total
}

// ReceivedTotal suma las cantidades recibidas de todas las líneas.
func (po *PurchaseOrder) ReceivedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.ReceivedQty)
	}
	return total
}
