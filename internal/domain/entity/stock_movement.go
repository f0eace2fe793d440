package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType clasifica un movimiento del ledger de inventario. Es un enum
// cerrado: el motivo de negocio va en la referencia al documento origen, no en
// el tipo, así el ledger puede agregarse por tipo sin parsear texto libre.
type MovementType string

const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste (+/-)
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado entre bodegas
)

// IsValid indica si el tipo es uno de los reconocidos.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Tipos de documento origen de un movimiento.
const (
	DocTypePurchaseOrder     = "PURCHASE_ORDER"
	DocTypeGoodsReceipt      = "GOODS_RECEIPT"
	DocTypeSalesInvoice      = "SALES_INVOICE"
	DocTypeDelivery          = "DELIVERY"
	DocTypeStockTransfer     = "STOCK_TRANSFER"
	DocTypeProductionOrder   = "PRODUCTION_ORDER"
	DocTypeProductionIssue   = "PRODUCTION_ISSUE"
	DocTypeProductionReceipt = "PRODUCTION_RECEIPT"
	DocTypePOSSale           = "POS_SALE"
	DocTypeCreditNote        = "CREDIT_NOTE"
	DocTypeDebitNote         = "DEBIT_NOTE"
	DocTypeManual            = "MANUAL"
)

// DocumentRef referencia tipada al documento que originó un movimiento.
type DocumentRef struct {
	Type   string // ver constantes DocType*
	ID     string
	Number string
}

// StockMovement es la entrada append-only del ledger: un registro por línea y
// operación, nunca se muta después de creado.
type StockMovement struct {
	ID            string
	CompanyID     string
	TransactionID string // agrupa los movimientos de una misma petición/documento
	ProductID     string
	WarehouseID   string
	Type          MovementType
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	BatchNumber   string // lote afectado cuando la asignación cayó en un único lote
	Ref           DocumentRef
	Notes         string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
