package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransfer traslado de mercancía entre dos bodegas de la misma empresa.
// Genera DOS movimientos de ledger por línea: salida en origen y entrada en
// destino, dentro de la misma transacción.
type StockTransfer struct {
	ID              string
	CompanyID       string
	FromWarehouseID string
	ToWarehouseID   string
	Number          string
	Status          string
	Notes           string
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
	Lines           []*StockTransferLine
}

// StockTransferLine línea de traslado. Los productos con lote exigen
// BatchNumber: la identidad del lote viaja con la mercancía.
type StockTransferLine struct {
	ID          string
	TransferID  string
	ProductID   string
	Quantity    decimal.Decimal
	BatchNumber string
}
