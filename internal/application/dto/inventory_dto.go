package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para IN/OUT/ADJUSTMENT: product_id, warehouse_id, type, quantity (unit_cost
// obligatorio en entradas). Para TRANSFER: from/to_warehouse_id.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id" validate:"required"`
	WarehouseID     string           `json:"warehouse_id,omitempty"`
	FromWarehouseID string           `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string           `json:"to_warehouse_id,omitempty"`
	Type            string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	BatchNumber     string           `json:"batch_number,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	Manufacturer    string           `json:"manufacturer,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// StockResponse saldo de un producto en una bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Committed   decimal.Decimal `json:"committed"`
	OnOrder     decimal.Decimal `json:"on_order"`
	Available   decimal.Decimal `json:"available"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Batches     []BatchResponse `json:"batches,omitempty"`
}

// BatchResponse lote con saldo.
type BatchResponse struct {
	BatchNumber  string          `json:"batch_number"`
	Quantity     decimal.Decimal `json:"quantity"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// MovementResponse entrada del ledger para respuestas.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	RefType       string          `json:"ref_type,omitempty"`
	RefID         string          `json:"ref_id,omitempty"`
	RefNumber     string          `json:"ref_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// CreateTransferRequest body para POST /api/inventory/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string              `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string              `json:"to_warehouse_id" validate:"required"`
	Notes           string              `json:"notes"`
	Lines           []TransferLineInput `json:"lines" validate:"required,min=1,dive"`
}

// TransferLineInput línea de traslado.
type TransferLineInput struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// TransferResponse traslado creado.
type TransferResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	ToWarehouseID   string    `json:"to_warehouse_id"`
	Status          string    `json:"status"`
	Date            time.Time `json:"date"`
	LineCount       int       `json:"line_count"`
}
