package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID  string                   `json:"supplier_id" validate:"required"`
	WarehouseID string                   `json:"warehouse_id" validate:"required"`
	Notes       string                   `json:"notes"`
	Lines       []PurchaseOrderLineInput `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseOrderLineInput línea de la orden de compra.
type PurchaseOrderLineInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra para respuestas.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	Number      string                      `json:"number"`
	SupplierID  string                      `json:"supplier_id"`
	WarehouseID string                      `json:"warehouse_id"`
	Status      string                      `json:"status"`
	Notes       string                      `json:"notes,omitempty"`
	Date        time.Time                   `json:"date"`
	Lines       []PurchaseOrderLineResponse `json:"lines"`
}

// PurchaseOrderLineResponse línea con lo recibido acumulado.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreateGoodsReceiptRequest body para POST /api/goods-receipts.
// Recepción contra una orden de compra aprobada.
type CreateGoodsReceiptRequest struct {
	PurchaseOrderID string                  `json:"purchase_order_id" validate:"required"`
	Notes           string                  `json:"notes"`
	Lines           []GoodsReceiptLineInput `json:"lines" validate:"required,min=1,dive"`
}

// GoodsReceiptLineInput línea recibida; order_line_id apunta a la línea del PO.
type GoodsReceiptLineInput struct {
	OrderLineID  string           `json:"order_line_id" validate:"required"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"` // vacío = costo de la línea del PO
	BatchNumber  string           `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time       `json:"expiry_date,omitempty"`
	Manufacturer string           `json:"manufacturer,omitempty"`
}

// GoodsReceiptResponse GRN posteado.
type GoodsReceiptResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	PurchaseOrderID string    `json:"purchase_order_id"`
	WarehouseID     string    `json:"warehouse_id"`
	Status          string    `json:"status"`
	OrderStatus     string    `json:"order_status"` // estado resultante del PO
	Date            time.Time `json:"date"`
	LineCount       int       `json:"line_count"`
}

// CreateDebitNoteRequest body para POST /api/debit-notes (devolución a proveedor).
type CreateDebitNoteRequest struct {
	GoodsReceiptID string          `json:"goods_receipt_id" validate:"required"`
	Reason         string          `json:"reason"`
	Lines          []NoteLineInput `json:"lines" validate:"required,min=1,dive"`
}

// NoteLineInput línea de nota crédito/débito.
type NoteLineInput struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// NoteResponse nota crédito o débito posteada.
type NoteResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Date      time.Time `json:"date"`
	LineCount int       `json:"line_count"`
}
