package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest body para POST /api/production-orders.
type CreateProductionOrderRequest struct {
	WarehouseID string                     `json:"warehouse_id" validate:"required"`
	ProductID   string                     `json:"product_id" validate:"required"` // producto terminado
	PlannedQty  decimal.Decimal            `json:"planned_qty"`
	Components  []ProductionComponentInput `json:"components" validate:"required,min=1,dive"`
}

// ProductionComponentInput componente requerido.
type ProductionComponentInput struct {
	ProductID   string          `json:"product_id" validate:"required"`
	RequiredQty decimal.Decimal `json:"required_qty"`
}

// IssueMaterialsRequest body para POST /api/production-orders/{id}/issue.
type IssueMaterialsRequest struct {
	Lines []IssueLineInput `json:"lines" validate:"required,min=1,dive"`
}

// IssueLineInput emisión parcial o total de un componente.
type IssueLineInput struct {
	ComponentID string          `json:"component_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// ReceiveFinishedRequest body para POST /api/production-orders/{id}/receive.
type ReceiveFinishedRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	BatchNumber string          `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// ProductionOrderResponse orden de producción para respuestas.
type ProductionOrderResponse struct {
	ID          string                        `json:"id"`
	Number      string                        `json:"number"`
	WarehouseID string                        `json:"warehouse_id"`
	ProductID   string                        `json:"product_id"`
	Status      string                        `json:"status"`
	PlannedQty  decimal.Decimal               `json:"planned_qty"`
	ReceivedQty decimal.Decimal               `json:"received_qty"`
	Date        time.Time                     `json:"date"`
	Components  []ProductionComponentResponse `json:"components"`
}

// ProductionComponentResponse componente con lo emitido acumulado.
type ProductionComponentResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	RequiredQty decimal.Decimal `json:"required_qty"`
	IssuedQty   decimal.Decimal `json:"issued_qty"`
}
