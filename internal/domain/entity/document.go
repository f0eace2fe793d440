package entity

import "github.com/shopspring/decimal"

// Estados compartidos de documentos.
const (
	StatusDraft     = "DRAFT"
	StatusApproved  = "APPROVED"
	StatusPending   = "PENDING"
	StatusPartial   = "PARTIAL"
	StatusCompleted = "COMPLETED"
	StatusPosted    = "POSTED"
	StatusCancelled = "CANCELLED"
)

// CompletionStatus es la regla única de completitud de documentos: compara lo
// cumplido contra lo ordenado. Todos los documentos con avance (PO, órdenes de
// producción) derivan su estado de aquí; nadie compara cantidades por su cuenta.
func CompletionStatus(ordered, fulfilled decimal.Decimal) string {
	switch {
	case fulfilled.LessThanOrEqual(decimal.Zero):
		return StatusPending
	case fulfilled.GreaterThanOrEqual(ordered):
		return StatusCompleted
	default:
		return StatusPartial
	}
}
