package ledger

import (
	"context"

	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a UNA transacción de base de datos.
// El TxRunner los construye sobre la tx y los pasa al callback; cualquier
// escritura hecha a través de ellos se confirma o revierte en bloque.
type Repos struct {
	Stocks           repository.StockRepository
	Warehouses       repository.WarehouseRepository
	Batches          repository.BatchRepository
	Movements        repository.StockMovementRepository
	Products         repository.ProductRepository
	Sequences        repository.SequenceRepository
	PurchaseOrders   repository.PurchaseOrderRepository
	GoodsReceipts    repository.GoodsReceiptRepository
	DebitNotes       repository.DebitNoteRepository
	SalesInvoices    repository.SalesInvoiceRepository
	Deliveries       repository.DeliveryRepository
	CreditNotes      repository.CreditNoteRepository
	Transfers        repository.StockTransferRepository
	ProductionOrders repository.ProductionOrderRepository
	POSSales         repository.POSSaleRepository
}

// TxRunner es la unidad de trabajo del sistema: ejecuta fn dentro de una
// transacción y garantiza validar → mutar stock → grabar movimiento → mutar
// documento como operación atómica (Commit si fn retorna nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
