package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orbis-erp/orbis-api/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con el set
// completo de repositorios atados a la tx. Es la unidad de trabajo de todos
// los documentos: validar, mutar stock, grabar movimiento y mutar documento
// se confirman o revierten en bloque.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit si fn retorna nil, Rollback si no.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ledger.Repos{
		Stocks:           NewStockRepository(tx),
		Warehouses:       NewWarehouseRepository(tx),
		Batches:          NewBatchRepository(tx),
		Movements:        NewStockMovementRepository(tx),
		Products:         NewProductRepository(tx),
		Sequences:        NewSequenceRepository(tx),
		PurchaseOrders:   NewPurchaseOrderRepository(tx),
		GoodsReceipts:    NewGoodsReceiptRepository(tx),
		DebitNotes:       NewDebitNoteRepository(tx),
		SalesInvoices:    NewSalesInvoiceRepository(tx),
		Deliveries:       NewDeliveryRepository(tx),
		CreditNotes:      NewCreditNoteRepository(tx),
		Transfers:        NewStockTransferRepository(tx),
		ProductionOrders: NewProductionOrderRepository(tx),
		POSSales:         NewPOSSaleRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
