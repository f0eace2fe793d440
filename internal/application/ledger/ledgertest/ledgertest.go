// Package ledgertest provee repositorios en memoria y un TxRunner falso para
// probar el ledger y los casos de uso de documentos sin base de datos. El
// TxRunner toma un snapshot del estado antes de ejecutar el callback y lo
// restaura si éste retorna error, imitando el rollback de una transacción
// real.
package ledgertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// Harness estado en memoria compartido por todos los repos falsos.
type Harness struct {
	mu sync.Mutex

	Stocks     map[string]entity.Stock
	Warehouses map[string]entity.Warehouse
	Batches    map[string]entity.Batch
	Movements  []entity.StockMovement
	Products   map[string]entity.Product
	Seqs       map[string]int64

	PurchaseOrders   map[string]*entity.PurchaseOrder
	GoodsReceipts    map[string]*entity.GoodsReceipt
	DebitNotes       map[string]*entity.DebitNote
	SalesInvoices    map[string]*entity.SalesInvoice
	Deliveries       map[string]*entity.Delivery
	CreditNotes      map[string]*entity.CreditNote
	Transfers        map[string]*entity.StockTransfer
	ProductionOrders map[string]*entity.ProductionOrder
	POSSales         map[string]*entity.POSSale
}

// New construye un harness vacío.
func New() *Harness {
	return &Harness{
		Stocks:           map[string]entity.Stock{},
		Warehouses:       map[string]entity.Warehouse{},
		Batches:          map[string]entity.Batch{},
		Products:         map[string]entity.Product{},
		Seqs:             map[string]int64{},
		PurchaseOrders:   map[string]*entity.PurchaseOrder{},
		GoodsReceipts:    map[string]*entity.GoodsReceipt{},
		DebitNotes:       map[string]*entity.DebitNote{},
		SalesInvoices:    map[string]*entity.SalesInvoice{},
		Deliveries:       map[string]*entity.Delivery{},
		CreditNotes:      map[string]*entity.CreditNote{},
		Transfers:        map[string]*entity.StockTransfer{},
		ProductionOrders: map[string]*entity.ProductionOrder{},
		POSSales:         map[string]*entity.POSSale{},
	}
}

// Repos arma el bundle de repositorios sobre el estado del harness.
func (h *Harness) Repos() ledger.Repos {
	return ledger.Repos{
		Stocks:           &stockRepo{h},
		Warehouses:       &warehouseRepo{h},
		Batches:          &batchRepo{h},
		Movements:        &movementRepo{h},
		Products:         &productRepo{h},
		Sequences:        &sequenceRepo{h},
		PurchaseOrders:   &purchaseOrderRepo{h},
		GoodsReceipts:    &goodsReceiptRepo{h},
		DebitNotes:       &debitNoteRepo{h},
		SalesInvoices:    &salesInvoiceRepo{h},
		Deliveries:       &deliveryRepo{h},
		CreditNotes:      &creditNoteRepo{h},
		Transfers:        &transferRepo{h},
		ProductionOrders: &productionOrderRepo{h},
		POSSales:         &posSaleRepo{h},
	}
}

// Run implementa ledger.TxRunner: snapshot antes, restore si fn falla.
func (h *Harness) Run(_ context.Context, fn func(r ledger.Repos) error) error {
	snap := h.snapshot()
	if err := fn(h.Repos()); err != nil {
		h.restore(snap)
		return err
	}
	return nil
}

// SeedProduct registra un producto en el catálogo.
func (h *Harness) SeedProduct(p entity.Product) {
	h.Products[p.ID] = p
}

// SeedWarehouse registra una bodega.
func (h *Harness) SeedWarehouse(w entity.Warehouse) {
	h.Warehouses[w.ID] = w
}

// SeedStock fija el saldo físico de un producto en una bodega.
func (h *Harness) SeedStock(companyID, productID, warehouseID string, qty decimal.Decimal) {
	key := companyID + "|" + productID + "|" + warehouseID
	h.Stocks[key] = entity.Stock{
		CompanyID:   companyID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
	}
}

// SeedBatch registra un lote con saldo.
func (h *Harness) SeedBatch(b entity.Batch) {
	key := b.CompanyID + "|" + b.ProductID + "|" + b.WarehouseID + "|" + b.BatchNumber
	h.Batches[key] = b
}

// Stock devuelve el saldo actual de un producto en una bodega (cero si no hay registro).
func (h *Harness) Stock(companyID, productID, warehouseID string) entity.Stock {
	return h.Stocks[companyID+"|"+productID+"|"+warehouseID]
}

// Batch devuelve el lote indicado (vacío si no existe).
func (h *Harness) Batch(companyID, productID, warehouseID, batchNumber string) entity.Batch {
	return h.Batches[companyID+"|"+productID+"|"+warehouseID+"|"+batchNumber]
}

type state struct {
	stocks           map[string]entity.Stock
	warehouses       map[string]entity.Warehouse
	batches          map[string]entity.Batch
	movements        []entity.StockMovement
	products         map[string]entity.Product
	seqs             map[string]int64
	purchaseOrders   map[string]*entity.PurchaseOrder
	goodsReceipts    map[string]*entity.GoodsReceipt
	debitNotes       map[string]*entity.DebitNote
	salesInvoices    map[string]*entity.SalesInvoice
	deliveries       map[string]*entity.Delivery
	creditNotes      map[string]*entity.CreditNote
	transfers        map[string]*entity.StockTransfer
	productionOrders map[string]*entity.ProductionOrder
	posSales         map[string]*entity.POSSale
}

func (h *Harness) snapshot() state {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := state{
		stocks:           map[string]entity.Stock{},
		warehouses:       map[string]entity.Warehouse{},
		batches:          map[string]entity.Batch{},
		movements:        append([]entity.StockMovement(nil), h.Movements...),
		products:         map[string]entity.Product{},
		seqs:             map[string]int64{},
		purchaseOrders:   map[string]*entity.PurchaseOrder{},
		goodsReceipts:    map[string]*entity.GoodsReceipt{},
		debitNotes:       map[string]*entity.DebitNote{},
		salesInvoices:    map[string]*entity.SalesInvoice{},
		deliveries:       map[string]*entity.Delivery{},
		creditNotes:      map[string]*entity.CreditNote{},
		transfers:        map[string]*entity.StockTransfer{},
		productionOrders: map[string]*entity.ProductionOrder{},
		posSales:         map[string]*entity.POSSale{},
	}
	for k, v := range h.Stocks {
		s.stocks[k] = v
	}
	for k, v := range h.Warehouses {
		s.warehouses[k] = v
	}
	for k, v := range h.Batches {
		s.batches[k] = v
	}
	for k, v := range h.Products {
		s.products[k] = v
	}
	for k, v := range h.Seqs {
		s.seqs[k] = v
	}
	for k, v := range h.PurchaseOrders {
		s.purchaseOrders[k] = clonePurchaseOrder(v)
	}
	for k, v := range h.GoodsReceipts {
		s.goodsReceipts[k] = v
	}
	for k, v := range h.DebitNotes {
		s.debitNotes[k] = v
	}
	for k, v := range h.SalesInvoices {
		s.salesInvoices[k] = v
	}
	for k, v := range h.Deliveries {
		s.deliveries[k] = v
	}
	for k, v := range h.CreditNotes {
		s.creditNotes[k] = v
	}
	for k, v := range h.Transfers {
		s.transfers[k] = v
	}
	for k, v := range h.ProductionOrders {
		s.productionOrders[k] = cloneProductionOrder(v)
	}
	for k, v := range h.POSSales {
		s.posSales[k] = v
	}
	return s
}

func (h *Harness) restore(s state) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Stocks = s.stocks
	h.Warehouses = s.warehouses
	h.Batches = s.batches
	h.Movements = s.movements
	h.Products = s.products
	h.Seqs = s.seqs
	h.PurchaseOrders = s.purchaseOrders
	h.GoodsReceipts = s.goodsReceipts
	h.DebitNotes = s.debitNotes
	h.SalesInvoices = s.salesInvoices
	h.Deliveries = s.deliveries
	h.CreditNotes = s.creditNotes
	h.Transfers = s.transfers
	h.ProductionOrders = s.productionOrders
	h.POSSales = s.posSales
}

func clonePurchaseOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	if po == nil {
		return nil
	}
	cp := *po
	cp.Lines = make([]*entity.PurchaseOrderLine, len(po.Lines))
	for i, l := range po.Lines {
		lc := *l
		cp.Lines[i] = &lc
	}
	return &cp
}

func cloneProductionOrder(po *entity.ProductionOrder) *entity.ProductionOrder {
	if po == nil {
		return nil
	}
	cp := *po
	cp.Components = make([]*entity.ProductionComponent, len(po.Components))
	for i, c := range po.Components {
		cc := *c
		cp.Components[i] = &cc
	}
	return &cp
}

// ── Stocks ────────────────────────────────────────────────────────────────────

type stockRepo struct{ h *Harness }

func stockKey(companyID, productID, warehouseID string) string {
	return companyID + "|" + productID + "|" + warehouseID
}

func (r *stockRepo) Get(companyID, productID, warehouseID string) (*entity.Stock, error) {
	if s, ok := r.h.Stocks[stockKey(companyID, productID, warehouseID)]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *stockRepo) GetForUpdate(companyID, productID, warehouseID string) (*entity.Stock, error) {
	if s, ok := r.h.Stocks[stockKey(companyID, productID, warehouseID)]; ok {
		cp := s
		return &cp, nil
	}
	return &entity.Stock{CompanyID: companyID, ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	r.h.Stocks[stockKey(stock.CompanyID, stock.ProductID, stock.WarehouseID)] = *stock
	return nil
}

func (r *stockRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.h.Stocks {
		if s.CompanyID == companyID && s.WarehouseID == warehouseID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return page(out, limit, offset), nil
}

// ── Warehouses ────────────────────────────────────────────────────────────────

type warehouseRepo struct{ h *Harness }

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	r.h.Warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.h.Warehouses[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r *warehouseRepo) Update(w *entity.Warehouse) error {
	r.h.Warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.h.Warehouses {
		if w.CompanyID == companyID {
			cp := w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *warehouseRepo) Delete(id string) error {
	delete(r.h.Warehouses, id)
	return nil
}

// ── Batches ───────────────────────────────────────────────────────────────────

type batchRepo struct{ h *Harness }

func batchKey(companyID, productID, warehouseID, batchNumber string) string {
	return companyID + "|" + productID + "|" + warehouseID + "|" + batchNumber
}

func (r *batchRepo) GetForUpdate(companyID, productID, warehouseID, batchNumber string) (*entity.Batch, error) {
	if b, ok := r.h.Batches[batchKey(companyID, productID, warehouseID, batchNumber)]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (r *batchRepo) ListForUpdate(companyID, productID, warehouseID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.h.Batches {
		if b.CompanyID == companyID && b.ProductID == productID && b.WarehouseID == warehouseID &&
			b.Quantity.GreaterThan(decimal.Zero) {
			cp := b
			out = append(out, &cp)
		}
	}
	// Orden FEFO: vencimiento más próximo primero, sin vencimiento al final.
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
		switch {
		case bi.ExpiryDate == nil && bj.ExpiryDate == nil:
			return bi.CreatedAt.Before(bj.CreatedAt)
		case bi.ExpiryDate == nil:
			return false
		case bj.ExpiryDate == nil:
			return true
		case !bi.ExpiryDate.Equal(*bj.ExpiryDate):
			return bi.ExpiryDate.Before(*bj.ExpiryDate)
		default:
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
	})
	return out, nil
}

func (r *batchRepo) Upsert(batch *entity.Batch) error {
	r.h.Batches[batchKey(batch.CompanyID, batch.ProductID, batch.WarehouseID, batch.BatchNumber)] = *batch
	return nil
}

func (r *batchRepo) List(companyID, productID, warehouseID string) ([]*entity.Batch, error) {
	return r.ListForUpdate(companyID, productID, warehouseID)
}

// ── Movements ─────────────────────────────────────────────────────────────────

type movementRepo struct{ h *Harness }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.h.Movements = append(r.h.Movements, *m)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for i := range r.h.Movements {
		if r.h.Movements[i].ID == id {
			cp := r.h.Movements[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool {
		return m.CompanyID == companyID && m.WarehouseID == warehouseID
	}, from, to, limit, offset)
}

func (r *movementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool {
		return m.CompanyID == companyID && m.ProductID == productID
	}, from, to, limit, offset)
}

func (r *movementRepo) list(match func(*entity.StockMovement) bool, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.h.Movements {
		m := r.h.Movements[i]
		if !match(&m) {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, limit, offset), nil
}

// ── Products ──────────────────────────────────────────────────────────────────

type productRepo struct{ h *Harness }

func (r *productRepo) Create(p *entity.Product) error {
	r.h.Products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.h.Products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.h.Products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.h.Products[p.ID] = *p
	return nil
}

func (r *productRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.h.Products[productID]; ok {
		p.Cost = cost
		r.h.Products[productID] = p
	}
	return nil
}

func (r *productRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.h.Products {
		if p.CompanyID == companyID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

func (r *productRepo) Delete(id string) error {
	delete(r.h.Products, id)
	return nil
}

// ── Sequences ─────────────────────────────────────────────────────────────────

type sequenceRepo struct{ h *Harness }

func (r *sequenceRepo) Next(companyID, docType string) (int64, error) {
	key := companyID + "|" + docType
	r.h.Seqs[key]++
	return r.h.Seqs[key], nil
}

// ── Documentos ────────────────────────────────────────────────────────────────

type purchaseOrderRepo struct{ h *Harness }

func (r *purchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	r.h.PurchaseOrders[po.ID] = clonePurchaseOrder(po)
	return nil
}

func (r *purchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return clonePurchaseOrder(r.h.PurchaseOrders[id]), nil
}

func (r *purchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return clonePurchaseOrder(r.h.PurchaseOrders[id]), nil
}

func (r *purchaseOrderRepo) UpdateStatus(id, status string) error {
	if po, ok := r.h.PurchaseOrders[id]; ok {
		po.Status = status
	}
	return nil
}

func (r *purchaseOrderRepo) UpdateLineReceived(lineID string, receivedQty decimal.Decimal) error {
	for _, po := range r.h.PurchaseOrders {
		for _, l := range po.Lines {
			if l.ID == lineID {
				l.ReceivedQty = receivedQty
			}
		}
	}
	return nil
}

func (r *purchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.h.PurchaseOrders {
		if po.CompanyID == companyID && (status == "" || po.Status == status) {
			out = append(out, clonePurchaseOrder(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type goodsReceiptRepo struct{ h *Harness }

func (r *goodsReceiptRepo) Create(g *entity.GoodsReceipt) error {
	r.h.GoodsReceipts[g.ID] = g
	return nil
}

func (r *goodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	return r.h.GoodsReceipts[id], nil
}

func (r *goodsReceiptRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, g := range r.h.GoodsReceipts {
		if g.CompanyID == companyID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type debitNoteRepo struct{ h *Harness }

func (r *debitNoteRepo) Create(n *entity.DebitNote) error {
	r.h.DebitNotes[n.ID] = n
	return nil
}

func (r *debitNoteRepo) GetByID(id string) (*entity.DebitNote, error) {
	return r.h.DebitNotes[id], nil
}

func (r *debitNoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.DebitNote, error) {
	var out []*entity.DebitNote
	for _, n := range r.h.DebitNotes {
		if n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return page(out, limit, offset), nil
}

type salesInvoiceRepo struct{ h *Harness }

func (r *salesInvoiceRepo) Create(inv *entity.SalesInvoice) error {
	r.h.SalesInvoices[inv.ID] = inv
	return nil
}

func (r *salesInvoiceRepo) GetByID(id string) (*entity.SalesInvoice, error) {
	return r.h.SalesInvoices[id], nil
}

func (r *salesInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.SalesInvoice, error) {
	var out []*entity.SalesInvoice
	for _, inv := range r.h.SalesInvoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type deliveryRepo struct{ h *Harness }

func (r *deliveryRepo) Create(d *entity.Delivery) error {
	r.h.Deliveries[d.ID] = d
	return nil
}

func (r *deliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.h.Deliveries[id], nil
}

func (r *deliveryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.h.Deliveries {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return page(out, limit, offset), nil
}

type creditNoteRepo struct{ h *Harness }

func (r *creditNoteRepo) Create(n *entity.CreditNote) error {
	r.h.CreditNotes[n.ID] = n
	return nil
}

func (r *creditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	return r.h.CreditNotes[id], nil
}

func (r *creditNoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CreditNote, error) {
	var out []*entity.CreditNote
	for _, n := range r.h.CreditNotes {
		if n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return page(out, limit, offset), nil
}

type transferRepo struct{ h *Harness }

func (r *transferRepo) Create(t *entity.StockTransfer) error {
	r.h.Transfers[t.ID] = t
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.h.Transfers[id], nil
}

func (r *transferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, t := range r.h.Transfers {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return page(out, limit, offset), nil
}

type productionOrderRepo struct{ h *Harness }

func (r *productionOrderRepo) Create(po *entity.ProductionOrder) error {
	r.h.ProductionOrders[po.ID] = cloneProductionOrder(po)
	return nil
}

func (r *productionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return cloneProductionOrder(r.h.ProductionOrders[id]), nil
}

func (r *productionOrderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	return cloneProductionOrder(r.h.ProductionOrders[id]), nil
}

func (r *productionOrderRepo) UpdateStatus(id, status string) error {
	if po, ok := r.h.ProductionOrders[id]; ok {
		po.Status = status
	}
	return nil
}

func (r *productionOrderRepo) UpdateComponentIssued(componentID string, issuedQty decimal.Decimal) error {
	for _, po := range r.h.ProductionOrders {
		for _, c := range po.Components {
			if c.ID == componentID {
				c.IssuedQty = issuedQty
			}
		}
	}
	return nil
}

func (r *productionOrderRepo) UpdateReceivedQty(id string, receivedQty decimal.Decimal) error {
	if po, ok := r.h.ProductionOrders[id]; ok {
		po.ReceivedQty = receivedQty
	}
	return nil
}

func (r *productionOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, po := range r.h.ProductionOrders {
		if po.CompanyID == companyID && (status == "" || po.Status == status) {
			out = append(out, cloneProductionOrder(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type posSaleRepo struct{ h *Harness }

func (r *posSaleRepo) Create(s *entity.POSSale) error {
	r.h.POSSales[s.ID] = s
	return nil
}

func (r *posSaleRepo) GetByID(id string) (*entity.POSSale, error) {
	return r.h.POSSales[id], nil
}

func (r *posSaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.POSSale, error) {
	var out []*entity.POSSale
	for _, s := range r.h.POSSales {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return page(out, limit, offset), nil
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
