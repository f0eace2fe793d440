package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/auth"
	"github.com/orbis-erp/orbis-api/internal/application/inventory"
	"github.com/orbis-erp/orbis-api/internal/application/pos"
	"github.com/orbis-erp/orbis-api/internal/application/production"
	"github.com/orbis-erp/orbis-api/internal/application/purchasing"
	"github.com/orbis-erp/orbis-api/internal/application/sales"
	"github.com/orbis-erp/orbis-api/internal/application/usecase"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CompanyUC    *usecase.CompanyUseCase
	ModuleUC     *usecase.ModuleUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	ProductUC    *usecase.ProductUseCase
	PartnerUC    *usecase.PartnerUseCase
	MovementUC   *inventory.MovementUseCase
	QueryUC      *inventory.QueryUseCase
	TransferUC   *inventory.TransferUseCase
	POrderUC     *purchasing.PurchaseOrderUseCase
	ReceiptUC    *purchasing.GoodsReceiptUseCase
	DebitNoteUC  *purchasing.DebitNoteUseCase
	InvoiceUC    *sales.InvoiceUseCase
	DeliveryUC   *sales.DeliveryUseCase
	CreditNoteUC *sales.CreditNoteUseCase
	PDFUC        *sales.PDFUseCase
	CheckoutUC   *pos.CheckoutUseCase
	ProductionUC *production.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada grupo de documentos queda detrás
// del middleware del módulo SaaS correspondiente.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: creación pública (alta de tenant); módulos sólo admin.
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/:id/modules", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), companyHandler.ActivateModule)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole("admin"), warehouseHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Suppliers y Customers (protegido)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", partnerHandler.CreateSupplier)
	suppliers.Get("/", partnerHandler.ListSuppliers)
	customers := protected.Group("/customers")
	customers.Post("/", partnerHandler.CreateCustomer)
	customers.Get("/", partnerHandler.ListCustomers)

	// Inventory (módulo inventory)
	invGroup := protected.Group("/inventory", RequireModule(entity.ModuleInventory, deps.ModuleUC))
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.QueryUC, deps.TransferUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/product/:product_id", inventoryHandler.HistoryByProduct)
	invGroup.Get("/movements/warehouse/:warehouse_id", inventoryHandler.HistoryByWarehouse)
	invGroup.Get("/stock/warehouse/:warehouse_id", inventoryHandler.ListWarehouseStock)
	invGroup.Get("/stock/:product_id/:warehouse_id", inventoryHandler.GetStock)
	invGroup.Post("/transfers", inventoryHandler.CreateTransfer)

	// Purchasing (módulo purchasing)
	purchGroup := protected.Group("/purchasing", RequireModule(entity.ModulePurchasing, deps.ModuleUC))
	purchasingHandler := NewPurchasingHandler(deps.POrderUC, deps.ReceiptUC, deps.DebitNoteUC)
	purchGroup.Post("/orders", purchasingHandler.CreateOrder)
	purchGroup.Get("/orders", purchasingHandler.ListOrders)
	purchGroup.Get("/orders/:id", purchasingHandler.GetOrder)
	purchGroup.Post("/orders/:id/approve", purchasingHandler.ApproveOrder)
	purchGroup.Post("/receipts", purchasingHandler.CreateReceipt)
	purchGroup.Post("/debit-notes", purchasingHandler.CreateDebitNote)

	// Sales (módulo sales)
	salesGroup := protected.Group("/sales", RequireModule(entity.ModuleSales, deps.ModuleUC))
	salesHandler := NewSalesHandler(deps.InvoiceUC, deps.DeliveryUC, deps.CreditNoteUC, deps.PDFUC)
	salesGroup.Post("/invoices", salesHandler.CreateInvoice)
	salesGroup.Get("/invoices", salesHandler.ListInvoices)
	salesGroup.Get("/invoices/:id", salesHandler.GetInvoice)
	salesGroup.Post("/deliveries", salesHandler.CreateDelivery)
	salesGroup.Get("/deliveries/:id/pdf", salesHandler.DownloadDeliveryPDF)
	salesGroup.Post("/credit-notes", salesHandler.CreateCreditNote)

	// POS (módulo pos)
	posGroup := protected.Group("/pos", RequireModule(entity.ModulePOS, deps.ModuleUC))
	posHandler := NewPOSHandler(deps.CheckoutUC)
	posGroup.Post("/checkout", posHandler.Checkout)

	// Production (módulo production)
	prodGroup := protected.Group("/production", RequireModule(entity.ModuleProduction, deps.ModuleUC))
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prodGroup.Post("/orders", productionHandler.Create)
	prodGroup.Get("/orders", productionHandler.List)
	prodGroup.Get("/orders/:id", productionHandler.GetByID)
	prodGroup.Post("/orders/:id/issue", productionHandler.Issue)
	prodGroup.Post("/orders/:id/receive", productionHandler.Receive)
}
