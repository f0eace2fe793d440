package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/orbis-erp/orbis-api/internal/application/auth"
	"github.com/orbis-erp/orbis-api/internal/application/inventory"
	"github.com/orbis-erp/orbis-api/internal/application/ledger"
	"github.com/orbis-erp/orbis-api/internal/application/pos"
	"github.com/orbis-erp/orbis-api/internal/application/production"
	"github.com/orbis-erp/orbis-api/internal/application/purchasing"
	"github.com/orbis-erp/orbis-api/internal/application/sales"
	"github.com/orbis-erp/orbis-api/internal/application/usecase"
	infrapdf "github.com/orbis-erp/orbis-api/internal/infrastructure/pdf"
	"github.com/orbis-erp/orbis-api/internal/infrastructure/postgres"
	httpRouter "github.com/orbis-erp/orbis-api/internal/interfaces/http"
	"github.com/orbis-erp/orbis-api/pkg/config"
	"github.com/orbis-erp/orbis-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de lectura fuera de transacción. Las escrituras de stock
	// pasan siempre por el TxRunner, que arma sus propios repos sobre la tx.
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewSalesInvoiceRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	productionRepo := postgres.NewProductionOrderRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	stockLedger := ledger.New()

	authUC := auth.NewUseCase(userRepo, companyRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	moduleUC := usecase.NewModuleUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	partnerUC := usecase.NewPartnerUseCase(supplierRepo, customerRepo)

	movementUC := inventory.NewMovementUseCase(txRunner, stockLedger)
	queryUC := inventory.NewQueryUseCase(stockRepo, batchRepo, movementRepo, productRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, stockLedger)

	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(txRunner, stockLedger, purchaseOrderRepo, supplierRepo)
	goodsReceiptUC := purchasing.NewGoodsReceiptUseCase(txRunner, stockLedger)
	debitNoteUC := purchasing.NewDebitNoteUseCase(txRunner, stockLedger)

	invoiceUC := sales.NewInvoiceUseCase(txRunner, stockLedger, invoiceRepo, customerRepo)
	deliveryUC := sales.NewDeliveryUseCase(txRunner, stockLedger, deliveryRepo, customerRepo)
	creditNoteUC := sales.NewCreditNoteUseCase(txRunner, stockLedger)
	pdfGenerator := infrapdf.NewMarotoDeliveryGenerator()
	pdfUC := sales.NewPDFUseCase(deliveryRepo, companyRepo, customerRepo, productRepo, pdfGenerator)

	checkoutUC := pos.NewCheckoutUseCase(txRunner, stockLedger)
	productionUC := production.NewUseCase(txRunner, stockLedger, productionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Orbis ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		ModuleUC:     moduleUC,
		WarehouseUC:  warehouseUC,
		ProductUC:    productUC,
		PartnerUC:    partnerUC,
		MovementUC:   movementUC,
		QueryUC:      queryUC,
		TransferUC:   transferUC,
		POrderUC:     purchaseOrderUC,
		ReceiptUC:    goodsReceiptUC,
		DebitNoteUC:  debitNoteUC,
		InvoiceUC:    invoiceUC,
		DeliveryUC:   deliveryUC,
		CreditNoteUC: creditNoteUC,
		PDFUC:        pdfUC,
		CheckoutUC:   checkoutUC,
		ProductionUC: productionUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
