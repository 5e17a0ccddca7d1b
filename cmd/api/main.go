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
	appanalytics "github.com/jhoicas/salon-pos-api/internal/application/analytics"
	"github.com/jhoicas/salon-pos-api/internal/application/auth"
	"github.com/jhoicas/salon-pos-api/internal/application/billing"
	"github.com/jhoicas/salon-pos-api/internal/application/inventory"
	"github.com/jhoicas/salon-pos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/salon-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/salon-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/salon-pos-api/internal/interfaces/http"
	"github.com/jhoicas/salon-pos-api/pkg/config"
	"github.com/jhoicas/salon-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := inventory.NewStockUseCase(txRunner, lotRepo, productRepo)
	stockQueryUC := inventory.NewStockQueryUseCase(lotRepo, movementRepo, analyticsRepo)

	createSaleUC := billing.NewCreateSaleUseCase(
		txRunner, stockUC,
		lotRepo, customerRepo, serviceRepo, productRepo, membershipRepo, invoiceRepo,
	)
	customerUC := billing.NewCustomerUseCase(customerRepo, membershipRepo)

	// PDF: representación imprimible de la factura de venta
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, productRepo, pdfGenerator)

	productUC := usecase.NewProductUseCase(productRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo)
	membershipUC := usecase.NewMembershipUseCase(membershipRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		ServiceUC:    serviceUC,
		MembershipUC: membershipUC,
		StockUC:      stockUC,
		StockQueryUC: stockQueryUC,
		CustomerUC:   customerUC,
		CreateSale:   createSaleUC,
		InvoicePDF:   invoicePDFUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
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
