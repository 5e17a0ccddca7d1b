package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/application/analytics"
	"github.com/jhoicas/salon-pos-api/internal/application/auth"
	"github.com/jhoicas/salon-pos-api/internal/application/billing"
	"github.com/jhoicas/salon-pos-api/internal/application/inventory"
	"github.com/jhoicas/salon-pos-api/internal/application/usecase"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	ServiceUC    *usecase.ServiceUseCase
	MembershipUC *usecase.MembershipUseCase
	StockUC      *inventory.StockUseCase
	StockQueryUC *inventory.StockQueryUseCase
	CustomerUC   *billing.CustomerUseCase
	CreateSale   *billing.CreateSaleUseCase
	InvoicePDF   *billing.PDFUseCase
	DashboardUC  *analytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro de usuarios solo admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido; altas y cambios solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Services (protegido; altas y cambios solo admin)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", adminOnly, serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Put("/:id", adminOnly, serviceHandler.Update)

	// Membership plans (protegido; altas solo admin)
	memberships := protected.Group("/memberships")
	membershipHandler := NewMembershipHandler(deps.MembershipUC)
	memberships.Post("/", adminOnly, membershipHandler.Create)
	memberships.Get("/", membershipHandler.List)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Stock: lotes, consumos y libro de movimientos (protegido;
	// ajustes manuales solo admin)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.StockQueryUC)
	stock.Post("/lots", stockHandler.CreateLot)
	stock.Get("/lots", stockHandler.ListLots)
	stock.Get("/products/:id/available", stockHandler.AvailableStock)
	stock.Post("/usage", stockHandler.RecordUsage)
	stock.Post("/adjustments", adminOnly, stockHandler.RecordAdjustment)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/summary", stockHandler.StockSummary)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateSale, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)

	// Analytics (solo admin)
	analyticsGroup := protected.Group("/analytics", adminOnly)
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	analyticsGroup.Get("/revenue", analyticsHandler.Revenue)
	analyticsGroup.Get("/top-products", analyticsHandler.TopProducts)
}
