package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/auth"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	AnalyticsUC   *analytics.AnalyticsUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; mutaciones solo manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleManager), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleManager), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleManager), productHandler.Delete)

	// Inventory movements (protegido, cualquier rol autenticado)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)

	// Analytics (solo manager)
	analyticsGroup := protected.Group("/analytics", RequireRole(entity.RoleManager))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/kpis", analyticsHandler.GetKPIs)
	analyticsGroup.Get("/historical/:productId", analyticsHandler.GetHistorical)
	analyticsGroup.Get("/scheduled/:productId", analyticsHandler.GetScheduled)
	analyticsGroup.Get("/forecast/:productId", analyticsHandler.GetForecast)
	analyticsGroup.Get("/anomalies", analyticsHandler.GetAnomalies)
	analyticsGroup.Get("/anomalies/:productId", analyticsHandler.GetProductAnomalies)
}
