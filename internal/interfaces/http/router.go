package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *appinventory.RegisterMovementUseCase
	BulkMovement     *appinventory.BulkMovementUseCase
	StockAdjustment  *appinventory.StockAdjustmentUseCase
	MovementQuery    *appinventory.MovementQueryUseCase
	MovementReport   *appinventory.MovementReportUseCase
	Revenue          *appanalytics.RevenueUseCase
	RateLimiter      *RateLimiter // opcional: nil desactiva el límite
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	writeLimited := func(h fiber.Handler) []fiber.Handler {
		if deps.RateLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{deps.RateLimiter.Middleware(), h}
	}

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.RegisterMovement, deps.BulkMovement, deps.StockAdjustment,
		deps.MovementQuery, deps.MovementReport,
	)
	invGroup.Post("/movements", writeLimited(inventoryHandler.RegisterMovement)...)
	invGroup.Post("/movements/bulk", writeLimited(inventoryHandler.RegisterBulkMovements)...)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/report", inventoryHandler.MovementsReport)

	// Ajustes manuales: solo OWNER llega al caso de uso
	adjHandlers := append(
		[]fiber.Handler{RequireRole(entity.RoleOwner)},
		writeLimited(inventoryHandler.CreateAdjustment)...,
	)
	invGroup.Post("/adjustments", adjHandlers...)

	// Analytics (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.Revenue)
	analyticsGroup.Get("/revenue", analyticsHandler.GetRevenueSummary)
}
