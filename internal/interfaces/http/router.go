package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Items          *inventory.ItemUseCase
	RecordMovement *inventory.RecordMovementUseCase
	History        *inventory.HistoryUseCase
	Stats          *inventory.StatsUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	ABC            *analytics.ABCUseCase
	JWTSecret      string // vacío = rutas sin autenticación (solo desarrollo)
	JWTIssuer      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}

	// Ítems
	itemHandler := NewItemHandler(deps.Items)
	items := api.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Kardex
	movementHandler := NewMovementHandler(deps.RecordMovement, deps.History)
	items.Post("/:id/movements", movementHandler.Record)
	items.Get("/:id/movements", movementHandler.History)
	items.Get("/:id/movements/export", movementHandler.Export)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Stats, deps.Replenishment)
	inv := api.Group("/inventory")
	inv.Get("/stats", inventoryHandler.GetStats)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Analítica
	analyticsHandler := NewAnalyticsHandler(deps.ABC)
	an := api.Group("/analytics")
	an.Get("/abc", analyticsHandler.GetABC)
	an.Get("/abc/pdf", analyticsHandler.GetABCPDF)
}
