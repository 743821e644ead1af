package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// InventoryHandler vistas agregadas del inventario (solo lectura).
type InventoryHandler struct {
	stats         *inventory.StatsUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stats *inventory.StatsUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{stats: stats, replenishment: replenishment}
}

// GetStats godoc
// @Summary      Resumen del inventario
// @Description  Total de ítems, valor a precio de venta y conteo de ítems en estado bajo y crítico.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.Stats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Ítems en estado bajo o crítico con la cantidad sugerida para volver a 1.5 veces el umbral,
//
//	ordenados por déficit relativo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
