package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// ItemHandler alta, consulta y edición de ítems de inventario.
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem
// @Description  Crea el ítem con cantidad 0. Si initial_quantity > 0 registra la entrada de apertura ("Stock inicial").
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "name, unit, threshold_kind, min_stock | reorder_point, unit_price, initial_quantity"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	policy, err := in.ThresholdPolicy()
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.Create(c.Context(), inventory.CreateItemInput{
		Name:            in.Name,
		Unit:            in.Unit,
		Threshold:       policy,
		UnitPrice:       in.UnitPrice,
		InitialQuantity: in.InitialQuantity,
		Actor:           GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ítem (UUID)"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStockItemResponse(item))
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page := pageParams(c, 20, 100)
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ItemListResponse{
		Items: make([]dto.StockItemResponse, 0, len(list)),
		Page:  page,
	}
	for _, it := range list {
		out.Items = append(out.Items, dto.ToStockItemResponse(it))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  Modifica nombre, unidad, umbral o precio. La cantidad solo cambia con movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del ítem (UUID)"
// @Param        body  body      dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	policy, err := in.ThresholdPolicy()
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), inventory.UpdateItemInput{
		Name:      in.Name,
		Unit:      in.Unit,
		Threshold: policy,
		UnitPrice: in.UnitPrice,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStockItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar ítem
// @Description  Solo ítems sin movimientos; con historial responde 409 CONFLICT.
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem (UUID)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
