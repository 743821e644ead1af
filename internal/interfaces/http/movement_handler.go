package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// HeaderLedgerDigest digest SHA-256 del documento de auditoría exportado.
const HeaderLedgerDigest = "X-Ledger-Digest"

// MovementHandler registro y consulta del kardex de un ítem.
type MovementHandler struct {
	record  *inventory.RecordMovementUseCase
	history *inventory.HistoryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(record *inventory.RecordMovementUseCase, history *inventory.HistoryUseCase) *MovementHandler {
	return &MovementHandler{record: record, history: history}
}

// Record godoc
// @Summary      Registrar movimiento
// @Description  Entrada o salida sobre el ítem. Una salida mayor al stock responde 409 INSUFFICIENT_STOCK y no deja rastro.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del ítem (UUID)"
// @Param        body  body      dto.RecordMovementRequest  true  "direction, reason, quantity, unit_price (compras), note"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	direction, err := entity.ParseDirection(in.Direction)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidMovement, err))
	}
	reason, err := entity.ParseReason(in.Reason)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidMovement, err))
	}
	res, err := h.record.RecordMovement(c.Context(), inventory.RecordMovementInput{
		ItemID:    c.Params("id"),
		Direction: direction,
		Reason:    reason,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Note:      in.Note,
		Actor:     GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Movement: dto.ToMovementResponse(res.Movement),
		Item:     dto.ToStockItemResponse(res.Item),
	})
}

// History godoc
// @Summary      Historial del ítem
// @Description  Página del kardex, más recientes primero.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem (UUID)"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	page := pageParams(c, 50, 200)
	list, total, err := h.history.Page(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	page.Total = total
	out := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  page,
	}
	for _, m := range list {
		out.Items = append(out.Items, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar kardex (XML canónico)
// @Description  Documento C14N del ítem y su historial en orden cronológico; el digest SHA-256 va en X-Ledger-Digest.
// @Tags         movements
// @Security     Bearer
// @Produce      xml
// @Param        id   path  string  true  "ID del ítem (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	export, err := h.history.ExportXML(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-%s.xml"`, export.ItemID))
	c.Set(HeaderLedgerDigest, "sha256="+export.Digest)
	return c.Send(export.Doc)
}
