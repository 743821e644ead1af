package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// writeError traduce los errores de dominio a status HTTP y código estable.
// El orden importa: ErrItemNotFound envuelve ErrNotFound.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidMovement):
		status, code = fiber.StatusBadRequest, "INVALID_MOVEMENT"
	case errors.Is(err, domain.ErrInvalidThresholds):
		status, code = fiber.StatusBadRequest, "INVALID_THRESHOLDS"
	case errors.Is(err, domain.ErrDegenerateTotal):
		status, code = fiber.StatusUnprocessableEntity, "DEGENERATE_TOTAL"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pageParams lee limit/offset del query string.
func pageParams(c *fiber.Ctx, defLimit, maxLimit int) dto.PageResponse {
	return dto.PageWindow(c.QueryInt("limit", defLimit), c.QueryInt("offset", 0), defLimit, maxLimit)
}
