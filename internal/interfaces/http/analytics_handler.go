package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
)

// AnalyticsHandler reportes de clasificación ABC.
type AnalyticsHandler struct {
	uc *analytics.ABCUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ABCUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetABC godoc
// @Summary      Clasificación ABC (Pareto)
// @Description  Ranking de ítems por valor anual de consumo con porcentaje individual y acumulado,
//               categoría A/B/C y resumen por categoría.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        basis        query  string  false  "value | unit_price | margin (default value)"
// @Param        threshold_a  query  number  false  "Corte acumulado de A (default 80)"
// @Param        threshold_b  query  number  false  "Corte acumulado de B (default 95)"
// @Param        threshold_c  query  number  false  "Corte acumulado de C (default 100)"
// @Param        period_days  query  int     false  "Ventana de consumo en días (default 365)"
// @Success      200  {object}  dto.ABCReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc [get]
func (h *AnalyticsHandler) GetABC(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.uc.Report(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GetABCPDF godoc
// @Summary      Clasificación ABC en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        basis        query  string  false  "value | unit_price | margin"
// @Param        threshold_a  query  number  false  "Corte acumulado de A"
// @Param        threshold_b  query  number  false  "Corte acumulado de B"
// @Param        threshold_c  query  number  false  "Corte acumulado de C"
// @Param        period_days  query  int     false  "Ventana de consumo en días"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc/pdf [get]
func (h *AnalyticsHandler) GetABCPDF(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.uc.ReportPDF(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

func (h *AnalyticsHandler) parseRequest(c *fiber.Ctx) (analytics.ABCRequest, error) {
	var in dto.ABCReportRequest
	if err := c.QueryParser(&in); err != nil {
		return analytics.ABCRequest{}, fmt.Errorf("parámetros de consulta inválidos: %w", domain.ErrInvalidInput)
	}
	basis, err := classification.ParseBasis(in.Basis)
	if err != nil {
		return analytics.ABCRequest{}, err
	}
	th, err := in.Thresholds(h.uc.DefaultThresholds())
	if err != nil {
		return analytics.ABCRequest{}, err
	}
	return analytics.ABCRequest{Basis: basis, Thresholds: th, PeriodDays: in.PeriodDays}, nil
}
