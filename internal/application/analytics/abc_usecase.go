// Package analytics contiene los casos de uso de reportes sobre el inventario:
// clasificación ABC (Pareto) por valor de consumo y su representación en PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	daysPerYear   = 365
	maxPeriodDays = 5 * daysPerYear
)

// ABCRequest parámetros del reporte. Valores cero toman los defaults del caso de uso.
type ABCRequest struct {
	Basis      classification.Basis
	Thresholds *classification.Thresholds
	PeriodDays int
}

// ABCUseCase compone el reporte ABC: ítems + consumo (salidas del kardex) → Classify → Summarize.
//
// Fuente de datos: repositorios de ítems y movimientos (consultas read-only).
type ABCUseCase struct {
	itemRepo   repository.StockItemRepository
	movRepo    repository.MovementRepository
	generator  ReportPDFGenerator
	thresholds classification.Thresholds
	periodDays int
	log        *logger.Logger
	now        func() time.Time
}

// NewABCUseCase construye el caso de uso. generator puede ser nil si no se expone el PDF.
func NewABCUseCase(
	itemRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
	generator ReportPDFGenerator,
	thresholds classification.Thresholds,
	periodDays int,
	log *logger.Logger,
) *ABCUseCase {
	if periodDays <= 0 {
		periodDays = daysPerYear
	}
	return &ABCUseCase{
		itemRepo:   itemRepo,
		movRepo:    movRepo,
		generator:  generator,
		thresholds: thresholds,
		periodDays: periodDays,
		log:        log.Component("abc"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// DefaultThresholds umbrales configurados; completan los que omite una petición.
func (uc *ABCUseCase) DefaultThresholds() classification.Thresholds {
	return uc.thresholds
}

// Report genera el ranking ABC y el resumen por categoría.
//
// El consumo anual de cada ítem es la suma de sus salidas en los últimos PeriodDays,
// anualizada cuando el período no es de 365 días.
func (uc *ABCUseCase) Report(ctx context.Context, req ABCRequest) (*dto.ABCReportResponse, error) {
	basis := req.Basis
	if basis == "" {
		basis = classification.ByValue
	}
	th := uc.thresholds
	if req.Thresholds != nil {
		th = *req.Thresholds
	}
	periodDays := req.PeriodDays
	if periodDays == 0 {
		periodDays = uc.periodDays
	}
	if periodDays < 0 || periodDays > maxPeriodDays {
		return nil, fmt.Errorf("period_days fuera de rango: %w", domain.ErrInvalidInput)
	}
	// Falla rápido antes de consultar la base
	if err := th.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	since := now.AddDate(0, 0, -periodDays)

	// Ítems y consumo son consultas independientes: en paralelo
	type itemsResult struct {
		items []*entity.StockItem
		err   error
	}
	type consumptionResult struct {
		sums map[string]decimal.Decimal
		err  error
	}
	itemsCh := make(chan itemsResult, 1)
	consCh := make(chan consumptionResult, 1)
	go func() {
		items, err := appinventory.ListAllItems(ctx, uc.itemRepo)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		sums, err := uc.movRepo.SumOutboundSince(ctx, since)
		consCh <- consumptionResult{sums, err}
	}()
	itemsRes := <-itemsCh
	consRes := <-consCh
	if itemsRes.err != nil {
		return nil, fmt.Errorf("abc: ítems: %w", itemsRes.err)
	}
	if consRes.err != nil {
		return nil, fmt.Errorf("abc: consumo: %w", consRes.err)
	}

	inputs := buildInputs(itemsRes.items, consRes.sums, periodDays)
	results, err := classification.Classify(inputs, basis, th)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.AnnualValue)
	}

	uc.log.Debug().
		Str("basis", string(basis)).
		Int("items", len(results)).
		Int("period_days", periodDays).
		Str("total", total.String()).
		Msg("reporte ABC generado")

	return &dto.ABCReportResponse{
		Basis:       string(basis),
		PeriodDays:  periodDays,
		Thresholds:  dto.ABCThresholdsDTO{A: th.A, B: th.B, C: th.C},
		Rows:        dto.ToABCRows(results),
		Summary:     dto.ToABCSummary(classification.Summarize(results)),
		Total:       total.Round(2),
		GeneratedAt: now,
	}, nil
}

// ReportPDF genera el reporte y lo renderiza en PDF. Devuelve los bytes y el nombre sugerido.
func (uc *ABCUseCase) ReportPDF(ctx context.Context, req ABCRequest) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("abc: generador PDF no configurado: %w", domain.ErrInvalidInput)
	}
	report, err := uc.Report(ctx, req)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateABCReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("abc: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("reporte-abc-%s-%s.pdf", report.Basis, report.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

// buildInputs arma la entrada de la clasificación en el orden del listado de ítems
// (orden de alta), que define el desempate estable.
func buildInputs(items []*entity.StockItem, outbound map[string]decimal.Decimal, periodDays int) []classification.Input {
	inputs := make([]classification.Input, 0, len(items))
	factor := decimal.NewFromInt(daysPerYear).Div(decimal.NewFromInt(int64(periodDays)))
	for _, it := range items {
		consumption := outbound[it.ID]
		if periodDays != daysPerYear {
			consumption = consumption.Mul(factor)
		}
		inputs = append(inputs, classification.Input{
			ID:                it.ID,
			Name:              it.Name,
			UnitValue:         it.UnitPrice,
			AnnualConsumption: consumption,
			UnitCost:          it.UnitCost,
		})
	}
	return inputs
}
