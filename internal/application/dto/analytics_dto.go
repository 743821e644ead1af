package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
)

// ABCReportRequest parámetros de GET /api/analytics/abc (query string).
// Umbrales vacíos toman los valores por defecto de la configuración.
type ABCReportRequest struct {
	Basis      string `query:"basis"` // value | unit_price | margin
	ThresholdA string `query:"threshold_a"`
	ThresholdB string `query:"threshold_b"`
	ThresholdC string `query:"threshold_c"`
	PeriodDays int    `query:"period_days"`
}

// Thresholds devuelve nil si no se envió ningún umbral; los omitidos se completan con defaults.
func (r ABCReportRequest) Thresholds(defaults classification.Thresholds) (*classification.Thresholds, error) {
	if r.ThresholdA == "" && r.ThresholdB == "" && r.ThresholdC == "" {
		return nil, nil
	}
	th := defaults
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{{r.ThresholdA, &th.A}, {r.ThresholdB, &th.B}, {r.ThresholdC, &th.C}} {
		if f.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, domain.ErrInvalidThresholds
		}
		*f.dst = d
	}
	return &th, nil
}

// ── Por ítem ──────────────────────────────────────────────────────────────────

// ABCRowDTO fila del ranking ABC.
type ABCRowDTO struct {
	Rank                 int             `json:"rank"` // posición (1 = mayor valor)
	ItemID               string          `json:"item_id"`
	ItemName             string          `json:"item_name"`
	UnitValue            decimal.Decimal `json:"unit_value"`
	AnnualConsumption    decimal.Decimal `json:"annual_consumption"`
	AnnualValue          decimal.Decimal `json:"annual_value"`
	IndividualPercentage decimal.Decimal `json:"individual_percentage"`
	CumulativePercentage decimal.Decimal `json:"cumulative_percentage"` // acumulado descendente
	Category             string          `json:"category"`
}

// ── Por categoría ─────────────────────────────────────────────────────────────

// ABCSummaryDTO totales de una categoría.
type ABCSummaryDTO struct {
	Category        string          `json:"category"`
	Count           int             `json:"count"`
	CountPercentage decimal.Decimal `json:"count_percentage"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ValuePercentage decimal.Decimal `json:"value_percentage"`
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// ABCThresholdsDTO umbrales aplicados.
type ABCThresholdsDTO struct {
	A decimal.Decimal `json:"a"`
	B decimal.Decimal `json:"b"`
	C decimal.Decimal `json:"c"`
}

// ABCReportResponse respuesta completa de GET /api/analytics/abc.
type ABCReportResponse struct {
	Basis       string           `json:"basis"`
	PeriodDays  int              `json:"period_days"`
	Thresholds  ABCThresholdsDTO `json:"thresholds"`
	Rows        []ABCRowDTO      `json:"rows"`
	Summary     []ABCSummaryDTO  `json:"summary"` // siempre A, B, C
	Total       decimal.Decimal  `json:"total"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ToABCRows mapea los resultados clasificados; redondea porcentajes a 2 decimales para presentación.
func ToABCRows(results []classification.Result) []ABCRowDTO {
	rows := make([]ABCRowDTO, 0, len(results))
	for i, r := range results {
		rows = append(rows, ABCRowDTO{
			Rank:                 i + 1,
			ItemID:               r.ID,
			ItemName:             r.Name,
			UnitValue:            r.UnitValue,
			AnnualConsumption:    r.AnnualConsumption,
			AnnualValue:          r.AnnualValue.Round(2),
			IndividualPercentage: r.IndividualPercentage.Round(2),
			CumulativePercentage: r.CumulativePercentage.Round(2),
			Category:             string(r.Category),
		})
	}
	return rows
}

// ToABCSummary mapea el resumen por categoría.
func ToABCSummary(summary []classification.CategorySummary) []ABCSummaryDTO {
	out := make([]ABCSummaryDTO, 0, len(summary))
	for _, s := range summary {
		out = append(out, ABCSummaryDTO{
			Category:        string(s.Category),
			Count:           s.Count,
			CountPercentage: s.CountPercentage.Round(2),
			TotalValue:      s.TotalValue.Round(2),
			ValuePercentage: s.ValuePercentage.Round(2),
		})
	}
	return out
}
