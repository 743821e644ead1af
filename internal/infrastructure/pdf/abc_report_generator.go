// Package pdf genera la representación en PDF del reporte ABC de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + criterio  │  Fecha + período               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: A / B / C → ítems, % ítems, valor, % valor         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Ítem | Consumo | Valor anual | % | % acum | Cat  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}

	categoryColor = map[string]*props.Color{
		"A": {Red: 22, Green: 128, Blue: 61},
		"B": {Red: 202, Green: 138, Blue: 4},
		"C": {Red: 185, Green: 28, Blue: 28},
	}
)

var basisLabel = map[string]string{
	"value":      "Valor de consumo (precio × consumo anual)",
	"unit_price": "Precio unitario",
	"margin":     "Utilidad (margen × consumo anual)",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportPDFGenerator = (*ABCReportGenerator)(nil)

// ABCReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type ABCReportGenerator struct {
	currency string
	company  string
}

// NewABCReportGenerator construye el generador. currency es un código ISO 4217 (ej. BOB).
func NewABCReportGenerator(company, currency string) *ABCReportGenerator {
	return &ABCReportGenerator{company: company, currency: currency}
}

// GenerateABCReport genera el PDF y devuelve sus bytes.
func (g *ABCReportGenerator) GenerateABCReport(_ context.Context, report *dto.ABCReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Clasificación ABC de inventario", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report, g.currency)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Rows, g.currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ABCReportGenerator) headerRow(report *dto.ABCReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.company, "Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Criterio: "+nonEmpty(basisLabel[report.Basis], report.Basis), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CLASIFICACIÓN ABC", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+report.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Período: últimos %d días  |  Umbrales %s/%s/%s",
				report.PeriodDays,
				report.Thresholds.A.String(), report.Thresholds.B.String(), report.Thresholds.C.String(),
			), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func summaryRows(report *dto.ABCReportResponse, currency string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RESUMEN POR CATEGORÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, s := range report.Summary {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New("Categoría "+s.Category, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: categoryColor[s.Category], Top: 1,
			})),
			col.New(3).Add(text.New(fmt.Sprintf("%d ítems (%s)", s.Count, formatPct(s.CountPercentage)), props.Text{
				Size: 8, Top: 1,
			})),
			col.New(4).Add(text.New(formatMoney(s.TotalValue, currency), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(3).Add(text.New(formatPct(s.ValuePercentage)+" del valor", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Ítem", 4, align.Left),
		h("Consumo", 1, align.Right),
		h("Valor anual", 2, align.Right),
		h("%", 1, align.Right),
		h("% acum.", 2, align.Right),
		h("Cat.", 1, align.Center),
	)
}

// tableDetailRows: una fila por ítem clasificado.
func tableDetailRows(rows []dto.ABCRowDTO, currency string) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Rank), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(r.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.AnnualConsumption.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatMoney(r.AnnualValue, currency), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(formatPct(r.IndividualPercentage), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatPct(r.CumulativePercentage), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(r.Category, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: categoryColor[r.Category],
			})),
		))
	}
	return result
}

func (g *ABCReportGenerator) totalRow(report *dto.ABCReportResponse) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(report.Total, g.currency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
