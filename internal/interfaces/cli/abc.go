package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
)

type abcCmd struct {
	basis    string
	period   int
	a, b, c  string
	seed     string
	encoding string
	pdfOut   string
}

func (*abcCmd) Name() string     { return "abc" }
func (*abcCmd) Synopsis() string { return "muestra la clasificación ABC del inventario" }
func (*abcCmd) Usage() string {
	return `ledgerctl abc [-basis value|unit_price|margin] [-period días] [-a 80 -b 95 -c 100] [-seed archivo.csv] [-pdf salida.pdf]

  Calcula el ranking ABC con el consumo (salidas) del período y lo imprime como tabla.
  Con STORAGE_DRIVER=memory use -seed para cargar los ítems en la misma ejecución.
`
}

func (c *abcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basis, "basis", "value", "Criterio: value, unit_price, margin")
	f.IntVar(&c.period, "period", 0, "Ventana de consumo en días (default ABC_PERIOD_DAYS)")
	f.StringVar(&c.a, "a", "", "Corte acumulado de A")
	f.StringVar(&c.b, "b", "", "Corte acumulado de B")
	f.StringVar(&c.c, "c", "", "Corte acumulado de C")
	f.StringVar(&c.seed, "seed", "", "CSV a cargar antes de clasificar")
	f.StringVar(&c.encoding, "encoding", "latin1", "Codificación del CSV de -seed")
	f.StringVar(&c.pdfOut, "pdf", "", "Escribe además el reporte en PDF")
}

func (c *abcCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := classification.ParseBasis(c.basis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.close()

	query := dto.ABCReportRequest{ThresholdA: c.a, ThresholdB: c.b, ThresholdC: c.c}
	th, err := query.Thresholds(e.abc.DefaultThresholds())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.seed != "" {
		if _, err := e.seedFile(ctx, c.seed, c.encoding); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	req := analytics.ABCRequest{Basis: basis, Thresholds: th, PeriodDays: c.period}
	report, err := e.abc.Report(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(ABCMarkdown(report))

	if c.pdfOut != "" {
		pdfBytes, _, err := e.abc.ReportPDF(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.pdfOut, pdfBytes, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "PDF escrito en %s\n", c.pdfOut)
	}
	return subcommands.ExitSuccess
}

// ABCMarkdown reporte ABC como documento markdown (ranking + resumen por categoría).
func ABCMarkdown(r *dto.ABCReportResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Clasificación ABC (%s, %d días)\n\n", r.Basis, r.PeriodDays)
	fmt.Fprintf(&b, "Umbrales: A ≤ %s%%, B ≤ %s%%, C ≤ %s%%\n\n", r.Thresholds.A, r.Thresholds.B, r.Thresholds.C)

	b.WriteString("| # | Ítem | Valor unitario | Consumo anual | Valor anual | % | % acum. | Cat. |\n")
	b.WriteString("|--:|:-----|--------------:|--------------:|------------:|--:|--------:|:----:|\n")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Rank, escapeCell(row.ItemName),
			row.UnitValue.StringFixed(2), row.AnnualConsumption.StringFixed(2), row.AnnualValue.StringFixed(2),
			row.IndividualPercentage.StringFixed(2), row.CumulativePercentage.StringFixed(2), row.Category)
	}

	b.WriteString("\n## Resumen\n\n")
	b.WriteString("| Cat. | Ítems | % ítems | Valor | % valor |\n")
	b.WriteString("|:----:|------:|--------:|------:|--------:|\n")
	for _, s := range r.Summary {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n", s.Category, s.Count,
			s.CountPercentage.StringFixed(2), s.TotalValue.StringFixed(2), s.ValuePercentage.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n**Total:** %s\n", r.Total.StringFixed(2))
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// printMarkdown renderiza en la terminal; si glamour falla imprime el markdown crudo.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
