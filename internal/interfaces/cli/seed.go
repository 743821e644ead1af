package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SeedRow fila del CSV de carga inicial.
// Outbound son salidas históricas: se registran como ventas para que el ABC tenga consumo.
type SeedRow struct {
	Name      string
	Unit      string
	MinStock  decimal.Decimal
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	Outbound  decimal.Decimal
}

// Columnas reconocidas (cabecera obligatoria, orden libre).
var seedColumns = map[string][]string{
	"name":       {"nombre", "name"},
	"unit":       {"unidad", "unit"},
	"min_stock":  {"stock_minimo", "min_stock"},
	"unit_price": {"precio", "unit_price"},
	"quantity":   {"cantidad", "quantity"},
	"outbound":   {"salidas", "outbound"},
}

// ReadSeed lee el CSV separado por ';'. Con latin1 decodifica ISO-8859-1 (exportación típica de Excel).
// Acepta coma decimal ("12,5").
func ReadSeed(r io.Reader, latin1 bool) ([]SeedRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for key, aliases := range seedColumns {
			for _, a := range aliases {
				if h == a {
					idx[key] = i
				}
			}
		}
	}
	for _, required := range []string{"name", "unit", "unit_price"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var rows []SeedRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(key string) string {
			i, ok := idx[key]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := SeedRow{Name: field("name"), Unit: field("unit")}
		if row.Name == "" {
			continue
		}
		for _, f := range []struct {
			key string
			dst *decimal.Decimal
		}{
			{"min_stock", &row.MinStock},
			{"unit_price", &row.UnitPrice},
			{"quantity", &row.Quantity},
			{"outbound", &row.Outbound},
		} {
			if *f.dst, err = parseDecimal(field(f.key)); err != nil {
				return nil, fmt.Errorf("línea %d, %s: %w", line, f.key, err)
			}
		}
		rows = append(rows, row)
	}
}

// parseDecimal acepta punto decimal ("1234.56") y el formato de planilla en español ("1.234,56"):
// con coma decimal, los puntos son separadores de miles.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// Seed crea los ítems y registra sus salidas históricas. Devuelve la cantidad de ítems creados.
func Seed(ctx context.Context, items *inventory.ItemUseCase, movements *inventory.RecordMovementUseCase, rows []SeedRow) (int, error) {
	for i, row := range rows {
		item, err := items.Create(ctx, inventory.CreateItemInput{
			Name:            row.Name,
			Unit:            row.Unit,
			Threshold:       entity.FixedThreshold(row.MinStock),
			UnitPrice:       row.UnitPrice,
			InitialQuantity: row.Quantity.Add(row.Outbound),
			Actor:           actorCLI,
		})
		if err != nil {
			return i, fmt.Errorf("%s: %w", row.Name, err)
		}
		if !row.Outbound.IsPositive() {
			continue
		}
		if _, err := movements.RecordMovement(ctx, inventory.RecordMovementInput{
			ItemID:    item.ID,
			Direction: entity.DirectionOut,
			Reason:    entity.ReasonSale,
			Quantity:  row.Outbound,
			Note:      "Carga inicial de consumo",
			Actor:     actorCLI,
		}); err != nil {
			return i, fmt.Errorf("%s: %w", row.Name, err)
		}
	}
	return len(rows), nil
}

type seedCmd struct {
	file     string
	encoding string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "carga ítems desde un CSV (separado por ';')" }
func (*seedCmd) Usage() string {
	return `ledgerctl seed -f <archivo.csv> [-encoding latin1|utf8]

  Crea un ítem por fila con su stock inicial. Columnas:
  nombre;unidad;stock_minimo;precio;cantidad;salidas
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Archivo CSV")
	f.StringVar(&c.encoding, "encoding", "latin1", "Codificación del archivo (latin1, utf8)")
}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f es obligatorio")
		return subcommands.ExitUsageError
	}
	env, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.close()

	n, err := env.seedFile(ctx, c.file, c.encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d ítems cargados desde %s\n", n, c.file)
	return subcommands.ExitSuccess
}
