package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const seedCSV = `nombre;unidad;stock_minimo;precio;cantidad;salidas
Azúcar morena;kg;5;2,5;40;60
Cacao;kg;2;30;10;20
Piña deshidratada;kg;1;12;4;0
`

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReadSeed
// ──────────────────────────────────────────────────────────────────────────────

func TestReadSeed_Latin1ConComaDecimal(t *testing.T) {
	rows, err := ReadSeed(bytes.NewReader(latin1(t, seedCSV)), true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Azúcar morena", rows[0].Name)
	assert.True(t, rows[0].UnitPrice.Equal(dec("2.5")))
	assert.True(t, rows[0].Outbound.Equal(dec("60")))
	assert.Equal(t, "Piña deshidratada", rows[2].Name)
	assert.True(t, rows[2].Outbound.IsZero())
}

func TestReadSeed_Latin1ConSeparadorDeMiles(t *testing.T) {
	csv := "nombre;unidad;stock_minimo;precio;cantidad;salidas\nHarina de trigo;kg;1.000;1.234,56;2.500,5;10\n"
	rows, err := ReadSeed(bytes.NewReader(latin1(t, csv)), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].UnitPrice.Equal(dec("1234.56")), "got %s", rows[0].UnitPrice)
	assert.True(t, rows[0].Quantity.Equal(dec("2500.5")), "got %s", rows[0].Quantity)
	// Sin coma el punto es decimal.
	assert.True(t, rows[0].MinStock.Equal(dec("1")), "got %s", rows[0].MinStock)
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"2,5", "2.5"},
		{"12.75", "12.75"},
		{"1.234,56", "1234.56"},
		{"1.234.567,8", "1234567.8"},
		{" 3 ", "3"},
	}
	for _, tc := range cases {
		got, err := parseDecimal(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(dec(tc.want)), "%q: got %s", tc.in, got)
	}

	for _, in := range []string{"1,2,3", "abc", "1.2.3"} {
		_, err := parseDecimal(in)
		assert.Error(t, err, in)
	}
}

func TestReadSeed_UTF8ColumnasEnOtroOrden(t *testing.T) {
	csv := "price_unused;unit;name;unit_price\nx;u;Sal;1\n"
	rows, err := ReadSeed(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sal", rows[0].Name)
	assert.True(t, rows[0].Quantity.IsZero())
}

func TestReadSeed_Errores(t *testing.T) {
	_, err := ReadSeed(strings.NewReader("nombre;unidad\nSal;kg\n"), false)
	assert.ErrorContains(t, err, "unit_price")

	_, err = ReadSeed(strings.NewReader("nombre;unidad;precio\nSal;kg;caro\n"), false)
	assert.ErrorContains(t, err, "línea 2")

	_, err = ReadSeed(strings.NewReader(""), false)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seed + ABC sobre memoria
// ──────────────────────────────────────────────────────────────────────────────

func memoryEnv(t *testing.T) *env {
	t.Helper()
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}
	cfg.ABC.ThresholdA, cfg.ABC.ThresholdB, cfg.ABC.ThresholdC = dec("80"), dec("95"), dec("100")
	cfg.ABC.PeriodDays = 365
	cfg.Report.Currency = "BOB"
	backend, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	return newEnv(cfg, backend, logger.Nop())
}

func TestSeed_CreaItemsYConsumo(t *testing.T) {
	e := memoryEnv(t)
	defer e.close()
	ctx := context.Background()

	rows, err := ReadSeed(strings.NewReader(seedCSV), false)
	require.NoError(t, err)
	n, err := Seed(ctx, e.items, e.movements, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err := e.items.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].Quantity.Equal(dec("40")), "stock final = cantidad")

	report, err := e.abc.Report(ctx, analytics.ABCRequest{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)
	// Cacao 30*20=600, Azúcar 2.5*60=150, Piña 0
	assert.Equal(t, "Cacao", report.Rows[0].ItemName)
	assert.Equal(t, "Azúcar morena", report.Rows[1].ItemName)
	assert.True(t, report.Total.Equal(dec("750")))

	md := ABCMarkdown(report)
	assert.Contains(t, md, "# Clasificación ABC (value, 365 días)")
	assert.Contains(t, md, "| 1 | Cacao | 30.00 | 20.00 | 600.00 | 80.00 | 80.00 | A |")
	assert.Contains(t, md, "**Total:** 750.00")
}

func TestSeed_FilaInvalidaSeReporta(t *testing.T) {
	e := memoryEnv(t)
	defer e.close()

	rows := []SeedRow{{Name: "Sin unidad", UnitPrice: dec("1")}}
	n, err := Seed(context.Background(), e.items, e.movements, rows)
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "Sin unidad")
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `Harina \| 000`, escapeCell("Harina | 000"))
}
