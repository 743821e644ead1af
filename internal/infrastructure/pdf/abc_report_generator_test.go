package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", formatMoney(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "12.35", formatMoney(decimal.RequireFromString("12.345"), "XXX-INEXISTENTE"))
	assert.Equal(t, "75.00%", formatPct(decimal.NewFromInt(75)))
}

func TestGenerateABCReport_ProducePDF(t *testing.T) {
	report := &dto.ABCReportResponse{
		Basis:      "value",
		PeriodDays: 365,
		Thresholds: dto.ABCThresholdsDTO{A: decimal.NewFromInt(80), B: decimal.NewFromInt(95), C: decimal.NewFromInt(100)},
		Rows: []dto.ABCRowDTO{
			{Rank: 1, ItemID: "a", ItemName: "Harina", AnnualConsumption: decimal.NewFromInt(100), AnnualValue: decimal.NewFromInt(900),
				IndividualPercentage: decimal.NewFromInt(90), CumulativePercentage: decimal.NewFromInt(90), Category: "A"},
			{Rank: 2, ItemID: "b", ItemName: "Sal", AnnualConsumption: decimal.NewFromInt(10), AnnualValue: decimal.NewFromInt(100),
				IndividualPercentage: decimal.NewFromInt(10), CumulativePercentage: decimal.NewFromInt(100), Category: "B"},
		},
		Summary: []dto.ABCSummaryDTO{
			{Category: "A", Count: 1, CountPercentage: decimal.NewFromInt(50), TotalValue: decimal.NewFromInt(900), ValuePercentage: decimal.NewFromInt(90)},
			{Category: "B", Count: 1, CountPercentage: decimal.NewFromInt(50), TotalValue: decimal.NewFromInt(100), ValuePercentage: decimal.NewFromInt(10)},
			{Category: "C"},
		},
		Total:       decimal.NewFromInt(1000),
		GeneratedAt: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	b, err := NewABCReportGenerator("Panadería Central", "BOB").GenerateABCReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
