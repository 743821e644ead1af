package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveStatus_Bandas(t *testing.T) {
	ten := dec("10")
	policies := map[string]entity.ThresholdPolicy{
		"stock mínimo fijo": entity.FixedThreshold(ten),
		"punto de reorden":  entity.ReorderPoint(&ten),
	}
	cases := []struct {
		qty  string
		want entity.StockStatus
	}{
		{"0", entity.StatusCritical},
		{"10", entity.StatusCritical},
		{"10.01", entity.StatusLow},
		{"15", entity.StatusLow},
		{"15.01", entity.StatusNormal},
		{"1000", entity.StatusNormal},
	}
	for name, p := range policies {
		for _, tc := range cases {
			assert.Equal(t, tc.want, inventory.DeriveStatus(dec(tc.qty), p), "%s con cantidad %s", name, tc.qty)
		}
	}
}

func TestDeriveStatus_SinPuntoDeReordenSiempreNormal(t *testing.T) {
	p := entity.ReorderPoint(nil)
	for _, q := range []string{"0", "1", "99999"} {
		assert.Equal(t, entity.StatusNormal, inventory.DeriveStatus(dec(q), p))
	}
}

func TestDeriveStatus_UmbralCero(t *testing.T) {
	p := entity.FixedThreshold(decimal.Zero)
	assert.Equal(t, entity.StatusCritical, inventory.DeriveStatus(decimal.Zero, p))
	assert.Equal(t, entity.StatusNormal, inventory.DeriveStatus(dec("0.001"), p))
}

func TestNextQuantity(t *testing.T) {
	next, err := inventory.NextQuantity(dec("10"), entity.DirectionOut, dec("10"))
	require.NoError(t, err)
	assert.True(t, next.IsZero(), "dejar el stock en cero es válido")

	next, err = inventory.NextQuantity(dec("2.5"), entity.DirectionIn, dec("0.5"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("3")))

	_, err = inventory.NextQuantity(dec("10"), entity.DirectionOut, dec("15"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.NextQuantity(dec("10"), entity.Direction("x"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestPurchaseCost(t *testing.T) {
	price := dec("2")
	total := inventory.PurchaseCost(entity.DirectionIn, entity.ReasonPurchase, dec("10"), &price)
	require.NotNil(t, total)
	assert.True(t, total.Equal(dec("20")))

	assert.Nil(t, inventory.PurchaseCost(entity.DirectionIn, entity.ReasonAdjustment, dec("10"), &price))
	assert.Nil(t, inventory.PurchaseCost(entity.DirectionOut, entity.ReasonPurchase, dec("10"), &price))
	assert.Nil(t, inventory.PurchaseCost(entity.DirectionIn, entity.ReasonPurchase, dec("10"), nil))
}

func TestWeightedAverageCost_PromedioPonderado(t *testing.T) {
	// 10 u a 2 + 10 u a 4 → 3
	got := inventory.WeightedAverageCost(dec("10"), dec("2"), dec("10"), dec("4"))
	assert.True(t, got.Equal(dec("3")), "got %s", got)

	// Sin stock previo, el costo es el de la entrada.
	got = inventory.WeightedAverageCost(decimal.Zero, decimal.Zero, dec("5"), dec("7.5"))
	assert.True(t, got.Equal(dec("7.5")))

	assert.True(t, inventory.WeightedAverageCost(decimal.Zero, decimal.Zero, decimal.Zero, dec("1")).IsZero())
}

func TestWeightedAverageCost_RedondeoYStockNegativo(t *testing.T) {
	// (1*1 + 2*2) / 3 = 1.666666...
	got := inventory.WeightedAverageCost(dec("1"), dec("1"), dec("2"), dec("2"))
	assert.True(t, got.Equal(dec("1.666667")), "got %s", got)

	got = inventory.WeightedAverageCost(dec("-3"), dec("9"), dec("2"), dec("4"))
	assert.True(t, got.Equal(dec("4")), "got %s", got)
}
