package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestStats_ResumenDelInventario(t *testing.T) {
	f := newFixture()
	f.createItem(t, "Normal", "1", "10") // 10 * 2
	f.createItem(t, "Bajo", "4", "5")    // 5 ≤ 6
	f.createItem(t, "Crítico", "4", "3") // 3 ≤ 4

	stats, err := inventory.NewStatsUseCase(f.store.Items()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalItems)
	assert.True(t, stats.TotalValue.Equal(dec("36")), "got %s", stats.TotalValue)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.CriticalStockCount)
}

func TestStats_InventarioVacio(t *testing.T) {
	f := newFixture()
	stats, err := inventory.NewStatsUseCase(f.store.Items()).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalItems)
	assert.True(t, stats.TotalValue.IsZero())
}

func TestReplenishment_SoloBajosYCriticosOrdenadosPorDeficit(t *testing.T) {
	f := newFixture()
	f.createItem(t, "Normal", "1", "10")
	f.createItem(t, "Bajo", "10", "12")   // sobre el umbral
	f.createItem(t, "Crítico", "10", "2") // 80% de déficit
	f.createItem(t, "Agotado", "4", "0")  // 100% de déficit

	list, err := inventory.NewReplenishmentUseCase(f.store.Items()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Agotado", list[0].ItemName)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].IdealStock.Equal(dec("6")))
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec("6")))
	// Sin compras se estima con el precio unitario (2)
	assert.True(t, list[0].EstimatedOrderCost.Equal(dec("12")))

	assert.Equal(t, "Crítico", list[1].ItemName)
	assert.Equal(t, string(entity.StatusCritical), list[1].Status)
	assert.True(t, list[1].SuggestedOrderQty.Equal(dec("13")))

	assert.Equal(t, "Bajo", list[2].ItemName)
	assert.Equal(t, 3, list[2].Priority)
	assert.True(t, list[2].SuggestedOrderQty.Equal(dec("3")))
}

func TestReplenishment_UsaCostoPromedio(t *testing.T) {
	f := newFixture()
	item := f.createItem(t, "Cacao", "10", "0")
	_, err := f.record(item.ID, "in", "purchase", "4", decPtr("5"))
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(f.store.Items()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].UnitCost.Equal(dec("5")))
	assert.True(t, list[0].EstimatedOrderCost.Equal(dec("55")), "11 * 5, got %s", list[0].EstimatedOrderCost)
}
