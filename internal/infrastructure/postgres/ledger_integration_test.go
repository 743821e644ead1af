package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable; sin ella el test se omite.
func setupLedger(t *testing.T) (*inventory.ItemUseCase, *inventory.RecordMovementUseCase, *inventory.HistoryUseCase) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	log := logger.Nop()
	runner := postgres.NewTxRunner(pool)
	items := postgres.NewStockItemRepository(pool)
	movs := postgres.NewMovementRepository(pool)
	mov := inventory.NewRecordMovementUseCase(runner, log)
	return inventory.NewItemUseCase(runner, items, mov, log), mov, inventory.NewHistoryUseCase(items, movs, nil)
}

func TestPostgresLedger_SalidasConcurrentes(t *testing.T) {
	items, mov, history := setupLedger(t)
	ctx := context.Background()

	item, err := items.Create(ctx, inventory.CreateItemInput{
		Name:            "Harina integración",
		Unit:            "kg",
		Threshold:       entity.FixedThreshold(decimal.NewFromInt(1)),
		UnitPrice:       decimal.NewFromInt(3),
		InitialQuantity: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mov.RecordMovement(ctx, inventory.RecordMovementInput{
				ItemID: item.ID, Direction: entity.DirectionOut, Reason: entity.ReasonSale, Quantity: decimal.NewFromInt(1),
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, ok)

	got, err := items.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.IsZero())

	seq, err := history.History(ctx, item.ID)
	require.NoError(t, err)
	n := 0
	for _, err := range seq {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 21, n)

	assert.ErrorIs(t, items.Delete(ctx, item.ID), domain.ErrConflict)
}

func TestPostgresLedger_IDNoUUIDEsItemInexistente(t *testing.T) {
	items, mov, history := setupLedger(t)
	ctx := context.Background()

	_, err := mov.RecordMovement(ctx, inventory.RecordMovementInput{
		ItemID: "abc", Direction: entity.DirectionOut, Reason: entity.ReasonSale, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = items.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = history.History(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.ErrorIs(t, items.Delete(ctx, "no-es-uuid"), domain.ErrItemNotFound)
}
