// Package storage elige el backend de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Backend repositorios y runner transaccional de un mismo almacén.
type Backend struct {
	TxRunner  inventory.TxRunner
	Items     repository.StockItemRepository
	Movements repository.MovementRepository
	close     func()
}

// Close libera el pool si lo hay.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open abre el backend configurado. Con postgres aplica el esquema si DB_MIGRATE está activo.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	log = log.Component("storage")
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Backend{TxRunner: store, Items: store.Items(), Movements: store.Movements()}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrar esquema: %w", err)
			}
			log.Info().Msg("esquema aplicado")
		}
		return &Backend{
			TxRunner:  postgres.NewTxRunner(pool),
			Items:     postgres.NewStockItemRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
	}
}
