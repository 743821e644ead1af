package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// ledgerTxOptions READ COMMITTED: la exclusión por ítem la dan los SELECT ... FOR UPDATE.
var ledgerTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}

// TxRunner abre una transacción por unidad de trabajo del kardex.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run entrega a fn repositorios atados a la misma transacción.
// Si fn devuelve error se hace rollback y el error llega intacto al llamador.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return pgx.BeginTxFunc(ctx, r.pool, ledgerTxOptions, func(tx pgx.Tx) error {
		return fn(NewStockItemRepository(tx), NewMovementRepository(tx))
	})
}
