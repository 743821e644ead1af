package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// LedgerExporter serializa el kardex de un ítem para auditoría.
// Devuelve el documento y su digest (hex) calculado sobre los mismos bytes.
type LedgerExporter interface {
	Export(item *entity.StockItem, movements []*entity.Movement) (doc []byte, digest string, err error)
}
