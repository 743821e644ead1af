package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem (DIP).
// Quantity, Status y UnitCost solo se modifican con UpdateStock, dentro de la transacción del motor.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	// GetByID devuelve (nil, nil) si el ítem no existe.
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate obtiene el ítem y bloquea la fila hasta el Commit/Rollback (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, status entity.StockStatus, unitCost decimal.Decimal) error
	// Update modifica los atributos descriptivos (nombre, unidad, umbral, precio) y el estado; nunca la cantidad.
	Update(ctx context.Context, item *entity.StockItem) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error)
	Delete(ctx context.Context, id string) error
}
