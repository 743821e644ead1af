package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// autocommit ejecuta una operación en su propia transacción.
func autocommit[T any](ctx context.Context, s *Store, fn func(items *txItems, movs *txMovements) (T, error)) (T, error) {
	var out T
	err := s.Run(ctx, func(items repository.StockItemRepository, movs repository.MovementRepository) error {
		v, err := fn(items.(*txItems), movs.(*txMovements))
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

type itemRepository struct{ s *Store }

func (r itemRepository) Create(ctx context.Context, item *entity.StockItem) error {
	_, err := autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (struct{}, error) {
		return struct{}{}, items.Create(ctx, item)
	})
	return err
}

func (r itemRepository) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (*entity.StockItem, error) {
		return items.GetByID(ctx, id)
	})
}

func (r itemRepository) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (*entity.StockItem, error) {
		return items.GetForUpdate(ctx, id)
	})
}

func (r itemRepository) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, status entity.StockStatus, unitCost decimal.Decimal) error {
	_, err := autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (struct{}, error) {
		if _, err := items.GetForUpdate(ctx, id); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, items.UpdateStock(ctx, id, quantity, status, unitCost)
	})
	return err
}

func (r itemRepository) Update(ctx context.Context, item *entity.StockItem) error {
	_, err := autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (struct{}, error) {
		if _, err := items.GetForUpdate(ctx, item.ID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, items.Update(ctx, item)
	})
	return err
}

func (r itemRepository) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	return autocommit(ctx, r.s, func(items *txItems, _ *txMovements) ([]*entity.StockItem, error) {
		return items.List(ctx, limit, offset)
	})
}

func (r itemRepository) Delete(ctx context.Context, id string) error {
	_, err := autocommit(ctx, r.s, func(items *txItems, _ *txMovements) (struct{}, error) {
		if _, err := items.GetForUpdate(ctx, id); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, items.Delete(ctx, id)
	})
	return err
}

type movementRepository struct{ s *Store }

func (r movementRepository) Create(ctx context.Context, m *entity.Movement) error {
	_, err := autocommit(ctx, r.s, func(_ *txItems, movs *txMovements) (struct{}, error) {
		return struct{}{}, movs.Create(ctx, m)
	})
	return err
}

func (r movementRepository) ListByItem(ctx context.Context, itemID string, order repository.SortOrder, limit, offset int) ([]*entity.Movement, error) {
	return autocommit(ctx, r.s, func(_ *txItems, movs *txMovements) ([]*entity.Movement, error) {
		return movs.ListByItem(ctx, itemID, order, limit, offset)
	})
}

func (r movementRepository) CountByItem(ctx context.Context, itemID string) (int, error) {
	return autocommit(ctx, r.s, func(_ *txItems, movs *txMovements) (int, error) {
		return movs.CountByItem(ctx, itemID)
	})
}

func (r movementRepository) SumOutboundSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	return autocommit(ctx, r.s, func(_ *txItems, movs *txMovements) (map[string]decimal.Decimal, error) {
		return movs.SumOutboundSince(ctx, since)
	})
}
