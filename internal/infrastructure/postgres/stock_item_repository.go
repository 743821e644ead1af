package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, unit, quantity, threshold_kind, threshold_value, unit_price, unit_cost, status, created_at, updated_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un ítem nuevo.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Unit, item.Quantity,
		string(item.Threshold.Kind), nullDecimal(item.Threshold.Value),
		item.UnitPrice, item.UnitCost, string(item.Status),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID; (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// UpdateStock actualiza cantidad, estado y costo promedio (solo el motor de inventario).
func (r *StockItemRepo) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, status entity.StockStatus, unitCost decimal.Decimal) error {
	if !validID(id) {
		return domain.ErrItemNotFound
	}
	query := `
		UPDATE stock_items
		SET quantity = $2, status = $3, unit_cost = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, string(status), unitCost)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Update modifica atributos descriptivos y estado; nunca la cantidad.
func (r *StockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	if !validID(item.ID) {
		return domain.ErrItemNotFound
	}
	query := `
		UPDATE stock_items
		SET name = $2, unit = $3, threshold_kind = $4, threshold_value = $5,
		    unit_price = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Unit,
		string(item.Threshold.Kind), nullDecimal(item.Threshold.Value),
		item.UnitPrice, string(item.Status), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List lista ítems en orden de alta con paginación.
func (r *StockItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockItem, 0, limit)
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete elimina el ítem. La FK ON DELETE RESTRICT impide borrar ítems con movimientos.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrItemNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		item      entity.StockItem
		kind      string
		threshold decimal.NullDecimal
		status    string
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Unit, &item.Quantity,
		&kind, &threshold, &item.UnitPrice, &item.UnitCost, &status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Threshold = entity.ThresholdPolicy{Kind: entity.ThresholdKind(kind), Value: decimalPtr(threshold)}
	item.Status = entity.StockStatus(status)
	return &item, nil
}
