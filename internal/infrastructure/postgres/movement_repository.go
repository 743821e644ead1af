package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, seq, item_id, direction, reason, quantity, previous_quantity, resulting_quantity,
	unit_price, total_cost, note, actor, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y recupera el seq asignado por la base.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_movements (id, item_id, direction, reason, quantity, previous_quantity,
			resulting_quantity, unit_price, total_cost, note, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ItemID, string(m.Direction), string(m.Reason),
		m.Quantity, m.PreviousQuantity, m.ResultingQuantity,
		nullDecimal(m.UnitPrice), nullDecimal(m.TotalCost),
		m.Note, m.Actor, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem lista el historial de un ítem; el seq desempata timestamps iguales.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, order repository.SortOrder, limit, offset int) ([]*entity.Movement, error) {
	orderBy := `created_at DESC, seq DESC`
	if order == repository.OldestFirst {
		orderBy = `created_at ASC, seq ASC`
	}
	if limit <= 0 {
		limit = 100
	}
	if !validID(itemID) {
		return []*entity.Movement{}, nil
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE item_id = $1 ORDER BY ` + orderBy + ` LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Movement, 0, limit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByItem cuenta los movimientos de un ítem.
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	if !validID(itemID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// SumOutboundSince suma las salidas por ítem desde la fecha dada.
func (r *MovementRepo) SumOutboundSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT item_id, SUM(quantity)
		FROM stock_movements
		WHERE direction = 'out' AND created_at >= $1
		GROUP BY item_id`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sum outbound: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan outbound: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m         entity.Movement
		direction string
		reason    string
		unitPrice decimal.NullDecimal
		totalCost decimal.NullDecimal
	)
	err := row.Scan(
		&m.ID, &m.Seq, &m.ItemID, &direction, &reason,
		&m.Quantity, &m.PreviousQuantity, &m.ResultingQuantity,
		&unitPrice, &totalCost, &m.Note, &m.Actor, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(direction)
	m.Reason = entity.Reason(reason)
	m.UnitPrice = decimalPtr(unitPrice)
	m.TotalCost = decimalPtr(totalCost)
	return &m, nil
}
