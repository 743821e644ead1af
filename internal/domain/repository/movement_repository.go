package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SortOrder orden de listado del historial.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// MovementRepository define el puerto de persistencia del libro de movimientos (solo inserción).
type MovementRepository interface {
	// Create agrega un movimiento; asigna ID y Seq si vienen vacíos.
	Create(ctx context.Context, movement *entity.Movement) error
	ListByItem(ctx context.Context, itemID string, order SortOrder, limit, offset int) ([]*entity.Movement, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
	// SumOutboundSince devuelve, por ítem, la suma de salidas desde la fecha dada (consumo).
	SumOutboundSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}
