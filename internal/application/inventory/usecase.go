package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const instrumentationName = "github.com/jhoicas/inventario-ledger/inventory"

// RecordMovementUseCase registra movimientos de inventario de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	tracer   trace.Tracer
	recorded metric.Int64Counter
	rejected metric.Int64Counter
	now      func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. Usa los providers globales de OpenTelemetry
// (no-op si no se inicializaron).
func NewRecordMovementUseCase(txRunner TxRunner, log *logger.Logger) *RecordMovementUseCase {
	meter := otel.Meter(instrumentationName)
	recorded, err := meter.Int64Counter("inventory.movements.recorded",
		metric.WithDescription("Movimientos confirmados en el kardex"))
	if err != nil {
		recorded = noop.Int64Counter{}
	}
	rejected, err := meter.Int64Counter("inventory.movements.rejected",
		metric.WithDescription("Movimientos rechazados (validación o stock insuficiente)"))
	if err != nil {
		rejected = noop.Int64Counter{}
	}
	return &RecordMovementUseCase{
		txRunner: txRunner,
		log:      log.Component("kardex"),
		tracer:   otel.Tracer(instrumentationName),
		recorded: recorded,
		rejected: rejected,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordMovementInput entrada para registrar un movimiento.
// UnitPrice solo genera costo total en entradas por compra.
type RecordMovementInput struct {
	ItemID    string
	Direction entity.Direction
	Reason    entity.Reason
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	Note      string
	Actor     string
}

// MovementResult movimiento confirmado y estado del ítem después de aplicarlo.
type MovementResult struct {
	Movement *entity.Movement
	Item     *entity.StockItem
}

func (in RecordMovementInput) validate() error {
	if in.ItemID == "" || !in.Quantity.IsPositive() {
		return domain.ErrInvalidMovement
	}
	if in.Direction.Sign() == 0 || !in.Reason.Valid() {
		return domain.ErrInvalidMovement
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.ErrInvalidMovement
	}
	return nil
}

// RecordMovement valida la entrada, inicia una transacción, bloquea la fila del ítem,
// calcula previa/resultante, rechaza stock negativo y persiste movimiento + ítem juntos.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementResult, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.RecordMovement", trace.WithAttributes(
		attribute.String("item.id", input.ItemID),
		attribute.String("movement.direction", string(input.Direction)),
		attribute.String("movement.reason", string(input.Reason)),
	))
	defer span.End()

	if err := input.validate(); err != nil {
		uc.reject(ctx, span, input, err)
		return nil, err
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, movRepo repository.MovementRepository) error {
		r, err := uc.apply(ctx, itemRepo, movRepo, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		uc.reject(ctx, span, input, err)
		return nil, err
	}

	uc.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", string(input.Direction))))
	uc.log.Info().
		Str("item_id", input.ItemID).
		Str("movement_id", result.Movement.ID).
		Str("direction", string(input.Direction)).
		Str("reason", string(input.Reason)).
		Str("previous", result.Movement.PreviousQuantity.String()).
		Str("resulting", result.Movement.ResultingQuantity.String()).
		Str("status", string(result.Item.Status)).
		Msg("movimiento registrado")
	return result, nil
}

// apply corre dentro de la transacción; cualquier error provoca Rollback.
func (uc *RecordMovementUseCase) apply(
	ctx context.Context,
	itemRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
	input RecordMovementInput,
) (*MovementResult, error) {
	// Bloquea la fila del ítem para serializar movimientos concurrentes sobre el mismo ítem
	item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	previous := item.Quantity
	next, err := inventory.NextQuantity(previous, input.Direction, input.Quantity)
	if err != nil {
		return nil, err
	}

	totalCost := inventory.PurchaseCost(input.Direction, input.Reason, input.Quantity, input.UnitPrice)
	unitCost := item.UnitCost
	if totalCost != nil {
		unitCost = inventory.WeightedAverageCost(previous, item.UnitCost, input.Quantity, *input.UnitPrice)
	}
	status := inventory.DeriveStatus(next, item.Threshold)

	now := uc.now()
	mov := &entity.Movement{
		ID:                uuid.New().String(),
		ItemID:            item.ID,
		Direction:         input.Direction,
		Reason:            input.Reason,
		Quantity:          input.Quantity,
		PreviousQuantity:  previous,
		ResultingQuantity: next,
		UnitPrice:         input.UnitPrice,
		TotalCost:         totalCost,
		Note:              input.Note,
		CreatedAt:         now,
		Actor:             input.Actor,
	}
	if err := itemRepo.UpdateStock(ctx, item.ID, next, status, unitCost); err != nil {
		return nil, err
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	item.Quantity = next
	item.Status = status
	item.UnitCost = unitCost
	item.UpdatedAt = now
	return &MovementResult{Movement: mov, Item: item}, nil
}

func (uc *RecordMovementUseCase) reject(ctx context.Context, span trace.Span, input RecordMovementInput, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	uc.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
	uc.log.Warn().
		Err(err).
		Str("item_id", input.ItemID).
		Str("direction", string(input.Direction)).
		Str("quantity", input.Quantity.String()).
		Msg("movimiento rechazado")
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidMovement):
		return "invalid_movement"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
