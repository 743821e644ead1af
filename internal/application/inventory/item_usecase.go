package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// openingNote nota del movimiento de apertura.
const openingNote = "Stock inicial"

// ItemUseCase casos de uso CRUD para ítems. La cantidad solo cambia vía movimientos.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	movement *RecordMovementUseCase
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, movement *RecordMovementUseCase, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, movement: movement, log: log.Component("items")}
}

// CreateItemInput entrada para crear un ítem. InitialQuantity > 0 registra un movimiento de apertura.
type CreateItemInput struct {
	Name            string
	Unit            string
	Threshold       entity.ThresholdPolicy
	UnitPrice       decimal.Decimal
	InitialQuantity decimal.Decimal
	Actor           string
}

// Create crea el ítem con cantidad 0 y, si corresponde, registra la entrada de apertura (ajuste).
func (uc *ItemUseCase) Create(ctx context.Context, in CreateItemInput) (*entity.StockItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" || in.Unit == "" || in.UnitPrice.IsNegative() || in.InitialQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Threshold.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		Quantity:  decimal.Zero,
		Threshold: in.Threshold,
		UnitPrice: in.UnitPrice,
		UnitCost:  decimal.Zero,
		Status:    inventory.DeriveStatus(decimal.Zero, in.Threshold),
		CreatedAt: now,
		UpdatedAt: now,
	}
	opening := RecordMovementInput{
		ItemID:    item.ID,
		Direction: entity.DirectionIn,
		Reason:    entity.ReasonAdjustment,
		Quantity:  in.InitialQuantity,
		Note:      openingNote,
		Actor:     in.Actor,
	}

	// Alta + movimiento de apertura en la misma transacción
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, movRepo repository.MovementRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if !opening.Quantity.IsPositive() {
			return nil
		}
		res, err := uc.movement.apply(ctx, itemRepo, movRepo, opening)
		if err != nil {
			return err
		}
		item = res.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("item_id", item.ID).
		Str("name", item.Name).
		Str("initial_quantity", item.Quantity.String()).
		Msg("ítem creado")
	return item, nil
}

// Get obtiene un ítem; ErrItemNotFound si no existe.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	return uc.itemRepo.List(ctx, limit, offset)
}

// UpdateItemInput campos editables; nil = sin cambio.
type UpdateItemInput struct {
	Name      *string
	Unit      *string
	Threshold *entity.ThresholdPolicy
	UnitPrice *decimal.Decimal
}

// Update modifica atributos descriptivos y recalcula el estado si cambia el umbral.
// Corre en transacción con la fila bloqueada para no pisar un movimiento concurrente.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in UpdateItemInput) (*entity.StockItem, error) {
	var updated *entity.StockItem
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, _ repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.ErrInvalidInput
			}
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Unit != nil {
			if strings.TrimSpace(*in.Unit) == "" {
				return domain.ErrInvalidInput
			}
			item.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.UnitPrice = *in.UnitPrice
		}
		if in.Threshold != nil {
			if !in.Threshold.Valid() {
				return domain.ErrInvalidInput
			}
			item.Threshold = *in.Threshold
		}
		item.Status = inventory.DeriveStatus(item.Quantity, item.Threshold)
		item.UpdatedAt = time.Now().UTC()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un ítem sin historial. Si tiene movimientos devuelve ErrConflict:
// el kardex es un registro de auditoría y no se borra en cascada.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		n, err := movRepo.CountByItem(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		return itemRepo.Delete(ctx, id)
	})
}
