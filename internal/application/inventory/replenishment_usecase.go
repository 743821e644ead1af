package inventory

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ReplenishmentUseCase genera la lista de reposición a partir del estado de cada ítem.
type ReplenishmentUseCase struct {
	itemRepo repository.StockItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.StockItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

// List devuelve los ítems en estado bajo o crítico con la cantidad sugerida de pedido,
// ordenados por mayor déficit relativo (prioridad 1 = más urgente).
func (uc *ReplenishmentUseCase) List(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := ListAllItems(ctx, uc.itemRepo)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, item := range items {
		if item.Status != entity.StatusLow && item.Status != entity.StatusCritical {
			continue
		}
		limit, ok := item.Threshold.Limit()
		if !ok {
			continue
		}
		ideal := inventory.IdealStock(limit)
		suggested := ideal.Sub(item.Quantity)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		// Sin compras registradas el costo promedio es 0: se estima con el precio
		unitCost := item.UnitCost
		if !unitCost.IsPositive() {
			unitCost = item.UnitPrice
		}
		deficit := hundred
		if limit.IsPositive() {
			deficit = limit.Sub(item.Quantity).Mul(hundred).Div(limit).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             item.ID,
			ItemName:           item.Name,
			Unit:               item.Unit,
			Status:             string(item.Status),
			CurrentStock:       item.Quantity,
			Threshold:          limit,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           unitCost,
			EstimatedOrderCost: suggested.Mul(unitCost).Round(2),
			DeficitPct:         deficit,
		})
	}

	// Mayor déficit relativo primero; desempate por nombre
	slices.SortStableFunc(suggestions, func(a, b dto.ReplenishmentSuggestionDTO) int {
		if c := b.DeficitPct.Cmp(a.DeficitPct); c != 0 {
			return c
		}
		if a.ItemName < b.ItemName {
			return -1
		}
		if a.ItemName > b.ItemName {
			return 1
		}
		return 0
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
