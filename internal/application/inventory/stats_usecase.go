package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const listAllPageSize = 500

// ListAllItems recorre todas las páginas del repositorio de ítems.
func ListAllItems(ctx context.Context, itemRepo repository.StockItemRepository) ([]*entity.StockItem, error) {
	var all []*entity.StockItem
	for offset := 0; ; offset += listAllPageSize {
		page, err := itemRepo.List(ctx, listAllPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < listAllPageSize {
			return all, nil
		}
	}
}

// StatsUseCase resumen del inventario para el tablero.
type StatsUseCase struct {
	itemRepo repository.StockItemRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(itemRepo repository.StockItemRepository) *StatsUseCase {
	return &StatsUseCase{itemRepo: itemRepo}
}

// Stats cuenta ítems, valoriza el stock a precio unitario y cuenta estados bajo/crítico.
func (uc *StatsUseCase) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	items, err := ListAllItems(ctx, uc.itemRepo)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryStatsResponse{TotalItems: len(items), TotalValue: decimal.Zero}
	for _, it := range items {
		out.TotalValue = out.TotalValue.Add(it.Quantity.Mul(it.UnitPrice))
		switch it.Status {
		case entity.StatusLow:
			out.LowStockCount++
		case entity.StatusCritical:
			out.CriticalStockCount++
		}
	}
	out.TotalValue = out.TotalValue.Round(2)
	return out, nil
}
