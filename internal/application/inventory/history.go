package inventory

import (
	"context"
	"iter"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const historyPageSize = 100

// HistoryUseCase lecturas del kardex de un ítem. No modifica datos.
type HistoryUseCase struct {
	itemRepo repository.StockItemRepository
	movRepo  repository.MovementRepository
	exporter LedgerExporter
	pageSize int
}

// NewHistoryUseCase construye el caso de uso. exporter puede ser nil si no se expone la exportación.
func NewHistoryUseCase(itemRepo repository.StockItemRepository, movRepo repository.MovementRepository, exporter LedgerExporter) *HistoryUseCase {
	return &HistoryUseCase{itemRepo: itemRepo, movRepo: movRepo, exporter: exporter, pageSize: historyPageSize}
}

// History devuelve los movimientos del ítem, más recientes primero.
// La secuencia es perezosa (pide páginas al repositorio a medida que se recorre), finita
// y puede recorrerse varias veces. Si una página falla, produce (nil, err) y termina.
func (uc *HistoryUseCase) History(ctx context.Context, itemID string) (iter.Seq2[*entity.Movement, error], error) {
	if _, err := uc.mustItem(ctx, itemID); err != nil {
		return nil, err
	}
	pageSize := uc.pageSize
	return func(yield func(*entity.Movement, error) bool) {
		for offset := 0; ; offset += pageSize {
			page, err := uc.movRepo.ListByItem(ctx, itemID, repository.NewestFirst, pageSize, offset)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, m := range page {
				if !yield(m, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
		}
	}, nil
}

// Page devuelve una página del historial (más recientes primero) y el total de movimientos.
func (uc *HistoryUseCase) Page(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, int, error) {
	if _, err := uc.mustItem(ctx, itemID); err != nil {
		return nil, 0, err
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID, repository.NewestFirst, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.movRepo.CountByItem(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AuditExport documento de auditoría del kardex.
type AuditExport struct {
	ItemID string
	Doc    []byte
	Digest string
}

// ExportXML serializa el ítem y todo su historial en orden cronológico.
func (uc *HistoryUseCase) ExportXML(ctx context.Context, itemID string) (*AuditExport, error) {
	if uc.exporter == nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.mustItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	var movements []*entity.Movement
	for offset := 0; ; offset += uc.pageSize {
		page, err := uc.movRepo.ListByItem(ctx, itemID, repository.OldestFirst, uc.pageSize, offset)
		if err != nil {
			return nil, err
		}
		movements = append(movements, page...)
		if len(page) < uc.pageSize {
			break
		}
	}
	doc, digest, err := uc.exporter.Export(item, movements)
	if err != nil {
		return nil, err
	}
	return &AuditExport{ItemID: itemID, Doc: doc, Digest: digest}, nil
}

func (uc *HistoryUseCase) mustItem(ctx context.Context, itemID string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}
