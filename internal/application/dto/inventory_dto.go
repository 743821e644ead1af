package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Ítems ─────────────────────────────────────────────────────────────────────

// CreateItemRequest body para POST /api/items.
// threshold_kind: "fixed" exige min_stock; "reorder_point" acepta reorder_point opcional.
type CreateItemRequest struct {
	Name            string           `json:"name"`
	Unit            string           `json:"unit"`
	ThresholdKind   string           `json:"threshold_kind"`
	MinStock        *decimal.Decimal `json:"min_stock,omitempty"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point,omitempty"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
}

// ThresholdPolicy construye la política a partir del tipo declarado.
func (r CreateItemRequest) ThresholdPolicy() (entity.ThresholdPolicy, error) {
	return thresholdPolicy(r.ThresholdKind, r.MinStock, r.ReorderPoint)
}

// UpdateItemRequest body para PUT /api/items/:id. Campos nil no se modifican.
type UpdateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	ThresholdKind *string          `json:"threshold_kind,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
}

// ThresholdPolicy devuelve nil si la petición no cambia el umbral.
func (r UpdateItemRequest) ThresholdPolicy() (*entity.ThresholdPolicy, error) {
	if r.ThresholdKind == nil {
		return nil, nil
	}
	p, err := thresholdPolicy(*r.ThresholdKind, r.MinStock, r.ReorderPoint)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func thresholdPolicy(kind string, minStock, reorderPoint *decimal.Decimal) (entity.ThresholdPolicy, error) {
	switch entity.ThresholdKind(kind) {
	case entity.ThresholdFixed, "":
		if minStock == nil {
			return entity.ThresholdPolicy{}, domain.ErrInvalidInput
		}
		return entity.FixedThreshold(*minStock), nil
	case entity.ThresholdReorderPoint:
		return entity.ReorderPoint(reorderPoint), nil
	default:
		return entity.ThresholdPolicy{}, domain.ErrInvalidInput
	}
}

// StockItemResponse ítem con su cantidad y estado actuales.
type StockItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	Quantity      decimal.Decimal  `json:"quantity"`
	ThresholdKind string           `json:"threshold_kind"`
	Threshold     *decimal.Decimal `json:"threshold,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ToStockItemResponse mapea la entidad al DTO de respuesta.
func ToStockItemResponse(item *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Unit:          item.Unit,
		Quantity:      item.Quantity,
		ThresholdKind: string(item.Threshold.Kind),
		Threshold:     item.Threshold.Value,
		UnitPrice:     item.UnitPrice,
		UnitCost:      item.UnitCost,
		Status:        string(item.Status),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// RecordMovementRequest body para POST /api/items/:id/movements.
type RecordMovementRequest struct {
	Direction string           `json:"direction"` // in | out
	Reason    string           `json:"reason"`    // purchase | production | adjustment | expiration | damage | sale | return
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// MovementResponse entrada del kardex.
type MovementResponse struct {
	ID                string           `json:"id"`
	ItemID            string           `json:"item_id"`
	Direction         string           `json:"direction"`
	Reason            string           `json:"reason"`
	Quantity          decimal.Decimal  `json:"quantity"`
	PreviousQuantity  decimal.Decimal  `json:"previous_quantity"`
	ResultingQuantity decimal.Decimal  `json:"resulting_quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	TotalCost         *decimal.Decimal `json:"total_cost,omitempty"`
	Note              string           `json:"note,omitempty"`
	Actor             string           `json:"actor,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// RecordMovementResponse movimiento confirmado y el ítem actualizado.
type RecordMovementResponse struct {
	Movement MovementResponse  `json:"movement"`
	Item     StockItemResponse `json:"item"`
}

// MovementListResponse página del historial (más recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse mapea la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ItemID:            m.ItemID,
		Direction:         string(m.Direction),
		Reason:            string(m.Reason),
		Quantity:          m.Quantity,
		PreviousQuantity:  m.PreviousQuantity,
		ResultingQuantity: m.ResultingQuantity,
		UnitPrice:         m.UnitPrice,
		TotalCost:         m.TotalCost,
		Note:              m.Note,
		Actor:             m.Actor,
		CreatedAt:         m.CreatedAt,
	}
}

// ── Estadísticas y reposición ─────────────────────────────────────────────────

// InventoryStatsResponse resumen del inventario (GET /api/inventory/stats).
type InventoryStatsResponse struct {
	TotalItems         int             `json:"total_items"`
	TotalValue         decimal.Decimal `json:"total_value"` // Σ cantidad * precio unitario
	LowStockCount      int             `json:"low_stock_count"`
	CriticalStockCount int             `json:"critical_stock_count"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un ítem
// en estado bajo o crítico.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	Unit               string          `json:"unit"`
	Status             string          `json:"status"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	Threshold          decimal.Decimal `json:"threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // Threshold * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado (o precio si aún no hay compras)
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	DeficitPct         decimal.Decimal `json:"deficit_pct"`          // % faltante respecto al umbral
	Priority           int             `json:"priority"`             // 1 = más urgente
}
