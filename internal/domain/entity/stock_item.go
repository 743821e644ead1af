package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado derivado de la cantidad actual frente al umbral del ítem.
type StockStatus string

const (
	StatusNormal   StockStatus = "normal"
	StatusLow      StockStatus = "low"
	StatusCritical StockStatus = "critical"
)

// ThresholdKind variante de la política de umbral elegida al crear el ítem.
type ThresholdKind string

const (
	ThresholdFixed        ThresholdKind = "fixed"         // stock mínimo obligatorio
	ThresholdReorderPoint ThresholdKind = "reorder_point" // punto de reorden opcional
)

// ThresholdPolicy política de umbral (variante etiquetada).
// Fixed siempre tiene Value; ReorderPoint puede tener Value nil (estado siempre normal).
type ThresholdPolicy struct {
	Kind  ThresholdKind
	Value *decimal.Decimal
}

// FixedThreshold construye una política de stock mínimo fijo.
func FixedThreshold(v decimal.Decimal) ThresholdPolicy {
	return ThresholdPolicy{Kind: ThresholdFixed, Value: &v}
}

// ReorderPoint construye una política de punto de reorden (nil = sin definir).
func ReorderPoint(v *decimal.Decimal) ThresholdPolicy {
	if v == nil {
		return ThresholdPolicy{Kind: ThresholdReorderPoint}
	}
	c := *v
	return ThresholdPolicy{Kind: ThresholdReorderPoint, Value: &c}
}

// Limit devuelve el umbral vigente y si existe.
func (p ThresholdPolicy) Limit() (decimal.Decimal, bool) {
	if p.Value == nil {
		return decimal.Zero, false
	}
	return *p.Value, true
}

// Valid verifica la coherencia de la variante.
func (p ThresholdPolicy) Valid() bool {
	switch p.Kind {
	case ThresholdFixed:
		return p.Value != nil && !p.Value.IsNegative()
	case ThresholdReorderPoint:
		return p.Value == nil || !p.Value.IsNegative()
	default:
		return false
	}
}

// StockItem representa un ítem de inventario (insumo o producto) con su cantidad actual.
// Quantity solo la modifica el motor de inventario; siempre es la suma neta de sus movimientos.
type StockItem struct {
	ID        string
	Name      string
	Unit      string // unidad de medida (kg, l, und)
	Quantity  decimal.Decimal
	Threshold ThresholdPolicy
	UnitPrice decimal.Decimal // precio unitario (valor de referencia para ABC)
	UnitCost  decimal.Decimal // costo promedio ponderado de compras (inicia en 0)
	Status    StockStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
