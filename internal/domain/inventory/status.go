// Package inventory contiene los servicios de dominio puros del libro de inventario.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// lowBand factor sobre el umbral hasta el que el stock se considera bajo.
var lowBand = decimal.NewFromFloat(1.5)

// DeriveStatus calcula el estado del ítem a partir de la cantidad y su política de umbral.
// Sin umbral el estado es siempre normal; ambas variantes usan la misma banda de 1.5x.
func DeriveStatus(current decimal.Decimal, policy entity.ThresholdPolicy) entity.StockStatus {
	limit, ok := policy.Limit()
	if !ok {
		return entity.StatusNormal
	}
	switch {
	case current.LessThanOrEqual(limit):
		return entity.StatusCritical
	case current.LessThanOrEqual(limit.Mul(lowBand)):
		return entity.StatusLow
	default:
		return entity.StatusNormal
	}
}

// IdealStock nivel objetivo de reposición (umbral * 1.5).
func IdealStock(limit decimal.Decimal) decimal.Decimal {
	return limit.Mul(lowBand)
}

// NextQuantity aplica un movimiento sobre la cantidad previa.
// Devuelve ErrInsufficientStock si el resultado quedaría negativo.
func NextQuantity(previous decimal.Decimal, dir entity.Direction, qty decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	switch dir {
	case entity.DirectionIn:
		next = previous.Add(qty)
	case entity.DirectionOut:
		next = previous.Sub(qty)
	default:
		return decimal.Zero, domain.ErrInvalidMovement
	}
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	return next, nil
}

// PurchaseCost devuelve el costo total de una entrada por compra con precio; nil en otro caso.
func PurchaseCost(dir entity.Direction, reason entity.Reason, qty decimal.Decimal, unitPrice *decimal.Decimal) *decimal.Decimal {
	if dir != entity.DirectionIn || reason != entity.ReasonPurchase || unitPrice == nil {
		return nil
	}
	total := qty.Mul(*unitPrice)
	return &total
}
