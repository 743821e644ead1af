package inventory

import "github.com/shopspring/decimal"

// costScale decimales con los que se guarda el costo promedio.
const costScale = 6

// WeightedAverageCost recalcula el costo unitario promedio tras una compra:
// (onHand*currentCost + inQty*inCost) / (onHand + inQty).
// Existencias negativas no aportan valor; sin cantidad resultante devuelve cero.
func WeightedAverageCost(onHand, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if onHand.IsNegative() {
		onHand = decimal.Zero
	}
	total := onHand.Add(inQty)
	if !total.IsPositive() {
		return decimal.Zero
	}
	if onHand.IsZero() {
		return inCost
	}
	value := onHand.Mul(currentCost).Add(inQty.Mul(inCost))
	return value.DivRound(total, costScale)
}
