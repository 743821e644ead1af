package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido del movimiento.
type Direction string

const (
	DirectionIn  Direction = "in"  // entrada
	DirectionOut Direction = "out" // salida
)

// Sign devuelve +1 para entradas y -1 para salidas.
func (d Direction) Sign() int64 {
	switch d {
	case DirectionIn:
		return 1
	case DirectionOut:
		return -1
	default:
		return 0
	}
}

// ParseDirection valida el sentido; acepta también los valores históricos en español.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "entrada":
		return DirectionIn, nil
	case "out", "salida":
		return DirectionOut, nil
	default:
		return "", fmt.Errorf("dirección desconocida: %q", s)
	}
}

// Reason motivo del movimiento (catálogo cerrado).
type Reason string

const (
	ReasonPurchase   Reason = "purchase"   // compra
	ReasonProduction Reason = "production" // producción
	ReasonAdjustment Reason = "adjustment" // ajuste
	ReasonExpiration Reason = "expiration" // vencimiento
	ReasonDamage     Reason = "damage"     // daño
	ReasonSale       Reason = "sale"       // venta
	ReasonReturn     Reason = "return"     // devolución
)

// Valid indica si el motivo pertenece al catálogo.
func (r Reason) Valid() bool {
	switch r {
	case ReasonPurchase, ReasonProduction, ReasonAdjustment, ReasonExpiration, ReasonDamage, ReasonSale, ReasonReturn:
		return true
	default:
		return false
	}
}

// ParseReason valida el motivo; acepta también los valores históricos en español.
func ParseReason(s string) (Reason, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "purchase", "compra":
		return ReasonPurchase, nil
	case "production", "produccion", "producción":
		return ReasonProduction, nil
	case "adjustment", "ajuste":
		return ReasonAdjustment, nil
	case "expiration", "vencimiento":
		return ReasonExpiration, nil
	case "damage", "daño", "dano", "merma":
		return ReasonDamage, nil
	case "sale", "venta":
		return ReasonSale, nil
	case "return", "devolucion", "devolución":
		return ReasonReturn, nil
	default:
		return "", fmt.Errorf("motivo desconocido: %q", s)
	}
}

// Movement entrada inmutable del libro de inventario (kardex).
// ResultingQuantity = PreviousQuantity ± Quantity y coincide con el stock del ítem al confirmar.
type Movement struct {
	ID                string
	ItemID            string
	Direction         Direction
	Reason            Reason
	Quantity          decimal.Decimal // siempre positivo
	PreviousQuantity  decimal.Decimal
	ResultingQuantity decimal.Decimal
	UnitPrice         *decimal.Decimal
	TotalCost         *decimal.Decimal // solo entradas por compra con precio
	Note              string
	CreatedAt         time.Time
	Actor             string // UserID
	Seq               int64  // orden de inserción, desempata timestamps iguales
}

// Delta devuelve la variación con signo que aplica el movimiento.
func (m *Movement) Delta() decimal.Decimal {
	return m.Quantity.Mul(decimal.NewFromInt(m.Direction.Sign()))
}
