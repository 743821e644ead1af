// Package classification implementa la clasificación ABC (Pareto) de ítems por valor económico.
//
// Las funciones son puras: sin E/S ni estado compartido, seguras para uso concurrente.
package classification

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Category categoría ABC asignada.
type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
)

// Categories orden canónico de las categorías.
var Categories = []Category{CategoryA, CategoryB, CategoryC}

// Basis criterio para calcular el valor anual de cada ítem.
type Basis string

const (
	ByValue     Basis = "value"      // precio unitario * consumo anual
	ByUnitPrice Basis = "unit_price" // solo precio unitario
	ByMargin    Basis = "margin"     // (precio - costo) * consumo anual
)

// ParseBasis valida el criterio; acepta también los nombres en español usados en la interfaz.
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value", "valor":
		return ByValue, nil
	case "unit_price", "precio":
		return ByUnitPrice, nil
	case "margin", "margen", "utilidad":
		return ByMargin, nil
	default:
		return "", fmt.Errorf("criterio desconocido %q: %w", s, domain.ErrInvalidInput)
	}
}

// Thresholds porcentajes acumulados de corte para A, B y C.
type Thresholds struct {
	A decimal.Decimal
	B decimal.Decimal
	C decimal.Decimal
}

// DefaultThresholds 80/95/100.
func DefaultThresholds() Thresholds {
	return Thresholds{
		A: decimal.NewFromInt(80),
		B: decimal.NewFromInt(95),
		C: decimal.NewFromInt(100),
	}
}

// Validate exige 0 ≤ A < B < C ≤ 100.
func (t Thresholds) Validate() error {
	if t.A.IsNegative() || !t.A.LessThan(t.B) || !t.B.LessThan(t.C) || t.C.GreaterThan(hundred) {
		return domain.ErrInvalidThresholds
	}
	return nil
}

// Input datos de un ítem para el ranking. AnnualConsumption es una cantidad, no un monto.
// UnitCost solo se usa con ByMargin; ausente equivale a 0.
type Input struct {
	ID                string
	Name              string
	UnitValue         decimal.Decimal
	AnnualConsumption decimal.Decimal
	UnitCost          decimal.Decimal
}

// Result fila clasificada.
type Result struct {
	Input
	AnnualValue          decimal.Decimal
	IndividualPercentage decimal.Decimal
	CumulativePercentage decimal.Decimal
	Category             Category
}

func annualValue(in Input, basis Basis) (decimal.Decimal, error) {
	switch basis {
	case ByValue:
		return in.UnitValue.Mul(in.AnnualConsumption), nil
	case ByUnitPrice:
		return in.UnitValue, nil
	case ByMargin:
		return in.UnitValue.Sub(in.UnitCost).Mul(in.AnnualConsumption), nil
	default:
		return decimal.Zero, fmt.Errorf("criterio desconocido %q: %w", basis, domain.ErrInvalidInput)
	}
}

// Classify ordena los ítems por valor anual descendente y asigna categorías ABC.
//
// Los empates conservan el orden de entrada. Con 1 ítem la categoría es A; con 2 o 3 se asigna
// por posición (A, B, C) ignorando umbrales; desde 4 se usa el porcentaje acumulado.
// Si el total es ≤ 0 devuelve ErrDegenerateTotal.
func Classify(items []Input, basis Basis, th Thresholds) ([]Result, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(items))
	if len(items) == 0 {
		return results, nil
	}

	total := decimal.Zero
	for _, in := range items {
		v, err := annualValue(in, basis)
		if err != nil {
			return nil, err
		}
		total = total.Add(v)
		results = append(results, Result{Input: in, AnnualValue: v})
	}
	if !total.IsPositive() {
		return nil, domain.ErrDegenerateTotal
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.AnnualValue.Cmp(a.AnnualValue)
	})

	running := decimal.Zero
	for i := range results {
		r := &results[i]
		running = running.Add(r.AnnualValue)
		r.IndividualPercentage = r.AnnualValue.Mul(hundred).Div(total)
		r.CumulativePercentage = running.Mul(hundred).Div(total)
		r.Category = assign(i, len(results), r.CumulativePercentage, th)
	}
	return results, nil
}

func assign(rank, n int, cumulative decimal.Decimal, th Thresholds) Category {
	switch {
	case n == 1:
		return CategoryA
	case n <= 3:
		return Categories[rank]
	case cumulative.LessThanOrEqual(th.A):
		return CategoryA
	case cumulative.LessThanOrEqual(th.B):
		return CategoryB
	default:
		return CategoryC
	}
}
