package classification

import "github.com/shopspring/decimal"

// CategorySummary fila del resumen por categoría (cabecera del reporte).
type CategorySummary struct {
	Category        Category
	Count           int
	CountPercentage decimal.Decimal // participación sobre el número de ítems
	TotalValue      decimal.Decimal
	ValuePercentage decimal.Decimal // participación sobre el valor total
}

// Summarize agrupa los resultados por categoría. Siempre devuelve A, B y C en ese orden.
func Summarize(results []Result) []CategorySummary {
	grand := decimal.Zero
	for _, r := range results {
		grand = grand.Add(r.AnnualValue)
	}

	byCat := make(map[Category]*CategorySummary, len(Categories))
	out := make([]CategorySummary, len(Categories))
	for i, c := range Categories {
		out[i] = CategorySummary{
			Category:        c,
			CountPercentage: decimal.Zero,
			TotalValue:      decimal.Zero,
			ValuePercentage: decimal.Zero,
		}
		byCat[c] = &out[i]
	}
	for _, r := range results {
		s, ok := byCat[r.Category]
		if !ok {
			continue
		}
		s.Count++
		s.TotalValue = s.TotalValue.Add(r.AnnualValue)
	}

	n := decimal.NewFromInt(int64(len(results)))
	for i := range out {
		if len(results) > 0 {
			out[i].CountPercentage = decimal.NewFromInt(int64(out[i].Count)).Mul(hundred).Div(n)
		}
		if grand.IsPositive() {
			out[i].ValuePercentage = out[i].TotalValue.Mul(hundred).Div(grand)
		}
	}
	return out
}
