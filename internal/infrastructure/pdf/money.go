package pdf

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney muestra un monto en la moneda del reporte (separadores y símbolo de go-money).
// Si la moneda no existe en el catálogo se devuelve el decimal con 2 cifras.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// formatPct porcentaje con 2 decimales.
func formatPct(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
