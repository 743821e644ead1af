package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isInvalidText verifica si el valor no se pudo convertir al tipo de la columna (22P02), p. ej. un UUID mal formado.
func isInvalidText(err error) bool {
	return hasCode(err, "22P02")
}

// validID indica si id puede compararse con una columna UUID. Un id que no lo es no identifica ninguna fila.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// nullDecimal convierte un puntero opcional en un valor apto para parámetros NUMERIC NULL.
func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}

// decimalPtr inverso de nullDecimal al escanear.
func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}
