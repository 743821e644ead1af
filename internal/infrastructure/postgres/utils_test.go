package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(errors.New("timeout")))

	badUUID := fmt.Errorf("get stock item: %w", &pgconn.PgError{Code: "22P02"})
	assert.True(t, isInvalidText(badUUID))
	assert.False(t, isInvalidText(unique))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("3f2c1b7e-8d4a-4c43-bab6-fb3790620774"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
	assert.False(t, validID("3f2c1b7e-8d4a-4c43-bab6-fb37906207"))
}

func TestNullDecimal_IdaYVuelta(t *testing.T) {
	assert.False(t, nullDecimal(nil).Valid)
	assert.Nil(t, decimalPtr(decimal.NullDecimal{}))

	v := decimal.RequireFromString("12.50")
	n := nullDecimal(&v)
	assert.True(t, n.Valid)
	back := decimalPtr(n)
	if assert.NotNil(t, back) {
		assert.True(t, back.Equal(v))
	}
}
