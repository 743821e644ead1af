package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]entity.Direction{
		"in": entity.DirectionIn, "entrada": entity.DirectionIn, " OUT ": entity.DirectionOut, "salida": entity.DirectionOut,
	} {
		got, err := entity.ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := entity.ParseDirection("transfer")
	assert.Error(t, err)
}

func TestParseReason(t *testing.T) {
	for in, want := range map[string]entity.Reason{
		"compra": entity.ReasonPurchase, "produccion": entity.ReasonProduction, "ajuste": entity.ReasonAdjustment,
		"vencimiento": entity.ReasonExpiration, "daño": entity.ReasonDamage, "damage": entity.ReasonDamage,
		"merma": entity.ReasonDamage,
	} {
		got, err := entity.ParseReason(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := entity.ParseReason("robo")
	assert.Error(t, err)
}

func TestThresholdPolicy_Valid(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	assert.True(t, entity.FixedThreshold(decimal.NewFromInt(5)).Valid())
	assert.False(t, entity.FixedThreshold(neg).Valid())
	assert.False(t, entity.ThresholdPolicy{Kind: entity.ThresholdFixed}.Valid(), "fijo requiere valor")
	assert.True(t, entity.ReorderPoint(nil).Valid())
	assert.False(t, entity.ReorderPoint(&neg).Valid())
	assert.False(t, entity.ThresholdPolicy{Kind: "otro"}.Valid())
}

func TestMovement_Delta(t *testing.T) {
	m := entity.Movement{Direction: entity.DirectionOut, Quantity: decimal.NewFromInt(3)}
	assert.True(t, m.Delta().Equal(decimal.NewFromInt(-3)))
	m.Direction = entity.DirectionIn
	assert.True(t, m.Delta().Equal(decimal.NewFromInt(3)))
}
