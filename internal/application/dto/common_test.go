package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"valores por defecto", 0, 0, 20, 0},
		{"límite negativo", -5, 10, 20, 10},
		{"límite sobre el máximo", 500, 0, 100, 0},
		{"offset negativo", 10, -3, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := dto.PageWindow(tc.limit, tc.offset, 20, 100)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
			assert.Zero(t, p.Total)
		})
	}
}
