package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Motor de inventario
	ErrItemNotFound      = fmt.Errorf("ítem de inventario no encontrado: %w", ErrNotFound)
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidMovement   = errors.New("movimiento inválido")

	// Motor de clasificación ABC
	ErrInvalidThresholds = errors.New("umbrales inválidos: se requiere 0 ≤ A < B < C ≤ 100")
	ErrDegenerateTotal   = errors.New("valor total nulo: no se puede clasificar")
)
