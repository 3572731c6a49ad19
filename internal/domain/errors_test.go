package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"carrito vacío", domain.ErrEmptyCart, domain.KindValidation},
		{"cantidad envuelta", fmt.Errorf("línea 2: %w", domain.ErrInvalidQuantity), domain.KindValidation},
		{"producto", fmt.Errorf("producto x: %w", domain.ErrProductNotFound), domain.KindNotFound},
		{"stock estructurado", &domain.InsufficientStockError{ProductID: "p1", Requested: 5, Available: 3}, domain.KindInsufficientStock},
		{"stock negativo", &domain.NegativeStockError{ProductID: "p1", Current: 1, Delta: -2}, domain.KindInsufficientStock},
		{"permiso", domain.ErrForbidden, domain.KindForbidden},
		{"duplicado", domain.ErrDuplicate, domain.KindConflict},
		{"persistencia", fmt.Errorf("%w: insert sale: %w", domain.ErrPersistence, errors.New("23505")), domain.KindPersistence},
		{"desconocido", errors.New("conexión rechazada"), domain.KindPersistence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.KindOf(tc.err))
		})
	}
}

func TestInsufficientStockError_MensajeYSentinel(t *testing.T) {
	err := fmt.Errorf("procesar venta: %w", &domain.InsufficientStockError{ProductID: "p1", Name: "Leche", Requested: 5, Available: 3})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var target *domain.InsufficientStockError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 3, target.Available)
	assert.Contains(t, err.Error(), "Leche")
}
