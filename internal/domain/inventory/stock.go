package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ApplyDelta calcula el nuevo stock. Devuelve *domain.NegativeStockError si current+delta < 0.
func ApplyDelta(productID string, current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, &domain.NegativeStockError{ProductID: productID, Current: current, Delta: delta}
	}
	return next, nil
}

// MovementTypeForDelta tipo de movimiento para un ajuste manual: entrada si sube, ajuste si baja.
func MovementTypeForDelta(delta int) string {
	if delta > 0 {
		return entity.MovementTypeIn
	}
	return entity.MovementTypeAdjustment
}

// ProfitMargin margen sobre costo en porcentaje: (precio-costo)/costo*100. Cero si no hay costo.
func ProfitMargin(price, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Round(2)
}
