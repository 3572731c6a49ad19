package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// StockChange describe un cambio de stock ya aplicado; es lo que el ledger debe registrar.
type StockChange struct {
	ProductID string
	Previous  int
	New       int
	Delta     int
	Reason    string
}

// Unchanged cambio sin variación de cantidad, para movimientos de tipo update.
func Unchanged(product *entity.Product, reason string) StockChange {
	return StockChange{
		ProductID: product.ID,
		Previous:  product.Quantity,
		New:       product.Quantity,
		Reason:    reason,
	}
}

// StockAccessor lee y escribe el stock actual con la guarda de no negatividad.
// No escribe en el ledger: quien ajusta debe registrar el StockChange devuelto en la misma tx.
type StockAccessor struct{}

// NewStockAccessor construye el accessor.
func NewStockAccessor() *StockAccessor { return &StockAccessor{} }

// Adjust aplica delta a un producto leído con GetForUpdate y persiste el nuevo stock.
// Devuelve *domain.NegativeStockError si el resultado sería negativo; en ese caso no escribe nada.
func (a *StockAccessor) Adjust(
	ctx context.Context,
	productRepo repository.ProductRepository,
	product *entity.Product,
	delta int,
	reason string,
) (StockChange, error) {
	next, err := domaininv.ApplyDelta(product.ID, product.Quantity, delta)
	if err != nil {
		return StockChange{}, err
	}
	if err := productRepo.UpdateQuantity(ctx, product.ID, next); err != nil {
		return StockChange{}, fmt.Errorf("actualizar stock: %w", err)
	}
	change := StockChange{
		ProductID: product.ID,
		Previous:  product.Quantity,
		New:       next,
		Delta:     delta,
		Reason:    reason,
	}
	product.Quantity = next
	return change, nil
}
