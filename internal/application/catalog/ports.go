package catalog

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner transacción con repos de catálogo e inventario: un alta o edición de producto
// y sus movimientos en el ledger se confirman juntos.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}
