package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Query      string // coincide con name, name_ar, sku o barcode
	CategoryID string
	ActiveOnly bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update persiste los campos de catálogo; nunca toca Quantity.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Search(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	// ListLowStock productos activos con quantity <= min_quantity.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	CountActive(ctx context.Context) (int, error)
}
