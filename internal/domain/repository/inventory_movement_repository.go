package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// MovementFilter criterios del listado del ledger.
type MovementFilter struct {
	Search       string // nombre o SKU del producto, o nombre del empleado
	MovementType string
	ProductID    string
}

// InventoryMovementRepository puerto del ledger. Solo permite agregar y leer.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.InventoryMovement, int, error)
	// LatestByProduct devuelve el último movimiento de cada producto, indexado por product_id.
	LatestByProduct(ctx context.Context) (map[string]*entity.InventoryMovement, error)
}
