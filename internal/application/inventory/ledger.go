package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// LedgerRecorder agrega movimientos inmutables al ledger de inventario.
type LedgerRecorder struct {
	now func() time.Time
}

// NewLedgerRecorder construye el recorder. now nil usa time.Now.
func NewLedgerRecorder(now func() time.Time) *LedgerRecorder {
	if now == nil {
		now = time.Now
	}
	return &LedgerRecorder{now: now}
}

// Record valida la coherencia del cambio con el tipo de movimiento y lo persiste.
func (r *LedgerRecorder) Record(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	employeeID, movementType string,
	change StockChange,
) (*entity.InventoryMovement, error) {
	if err := validateEntry(employeeID, movementType, change); err != nil {
		return nil, err
	}
	m := &entity.InventoryMovement{
		ID:               uuid.New().String(),
		ProductID:        change.ProductID,
		EmployeeID:       employeeID,
		MovementType:     movementType,
		Quantity:         change.Delta,
		PreviousQuantity: change.Previous,
		NewQuantity:      change.New,
		Reason:           change.Reason,
		CreatedAt:        r.now().UTC(),
	}
	if err := movRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return m, nil
}

func validateEntry(employeeID, movementType string, c StockChange) error {
	if c.ProductID == "" || employeeID == "" {
		return fmt.Errorf("movimiento sin producto o empleado: %w", domain.ErrInvalidInput)
	}
	if !entity.IsValidMovementType(movementType) {
		return fmt.Errorf("tipo de movimiento %q: %w", movementType, domain.ErrInvalidInput)
	}
	if c.New != c.Previous+c.Delta || c.New < 0 {
		return fmt.Errorf("movimiento incoherente %d%+d=%d: %w", c.Previous, c.Delta, c.New, domain.ErrInvalidInput)
	}
	var ok bool
	switch movementType {
	case entity.MovementTypeIn:
		ok = c.Delta > 0
	case entity.MovementTypeOut:
		ok = c.Delta < 0
	case entity.MovementTypeAdjustment:
		ok = c.Delta != 0
	case entity.MovementTypeUpdate:
		ok = c.Delta == 0
	case entity.MovementTypeDeleted:
		ok = c.New == 0
	}
	if !ok {
		return fmt.Errorf("delta %d no corresponde a un movimiento %s: %w", c.Delta, movementType, domain.ErrInvalidInput)
	}
	return nil
}
