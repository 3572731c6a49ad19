package entity

import "time"

// Tipos de movimiento del ledger de inventario.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeAdjustment = "adjustment"
	MovementTypeUpdate     = "update"
	MovementTypeDeleted    = "deleted"
)

// Motivos que genera el propio sistema.
const (
	ReasonSale            = "sale"
	ReasonInitialStock    = "initial_stock"
	ReasonStockAdjustment = "stock_adjustment"
	ReasonProductDeleted  = "product_deleted"
)

// IsValidMovementType valida el tipo contra el conjunto cerrado.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeUpdate, MovementTypeDeleted:
		return true
	}
	return false
}

// InventoryMovement es una entrada inmutable del ledger.
// Quantity es el delta con signo: NewQuantity == PreviousQuantity + Quantity.
type InventoryMovement struct {
	ID               string
	ProductID        string
	EmployeeID       string
	MovementType     string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	CreatedAt        time.Time

	// Solo lectura, resueltos por join al listar.
	ProductName  string
	ProductSKU   string
	EmployeeName string
}
