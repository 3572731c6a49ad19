package dto

import "time"

// AdjustStockRequest ajuste manual de stock. Delta positivo es entrada, negativo es ajuste a la baja.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta" validate:"required"`
	Reason    string `json:"reason" validate:"required,min=1,max=200"`
}

// AdjustStockResponse resultado del ajuste.
type AdjustStockResponse struct {
	ProductID        string `json:"product_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	MovementID       string `json:"movement_id"`
}

// MovementListRequest filtros del log de movimientos.
type MovementListRequest struct {
	PageRequest
	Search       string `query:"search"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=in out adjustment update deleted"`
	ProductID    string `query:"product_id"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	ProductSKU       string    `json:"product_sku,omitempty"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeName     string    `json:"employee_name,omitempty"`
	MovementType     string    `json:"movement_type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LedgerMismatch producto cuyo stock no coincide con su último movimiento.
type LedgerMismatch struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	Quantity       int    `json:"quantity"`
	LedgerQuantity int    `json:"ledger_quantity"`
	HasLedgerEntry bool   `json:"has_ledger_entry"`
}

// StockChangeEvent evento publicado a las terminales cuando cambia el stock.
type StockChangeEvent struct {
	Type     string            `json:"type"`
	Action   string            `json:"action"`
	Products []StockChangeItem `json:"products"`
	At       time.Time         `json:"at"`
}

// StockChangeItem nuevo stock de un producto.
type StockChangeItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	LowStock  bool   `json:"low_stock"`
}
