package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del carrito.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ProcessSaleRequest entrada del endpoint submit-sale.
// Las reglas de negocio (carrito vacío, cantidades) las valida el caso de uso.
type ProcessSaleRequest struct {
	Items          []SaleLineRequest `json:"items"`
	PaymentMethod  string            `json:"payment_method" validate:"omitempty,max=20"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	CustomerName   string            `json:"customer_name" validate:"omitempty,max=100"`
	CustomerPhone  string            `json:"customer_phone" validate:"omitempty,max=20"`
	Notes          string            `json:"notes" validate:"omitempty,max=500"`
}

// ProcessSaleResponse salida de una venta confirmada.
type ProcessSaleResponse struct {
	Success       bool            `json:"success"`
	SaleID        string          `json:"sale_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// SaleErrorResponse cuerpo de error del endpoint submit-sale.
type SaleErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// SaleItemResponse línea de una venta persistida.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	EmployeeID     string             `json:"employee_id"`
	EmployeeName   string             `json:"employee_name,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}
