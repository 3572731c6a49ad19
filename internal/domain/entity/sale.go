package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodCash método de pago por defecto.
const PaymentMethodCash = "cash"

// Sale cabecera de una venta confirmada. Inmutable una vez persistida.
type Sale struct {
	ID             string
	InvoiceNumber  string
	TotalAmount    decimal.Decimal // subtotal - descuento
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string
	CustomerName   string
	CustomerPhone  string
	Notes          string
	EmployeeID     string
	CreatedAt      time.Time

	EmployeeName string // solo lectura
}

// SaleItem línea de venta con nombre y SKU congelados al momento de vender.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
