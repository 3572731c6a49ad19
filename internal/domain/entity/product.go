package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinQuantity umbral de stock bajo cuando no se indica uno.
const DefaultMinQuantity = 5

// Product representa un producto del catálogo de la tienda.
// Quantity solo cambia a través del ajuste de stock, que siempre deja un movimiento en el ledger.
type Product struct {
	ID          string
	Name        string
	NameAr      string
	Description string
	Barcode     string // único si no está vacío
	SKU         string // único
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
	Quantity    int
	MinQuantity int
	ImageURL    string
	IsActive    bool
	CategoryID  string // vacío si no tiene categoría
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// DisplayName prefiere el nombre localizado si existe.
func (p *Product) DisplayName() string {
	if p.NameAr != "" {
		return p.NameAr
	}
	return p.Name
}
