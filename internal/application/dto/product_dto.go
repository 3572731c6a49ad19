package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// La categoría se indica por ID o por nombre; si el nombre no existe se crea.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	NameAr       string          `json:"name_ar" validate:"required,min=1,max=100"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode" validate:"omitempty,max=50"`
	SKU          string          `json:"sku" validate:"required,min=1,max=50"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	MinQuantity  *int            `json:"min_quantity" validate:"omitempty,min=0"`
	ImageURL     string          `json:"image_url" validate:"omitempty,max=200"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name" validate:"omitempty,max=100"`
}

// UpdateProductRequest campos opcionales; solo se aplican los presentes.
// Un cambio de Quantity pasa por el ajuste de stock y queda en el ledger.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=100"`
	NameAr       *string          `json:"name_ar" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description"`
	Barcode      *string          `json:"barcode" validate:"omitempty,max=50"`
	Price        *decimal.Decimal `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity  *int             `json:"min_quantity" validate:"omitempty,min=0"`
	ImageURL     *string          `json:"image_url" validate:"omitempty,max=200"`
	IsActive     *bool            `json:"is_active"`
	CategoryID   *string          `json:"category_id"`
	CategoryName *string          `json:"category_name" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	NameAr       string          `json:"name_ar"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"min_quantity"`
	LowStock     bool            `json:"low_stock"`
	ImageURL     string          `json:"image_url"`
	IsActive     bool            `json:"is_active"`
	CategoryID   string          `json:"category_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category"`
	ActiveOnly bool   `query:"active_only"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductSearchResult resultado compacto de la búsqueda rápida del POS.
type ProductSearchResult struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	NameAr   string          `json:"name_ar"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Barcode  string          `json:"barcode"`
	SKU      string          `json:"sku"`
	ImageURL string          `json:"image_url"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	NameAr      string `json:"name_ar" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NameAr      string    `json:"name_ar"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
