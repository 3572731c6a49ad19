package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository persiste ventas. No hay Update ni Delete: una venta confirmada no cambia.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}

// SalesTotals ingresos y número de transacciones de un rango.
type SalesTotals struct {
	Revenue decimal.Decimal
	Count   int
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// El rango es semiabierto [from, to).
type ReportRepository interface {
	// SalesSummary devuelve la suma de total_amount y el número de ventas del rango.
	SalesSummary(ctx context.Context, from, to time.Time) (SalesTotals, error)
	ListSales(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
	ListRecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
}
