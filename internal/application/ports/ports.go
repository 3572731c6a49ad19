package ports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// StockNotifier publica a las terminales conectadas los cambios de stock ya confirmados.
// Las implementaciones no deben bloquear ni fallar la operación que las invoca.
type StockNotifier interface {
	NotifyStockChanged(ctx context.Context, event dto.StockChangeEvent)
}

// NoopStockNotifier descarta los eventos.
type NoopStockNotifier struct{}

func (NoopStockNotifier) NotifyStockChanged(context.Context, dto.StockChangeEvent) {}

// ReportCache guarda resúmenes de ventas de rangos ya cerrados (inmutables).
type ReportCache interface {
	GetSalesSummary(ctx context.Context, key string) (*dto.SalesSummaryDTO, bool, error)
	SetSalesSummary(ctx context.Context, key string, value *dto.SalesSummaryDTO, ttl time.Duration) error
}
