package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const recentSalesLimit = 10

// DashboardUseCase KPIs de la pantalla principal; basta con estar autenticado.
type DashboardUseCase struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reports repository.ReportRepository, products repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, products: products, now: time.Now}
}

// Get calcula ventas de hoy, ingresos de los últimos 7 días, stock bajo y ventas recientes.
func (uc *DashboardUseCase) Get(ctx context.Context, actor access.Actor) (*dto.DashboardDTO, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	today := truncateDay(uc.now())
	tomorrow := today.AddDate(0, 0, 1)

	todayTotals, err := uc.reports.SalesSummary(ctx, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("ventas de hoy: %w", err)
	}
	weekTotals, err := uc.reports.SalesSummary(ctx, today.AddDate(0, 0, -6), tomorrow)
	if err != nil {
		return nil, fmt.Errorf("ventas de la semana: %w", err)
	}
	active, err := uc.products.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos activos: %w", err)
	}
	low, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	recent, err := uc.reports.ListRecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("ventas recientes: %w", err)
	}

	out := &dto.DashboardDTO{
		TodayRevenue:        todayTotals.Revenue.Round(sales.MoneyScale),
		TodayTransactions:   todayTotals.Count,
		WeekRevenue:         weekTotals.Revenue.Round(sales.MoneyScale),
		TotalActiveProducts: active,
		LowStockProducts:    make([]dto.ProductResponse, 0, len(low)),
		RecentSales:         make([]dto.SaleResponse, 0, len(recent)),
	}
	for _, p := range low {
		out.LowStockProducts = append(out.LowStockProducts, inventory.ToProductResponse(p))
	}
	for _, s := range recent {
		out.RecentSales = append(out.RecentSales, sales.ToSaleResponse(s, nil))
	}
	return out, nil
}
