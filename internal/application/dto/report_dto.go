package dto

import "github.com/shopspring/decimal"

// SalesReportRequest rango de fechas inclusivo (YYYY-MM-DD, UTC). Vacío = hoy.
type SalesReportRequest struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// SalesSummaryDTO ingresos y número de transacciones del rango.
type SalesSummaryDTO struct {
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalTransactions int             `json:"total_transactions"`
}

// SalesReportResponse resumen más las ventas del rango.
type SalesReportResponse struct {
	SalesSummaryDTO
	Sales []SaleResponse `json:"sales"`
}

// DashboardDTO KPIs de la pantalla principal.
type DashboardDTO struct {
	TodayRevenue        decimal.Decimal   `json:"today_revenue"`
	TodayTransactions   int               `json:"today_transactions"`
	WeekRevenue         decimal.Decimal   `json:"week_revenue"`
	TotalActiveProducts int               `json:"total_active_products"`
	LowStockProducts    []ProductResponse `json:"low_stock_products"`
	RecentSales         []SaleResponse    `json:"recent_sales"`
}
