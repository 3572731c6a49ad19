package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// DateLayout formato de las fechas del reporte (día calendario UTC).
const DateLayout = "2006-01-02"

// SalesReportUseCase reporte de ventas por rango de días.
type SalesReportUseCase struct {
	repo  repository.ReportRepository
	cache ports.ReportCache
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. cache puede ser nil.
func NewSalesReportUseCase(repo repository.ReportRepository, cache ports.ReportCache, ttl time.Duration, log *logger.Logger) *SalesReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SalesReportUseCase{repo: repo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

// Report devuelve ingresos y transacciones del rango [start, end] (ambos días incluidos) y sus ventas.
// Sin start_date se usa hoy; sin end_date también hoy. Los rangos ya cerrados se sirven desde caché si existe.
func (uc *SalesReportUseCase) Report(ctx context.Context, actor access.Actor, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	if err := actor.Require(access.ViewReports); err != nil {
		return nil, err
	}
	today := truncateDay(uc.now())
	start, err := parseDay(in.StartDate, today)
	if err != nil {
		return nil, err
	}
	end, err := parseDay(in.EndDate, today)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	from, to := start, end.AddDate(0, 0, 1)

	list, err := uc.repo.ListSales(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := &dto.SalesReportResponse{SalesSummaryDTO: *uc.summary(ctx, start, end, today, list), Sales: make([]dto.SaleResponse, 0, len(list))}
	for _, s := range list {
		out.Sales = append(out.Sales, sales.ToSaleResponse(s, nil))
	}
	return out, nil
}

// summary totaliza las ventas ya leídas, así el resumen y el listado salen de la misma lectura.
func (uc *SalesReportUseCase) summary(ctx context.Context, start, end, today time.Time, list []*entity.Sale) *dto.SalesSummaryDTO {
	closed := end.Before(today) && uc.cache != nil
	key := fmt.Sprintf("report:sales:%s:%s", start.Format(DateLayout), end.Format(DateLayout))
	if closed {
		cached, ok, err := uc.cache.GetSalesSummary(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("report cache get failed")
		} else if ok {
			return cached
		}
	}
	revenue := decimal.Zero
	for _, s := range list {
		revenue = revenue.Add(s.TotalAmount)
	}
	summary := &dto.SalesSummaryDTO{
		StartDate:         start.Format(DateLayout),
		EndDate:           end.Format(DateLayout),
		TotalRevenue:      revenue.Round(sales.MoneyScale),
		TotalTransactions: len(list),
	}
	if closed {
		if err := uc.cache.SetSalesSummary(ctx, key, summary, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("report cache set failed")
		}
	}
	return summary
}

func parseDay(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
