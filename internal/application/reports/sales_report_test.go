package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

type fakeCache struct {
	data   map[string]*dto.SalesSummaryDTO
	gets   int
	sets   int
	getErr error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]*dto.SalesSummaryDTO{}} }

func (c *fakeCache) GetSalesSummary(_ context.Context, key string) (*dto.SalesSummaryDTO, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) SetSalesSummary(_ context.Context, key string, v *dto.SalesSummaryDTO, _ time.Duration) error {
	c.sets++
	c.data[key] = v
	return nil
}

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func seedSales(t *testing.T) (*memory.Store, access.Actor) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	emp := &entity.Employee{Username: "admin", FullName: "Admin", Role: string(access.RoleAdmin), IsActive: true}
	require.NoError(t, store.Employees().Create(ctx, emp))

	sale := func(n, total string, at time.Time) {
		require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
			InvoiceNumber: n, TotalAmount: decimal.RequireFromString(total),
			PaymentMethod: entity.PaymentMethodCash, EmployeeID: emp.ID, CreatedAt: at,
		}))
	}
	sale("INV-1", "10.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	sale("INV-2", "5.25", time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC))
	sale("INV-3", "7.00", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	sale("INV-4", "1.10", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	sale("INV-5", "2.00", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))
	return store, access.Actor{EmployeeID: emp.ID, Role: access.RoleAdmin}
}

func newReport(store *memory.Store, cache *fakeCache) *SalesReportUseCase {
	var uc *SalesReportUseCase
	if cache == nil {
		uc = NewSalesReportUseCase(store.Reports(), nil, time.Hour, nil)
	} else {
		uc = NewSalesReportUseCase(store.Reports(), cache, time.Hour, nil)
	}
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestSalesReport_UnDiaIncluyeHastaElUltimoSegundo(t *testing.T) {
	store, admin := seedSales(t)
	out, err := newReport(store, nil).Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalTransactions)
	assert.True(t, decimal.RequireFromString("15.25").Equal(out.TotalRevenue))
	assert.Len(t, out.Sales, 2)
	assert.Equal(t, "2024-03-01", out.StartDate)
	assert.Equal(t, "2024-03-01", out.EndDate)
}

func TestSalesReport_RangoYValoresPorDefecto(t *testing.T) {
	store, admin := seedSales(t)
	uc := newReport(store, nil)

	out, err := uc.Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalTransactions)

	// Sin fechas: hoy.
	out, err = uc.Report(context.Background(), admin, dto.SalesReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalTransactions)
	assert.Equal(t, "2024-03-15", out.StartDate)

	// Solo inicio: hasta hoy.
	out, err = uc.Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalTransactions)
	assert.Equal(t, "2024-03-15", out.EndDate)
	assert.True(t, decimal.RequireFromString("25.35").Equal(out.TotalRevenue), out.TotalRevenue.String())

	// Solo fin.
	out, err = uc.Report(context.Background(), admin, dto.SalesReportRequest{EndDate: "2024-03-15"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", out.StartDate)
	assert.Equal(t, 1, out.TotalTransactions)

	// Rango sin ventas.
	out, err = uc.Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2023-01-01", EndDate: "2023-01-31"})
	require.NoError(t, err)
	assert.Zero(t, out.TotalTransactions)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.NotNil(t, out.Sales)
}

func TestSalesReport_EntradaInvalidaYPermisos(t *testing.T) {
	store, admin := seedSales(t)
	uc := newReport(store, nil)

	_, err := uc.Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "01/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Report(context.Background(), access.Actor{EmployeeID: admin.EmployeeID, Role: access.RoleCashier}, dto.SalesReportRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSalesReport_CacheSoloParaRangosCerrados(t *testing.T) {
	store, admin := seedSales(t)
	cache := newFakeCache()
	uc := newReport(store, cache)
	ctx := context.Background()

	closed := dto.SalesReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-02"}
	first, err := uc.Report(ctx, admin, closed)
	require.NoError(t, err)
	second, err := uc.Report(ctx, admin, closed)
	require.NoError(t, err)
	assert.Equal(t, first.SalesSummaryDTO, second.SalesSummaryDTO, "idempotente")
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.data, "report:sales:2024-03-01:2024-03-02")

	// El rango que incluye hoy siempre va a la base de datos.
	_, err = uc.Report(ctx, admin, dto.SalesReportRequest{StartDate: "2024-03-10", EndDate: "2024-03-15"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestSalesReport_ErrorDeCacheNoRompeElReporte(t *testing.T) {
	store, admin := seedSales(t)
	cache := newFakeCache()
	cache.getErr = errors.New("redis caído")
	out, err := newReport(store, cache).Report(context.Background(), admin, dto.SalesReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalTransactions)
}

func TestDashboard_KPIs(t *testing.T) {
	store, admin := seedSales(t)
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{Name: "a", SKU: "a", Quantity: 1, MinQuantity: 5, IsActive: true}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{Name: "b", SKU: "b", Quantity: 50, MinQuantity: 5, IsActive: true}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{Name: "c", SKU: "c", Quantity: 0, MinQuantity: 5, IsActive: false}))

	uc := NewDashboardUseCase(store.Reports(), store.Products())
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.Get(ctx, access.Actor{EmployeeID: admin.EmployeeID, Role: access.RoleCashier})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TodayTransactions)
	assert.True(t, decimal.RequireFromString("1.10").Equal(out.TodayRevenue))
	// 9 al 15 de marzo.
	assert.True(t, decimal.RequireFromString("3.10").Equal(out.WeekRevenue), out.WeekRevenue.String())
	assert.Equal(t, 2, out.TotalActiveProducts)
	require.Len(t, out.LowStockProducts, 1)
	assert.Equal(t, "a", out.LowStockProducts[0].SKU)
	require.Len(t, out.RecentSales, 5)
	assert.Equal(t, "INV-4", out.RecentSales[0].InvoiceNumber)

	_, err = uc.Get(ctx, access.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// lateSaleRepo registra una venta entre la lectura del listado y la del resumen.
type lateSaleRepo struct {
	*memory.ReportRepo
	late func()
}

func (r lateSaleRepo) ListSales(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	list, err := r.ReportRepo.ListSales(ctx, from, to)
	r.late()
	return list, err
}

func TestSalesReport_ResumenCoincideConElListado(t *testing.T) {
	store, admin := seedSales(t)
	ctx := context.Background()
	repo := lateSaleRepo{ReportRepo: store.Reports(), late: func() {
		require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
			InvoiceNumber: "INV-LATE", TotalAmount: decimal.RequireFromString("99.00"),
			PaymentMethod: entity.PaymentMethodCash, EmployeeID: admin.EmployeeID, CreatedAt: fixedNow,
		}))
	}}
	uc := NewSalesReportUseCase(repo, nil, time.Hour, nil)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.Report(ctx, admin, dto.SalesReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, len(out.Sales), out.TotalTransactions)
	assert.True(t, decimal.RequireFromString("1.10").Equal(out.TotalRevenue), out.TotalRevenue.String())
}
