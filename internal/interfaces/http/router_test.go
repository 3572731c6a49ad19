package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/employee"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/reports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, _ *sales.InvoicePDF) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type testEnv struct {
	app     *fiber.App
	store   *memory.Store
	admin   *entity.Employee
	cashier *entity.Employee
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	admin := &entity.Employee{Username: "admin", FullName: "Admin", Role: "admin", IsActive: true}
	cashier := &entity.Employee{Username: "caja1", FullName: "Caja", Role: "cashier", IsActive: true}
	require.NoError(t, store.Employees().Create(ctx, admin))
	require.NoError(t, store.Employees().Create(ctx, cashier))

	stock := inventory.NewStockAccessor()
	ledger := inventory.NewLedgerRecorder(time.Now)
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(store.Employees(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProcessSale: sales.NewProcessSaleUseCase(store, store.Employees(), stock, ledger, sales.NewInvoiceNumberGenerator(), nil, nil),
		SaleQuery:   sales.NewQueryUseCase(store.Sales(), fakePDF{}, sales.StoreInfo{Name: "Tienda"}),
		ProductUC:   catalog.NewProductUseCase(store, store.Products(), stock, ledger, nil, nil),
		CategoryUC:  catalog.NewCategoryUseCase(store.Categories()),
		AdjustStock: inventory.NewAdjustStockUseCase(store, stock, ledger, nil, nil),
		Movements:   inventory.NewMovementsUseCase(store.Movements(), store.Products()),
		SalesReport: reports.NewSalesReportUseCase(store.Reports(), nil, 0, nil),
		Dashboard:   reports.NewDashboardUseCase(store.Reports(), store.Products()),
		EmployeeUC:  employee.NewUseCase(store.Employees()),
		JWTSecret:   testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, store: store, admin: admin, cashier: cashier}
}

func (e *testEnv) bearer(t *testing.T, emp *entity.Employee) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, emp.ID, emp.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) seedProduct(t *testing.T, sku string, qty int, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name: sku, NameAr: sku, SKU: sku,
		Price: decimal.RequireFromString(price), Quantity: qty,
		MinQuantity: entity.DefaultMinQuantity, IsActive: true,
	}
	require.NoError(t, e.store.Products().Create(context.Background(), p))
	return p
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ── Ventas ──────────────────────────────────────────────────────────────────

func TestSubmitSale_CajeroRegistraVenta(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "A-1", 10, "2.50")

	resp := env.do(t, http.MethodPost, "/api/sales", env.bearer(t, env.cashier), map[string]interface{}{
		"items":          []map[string]interface{}{{"product_id": p.ID, "quantity": 3, "unit_price": "2.50"}},
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.ProcessSaleResponse
	decode(t, resp, &out)
	assert.True(t, out.Success)
	assert.Regexp(t, `^INV-\d{14}-[A-Z0-9]{4}$`, out.InvoiceNumber)
	assert.True(t, decimal.RequireFromString("7.50").Equal(out.TotalAmount))

	after, err := env.store.Products().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Quantity)

	// La venta se puede consultar y descargar en PDF.
	resp = env.do(t, http.MethodGet, "/api/sales/"+out.SaleID, env.bearer(t, env.cashier), nil)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.Equal(t, out.InvoiceNumber, sale.InvoiceNumber)
	require.Len(t, sale.Items, 1)

	resp = env.do(t, http.MethodGet, "/api/sales/"+out.SaleID+"/pdf", env.bearer(t, env.cashier), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_"+out.InvoiceNumber+".pdf")
}

func TestSubmitSale_StockInsuficiente_Retorna409(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "B-1", 2, "1.00")

	resp := env.do(t, http.MethodPost, "/api/sales", env.bearer(t, env.cashier), map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": p.ID, "quantity": 5, "unit_price": "1.00"}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.SaleErrorResponse
	decode(t, resp, &out)
	assert.False(t, out.Success)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	after, _ := env.store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 2, after.Quantity, "el stock no debe cambiar")
}

func TestSubmitSale_CarritoVacio_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/sales", env.bearer(t, env.cashier), map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.SaleErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestSubmitSale_ProductoInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/sales", env.bearer(t, env.cashier), map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": "no-existe", "quantity": 1, "unit_price": "1.00"}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out dto.SaleErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestSubmitSale_CajeroDesactivado_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "D-1", 4, "1.00")
	auth := env.bearer(t, env.cashier)

	env.cashier.IsActive = false
	require.NoError(t, env.store.Employees().Update(context.Background(), env.cashier))

	resp := env.do(t, http.MethodPost, "/api/sales", auth, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": p.ID, "quantity": 1, "unit_price": "1.00"}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out dto.SaleErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "FORBIDDEN", out.Code)

	after, _ := env.store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 4, after.Quantity)
}

func TestSubmitSale_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/sales", "", map[string]interface{}{"items": []interface{}{}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Permisos por rol ────────────────────────────────────────────────────────

func TestCajero_NoAccedeAReportesNiEmpleados(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/reports/sales", "/api/employees", "/api/inventory/movements"} {
		resp := env.do(t, http.MethodGet, path, env.bearer(t, env.cashier), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestAdmin_NoPuedeDesactivarseASiMismo(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodDelete, "/api/employees/"+env.admin.ID, env.bearer(t, env.admin), nil)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", out.Code)
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesIncorrectas_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "mala"})
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Code)
}

func TestLogin_SinPassword_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Inventario y reportes ───────────────────────────────────────────────────

func TestAjusteDeStock_QuedaEnElLedger(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "C-1", 4, "3.00")

	resp := env.do(t, http.MethodPost, "/api/inventory/adjustments", env.bearer(t, env.admin), dto.AdjustStockRequest{ProductID: p.ID, Delta: 6, Reason: "reposición"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/inventory/movements?product_id="+p.ID, env.bearer(t, env.admin), nil)
	var list dto.MovementListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 4, list.Items[0].PreviousQuantity)
	assert.Equal(t, 10, list.Items[0].NewQuantity)

	resp = env.do(t, http.MethodGet, "/api/inventory/reconciliation", env.bearer(t, env.admin), nil)
	var mismatches []dto.LedgerMismatch
	decode(t, resp, &mismatches)
	assert.Empty(t, mismatches)
}

func TestReporteVentas_RangoInvertido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/reports/sales?start_date=2024-02-10&end_date=2024-02-01", env.bearer(t, env.admin), nil)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
}
