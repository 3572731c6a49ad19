package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `s.id, s.invoice_number, s.total_amount, s.tax_amount, s.discount_amount, s.payment_method,
	s.customer_name, s.customer_phone, s.notes, s.employee_id, s.created_at, COALESCE(e.full_name, '')`

const saleFrom = ` FROM sales s LEFT JOIN employees e ON e.id = s.employee_id`

// SaleRepo ventas sobre PostgreSQL. Solo inserta y lee.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.TotalAmount, &s.TaxAmount, &s.DiscountAmount, &s.PaymentMethod,
		&s.CustomerName, &s.CustomerPhone, &s.Notes, &s.EmployeeID, &s.CreatedAt, &s.EmployeeName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la cabecera de la venta. invoice_number repetido es un error de persistencia.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, invoice_number, total_amount, tax_amount, discount_amount, payment_method,
			customer_name, customer_phone, notes, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.InvoiceNumber, s.TotalAmount, s.TaxAmount, s.DiscountAmount, s.PaymentMethod,
		s.CustomerName, s.CustomerPhone, s.Notes, s.EmployeeID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice_number %s ya existe", domain.ErrPersistence, s.InvoiceNumber)
		}
		return fmt.Errorf("%w: insert sale: %v", domain.ErrPersistence, err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, product_sku, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.SaleID, it.ProductID, it.ProductName, it.ProductSKU, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("%w: insert sale item: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+saleFrom+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	if !isUUID(saleID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, product_sku, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.ProductSKU,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary suma total_amount y cuenta ventas en [from, to).
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	var totals repository.SalesTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&totals.Revenue, &totals.Count)
	if err != nil {
		return repository.SalesTotals{Revenue: decimal.Zero}, fmt.Errorf("sales summary: %w", err)
	}
	return totals, nil
}

// ListSales ventas de [from, to), más recientes primero.
func (r *ReportRepo) ListSales(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+saleFrom+`
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at DESC, s.invoice_number DESC`, from, to)
}

// ListRecentSales últimas limit ventas.
func (r *ReportRepo) ListRecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+saleFrom+`
		ORDER BY s.created_at DESC, s.invoice_number DESC LIMIT $1`, limit)
}

func (r *ReportRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
