package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.ReportRepository = (*ReportRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	a accessor
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return r.a.write(func(st *state) error {
		for _, other := range st.sales {
			if other.InvoiceNumber == s.InvoiceNumber {
				return fmt.Errorf("%w: invoice_number %s ya existe", domain.ErrPersistence, s.InvoiceNumber)
			}
		}
		if _, ok := st.employees[s.EmployeeID]; !ok {
			return fmt.Errorf("%w: employee %s no existe", domain.ErrPersistence, s.EmployeeID)
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return r.a.write(func(st *state) error {
		if _, ok := st.sales[item.SaleID]; !ok {
			return fmt.Errorf("%w: sale %s no existe", domain.ErrPersistence, item.SaleID)
		}
		st.saleItems = append(st.saleItems, *item)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.a.read(func(st *state) {
		if s, ok := st.sales[id]; ok {
			s.EmployeeName = st.employees[s.EmployeeID].FullName
			out = &s
		}
	})
	return out, nil
}

func (r *SaleRepo) GetItemsBySaleID(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	r.a.read(func(st *state) {
		for _, it := range st.saleItems {
			if it.SaleID == saleID {
				out = append(out, &it)
			}
		}
	})
	return out, nil
}

// ReportRepo consultas de solo lectura sobre ventas.
type ReportRepo struct {
	a accessor
}

func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	list, err := r.ListSales(ctx, from, to)
	if err != nil {
		return repository.SalesTotals{}, err
	}
	totals := repository.SalesTotals{Revenue: decimal.Zero}
	for _, s := range list {
		totals.Revenue = totals.Revenue.Add(s.TotalAmount)
		totals.Count++
	}
	return totals, nil
}

func (r *ReportRepo) ListSales(_ context.Context, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
				s.EmployeeName = st.employees[s.EmployeeID].FullName
				out = append(out, &s)
			}
		}
	})
	sortSalesDesc(out)
	return out, nil
}

func (r *ReportRepo) ListRecentSales(_ context.Context, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			s.EmployeeName = st.employees[s.EmployeeID].FullName
			out = append(out, &s)
		}
	})
	sortSalesDesc(out)
	return page(out, limit, 0), nil
}

func sortSalesDesc(list []*entity.Sale) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].InvoiceNumber > list[j].InvoiceNumber
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
