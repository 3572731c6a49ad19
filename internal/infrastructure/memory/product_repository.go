package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a accessor
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return r.a.write(func(st *state) error {
		if err := checkProductUnique(st, p); err != nil {
			return err
		}
		st.products[p.ID] = *p
		return nil
	})
}

func checkProductUnique(st *state, p *entity.Product) error {
	for id, other := range st.products {
		if id == p.ID {
			continue
		}
		if other.SKU == p.SKU {
			return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
		}
		if p.Barcode != "" && other.Barcode == p.Barcode {
			return fmt.Errorf("barcode %s: %w", p.Barcode, domain.ErrDuplicate)
		}
	}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: la tx ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	var out *entity.Product
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if p.Barcode == barcode && p.IsActive {
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now().UTC()
	return r.a.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		if err := checkProductUnique(st, p); err != nil {
			return err
		}
		next := *p
		next.Quantity = cur.Quantity
		next.CreatedAt = cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.a.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		if quantity < 0 {
			return fmt.Errorf("%w: quantity >= 0", domain.ErrPersistence)
		}
		p.Quantity = quantity
		p.UpdatedAt = time.Now().UTC()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Search(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var all []*entity.Product
	q := strings.ToLower(strings.TrimSpace(f.Query))
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if f.ActiveOnly && !p.IsActive {
				continue
			}
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if q != "" && !matchesProduct(p, q) {
				continue
			}
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func matchesProduct(p entity.Product, q string) bool {
	for _, field := range []string{p.Name, p.NameAr, p.SKU, p.Barcode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if p.IsActive && p.IsLowStock() {
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.a.read(func(st *state) {
		for _, p := range st.products {
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *ProductRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if p.IsActive {
				n++
			}
		}
	})
	return n, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
