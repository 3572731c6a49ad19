package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo ledger en memoria; el orden del slice es el orden de inserción.
type InventoryMovementRepo struct {
	a accessor
}

func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.a.write(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return fmt.Errorf("%w: product %s no existe", domain.ErrPersistence, m.ProductID)
		}
		if _, ok := st.employees[m.EmployeeID]; !ok {
			return fmt.Errorf("%w: employee %s no existe", domain.ErrPersistence, m.EmployeeID)
		}
		row := *m
		row.ProductName, row.ProductSKU, row.EmployeeName = "", "", ""
		st.movements = append(st.movements, row)
		return nil
	})
}

func (r *InventoryMovementRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, int, error) {
	var out []*entity.InventoryMovement
	q := strings.ToLower(strings.TrimSpace(f.Search))
	r.a.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.MovementType != "" && m.MovementType != f.MovementType {
				continue
			}
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			p := st.products[m.ProductID]
			m.ProductName = p.DisplayName()
			m.ProductSKU = p.SKU
			m.EmployeeName = st.employees[m.EmployeeID].FullName
			if q != "" && !containsAny(q, p.Name, p.NameAr, p.SKU, m.EmployeeName) {
				continue
			}
			out = append(out, &m)
		}
	})
	return page(out, limit, offset), len(out), nil
}

func (r *InventoryMovementRepo) LatestByProduct(_ context.Context) (map[string]*entity.InventoryMovement, error) {
	out := map[string]*entity.InventoryMovement{}
	r.a.read(func(st *state) {
		for _, m := range st.movements {
			out[m.ProductID] = &m
		}
	})
	return out, nil
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
