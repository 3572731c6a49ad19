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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación en memoria de EmployeeRepository.
type EmployeeRepo struct {
	a accessor
}

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return r.a.write(func(st *state) error {
		if err := checkEmployeeUnique(st, e); err != nil {
			return err
		}
		st.employees[e.ID] = *e
		return nil
	})
}

func checkEmployeeUnique(st *state, e *entity.Employee) error {
	for id, other := range st.employees {
		if id == e.ID {
			continue
		}
		if other.Username == e.Username || (e.Email != "" && strings.EqualFold(other.Email, e.Email)) {
			return fmt.Errorf("empleado %s: %w", e.Username, domain.ErrDuplicate)
		}
	}
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	r.a.read(func(st *state) {
		if e, ok := st.employees[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *EmployeeRepo) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	var out *entity.Employee
	r.a.read(func(st *state) {
		for _, e := range st.employees {
			if e.Username == username {
				out = &e
				return
			}
		}
	})
	return out, nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.employees[e.ID]
		if !ok {
			return domain.ErrEmployeeNotFound
		}
		if err := checkEmployeeUnique(st, e); err != nil {
			return err
		}
		next := *e
		next.CreatedAt = cur.CreatedAt
		st.employees[e.ID] = next
		return nil
	})
}

func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	r.a.read(func(st *state) {
		for _, e := range st.employees {
			out = append(out, &e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
