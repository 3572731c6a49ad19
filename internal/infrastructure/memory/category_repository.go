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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	a accessor
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return r.a.write(func(st *state) error {
		for _, other := range st.categories {
			if strings.EqualFold(other.NameAr, c.NameAr) {
				return fmt.Errorf("categoría %s: %w", c.NameAr, domain.ErrDuplicate)
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.a.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.a.read(func(st *state) {
		for _, c := range st.categories {
			if strings.EqualFold(c.NameAr, name) || strings.EqualFold(c.Name, name) {
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.a.read(func(st *state) {
		for _, c := range st.categories {
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
