package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := actor.Require(access.ManageProducts); err != nil {
		return nil, err
	}
	c := &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		NameAr:      strings.TrimSpace(in.NameAr),
		Description: in.Description,
	}
	if c.Name == "" || c.NameAr == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context, actor access.Actor) ([]dto.CategoryResponse, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		NameAr:      c.NameAr,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
