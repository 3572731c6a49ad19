package employee

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// UseCase gestión de empleados; exige manage_employees.
type UseCase struct {
	repo repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.EmployeeRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve todos los empleados, más recientes primero.
func (uc *UseCase) List(ctx context.Context, actor access.Actor) ([]dto.EmployeeResponse, error) {
	if err := actor.Require(access.ManageEmployees); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar empleados: %w", err)
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEmployeeResponse(e))
	}
	return out, nil
}

// Create crea un empleado con la contraseña hasheada (bcrypt).
func (uc *UseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := actor.Require(access.ManageEmployees); err != nil {
		return nil, err
	}
	role, ok := access.ParseRole(in.Role)
	if !ok || strings.TrimSpace(in.Username) == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	e := &entity.Employee{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Role:         string(role),
		IsActive:     active,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := ToEmployeeResponse(e)
	return &out, nil
}

// Update aplica los campos presentes. Un empleado no puede desactivarse ni quitarse el rol admin a sí mismo.
func (uc *UseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := actor.Require(access.ManageEmployees); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener empleado: %w", err)
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	self := e.ID == actor.EmployeeID
	if in.Email != nil {
		e.Email = strings.TrimSpace(*in.Email)
	}
	if in.FullName != nil {
		e.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil {
		role, ok := access.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if self && role != access.RoleAdmin {
			return nil, domain.ErrSelfDelete
		}
		e.Role = string(role)
	}
	if in.IsActive != nil {
		if self && !*in.IsActive {
			return nil, domain.ErrSelfDelete
		}
		e.IsActive = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 6 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		e.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	out := ToEmployeeResponse(e)
	return &out, nil
}

// Deactivate da de baja a un empleado. Sus ventas y movimientos se conservan.
func (uc *UseCase) Deactivate(ctx context.Context, actor access.Actor, id string) error {
	if err := actor.Require(access.ManageEmployees); err != nil {
		return err
	}
	if id == actor.EmployeeID {
		return domain.ErrSelfDelete
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("obtener empleado: %w", err)
	}
	if e == nil {
		return domain.ErrEmployeeNotFound
	}
	e.IsActive = false
	return uc.repo.Update(ctx, e)
}

// ToEmployeeResponse convierte a DTO incluyendo las capacidades del rol.
func ToEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	caps := access.Capabilities(access.Role(e.Role))
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	return dto.EmployeeResponse{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		FullName:     e.FullName,
		Role:         e.Role,
		IsActive:     e.IsActive,
		Capabilities: names,
		CreatedAt:    e.CreatedAt,
	}
}
