package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/employee"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminSeed credenciales del administrador inicial.
type AdminSeed struct {
	Username string
	Email    string
	FullName string
	Password string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	employeeRepo repository.EmployeeRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employeeRepo: employeeRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password, genera JWT y retorna token + empleado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	e, err := uc.employeeRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !e.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, e.ID, e.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: employee.ToEmployeeResponse(e),
	}, nil
}

// Me devuelve el empleado del token. Un empleado desactivado después de emitir el token queda fuera.
func (uc *AuthUseCase) Me(ctx context.Context, actor access.Actor) (*dto.EmployeeResponse, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	e, err := uc.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if !e.IsActive {
		return nil, domain.ErrForbidden
	}
	out := employee.ToEmployeeResponse(e)
	return &out, nil
}

// EnsureDefaultAdmin crea el administrador inicial si no existe ningún empleado con ese usuario.
// Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		return false, nil
	}
	existing, err := uc.employeeRepo.GetByUsername(ctx, seed.Username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &entity.Employee{
		Username:     seed.Username,
		Email:        seed.Email,
		FullName:     seed.FullName,
		PasswordHash: string(hash),
		Role:         string(access.RoleAdmin),
		IsActive:     true,
	}
	if err := uc.employeeRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
