package employee_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/employee"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*employee.UseCase, access.Actor) {
	t.Helper()
	store := memory.New()
	admin := &entity.Employee{Username: "admin", FullName: "Admin", Role: string(access.RoleAdmin), IsActive: true}
	require.NoError(t, store.Employees().Create(context.Background(), admin))
	return employee.NewUseCase(store.Employees()), access.Actor{EmployeeID: admin.ID, Role: access.RoleAdmin}
}

func ptr[T any](v T) *T { return &v }

func TestCreateEmployee(t *testing.T) {
	uc, admin := setup(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{
		Username: "maria", Email: "maria@tienda.test", FullName: "María", Password: "clave123", Role: "manager",
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.ElementsMatch(t, []string{"manage_inventory", "view_reports", "edit_products", "make_sales", "manage_products"}, out.Capabilities)

	_, err = uc.Create(ctx, admin, dto.CreateEmployeeRequest{
		Username: "maria", Email: "otra@tienda.test", FullName: "Otra", Password: "clave123", Role: "cashier",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, admin, dto.CreateEmployeeRequest{
		Username: "pepe", Email: "pepe@tienda.test", FullName: "Pepe", Password: "clave123", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEmployee_SoloAdminGestiona(t *testing.T) {
	uc, admin := setup(t)
	manager := access.Actor{EmployeeID: admin.EmployeeID, Role: access.RoleManager}
	ctx := context.Background()

	_, err := uc.List(ctx, manager)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, manager, dto.CreateEmployeeRequest{Username: "x", Password: "123456", Role: "cashier"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Deactivate(ctx, manager, "otro"), domain.ErrForbidden)
}

func TestEmployee_NoPuedeAutodesactivarseNiDegradarse(t *testing.T) {
	uc, admin := setup(t)
	ctx := context.Background()

	err := uc.Deactivate(ctx, admin, admin.EmployeeID)
	assert.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	_, err = uc.Update(ctx, admin, admin.EmployeeID, dto.UpdateEmployeeRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrSelfDelete)

	_, err = uc.Update(ctx, admin, admin.EmployeeID, dto.UpdateEmployeeRequest{Role: ptr("cashier")})
	assert.ErrorIs(t, err, domain.ErrSelfDelete)

	out, err := uc.Update(ctx, admin, admin.EmployeeID, dto.UpdateEmployeeRequest{FullName: ptr("Admin Principal")})
	require.NoError(t, err)
	assert.Equal(t, "Admin Principal", out.FullName)
}

func TestEmployee_ActualizarYDesactivarOtro(t *testing.T) {
	uc, admin := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{
		Username: "luis", Email: "luis@tienda.test", FullName: "Luis", Password: "clave123", Role: "cashier",
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, admin, created.ID, dto.UpdateEmployeeRequest{Role: ptr("manager")})
	require.NoError(t, err)
	assert.Equal(t, "manager", out.Role)

	_, err = uc.Update(ctx, admin, created.ID, dto.UpdateEmployeeRequest{Password: ptr("123")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Deactivate(ctx, admin, created.ID))
	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	for _, e := range list {
		if e.ID == created.ID {
			assert.False(t, e.IsActive)
		}
	}

	assert.ErrorIs(t, uc.Deactivate(ctx, admin, "no-existe"), domain.ErrEmployeeNotFound)
	_, err = uc.Update(ctx, admin, "no-existe", dto.UpdateEmployeeRequest{})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}
