package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

type env struct {
	store     *memory.Store
	adjust    *inventory.AdjustStockUseCase
	movements *inventory.MovementsUseCase
	manager   access.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.New()
	emp := &entity.Employee{Username: "gerente", FullName: "Gerente", Role: string(access.RoleManager), IsActive: true}
	require.NoError(t, store.Employees().Create(context.Background(), emp))
	return &env{
		store:     store,
		adjust:    inventory.NewAdjustStockUseCase(store, inventory.NewStockAccessor(), inventory.NewLedgerRecorder(nil), nil, nil),
		movements: inventory.NewMovementsUseCase(store.Movements(), store.Products()),
		manager:   access.Actor{EmployeeID: emp.ID, Role: access.RoleManager},
	}
}

func (e *env) product(t *testing.T, sku string, qty, min int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: sku, SKU: sku, Quantity: qty, MinQuantity: min, IsActive: true}
	require.NoError(t, e.store.Products().Create(context.Background(), p))
	return p
}

func TestAdjustStock_EntradaYSalida(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "A", 0, 5)
	ctx := context.Background()

	out, err := e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: p.ID, Delta: 12, Reason: "recepción"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.PreviousQuantity)
	assert.Equal(t, 12, out.NewQuantity)
	assert.NotEmpty(t, out.MovementID)

	out, err = e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: p.ID, Delta: -2, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 10, out.NewQuantity)

	list, err := e.movements.List(ctx, e.manager, dto.MovementListRequest{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
	// Más recientes primero.
	assert.Equal(t, entity.MovementTypeAdjustment, list.Items[0].MovementType)
	assert.Equal(t, -2, list.Items[0].Quantity)
	assert.Equal(t, entity.MovementTypeIn, list.Items[1].MovementType)
	assert.Equal(t, "merma", list.Items[0].Reason)
}

func TestAdjustStock_NoPermiteStockNegativo(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "B", 3, 5)

	_, err := e.adjust.Adjust(context.Background(), e.manager, dto.AdjustStockRequest{ProductID: p.ID, Delta: -4, Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	got, _ := e.store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 3, got.Quantity)
	all, _, _ := e.store.Movements().List(context.Background(), repository.MovementFilter{}, 10, 0)
	assert.Empty(t, all)
}

func TestAdjustStock_EntradaInvalidaYPermisos(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "C", 3, 5)
	ctx := context.Background()

	_, err := e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: p.ID, Delta: 0, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: p.ID, Delta: 1, Reason: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: "nope", Delta: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	cashier := access.Actor{EmployeeID: e.manager.EmployeeID, Role: access.RoleCashier}
	_, err = e.adjust.Adjust(ctx, cashier, dto.AdjustStockRequest{ProductID: p.ID, Delta: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLowStockYConciliacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	low := e.product(t, "LOW", 0, 5)
	ok := e.product(t, "OK", 0, 5)

	_, err := e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: low.ID, Delta: 2, Reason: "x"})
	require.NoError(t, err)
	_, err = e.adjust.Adjust(ctx, e.manager, dto.AdjustStockRequest{ProductID: ok.ID, Delta: 50, Reason: "x"})
	require.NoError(t, err)

	lows, err := e.movements.LowStock(ctx, e.manager)
	require.NoError(t, err)
	require.Len(t, lows, 1)
	assert.Equal(t, low.ID, lows[0].ID)
	assert.True(t, lows[0].LowStock)

	mismatches, err := e.movements.Reconcile(ctx, e.manager)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	// Un producto con stock y sin movimientos no cuadra.
	orphan := e.product(t, "ORPHAN", 7, 5)
	mismatches, err = e.movements.Reconcile(ctx, e.manager)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, orphan.ID, mismatches[0].ProductID)
	assert.False(t, mismatches[0].HasLedgerEntry)
	assert.Equal(t, 7, mismatches[0].Quantity)
}
