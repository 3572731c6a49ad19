package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func TestRun_ErrorDeshaceTodasLasEscrituras(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	p := &entity.Product{Name: "p", SKU: "p", Quantity: 5, IsActive: true}
	require.NoError(t, st.Products().Create(ctx, p))
	emp := &entity.Employee{Username: "ana", FullName: "Ana", Role: "manager", IsActive: true}
	require.NoError(t, st.Employees().Create(ctx, emp))

	boom := errors.New("boom")
	err := st.Run(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		require.NoError(t, productRepo.UpdateQuantity(ctx, p.ID, 1))
		require.NoError(t, movRepo.Create(ctx, &entity.InventoryMovement{
			ProductID: p.ID, EmployeeID: emp.ID, MovementType: entity.MovementTypeAdjustment,
			Quantity: -4, PreviousQuantity: 5, NewQuantity: 1,
		}))
		// Dentro de la tx se ve el valor nuevo.
		got, err := productRepo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Quantity)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := st.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	list, total, err := st.Movements().List(ctx, repository.MovementFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestRun_ContextoCanceladoNoConfirma(t *testing.T) {
	st := memory.New()
	p := &entity.Product{Name: "p", SKU: "p", Quantity: 5, IsActive: true}
	require.NoError(t, st.Products().Create(context.Background(), p))

	ctx, cancel := context.WithCancel(context.Background())
	err := st.Run(ctx, func(_ repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		cancel()
		return productRepo.UpdateQuantity(ctx, p.ID, 0)
	})
	assert.Error(t, err)

	got, _ := st.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 5, got.Quantity)
}

func TestProductRepo_UnicidadYNoEncontrado(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, st.Products().Create(ctx, &entity.Product{Name: "a", SKU: "A", Barcode: "111", Price: decimal.NewFromInt(1)}))

	err := st.Products().Create(ctx, &entity.Product{Name: "b", SKU: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	err = st.Products().Create(ctx, &entity.Product{Name: "c", SKU: "C", Barcode: "111"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	// Varios productos sin código de barras conviven.
	require.NoError(t, st.Products().Create(ctx, &entity.Product{Name: "d", SKU: "D"}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{Name: "e", SKU: "E"}))

	got, err := st.Products().GetByID(ctx, "no-existe")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployeeRepo_EmailVacioNoColisiona(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, st.Employees().Create(ctx, &entity.Employee{Username: "a"}))
	require.NoError(t, st.Employees().Create(ctx, &entity.Employee{Username: "b"}))
	assert.ErrorIs(t, st.Employees().Create(ctx, &entity.Employee{Username: "a"}), domain.ErrDuplicate)
}

func TestSaleRepo_EmpleadoInexistenteEsErrorDePersistencia(t *testing.T) {
	st := memory.New()
	err := st.Sales().Create(context.Background(), &entity.Sale{InvoiceNumber: "INV-X", EmployeeID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
