// Package memory implementa los puertos de persistencia en memoria.
// Las transacciones trabajan sobre una copia del estado y la publican al confirmar,
// así un error a mitad de camino no deja escrituras parciales.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ sales.TxRunner = (*Store)(nil)
var _ catalog.TxRunner = (*Store)(nil)

type state struct {
	products   map[string]entity.Product
	categories map[string]entity.Category
	employees  map[string]entity.Employee
	sales      map[string]entity.Sale
	saleItems  []entity.SaleItem
	movements  []entity.InventoryMovement
}

func newState() *state {
	return &state{
		products:   map[string]entity.Product{},
		categories: map[string]entity.Category{},
		employees:  map[string]entity.Employee{},
		sales:      map[string]entity.Sale{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(s.products)),
		categories: make(map[string]entity.Category, len(s.categories)),
		employees:  make(map[string]entity.Employee, len(s.employees)),
		sales:      make(map[string]entity.Sale, len(s.sales)),
		saleItems:  append([]entity.SaleItem(nil), s.saleItems...),
		movements:  append([]entity.InventoryMovement(nil), s.movements...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// accessor abstrae si las operaciones van contra el estado publicado o contra la copia de una tx.
type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store almacén en memoria. txMu serializa escritores; mu protege el puntero al estado publicado.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccessor struct{ st *state }

func (t txAccessor) read(fn func(st *state))               { fn(t.st) }
func (t txAccessor) write(fn func(st *state) error) error { return fn(t.st) }

// ── Repositorios sobre el estado publicado ────────────────────────────────────

func (s *Store) Products() *ProductRepo            { return &ProductRepo{a: s} }
func (s *Store) Categories() *CategoryRepo         { return &CategoryRepo{a: s} }
func (s *Store) Employees() *EmployeeRepo          { return &EmployeeRepo{a: s} }
func (s *Store) Sales() *SaleRepo                  { return &SaleRepo{a: s} }
func (s *Store) Movements() *InventoryMovementRepo { return &InventoryMovementRepo{a: s} }
func (s *Store) Reports() *ReportRepo              { return &ReportRepo{a: s} }

// ── TxRunner ─────────────────────────────────────────────────────────────────

func (s *Store) inTx(ctx context.Context, fn func(a accessor) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(txAccessor{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Run ejecuta fn con repos de inventario atados a la transacción.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(ctx, func(a accessor) error {
		return fn(&InventoryMovementRepo{a: a}, &ProductRepo{a: a})
	})
}

// RunSale ejecuta fn con repos de inventario y ventas atados a la transacción.
func (s *Store) RunSale(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.inTx(ctx, func(a accessor) error {
		return fn(&InventoryMovementRepo{a: a}, &ProductRepo{a: a}, &SaleRepo{a: a})
	})
}

// RunCatalog ejecuta fn con repos de catálogo e inventario atados a la transacción.
func (s *Store) RunCatalog(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	return s.inTx(ctx, func(a accessor) error {
		return fn(&InventoryMovementRepo{a: a}, &ProductRepo{a: a}, &CategoryRepo{a: a})
	})
}
