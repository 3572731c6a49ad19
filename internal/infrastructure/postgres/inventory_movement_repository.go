package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo ledger sobre PostgreSQL. Append-only: no hay UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create agrega un movimiento. seq lo asigna la base y fija el orden del ledger.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, product_id, employee_id, movement_type, quantity,
			previous_quantity, new_quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ProductID, m.EmployeeID, m.MovementType, m.Quantity,
		m.PreviousQuantity, m.NewQuantity, m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert inventory movement: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List movimientos más recientes primero, con nombre de producto y empleado.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, int, error) {
	var conds []string
	var args []any
	if f.MovementType != "" {
		args = append(args, f.MovementType)
		conds = append(conds, fmt.Sprintf("m.movement_type = $%d", len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("m.product_id::text = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.name_ar ILIKE $%d OR p.sku ILIKE $%d OR e.full_name ILIKE $%d)", n, n, n, n))
	}
	from := ` FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		JOIN employees e ON e.id = m.employee_id`
	if len(conds) > 0 {
		from += " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT m.id, m.product_id, m.employee_id, m.movement_type, m.quantity, m.previous_quantity,
		m.new_quantity, m.reason, m.created_at, COALESCE(NULLIF(p.name_ar, ''), p.name), p.sku, e.full_name` +
		from + ` ORDER BY m.seq DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// LatestByProduct último movimiento de cada producto.
func (r *InventoryMovementRepo) LatestByProduct(ctx context.Context) (map[string]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT ON (product_id) id, product_id, employee_id, movement_type, quantity,
			previous_quantity, new_quantity, reason, created_at
		FROM inventory_movements
		ORDER BY product_id, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("latest movements: %w", err)
	}
	defer rows.Close()
	out := map[string]*entity.InventoryMovement{}
	for rows.Next() {
		m, err := scanMovement(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out[m.ProductID] = m
	}
	return out, rows.Err()
}

func scanMovement(rows pgx.Rows, joined bool) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	dest := []any{&m.ID, &m.ProductID, &m.EmployeeID, &m.MovementType, &m.Quantity,
		&m.PreviousQuantity, &m.NewQuantity, &m.Reason, &m.CreatedAt}
	if joined {
		dest = append(dest, &m.ProductName, &m.ProductSKU, &m.EmployeeName)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}
