package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// MovementsUseCase consultas sobre el ledger y el stock (solo lectura).
type MovementsUseCase struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewMovementsUseCase construye el caso de uso.
func NewMovementsUseCase(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) *MovementsUseCase {
	return &MovementsUseCase{movRepo: movRepo, productRepo: productRepo}
}

// List devuelve el log paginado de movimientos, más recientes primero.
func (uc *MovementsUseCase) List(ctx context.Context, actor access.Actor, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	if err := actor.Require(access.ManageInventory); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.movRepo.List(ctx, repository.MovementFilter{
		Search:       in.Search,
		MovementType: in.MovementType,
		ProductID:    in.ProductID,
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// LowStock productos activos en o por debajo de su mínimo.
func (uc *MovementsUseCase) LowStock(ctx context.Context, actor access.Actor) ([]dto.ProductResponse, error) {
	if err := actor.Require(access.ManageInventory); err != nil {
		return nil, err
	}
	list, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar stock bajo: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Reconcile compara el stock de cada producto con el new_quantity de su último movimiento.
// Un producto sin movimientos solo cuadra si su stock es cero.
func (uc *MovementsUseCase) Reconcile(ctx context.Context, actor access.Actor) ([]dto.LedgerMismatch, error) {
	if err := actor.Require(access.ManageInventory); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	latest, err := uc.movRepo.LatestByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("últimos movimientos: %w", err)
	}
	out := make([]dto.LedgerMismatch, 0)
	for _, p := range products {
		m, ok := latest[p.ID]
		ledgerQty := 0
		if ok {
			ledgerQty = m.NewQuantity
		}
		if ledgerQty != p.Quantity {
			out = append(out, dto.LedgerMismatch{
				ProductID:      p.ID,
				SKU:            p.SKU,
				Quantity:       p.Quantity,
				LedgerQuantity: ledgerQty,
				HasLedgerEntry: ok,
			})
		}
	}
	return out, nil
}

// ToMovementResponse convierte un movimiento a DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		ProductSKU:       m.ProductSKU,
		EmployeeID:       m.EmployeeID,
		EmployeeName:     m.EmployeeName,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
	}
}

// ToProductResponse convierte un producto a DTO.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		NameAr:       p.NameAr,
		Description:  p.Description,
		Barcode:      p.Barcode,
		SKU:          p.SKU,
		Price:        p.Price,
		CostPrice:    p.CostPrice,
		ProfitMargin: domaininv.ProfitMargin(p.Price, p.CostPrice),
		Quantity:     p.Quantity,
		MinQuantity:  p.MinQuantity,
		LowStock:     p.IsLowStock(),
		ImageURL:     p.ImageURL,
		IsActive:     p.IsActive,
		CategoryID:   p.CategoryID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
