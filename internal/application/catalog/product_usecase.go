package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const (
	searchMinLength = 2
	searchLimit     = 20
)

// ProductUseCase catálogo de productos. Todo cambio de stock pasa por el StockAccessor y queda en el ledger.
type ProductUseCase struct {
	tx          TxRunner
	productRepo repository.ProductRepository
	stock       *inventory.StockAccessor
	ledger      *inventory.LedgerRecorder
	notifier    ports.StockNotifier
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx TxRunner,
	productRepo repository.ProductRepository,
	stock *inventory.StockAccessor,
	ledger *inventory.LedgerRecorder,
	notifier ports.StockNotifier,
	log *logger.Logger,
) *ProductUseCase {
	if notifier == nil {
		notifier = ports.NoopStockNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		tx:          tx,
		productRepo: productRepo,
		stock:       stock,
		ledger:      ledger,
		notifier:    notifier,
		log:         log,
	}
}

// Create da de alta un producto. Si trae stock inicial se registra un movimiento in.
func (uc *ProductUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := actor.Require(access.ManageProducts); err != nil {
		return nil, err
	}
	if !in.Price.IsPositive() || in.CostPrice.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	minQty := entity.DefaultMinQuantity
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		minQty = *in.MinQuantity
	}
	p := &entity.Product{
		Name:        strings.TrimSpace(in.Name),
		NameAr:      strings.TrimSpace(in.NameAr),
		Description: in.Description,
		Barcode:     strings.TrimSpace(in.Barcode),
		SKU:         strings.TrimSpace(in.SKU),
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		MinQuantity: minQty,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if p.Name == "" || p.NameAr == "" || p.SKU == "" {
		return nil, domain.ErrInvalidInput
	}

	err := uc.tx.RunCatalog(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) error {
		categoryID, err := resolveCategory(ctx, categoryRepo, in.CategoryID, in.CategoryName)
		if err != nil {
			return err
		}
		p.CategoryID = categoryID
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if in.Quantity == 0 {
			return nil
		}
		change, err := uc.stock.Adjust(ctx, productRepo, p, in.Quantity, entity.ReasonInitialStock)
		if err != nil {
			return err
		}
		_, err = uc.ledger.Record(ctx, movRepo, actor.EmployeeID, entity.MovementTypeIn, change)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", p.ID).Str("sku", p.SKU).Str("employee_id", actor.EmployeeID).Msg("producto creado")
	if p.Quantity > 0 {
		uc.notify(ctx, "product_created", p)
	}
	out := inventory.ToProductResponse(p)
	return &out, nil
}

// Update aplica los campos presentes. Cada cambio relevante deja un movimiento en el ledger:
// cantidad como in/adjustment y precio, costo, nombre, estado o categoría como update.
func (uc *ProductUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := actor.Require(access.ManageProducts); err != nil {
		return nil, err
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if (in.Quantity != nil && *in.Quantity < 0) || (in.MinQuantity != nil && *in.MinQuantity < 0) {
		return nil, domain.ErrInvalidInput
	}

	var (
		product         *entity.Product
		quantityChanged bool
	)
	err := uc.tx.RunCatalog(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%s: %w", id, domain.ErrProductNotFound)
		}

		// ── Cantidad ─────────────────────────────────────────────────────────
		if in.Quantity != nil && *in.Quantity != product.Quantity {
			delta := *in.Quantity - product.Quantity
			change, err := uc.stock.Adjust(ctx, productRepo, product, delta, entity.ReasonStockAdjustment)
			if err != nil {
				return err
			}
			if _, err := uc.ledger.Record(ctx, movRepo, actor.EmployeeID, domaininv.MovementTypeForDelta(delta), change); err != nil {
				return err
			}
			quantityChanged = true
		}

		// ── Campos de catálogo ───────────────────────────────────────────────
		var reasons []string
		if in.Price != nil && !in.Price.Equal(product.Price) {
			reasons = append(reasons, changeReason("price_change", money(product.Price), money(*in.Price)))
			product.Price = *in.Price
		}
		if in.CostPrice != nil && !in.CostPrice.Equal(product.CostPrice) {
			reasons = append(reasons, changeReason("cost_change", money(product.CostPrice), money(*in.CostPrice)))
			product.CostPrice = *in.CostPrice
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) != product.Name {
			name := strings.TrimSpace(*in.Name)
			reasons = append(reasons, changeReason("name_change", product.Name, name))
			product.Name = name
		}
		if in.NameAr != nil && strings.TrimSpace(*in.NameAr) != product.NameAr {
			name := strings.TrimSpace(*in.NameAr)
			reasons = append(reasons, changeReason("name_change", product.NameAr, name))
			product.NameAr = name
		}
		if in.IsActive != nil && *in.IsActive != product.IsActive {
			reasons = append(reasons, changeReason("status_change", status(product.IsActive), status(*in.IsActive)))
			product.IsActive = *in.IsActive
		}
		if in.CategoryID != nil || in.CategoryName != nil {
			var byID, byName string
			if in.CategoryID != nil {
				byID = *in.CategoryID
			}
			if in.CategoryName != nil {
				byName = *in.CategoryName
			}
			categoryID, err := resolveCategory(ctx, categoryRepo, byID, byName)
			if err != nil {
				return err
			}
			if categoryID != product.CategoryID {
				reasons = append(reasons, changeReason("category_change", product.CategoryID, categoryID))
				product.CategoryID = categoryID
			}
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Barcode != nil {
			product.Barcode = strings.TrimSpace(*in.Barcode)
		}
		if in.MinQuantity != nil {
			product.MinQuantity = *in.MinQuantity
		}
		if in.ImageURL != nil {
			product.ImageURL = *in.ImageURL
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		for _, reason := range reasons {
			if _, err := uc.ledger.Record(ctx, movRepo, actor.EmployeeID, entity.MovementTypeUpdate, inventory.Unchanged(product, reason)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("employee_id", actor.EmployeeID).Msg("producto actualizado")
	if quantityChanged {
		uc.notify(ctx, "product_updated", product)
	}
	out := inventory.ToProductResponse(product)
	return &out, nil
}

// Delete desactiva el producto y lleva su stock a cero con un movimiento deleted.
// El historial de ventas y movimientos se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := actor.Require(access.ManageProducts); err != nil {
		return err
	}
	var product *entity.Product
	err := uc.tx.RunCatalog(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, _ repository.CategoryRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return fmt.Errorf("%s: %w", id, domain.ErrProductNotFound)
		}
		change, err := uc.stock.Adjust(ctx, productRepo, product, -product.Quantity, entity.ReasonProductDeleted)
		if err != nil {
			return err
		}
		if _, err := uc.ledger.Record(ctx, movRepo, actor.EmployeeID, entity.MovementTypeDeleted, change); err != nil {
			return err
		}
		product.IsActive = false
		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("employee_id", actor.EmployeeID).Msg("producto desactivado")
	uc.notify(ctx, "product_deleted", product)
	return nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.ProductResponse, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	out := inventory.ToProductResponse(p)
	return &out, nil
}

// List listado paginado con búsqueda y filtro por categoría.
func (uc *ProductUseCase) List(ctx context.Context, actor access.Actor, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, total, err := uc.productRepo.Search(ctx, repository.ProductFilter{
		Query:      in.Search,
		CategoryID: in.CategoryID,
		ActiveOnly: in.ActiveOnly,
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, inventory.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Search búsqueda rápida del punto de venta: mínimo 2 caracteres, 20 resultados, solo activos.
func (uc *ProductUseCase) Search(ctx context.Context, actor access.Actor, query string) ([]dto.ProductSearchResult, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < searchMinLength {
		return []dto.ProductSearchResult{}, nil
	}
	list, _, err := uc.productRepo.Search(ctx, repository.ProductFilter{Query: query, ActiveOnly: true}, searchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("buscar productos: %w", err)
	}
	out := make([]dto.ProductSearchResult, 0, len(list))
	for _, p := range list {
		out = append(out, toSearchResult(p))
	}
	return out, nil
}

// GetByBarcode lookup del lector de códigos; solo productos activos.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, actor access.Actor, barcode string) (*dto.ProductSearchResult, error) {
	if actor.EmployeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("buscar por código de barras: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	out := toSearchResult(p)
	return &out, nil
}

func (uc *ProductUseCase) notify(ctx context.Context, action string, p *entity.Product) {
	uc.notifier.NotifyStockChanged(ctx, dto.StockChangeEvent{
		Type:   "stock_update",
		Action: action,
		Products: []dto.StockChangeItem{{
			ProductID: p.ID,
			Quantity:  p.Quantity,
			LowStock:  p.IsLowStock(),
		}},
		At: time.Now().UTC(),
	})
}

// resolveCategory devuelve el ID de la categoría indicada por ID o por nombre.
// Un nombre inexistente crea la categoría; ambos vacíos significa sin categoría.
func resolveCategory(ctx context.Context, repo repository.CategoryRepository, id, name string) (string, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id != "" {
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("obtener categoría: %w", err)
		}
		if c == nil {
			return "", fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
		}
		return c.ID, nil
	}
	if name == "" {
		return "", nil
	}
	c, err := repo.GetByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("obtener categoría: %w", err)
	}
	if c != nil {
		return c.ID, nil
	}
	c = &entity.Category{Name: name, NameAr: name}
	if err := repo.Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func toSearchResult(p *entity.Product) dto.ProductSearchResult {
	return dto.ProductSearchResult{
		ID:       p.ID,
		Name:     p.Name,
		NameAr:   p.NameAr,
		Price:    p.Price,
		Quantity: p.Quantity,
		Barcode:  p.Barcode,
		SKU:      p.SKU,
		ImageURL: p.ImageURL,
	}
}

func changeReason(kind, from, to string) string {
	return fmt.Sprintf("%s: %s → %s", kind, from, to)
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func status(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
