package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// MoneyScale decimales con los que se persisten los importes.
const MoneyScale = 2

// ProcessSaleUseCase registra una venta completa como una sola unidad atómica:
// descuenta stock línea por línea, deja un movimiento out por línea y persiste venta e ítems.
type ProcessSaleUseCase struct {
	tx        TxRunner
	employees repository.EmployeeRepository
	stock     *inventory.StockAccessor
	ledger    *inventory.LedgerRecorder
	numbers   *InvoiceNumberGenerator
	notifier  ports.StockNotifier
	log       *logger.Logger
	now       func() time.Time
}

// NewProcessSaleUseCase construye el caso de uso inyectando todas sus dependencias.
func NewProcessSaleUseCase(
	tx TxRunner,
	employees repository.EmployeeRepository,
	stock *inventory.StockAccessor,
	ledger *inventory.LedgerRecorder,
	numbers *InvoiceNumberGenerator,
	notifier ports.StockNotifier,
	log *logger.Logger,
) *ProcessSaleUseCase {
	if notifier == nil {
		notifier = ports.NoopStockNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProcessSaleUseCase{
		tx:        tx,
		employees: employees,
		stock:     stock,
		ledger:    ledger,
		numbers:   numbers,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// ProcessSale valida el carrito y lo confirma.
//
// Retorna:
//   - domain.ErrForbidden         si el rol no puede vender o el empleado está desactivado (antes de tocar nada).
//   - domain.ErrEmployeeNotFound  si el empleado del token ya no existe.
//   - domain.ErrEmptyCart         si no hay líneas.
//   - domain.ErrInvalidQuantity   si alguna cantidad es <= 0.
//   - domain.ErrProductNotFound   si un producto no existe o está inactivo.
//   - *domain.InsufficientStockError si una línea supera el stock que dejaron las anteriores.
//   - domain.ErrPersistence       si falla la escritura (incluye colisión de número de factura).
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, actor access.Actor, in dto.ProcessSaleRequest) (*dto.ProcessSaleResponse, error) {
	// ── 1. Permisos y validación sin escribir en la BD ────────────────────────
	if err := actor.Require(access.MakeSales); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for i, line := range in.Items {
		if line.ProductID == "" {
			return nil, fmt.Errorf("línea %d sin producto: %w", i+1, domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("línea %d: %w", i+1, domain.ErrInvalidQuantity)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("línea %d con precio negativo: %w", i+1, domain.ErrInvalidInput)
		}
	}
	if in.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("descuento negativo: %w", domain.ErrInvalidInput)
	}
	// El token sigue siendo válido hasta expirar; el estado del empleado se lee en cada venta.
	emp, err := uc.employees.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("leer empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if !emp.IsActive {
		return nil, fmt.Errorf("empleado %s desactivado: %w", emp.Username, domain.ErrForbidden)
	}

	number, err := uc.numbers.Next()
	if err != nil {
		return nil, err
	}
	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCash
	}
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		InvoiceNumber:  number,
		TaxAmount:      decimal.Zero,
		DiscountAmount: in.DiscountAmount,
		PaymentMethod:  paymentMethod,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		Notes:          in.Notes,
		EmployeeID:     actor.EmployeeID,
		CreatedAt:      uc.now().UTC(),
	}

	// ── 2. Transacción: stock, ledger, venta e ítems ──────────────────────────
	var touched map[string]dto.StockChangeItem
	err = uc.tx.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		touched = make(map[string]dto.StockChangeItem, len(in.Items))
		items := make([]*entity.SaleItem, 0, len(in.Items))
		subtotal := decimal.Zero

		for _, line := range in.Items {
			// Se relee en cada línea: dos líneas del mismo producto ven el stock ya descontado.
			product, err := productRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return fmt.Errorf("%s: %w", line.ProductID, domain.ErrProductNotFound)
			}
			if line.Quantity > product.Quantity {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Name:      product.DisplayName(),
					Requested: line.Quantity,
					Available: product.Quantity,
				}
			}
			change, err := uc.stock.Adjust(ctx, productRepo, product, -line.Quantity, entity.ReasonSale)
			if err != nil {
				return err
			}
			if _, err := uc.ledger.Record(ctx, movRepo, actor.EmployeeID, entity.MovementTypeOut, change); err != nil {
				return err
			}

			lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(MoneyScale)
			subtotal = subtotal.Add(lineTotal)
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.DisplayName(),
				ProductSKU:  product.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  lineTotal,
			})
			touched[product.ID] = dto.StockChangeItem{
				ProductID: product.ID,
				Quantity:  product.Quantity,
				LowStock:  product.IsLowStock(),
			}
		}

		// El descuento no se limita al subtotal: el total puede quedar negativo.
		sale.TotalAmount = subtotal.Sub(in.DiscountAmount).Round(MoneyScale)
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// ── 3. Efectos posteriores al commit ──────────────────────────────────────
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("invoice_number", sale.InvoiceNumber).
		Str("employee_id", actor.EmployeeID).
		Str("total_amount", sale.TotalAmount.StringFixed(MoneyScale)).
		Int("lines", len(in.Items)).
		Msg("venta registrada")

	products := make([]dto.StockChangeItem, 0, len(touched))
	for _, it := range touched {
		products = append(products, it)
	}
	uc.notifier.NotifyStockChanged(ctx, dto.StockChangeEvent{
		Type:     "stock_update",
		Action:   "sale_completed",
		Products: products,
		At:       sale.CreatedAt,
	})

	return &dto.ProcessSaleResponse{
		Success:       true,
		SaleID:        sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		TotalAmount:   sale.TotalAmount,
	}, nil
}
