package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// AdjustStockUseCase ajuste manual de stock (recepción de mercancía, merma, conteo físico).
type AdjustStockUseCase struct {
	tx       TxRunner
	stock    *StockAccessor
	ledger   *LedgerRecorder
	notifier ports.StockNotifier
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(tx TxRunner, stock *StockAccessor, ledger *LedgerRecorder, notifier ports.StockNotifier, log *logger.Logger) *AdjustStockUseCase {
	if notifier == nil {
		notifier = ports.NoopStockNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{tx: tx, stock: stock, ledger: ledger, notifier: notifier, log: log}
}

// Adjust aplica el delta y registra un movimiento in (delta > 0) o adjustment (delta < 0).
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, actor access.Actor, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if err := actor.Require(access.ManageInventory); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Delta == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		out     dto.AdjustStockResponse
		product *entity.Product
	)
	err := uc.tx.Run(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return fmt.Errorf("%s: %w", in.ProductID, domain.ErrProductNotFound)
		}
		change, err := uc.stock.Adjust(ctx, productRepo, product, in.Delta, reason)
		if err != nil {
			return err
		}
		m, err := uc.ledger.Record(ctx, movRepo, actor.EmployeeID, domaininv.MovementTypeForDelta(in.Delta), change)
		if err != nil {
			return err
		}
		out = dto.AdjustStockResponse{
			ProductID:        product.ID,
			PreviousQuantity: change.Previous,
			NewQuantity:      change.New,
			MovementID:       m.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", out.ProductID).
		Int("previous_quantity", out.PreviousQuantity).
		Int("new_quantity", out.NewQuantity).
		Str("employee_id", actor.EmployeeID).
		Msg("ajuste de stock registrado")

	uc.notifier.NotifyStockChanged(ctx, dto.StockChangeEvent{
		Type:   "stock_update",
		Action: "stock_adjusted",
		Products: []dto.StockChangeItem{{
			ProductID: product.ID,
			Quantity:  product.Quantity,
			LowStock:  product.IsLowStock(),
		}},
		At: time.Now().UTC(),
	})
	return &out, nil
}
