package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// QueryUseCase lectura de ventas y generación de su PDF.
type QueryUseCase struct {
	saleRepo  repository.SaleRepository
	generator InvoicePDFGenerator
	store     StoreInfo
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository, generator InvoicePDFGenerator, store StoreInfo) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, generator: generator, store: store}
}

// GetSale devuelve la venta con sus líneas.
func (uc *QueryUseCase) GetSale(ctx context.Context, actor access.Actor, saleID string) (*dto.SaleResponse, error) {
	sale, items, err := uc.load(ctx, actor, saleID)
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(sale, items)
	return &out, nil
}

// DownloadInvoicePDF genera el PDF de la venta.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrSaleNotFound     si la venta no existe.
func (uc *QueryUseCase) DownloadInvoicePDF(ctx context.Context, actor access.Actor, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, items, err := uc.load(ctx, actor, saleID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, &InvoicePDF{
		Sale:     sale,
		Items:    items,
		Subtotal: Subtotal(items).StringFixed(MoneyScale),
		Store:    uc.store,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", sale.InvoiceNumber), nil
}

func (uc *QueryUseCase) load(ctx context.Context, actor access.Actor, saleID string) (*entity.Sale, []*entity.SaleItem, error) {
	if actor.EmployeeID == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener venta: %w", err)
	}
	if sale == nil {
		return nil, nil, domain.ErrSaleNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener ítems: %w", err)
	}
	return sale, items, nil
}

// Subtotal suma de los totales de línea.
func Subtotal(items []*entity.SaleItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	return sum
}

// ToSaleResponse convierte venta e ítems a DTO. items puede ser nil en listados.
func ToSaleResponse(s *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		Subtotal:       s.TotalAmount.Add(s.DiscountAmount),
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		TotalAmount:    s.TotalAmount,
		PaymentMethod:  s.PaymentMethod,
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		Notes:          s.Notes,
		EmployeeID:     s.EmployeeID,
		EmployeeName:   s.EmployeeName,
		CreatedAt:      s.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return out
}
