package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos de inventario y ventas.
// Cualquier error devuelto por fn deshace todas las escrituras.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// InvoicePDF datos que necesita el generador para dibujar la factura.
type InvoicePDF struct {
	Sale     *entity.Sale
	Items    []*entity.SaleItem
	Subtotal string
	Store    StoreInfo
}

// StoreInfo datos del encabezado de la factura.
type StoreInfo struct {
	Name           string
	Address        string
	Phone          string
	CurrencySymbol string
}

// InvoicePDFGenerator puerto de salida para la representación PDF de una venta.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *InvoicePDF) ([]byte, error)
}
