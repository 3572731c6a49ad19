package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
)

type capturingPDF struct {
	got *sales.InvoicePDF
}

func (c *capturingPDF) GenerateInvoicePDF(_ context.Context, in *sales.InvoicePDF) ([]byte, error) {
	c.got = in
	return []byte("%PDF-test"), nil
}

func TestQuery_GetSaleYPDF(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "Q", 5, "3.00")
	out, err := f.uc.ProcessSale(context.Background(), f.cashier, dto.ProcessSaleRequest{
		Items:          []dto.SaleLineRequest{line(p.ID, 2, "3.00")},
		DiscountAmount: decimal.RequireFromString("0.50"),
	})
	require.NoError(t, err)

	gen := &capturingPDF{}
	q := sales.NewQueryUseCase(f.store.Sales(), gen, sales.StoreInfo{Name: "Tienda", CurrencySymbol: "$"})

	sale, err := q.GetSale(context.Background(), f.cashier, out.SaleID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("6.00").Equal(sale.Subtotal))
	assert.True(t, decimal.RequireFromString("5.50").Equal(sale.TotalAmount))
	require.Len(t, sale.Items, 1)

	b, name, err := q.DownloadInvoicePDF(context.Background(), f.cashier, out.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-test", string(b))
	assert.Equal(t, "invoice_"+out.InvoiceNumber+".pdf", name)
	require.NotNil(t, gen.got)
	assert.Equal(t, "6.00", gen.got.Subtotal)
	assert.Equal(t, "Tienda", gen.got.Store.Name)
}

func TestQuery_VentaInexistenteYSinActor(t *testing.T) {
	f := newFixture(t, nil)
	q := sales.NewQueryUseCase(f.store.Sales(), &capturingPDF{}, sales.StoreInfo{})

	_, err := q.GetSale(context.Background(), f.cashier, "no-existe")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)

	_, _, err = q.DownloadInvoicePDF(context.Background(), access.Actor{}, "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
