package sales_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/sales"
)

func TestInvoiceNumber_Formato(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.FixedZone("COT", -5*3600)) }
	gen := sales.NewInvoiceNumberGeneratorWith(now, bytes.NewReader([]byte{0xab, 0x01}))

	n, err := gen.Next()
	require.NoError(t, err)
	// El reloj se convierte a UTC.
	assert.Equal(t, "INV-20240305190709-AB01", n)
}

func TestInvoiceNumber_SistemaCumplePatron(t *testing.T) {
	gen := sales.NewInvoiceNumberGenerator()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		n, err := gen.Next()
		require.NoError(t, err)
		assert.Regexp(t, `^INV-\d{14}-[0-9A-F]{4}$`, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("sin entropía") }

func TestInvoiceNumber_ErrorDeEntropia(t *testing.T) {
	gen := sales.NewInvoiceNumberGeneratorWith(time.Now, failingReader{})
	_, err := gen.Next()
	assert.Error(t, err)
}
