package sales

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

// InvoiceNumberGenerator genera números INV-<yyyymmddhhmmss UTC>-<4 hex>.
// La unicidad es probabilística; la restricción UNIQUE de la tabla decide en el INSERT.
type InvoiceNumberGenerator struct {
	now     func() time.Time
	entropy io.Reader
}

// NewInvoiceNumberGenerator construye el generador con reloj y aleatoriedad del sistema.
func NewInvoiceNumberGenerator() *InvoiceNumberGenerator {
	return NewInvoiceNumberGeneratorWith(time.Now, rand.Reader)
}

// NewInvoiceNumberGeneratorWith permite fijar reloj y fuente aleatoria.
func NewInvoiceNumberGeneratorWith(now func() time.Time, entropy io.Reader) *InvoiceNumberGenerator {
	return &InvoiceNumberGenerator{now: now, entropy: entropy}
}

// Next devuelve el siguiente número de factura.
func (g *InvoiceNumberGenerator) Next() (string, error) {
	var b [2]byte
	if _, err := io.ReadFull(g.entropy, b[:]); err != nil {
		return "", fmt.Errorf("número de factura: %w", err)
	}
	return fmt.Sprintf("INV-%s-%s",
		g.now().UTC().Format("20060102150405"),
		strings.ToUpper(hex.EncodeToString(b[:])),
	), nil
}
