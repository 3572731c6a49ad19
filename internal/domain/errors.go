package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrEmployeeNotFound  = errors.New("empleado no encontrado")
	ErrSaleNotFound      = errors.New("venta no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrSelfDelete        = errors.New("no puede desactivar su propia cuenta")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeStock     = errors.New("el stock no puede quedar negativo")
	ErrPersistence       = errors.New("error de persistencia")
)

// Tipos estables de error expuestos a los clientes.
const (
	KindValidation        = "VALIDATION"
	KindNotFound          = "NOT_FOUND"
	KindInsufficientStock = "INSUFFICIENT_STOCK"
	KindForbidden         = "FORBIDDEN"
	KindUnauthorized      = "UNAUTHORIZED"
	KindConflict          = "CONFLICT"
	KindPersistence       = "PERSISTENCE"
)

// InsufficientStockError indica qué línea no tiene stock suficiente.
// Available es el stock ya descontado por las líneas anteriores del mismo carrito.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NegativeStockError lo devuelve el ajuste de stock cuando current+delta < 0.
type NegativeStockError struct {
	ProductID string
	Current   int
	Delta     int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("ajuste inválido para %s: %d%+d < 0", e.ProductID, e.Current, e.Delta)
}

func (e *NegativeStockError) Is(target error) bool { return target == ErrNegativeStock }

// KindOf clasifica cualquier error en uno de los tipos estables.
// Lo que no es un error de dominio conocido se reporta como PERSISTENCE.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrNegativeStock):
		return KindInsufficientStock
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrEmployeeNotFound), errors.Is(err, ErrSaleNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSelfDelete):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	default:
		return KindPersistence
	}
}
