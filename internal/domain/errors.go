package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado inconsistente para revertir")
)

// ItemError asocia un error de dominio con el código de artículo que lo causó,
// para que la capa HTTP pueda mostrar un mensaje específico por línea.
type ItemError struct {
	Err       error
	ItemCode  string
	Warehouse string
}

func (e *ItemError) Error() string {
	if e.Warehouse != "" {
		return fmt.Sprintf("%s: artículo %s en %s", e.Err.Error(), e.ItemCode, e.Warehouse)
	}
	return fmt.Sprintf("%s: artículo %s", e.Err.Error(), e.ItemCode)
}

// Unwrap permite errors.Is contra los sentinelas (ErrNotFound, ErrInsufficientStock, ...).
func (e *ItemError) Unwrap() error { return e.Err }

// NewItemError construye un ItemError sobre un sentinel de dominio.
func NewItemError(err error, itemCode, warehouse string) *ItemError {
	return &ItemError{Err: err, ItemCode: itemCode, Warehouse: warehouse}
}
