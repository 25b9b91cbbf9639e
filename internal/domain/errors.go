package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla un rechazo por stock insuficiente: cuánto se
// pidió y cuánto hay disponible, para que la capa HTTP pueda armar un mensaje
// preciso. errors.Is(err, ErrInsufficientStock) sigue funcionando.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// BulkMovementError indica en qué posición del lote falló el procesamiento y
// cuántos movimientos alcanzaron a confirmarse antes. Los movimientos ya
// confirmados NO se revierten: el caller debe reconciliar consultando el
// ledger (semántica de prefijo documentada en el contrato del orquestador).
type BulkMovementError struct {
	Index     int // posición (base 0) del movimiento que falló
	Succeeded int // movimientos confirmados antes del fallo
	Err       error
}

func (e *BulkMovementError) Error() string {
	return fmt.Sprintf("movimiento %d del lote falló (%d confirmados): %v", e.Index, e.Succeeded, e.Err)
}

func (e *BulkMovementError) Unwrap() error {
	return e.Err
}
