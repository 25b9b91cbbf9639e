package inventory

import (
	"context"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockAdjustmentUseCase punto de entrada canónico para correcciones
// manuales de stock. Asume que el caller ya verificó que el actor es OWNER
// (el chequeo de rol del registro queda redundante pero inofensivo).
type StockAdjustmentUseCase struct {
	register *RegisterMovementUseCase
}

// NewStockAdjustmentUseCase construye el caso de uso de ajustes.
func NewStockAdjustmentUseCase(register *RegisterMovementUseCase) *StockAdjustmentUseCase {
	return &StockAdjustmentUseCase{register: register}
}

// AdjustStock registra un ajuste manual: delta firmado en [-1000, 1000] y
// justificación obligatoria de 1 a 500 caracteres. Comparte la taxonomía de
// errores del registro de movimientos (NotFound, InsufficientStock).
func (uc *StockAdjustmentUseCase) AdjustStock(
	ctx context.Context,
	productID string,
	adjustmentQty int,
	reason string,
	actorID string,
) (*entity.InventoryMovement, error) {
	if reason == "" || utf8.RuneCountInString(reason) > entity.MaxNoteLength {
		return nil, domain.ErrInvalidInput
	}
	if adjustmentQty < entity.AdjustmentQtyMin || adjustmentQty > entity.AdjustmentQtyMax {
		return nil, domain.ErrInvalidInput
	}
	return uc.register.RegisterMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeAdjustment,
		Qty:       adjustmentQty,
		Note:      reason,
		ActorID:   actorID,
		ActorRole: entity.RoleOwner,
	})
}
