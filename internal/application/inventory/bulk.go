package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// BulkMovementUseCase aplica una secuencia ordenada de movimientos como una
// operación lógica. Cada movimiento va en su PROPIA transacción: ante el
// primer fallo se detiene el procesamiento y los movimientos ya confirmados
// no se revierten. El caller debe tratar un fallo de lote como "un prefijo
// del lote quedó confirmado" y reconciliar consultando el ledger.
type BulkMovementUseCase struct {
	register *RegisterMovementUseCase
}

// NewBulkMovementUseCase construye el orquestador de lotes.
func NewBulkMovementUseCase(register *RegisterMovementUseCase) *BulkMovementUseCase {
	return &BulkMovementUseCase{register: register}
}

// BulkMovementItem un movimiento dentro del lote; el actor es compartido.
type BulkMovementItem struct {
	ProductID      string
	Type           entity.MovementType
	Qty            int
	UnitPriceCents *int64
	Note           string
}

// RegisterBulkMovements procesa el lote en orden. En éxito total devuelve las
// entradas creadas; ante un fallo devuelve BulkMovementError con el índice
// que falló y cuántos se confirmaron antes (las entradas del prefijo no se
// devuelven en la respuesta).
func (uc *BulkMovementUseCase) RegisterBulkMovements(
	ctx context.Context,
	items []BulkMovementItem,
	actorID string,
	actorRole entity.Role,
) ([]*entity.InventoryMovement, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	created := make([]*entity.InventoryMovement, 0, len(items))
	for i, item := range items {
		mov, err := uc.register.RegisterMovement(ctx, MovementInput{
			ProductID:      item.ProductID,
			Type:           item.Type,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
			Note:           item.Note,
			ActorID:        actorID,
			ActorRole:      actorRole,
		})
		if err != nil {
			return nil, &domain.BulkMovementError{Index: i, Succeeded: len(created), Err: err}
		}
		created = append(created, mov)
	}
	return created, nil
}
