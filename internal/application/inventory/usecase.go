package inventory

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// maxConflictRetries intentos ante fallos de serialización antes de rendirse.
const maxConflictRetries = 3

// RegisterMovementUseCase registra movimientos del ledger de forma
// transaccional: valida el comando, bloquea la fila del producto
// (SELECT FOR UPDATE), proyecta el nuevo stock y persiste entrada + stock
// cacheado en la misma transacción. Estados por invocación:
// Received → ProductLookup → RoleCheck → Project → Persist → Committed,
// con salida a Rejected en cada flecha.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	metrics  MetricsRecorder // puede ser nil
}

// NewRegisterMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, metrics MetricsRecorder) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, metrics: metrics}
}

// MovementInput comando validado para registrar un movimiento. ActorID y
// ActorRole los aporta el caller desde el token, nunca desde el body.
type MovementInput struct {
	ProductID      string
	Type           entity.MovementType
	Qty            int
	UnitPriceCents *int64
	Note           string
	ActorID        string
	ActorRole      entity.Role
}

// RegisterMovement ejecuta el comando y devuelve la entrada persistida.
// Ante un conflicto de escritura concurrente (ErrConflict del TxRunner)
// reintenta la transacción completa hasta maxConflictRetries veces.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	// Rechazos de forma: antes de tocar la BD
	if err := validateMovementInput(input); err != nil {
		uc.rejected("invalid_input")
		return nil, err
	}

	var created *entity.InventoryMovement
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		created, err = uc.registerOnce(ctx, input)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		uc.rejected(rejectionReason(err))
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.MovementRegistered(created.Type)
	}
	return created, nil
}

// registerOnce un intento transaccional completo: lookup (con bloqueo de
// fila), autorización, proyección y persistencia atómica.
func (uc *RegisterMovementUseCase) registerOnce(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	var created *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// ProductLookup: dentro de la tx para que la lectura del stock sea
		// consistente con la escritura posterior
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsArchived {
			return domain.ErrNotFound
		}

		// RoleCheck: solo OWNER registra ajustes por esta vía
		if !input.ActorRole.CanCreateMovement(input.Type) {
			return domain.ErrForbidden
		}

		now := time.Now()
		mov := &entity.InventoryMovement{
			ProductID:      input.ProductID,
			Type:           input.Type,
			Qty:            input.Qty,
			UnitPriceCents: input.UnitPriceCents,
			Note:           input.Note,
			ActorID:        input.ActorID,
			CreatedAt:      now,
		}

		// Project: el proyector decide si el nuevo stock es admisible
		newStock, err := inventory.Project(product.StockCached, mov)
		if err != nil {
			return err
		}

		// Persist: entrada del ledger + stock cacheado, juntos o ninguno
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStockCached(ctx, input.ProductID, newStock); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// validateMovementInput rechaza comandos malformados sin acceder a la BD.
// Para ADJUSTMENT el delta cero NO se rechaza aquí: eso lo hace el borde HTTP.
func validateMovementInput(input MovementInput) error {
	if input.ProductID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if !input.Type.IsValid() {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.MovementTypeAdjustment {
		if input.Qty < entity.AdjustmentQtyMin || input.Qty > entity.AdjustmentQtyMax {
			return domain.ErrInvalidInput
		}
	} else if input.Qty <= 0 {
		return domain.ErrInvalidInput
	}
	if input.UnitPriceCents != nil && *input.UnitPriceCents < 0 {
		return domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(input.Note) > entity.MaxNoteLength {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *RegisterMovementUseCase) rejected(reason string) {
	if uc.metrics != nil {
		uc.metrics.MovementRejected(reason)
	}
}

// rejectionReason etiqueta del rechazo para métricas.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	}
	return "error"
}
