package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Límites de paginación del listado de movimientos.
const (
	DefaultQueryLimit = 20
	MaxQueryLimit     = 100
)

// MovementQueryUseCase listado de solo lectura del ledger, con filtros y
// paginación por cursor. Nunca muta.
type MovementQueryUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(movRepo repository.InventoryMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// MovementQuery filtros y cursor para GetMovements. Limit 0 toma el valor
// por defecto (20).
type MovementQuery struct {
	ProductID string
	Type      string
	ActorID   string
	StartDate *time.Time
	EndDate   *time.Time
	Cursor    string
	Limit     int
}

// MovementPage página de resultados. NextCursor es nil cuando la página vino
// incompleta (no hay más resultados).
type MovementPage struct {
	Items      []*entity.InventoryMovement
	NextCursor *string
}

// GetMovements devuelve una página de movimientos, más recientes primero
// (empates por fecha los desempata la secuencia). El cursor es el ID de la
// última entrada de la página anterior.
func (uc *MovementQueryUseCase) GetMovements(ctx context.Context, q MovementQuery) (*MovementPage, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultQueryLimit
	}
	if limit < 1 || limit > MaxQueryLimit {
		return nil, domain.ErrInvalidInput
	}
	var movType entity.MovementType
	if q.Type != "" {
		movType = entity.MovementType(q.Type)
		if !movType.IsValid() {
			return nil, domain.ErrInvalidInput
		}
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      movType,
		ActorID:   q.ActorID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Cursor:    q.Cursor,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	page := &MovementPage{Items: items}
	if len(items) == limit {
		last := items[len(items)-1].ID
		page.NextCursor = &last
	}
	return page, nil
}
