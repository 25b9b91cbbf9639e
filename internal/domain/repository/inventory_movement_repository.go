package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos del ledger.
// Cursor es el ID de la última entrada de la página anterior; la página
// siguiente son las entradas estrictamente más antiguas que esa (orden
// created_at DESC, seq DESC).
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	ActorID   string
	StartDate *time.Time
	EndDate   *time.Time
	Cursor    string
	Limit     int
}

// InventoryMovementRepository define el puerto de persistencia del ledger.
// El ledger es append-only: no existe Update ni Delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
