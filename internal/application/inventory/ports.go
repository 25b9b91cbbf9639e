package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la entrada del ledger y el
// stock cacheado se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MetricsRecorder contadores de operaciones del motor de inventario.
// Implementación Prometheus en infrastructure/metrics; puede ser nil.
type MetricsRecorder interface {
	MovementRegistered(movementType entity.MovementType)
	MovementRejected(reason string)
}

// ReportGenerator genera el PDF del reporte de movimientos.
// Implementación Maroto en infrastructure/pdf.
type ReportGenerator interface {
	GenerateMovementsReport(ctx context.Context, movements []*entity.InventoryMovement) ([]byte, error)
}
