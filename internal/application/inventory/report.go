package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// reportMaxEntries tope de filas del reporte PDF.
const reportMaxEntries = 500

// MovementReportUseCase genera el reporte PDF de movimientos para un
// conjunto de filtros (listado plano, más recientes primero).
type MovementReportUseCase struct {
	movRepo   repository.InventoryMovementRepository
	generator ReportGenerator
}

// NewMovementReportUseCase construye el caso de uso del reporte.
func NewMovementReportUseCase(movRepo repository.InventoryMovementRepository, generator ReportGenerator) *MovementReportUseCase {
	return &MovementReportUseCase{movRepo: movRepo, generator: generator}
}

// GenerateReport lista hasta reportMaxEntries movimientos según los filtros
// y devuelve los bytes del PDF.
func (uc *MovementReportUseCase) GenerateReport(
	ctx context.Context,
	productID string,
	startDate, endDate *time.Time,
) ([]byte, error) {
	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: productID,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     reportMaxEntries,
	})
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateMovementsReport(ctx, movements)
}
