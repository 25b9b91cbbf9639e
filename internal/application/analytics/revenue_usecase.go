package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RevenueUseCase agrega ingresos por producto a partir del ledger: ventas
// menos anulaciones con precio registrado en el período. Solo lectura.
type RevenueUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewRevenueUseCase construye el caso de uso de ingresos.
func NewRevenueUseCase(analyticsRepo repository.AnalyticsRepository) *RevenueUseCase {
	return &RevenueUseCase{analyticsRepo: analyticsRepo}
}

// GetRevenueSummary devuelve los ingresos por producto del período.
// productID vacío = todos los productos.
func (uc *RevenueUseCase) GetRevenueSummary(
	ctx context.Context,
	productID string,
	startDate, endDate time.Time,
) (*dto.RevenueSummaryResponse, error) {
	if endDate.Before(startDate) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.analyticsRepo.GetRevenueByProduct(ctx, productID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	products := make([]dto.ProductRevenueDTO, 0, len(rows))
	for _, r := range rows {
		products = append(products, dto.ProductRevenueDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			UnitsSold:    r.UnitsSold,
			GrossRevenue: r.GrossRevenue,
		})
	}
	return &dto.RevenueSummaryResponse{
		StartDate: startDate.Format(time.RFC3339),
		EndDate:   endDate.Format(time.RFC3339),
		Products:  products,
	}, nil
}
