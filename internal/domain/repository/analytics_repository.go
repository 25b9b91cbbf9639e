package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRevenueResult ingresos y unidades vendidas de un producto en el
// período, derivados del ledger (ventas menos anulaciones con precio).
type ProductRevenueResult struct {
	ProductID    string
	ProductName  string
	UnitsSold    int64           // qty vendidas netas (ventas - anulaciones)
	GrossRevenue decimal.Decimal // en unidades de moneda (centavos / 100)
}

// AnalyticsRepository consultas de solo lectura sobre el ledger para
// agregación de ingresos. Nunca muta.
type AnalyticsRepository interface {
	GetRevenueByProduct(ctx context.Context, productID string, startDate, endDate time.Time) ([]ProductRevenueResult, error)
}
