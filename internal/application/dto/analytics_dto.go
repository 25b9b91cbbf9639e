package dto

import "github.com/shopspring/decimal"

// ProductRevenueDTO ingresos de un producto en el período consultado.
type ProductRevenueDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	UnitsSold    int64           `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"` // unidades de moneda
}

// RevenueSummaryResponse respuesta de GET /api/analytics/revenue.
type RevenueSummaryResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Products  []ProductRevenueDTO `json:"products"`
}
