package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// AnalyticsHandler consultas de agregación de ingresos sobre el ledger (protegido).
type AnalyticsHandler struct {
	revenue *appanalytics.RevenueUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(revenue *appanalytics.RevenueUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{revenue: revenue}
}

// GetRevenueSummary godoc
// @Summary      Ingresos por producto derivados del ledger
// @Description  Ventas menos anulaciones con precio registrado en el período.
//	Sin fechas, el período por defecto son los últimos 30 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        start_date  query  string  false  "Desde (RFC3339)"
// @Param        end_date    query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.RevenueSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue [get]
func (h *AnalyticsHandler) GetRevenueSummary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, usar RFC3339"})
	}
	endDate := time.Now()
	if end != nil {
		endDate = *end
	}
	startDate := endDate.AddDate(0, 0, -30)
	if start != nil {
		startDate = *start
	}
	summary, err := h.revenue.GetRevenueSummary(c.Context(), c.Query("product_id"), startDate, endDate)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(summary)
}
