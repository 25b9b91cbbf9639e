package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el ledger para agregación de
// ingresos. Usa el pool directo: nunca participa de transacciones de escritura.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenueByProduct agrega unidades vendidas netas e ingresos brutos por
// producto en el período, derivados del ledger: ventas suman, anulaciones
// restan; solo cuentan entradas con precio registrado.
// Los centavos se llevan a unidades de moneda en el SELECT (::numeric / 100).
func (r *AnalyticsRepo) GetRevenueByProduct(
	ctx context.Context,
	productID string,
	startDate, endDate time.Time,
) ([]repository.ProductRevenueResult, error) {
	query := `
	SELECT
	    m.product_id::TEXT                                                            AS product_id,
	    p.name                                                                        AS product_name,
	    COALESCE(SUM(CASE WHEN m.type = 'SALE_OFFLINE' THEN m.qty ELSE -m.qty END), 0) AS units_sold,
	    COALESCE(SUM(
	        CASE WHEN m.type = 'SALE_OFFLINE'
	             THEN  m.qty::BIGINT * m.unit_price_cents
	             ELSE -(m.qty::BIGINT * m.unit_price_cents)
	        END
	    ), 0)::NUMERIC / 100                                                          AS gross_revenue
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id
	WHERE m.type IN ('SALE_OFFLINE', 'CANCEL_SALE')
	  AND m.unit_price_cents IS NOT NULL
	  AND m.created_at BETWEEN $1 AND $2`
	args := []any{startDate, endDate}
	if productID != "" {
		query += ` AND m.product_id = $3`
		args = append(args, productID)
	}
	query += `
	GROUP BY m.product_id, p.name
	ORDER BY gross_revenue DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRevenueByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductRevenueResult
	for rows.Next() {
		var row repository.ProductRevenueResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.UnitsSold,
			&row.GrossRevenue,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetRevenueByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
