package inventory

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// Project calcula el nuevo stock cacheado al aplicar un movimiento sobre el
// stock actual (servicio de dominio, función pura).
//
// NuevoStock = StockActual + SignedEffect(movimiento). Si el resultado es
// negativo falla con InsufficientStockError; el proyector nunca permite stock
// negativo en silencio. Un caller que quiera "permitir negativo con warning"
// debe pre-chequear por su cuenta y asumir esa decisión.
func Project(currentStock int, m *entity.InventoryMovement) (int, error) {
	effect := m.SignedEffect()
	newStock := currentStock + effect
	if newStock < 0 {
		requested := effect
		if requested < 0 {
			requested = -requested
		}
		return 0, &domain.InsufficientStockError{
			ProductID: m.ProductID,
			Requested: requested,
			Available: currentStock,
		}
	}
	return newStock, nil
}
