package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/inventory/movements.
// Qty es magnitud positiva salvo para ADJUSTMENT, donde es delta con signo.
type CreateMovementRequest struct {
	ProductID      string `json:"product_id"`
	Type           string `json:"type"`
	Qty            int    `json:"qty"`
	UnitPriceCents *int64 `json:"unit_price_cents,omitempty"`
	Note           string `json:"note,omitempty"`
}

// BulkMovementRequest body para POST /api/inventory/movements/bulk.
// Los movimientos se procesan en orden, cada uno en su propia transacción.
type BulkMovementRequest struct {
	Movements []CreateMovementRequest `json:"movements"`
}

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
type CreateAdjustmentRequest struct {
	ProductID     string `json:"product_id"`
	AdjustmentQty int    `json:"adjustment_qty"`
	Reason        string `json:"reason"`
}

// MovementResponse representación de una entrada del ledger en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Qty            int       `json:"qty"`
	UnitPriceCents *int64    `json:"unit_price_cents,omitempty"`
	Note           string    `json:"note,omitempty"`
	ActorID        string    `json:"actor_id"`
	CreatedAt      time.Time `json:"created_at"` // ISO-8601 en el wire
}

// MovementListResponse página de movimientos. NextCursor es null cuando la
// página vino incompleta (fin del resultado).
type MovementListResponse struct {
	Items      []MovementResponse `json:"items"`
	NextCursor *string            `json:"next_cursor"`
}

// BulkMovementResponse respuesta de un lote procesado completo.
type BulkMovementResponse struct {
	Movements []MovementResponse `json:"movements"`
	Count     int                `json:"count"`
}

// BulkErrorResponse error de un lote: qué índice falló y cuántos movimientos
// quedaron confirmados antes (el prefijo NO se revierte).
type BulkErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	FailedAtIndex int    `json:"failed_at_index"`
	Succeeded     int    `json:"succeeded"`
}

// MovementToResponse convierte la entidad al DTO de respuesta.
func MovementToResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Qty:            m.Qty,
		UnitPriceCents: m.UnitPriceCents,
		Note:           m.Note,
		ActorID:        m.ActorID,
		CreatedAt:      m.CreatedAt,
	}
}

// MovementsToResponse convierte una lista de entidades a DTOs.
func MovementsToResponse(list []*entity.InventoryMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementToResponse(m))
	}
	return out
}
