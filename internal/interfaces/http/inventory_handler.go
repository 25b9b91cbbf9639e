package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario (protegido).
type InventoryHandler struct {
	register   *appinventory.RegisterMovementUseCase
	bulk       *appinventory.BulkMovementUseCase
	adjustment *appinventory.StockAdjustmentUseCase
	query      *appinventory.MovementQueryUseCase
	report     *appinventory.MovementReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *appinventory.RegisterMovementUseCase,
	bulk *appinventory.BulkMovementUseCase,
	adjustment *appinventory.StockAdjustmentUseCase,
	query *appinventory.MovementQueryUseCase,
	report *appinventory.MovementReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		register:   register,
		bulk:       bulk,
		adjustment: adjustment,
		query:      query,
		report:     report,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, type, qty, unit_price_cents (opcional), note (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.register.RegisterMovement(c.Context(), appinventory.MovementInput{
		ProductID:      in.ProductID,
		Type:           entity.MovementType(in.Type),
		Qty:            in.Qty,
		UnitPriceCents: in.UnitPriceCents,
		Note:           in.Note,
		ActorID:        actorID,
		ActorRole:      role,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToResponse(mov))
}

// RegisterBulkMovements godoc
// @Summary      Registrar lote de movimientos (éxito por prefijo)
// @Description  Procesa los movimientos en orden, cada uno en su propia
//	transacción. Ante el primer fallo se detiene: lo ya confirmado NO se
//	revierte y la respuesta indica el índice fallido y cuántos entraron.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkMovementRequest  true  "movements"
// @Success      201   {object}  dto.BulkMovementResponse
// @Failure      400   {object}  dto.BulkErrorResponse
// @Failure      409   {object}  dto.BulkErrorResponse
// @Router       /api/inventory/movements/bulk [post]
func (h *InventoryHandler) RegisterBulkMovements(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BulkMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]appinventory.BulkMovementItem, 0, len(in.Movements))
	for _, m := range in.Movements {
		items = append(items, appinventory.BulkMovementItem{
			ProductID:      m.ProductID,
			Type:           entity.MovementType(m.Type),
			Qty:            m.Qty,
			UnitPriceCents: m.UnitPriceCents,
			Note:           m.Note,
		})
	}
	created, err := h.bulk.RegisterBulkMovements(c.Context(), items, actorID, role)
	if err != nil {
		var bulkErr *domain.BulkMovementError
		if errors.As(err, &bulkErr) {
			return c.Status(statusForError(bulkErr.Err)).JSON(dto.BulkErrorResponse{
				Code:          codeForError(bulkErr.Err),
				Message:       bulkErr.Error(),
				FailedAtIndex: bulkErr.Index,
				Succeeded:     bulkErr.Succeeded,
			})
		}
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BulkMovementResponse{
		Movements: dto.MovementsToResponse(created),
		Count:     len(created),
	})
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste manual de stock (solo OWNER)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, adjustment_qty en [-1000,1000] distinto de cero, reason (1-500)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El delta cero se rechaza en este borde; el core no lo rechaza por sí mismo
	if in.AdjustmentQty == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "adjustment_qty no puede ser cero"})
	}
	mov, err := h.adjustment.AdjustStock(c.Context(), in.ProductID, in.AdjustmentQty, in.Reason, actorID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos del ledger (paginación por cursor)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo de movimiento"
// @Param        actor_id    query  string  false  "Filtrar por actor"
// @Param        start_date  query  string  false  "Desde (RFC3339)"
// @Param        end_date    query  string  false  "Hasta (RFC3339)"
// @Param        cursor      query  string  false  "ID de la última entrada de la página anterior"
// @Param        limit       query  int     false  "1-100, por defecto 20"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, usar RFC3339"})
	}
	page, err := h.query.GetMovements(c.Context(), appinventory.MovementQuery{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		ActorID:   c.Query("actor_id"),
		StartDate: startDate,
		EndDate:   endDate,
		Cursor:    c.Query("cursor"),
		Limit:     c.QueryInt("limit"),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items:      dto.MovementsToResponse(page.Items),
		NextCursor: page.NextCursor,
	})
}

// MovementsReport godoc
// @Summary      Reporte PDF de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        start_date  query  string  false  "Desde (RFC3339)"
// @Param        end_date    query  string  false  "Hasta (RFC3339)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/report [get]
func (h *InventoryHandler) MovementsReport(c *fiber.Ctx) error {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, usar RFC3339"})
	}
	pdfBytes, err := h.report.GenerateReport(c.Context(), c.Query("product_id"), startDate, endDate)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// actorFromContext extrae el actor autenticado y su rol parseado.
func actorFromContext(c *fiber.Ctx) (string, entity.Role, bool) {
	actorID := GetActorID(c)
	if actorID == "" {
		return "", "", false
	}
	// El rol se pasa tal cual al core: un rol fuera de la enumeración cae en
	// Forbidden en el chequeo de autorización
	return actorID, entity.Role(GetRole(c)), true
}

func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		startDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		endDate = &t
	}
	return startDate, endDate, nil
}

// respondDomainError mapea la taxonomía de errores del core a HTTP.
func respondDomainError(c *fiber.Ctx, err error) error {
	var insErr *domain.InsufficientStockError
	if errors.As(err, &insErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   "stock insuficiente",
			Available: &insErr.Available,
			Requested: &insErr.Requested,
		})
	}
	return c.Status(statusForError(err)).JSON(dto.ErrorResponse{
		Code:    codeForError(err),
		Message: messageForError(err),
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func codeForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, domain.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict):
		return "CONFLICT"
	}
	return "INTERNAL"
}

func messageForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "datos inválidos"
	case errors.Is(err, domain.ErrForbidden):
		return "rol insuficiente para esta operación"
	case errors.Is(err, domain.ErrNotFound):
		return "producto no encontrado o archivado"
	case errors.Is(err, domain.ErrConflict):
		return "conflicto de escritura concurrente, reintente"
	}
	return err.Error()
}
