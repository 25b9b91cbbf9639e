package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del ledger sobre PostgreSQL (usable
// con pool o tx). El ledger es append-only: este adaptador no tiene UPDATE
// ni DELETE.
type InventoryMovementRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create persiste una entrada del ledger y llena ID y Seq generados.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, qty, unit_price_cents, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	note := (*string)(nil)
	if movement.Note != "" {
		note = &movement.Note
	}
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.ProductID, string(movement.Type), movement.Qty,
		movement.UnitPriceCents, note, movement.ActorID, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Devuelve nil si no existe.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	query := `
		SELECT id, seq, product_id, type, qty, unit_price_cents, note, actor_id, created_at
		FROM inventory_movements WHERE id = $1`
	var row movementRow
	err := r.q.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Seq, &row.ProductID, &row.Type, &row.Qty,
		&row.UnitPriceCents, &row.Note, &row.ActorID, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return row.toEntity(), nil
}

// List devuelve movimientos según los filtros, más recientes primero
// (created_at DESC, desempate por seq DESC). El cursor es el ID de la última
// entrada de la página anterior: la página siguiente son las estrictamente
// más antiguas que esa.
func (r *InventoryMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	sb := r.builder.
		Select("id", "seq", "product_id", "type", "qty", "unit_price_cents", "note", "actor_id", "created_at").
		From("inventory_movements")

	if filter.ProductID != "" {
		sb = sb.Where(squirrel.Eq{"product_id": filter.ProductID})
	}
	if filter.Type != "" {
		sb = sb.Where(squirrel.Eq{"type": string(filter.Type)})
	}
	if filter.ActorID != "" {
		sb = sb.Where(squirrel.Eq{"actor_id": filter.ActorID})
	}
	if filter.StartDate != nil {
		sb = sb.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		sb = sb.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	if filter.Cursor != "" {
		// Comparación por tupla para que la paginación sea estable ante
		// inserciones y empates de fecha
		sb = sb.Where(
			"(created_at, seq) < (SELECT created_at, seq FROM inventory_movements WHERE id = ?)",
			filter.Cursor,
		)
	}
	sb = sb.OrderBy("created_at DESC", "seq DESC")
	if filter.Limit > 0 {
		sb = sb.Limit(uint64(filter.Limit))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.InventoryMovement, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// movementRow fila de inventory_movements (note nullable en la tabla).
type movementRow struct {
	ID             string
	Seq            int64
	ProductID      string
	Type           string
	Qty            int
	UnitPriceCents *int64
	Note           *string
	ActorID        string
	CreatedAt      time.Time
}

func (row *movementRow) toEntity() *entity.InventoryMovement {
	m := &entity.InventoryMovement{
		ID:             row.ID,
		Seq:            row.Seq,
		ProductID:      row.ProductID,
		Type:           entity.MovementType(row.Type),
		Qty:            row.Qty,
		UnitPriceCents: row.UnitPriceCents,
		ActorID:        row.ActorID,
		CreatedAt:      row.CreatedAt,
	}
	if row.Note != nil {
		m.Note = *row.Note
	}
	return m
}
