package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el TxRunner toma una copia del
// estado al entrar y la descarta si la función devuelve error, igual que un
// ROLLBACK real. conflictsLeft fuerza ErrConflict en los primeros N intentos
// para ejercitar el reintento.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products      map[string]*entity.Product
	movements     []*entity.InventoryMovement
	seq           int64
	runCalls      int
	conflictsLeft int
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

func (s *fakeStore) addProduct(p *entity.Product) { s.products[p.ID] = p }

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s := r.store
	s.runCalls++
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return fmt.Errorf("%w: could not serialize access", domain.ErrConflict)
	}

	// Snapshot para simular rollback
	prevMovements := len(s.movements)
	prevStocks := make(map[string]int, len(s.products))
	for id, p := range s.products {
		prevStocks[id] = p.StockCached
	}

	err := fn(&fakeMovementRepo{store: s}, &fakeProductRepo{store: s})
	if err != nil {
		s.movements = s.movements[:prevMovements]
		for id, stock := range prevStocks {
			s.products[id].StockCached = stock
		}
	}
	return err
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.store.seq++
	m.Seq = r.store.seq
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return r.store.movements, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.addProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) UpdateStockCached(_ context.Context, productID string, stock int) error {
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockCached = stock
	return nil
}

type fakeMetrics struct {
	registered []entity.MovementType
	rejected   []string
}

func (m *fakeMetrics) MovementRegistered(t entity.MovementType) { m.registered = append(m.registered, t) }
func (m *fakeMetrics) MovementRejected(reason string)           { m.rejected = append(m.rejected, reason) }

func newTestEnv() (*inventory.RegisterMovementUseCase, *fakeStore, *fakeMetrics) {
	store := newFakeStore()
	metrics := &fakeMetrics{}
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{store: store}, metrics)
	return uc, store, metrics
}

func seedProduct(store *fakeStore, stock int) string {
	id := uuid.New().String()
	store.addProduct(&entity.Product{
		ID:          id,
		SKU:         "SKU-" + id[:8],
		Name:        "Producto de prueba",
		StockCached: stock,
		IsActive:    true,
	})
	return id
}

func TestRegisterMovement_VentaExitosa(t *testing.T) {
	uc, store, metrics := newTestEnv()
	productID := seedProduct(store, 10)
	actorID := uuid.New().String()

	price := int64(2500)
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID:      productID,
		Type:           entity.MovementTypeSaleOffline,
		Qty:            3,
		UnitPriceCents: &price,
		ActorID:        actorID,
		ActorRole:      entity.RoleStaff,
	})

	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, int64(1), mov.Seq)
	assert.Equal(t, actorID, mov.ActorID)
	assert.Equal(t, 7, store.products[productID].StockCached,
		"el stock cacheado debe reflejar el movimiento")
	assert.Len(t, store.movements, 1)
	assert.Equal(t, []entity.MovementType{entity.MovementTypeSaleOffline}, metrics.registered)
}

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	uc, store, metrics := newTestEnv()
	productID := seedProduct(store, 2)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSaleOffline,
		Qty:       5,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleStaff,
	})

	require.Error(t, err)
	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, productID, insufficientErr.ProductID)
	assert.Equal(t, 5, insufficientErr.Requested)
	assert.Equal(t, 2, insufficientErr.Available)

	// Rechazo sin efectos: ni ledger ni stock cambian
	assert.Equal(t, 2, store.products[productID].StockCached)
	assert.Empty(t, store.movements)
	assert.Equal(t, []string{"insufficient_stock"}, metrics.rejected)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestEnv()

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: uuid.New().String(),
		Type:      entity.MovementTypeReturn,
		Qty:       1,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleStaff,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_ProductoArchivado(t *testing.T) {
	uc, store, _ := newTestEnv()
	productID := seedProduct(store, 10)
	store.products[productID].IsArchived = true

	// Un producto archivado se comporta como inexistente para movimientos nuevos
	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSaleOffline,
		Qty:       1,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleOwner,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_StaffNoPuedeAjustar(t *testing.T) {
	uc, store, metrics := newTestEnv()
	productID := seedProduct(store, 10)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeAdjustment,
		Qty:       -5,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleStaff,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, store.products[productID].StockCached)
	assert.Empty(t, store.movements)
	assert.Equal(t, []string{"forbidden"}, metrics.rejected)
}

func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	negPrice := int64(-1)
	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"sin producto", inventory.MovementInput{
			Type: entity.MovementTypeSaleOffline, Qty: 1, ActorID: "a", ActorRole: entity.RoleStaff}},
		{"sin actor", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeSaleOffline, Qty: 1, ActorRole: entity.RoleStaff}},
		{"tipo desconocido", inventory.MovementInput{
			ProductID: "p", Type: "TRANSFER", Qty: 1, ActorID: "a", ActorRole: entity.RoleStaff}},
		{"cantidad cero en venta", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeSaleOffline, Qty: 0, ActorID: "a", ActorRole: entity.RoleStaff}},
		{"cantidad negativa en devolución", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeReturn, Qty: -3, ActorID: "a", ActorRole: entity.RoleStaff}},
		{"ajuste sobre el techo", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeAdjustment, Qty: 1001, ActorID: "a", ActorRole: entity.RoleOwner}},
		{"ajuste bajo el piso", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeAdjustment, Qty: -1001, ActorID: "a", ActorRole: entity.RoleOwner}},
		{"precio negativo", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeSaleOffline, Qty: 1, UnitPriceCents: &negPrice, ActorID: "a", ActorRole: entity.RoleStaff}},
		{"nota demasiado larga", inventory.MovementInput{
			ProductID: "p", Type: entity.MovementTypeSaleOffline, Qty: 1,
			Note: strings.Repeat("x", entity.MaxNoteLength+1), ActorID: "a", ActorRole: entity.RoleStaff}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store, _ := newTestEnv()
			_, err := uc.RegisterMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, store.runCalls, "la validación de forma no debe abrir transacción")
		})
	}
}

// El delta cero de un ajuste pasa la validación del caso de uso: registra una
// entrada de auditoría sin efecto sobre el stock. El borde HTTP es quien lo
// rechaza para peticiones directas.
func TestRegisterMovement_AjusteCeroRegistraAuditoria(t *testing.T) {
	uc, store, _ := newTestEnv()
	productID := seedProduct(store, 10)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeAdjustment,
		Qty:       0,
		Note:      "conteo físico sin diferencias",
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleOwner,
	})

	require.NoError(t, err)
	assert.NotNil(t, mov)
	assert.Equal(t, 10, store.products[productID].StockCached)
	assert.Len(t, store.movements, 1)
}

func TestRegisterMovement_ReintentaAnteConflicto(t *testing.T) {
	uc, store, _ := newTestEnv()
	productID := seedProduct(store, 10)
	store.conflictsLeft = 2

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSaleOffline,
		Qty:       1,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleStaff,
	})

	require.NoError(t, err, "dos conflictos seguidos deben absorberse con reintentos")
	assert.NotNil(t, mov)
	assert.Equal(t, 3, store.runCalls)
	assert.Equal(t, 9, store.products[productID].StockCached)
}

func TestRegisterMovement_ConflictoPersistente(t *testing.T) {
	uc, store, metrics := newTestEnv()
	productID := seedProduct(store, 10)
	store.conflictsLeft = 10

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSaleOffline,
		Qty:       1,
		ActorID:   uuid.New().String(),
		ActorRole: entity.RoleStaff,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, store.runCalls, "se rinde tras agotar los reintentos")
	assert.Equal(t, []string{"conflict"}, metrics.rejected)
}

// Los errores inesperados del TxRunner no se reintentan ni se traducen.
func TestRegisterMovement_ErrorNoConflictivoNoReintenta(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("connection reset")
	uc := inventory.NewRegisterMovementUseCase(&failingTxRunner{err: boom, store: store}, nil)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p",
		Type:      entity.MovementTypeSaleOffline,
		Qty:       1,
		ActorID:   "a",
		ActorRole: entity.RoleStaff,
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.runCalls)
}

type failingTxRunner struct {
	err   error
	store *fakeStore
}

func (r *failingTxRunner) Run(_ context.Context, _ func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.runCalls++
	return r.err
}
