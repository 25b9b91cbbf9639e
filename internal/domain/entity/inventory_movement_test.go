package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestSignedEffect valida la tabla de signos por tipo de movimiento. Esta
// función es la única fuente de verdad de cómo un movimiento afecta el stock;
// si alguien la toca, estos casos fallan de inmediato.
// ──────────────────────────────────────────────────────────────────────────────
func TestSignedEffect(t *testing.T) {
	cases := []struct {
		name     string
		tipo     entity.MovementType
		qty      int
		expected int
	}{
		{"venta resta la cantidad", entity.MovementTypeSaleOffline, 3, -3},
		{"anulación de venta suma la cantidad", entity.MovementTypeCancelSale, 3, 3},
		{"devolución suma la cantidad", entity.MovementTypeReturn, 5, 5},
		{"pérdida resta la cantidad", entity.MovementTypeLoss, 2, -2},
		{"ajuste positivo aplica el delta tal cual", entity.MovementTypeAdjustment, 7, 7},
		{"ajuste negativo aplica el delta tal cual", entity.MovementTypeAdjustment, -7, -7},
		{"ajuste cero no cambia nada", entity.MovementTypeAdjustment, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &entity.InventoryMovement{Type: tc.tipo, Qty: tc.qty}
			assert.Equal(t, tc.expected, m.SignedEffect())
		})
	}
}

func TestMovementTypeIsValid(t *testing.T) {
	for _, tipo := range []entity.MovementType{
		entity.MovementTypeSaleOffline, entity.MovementTypeCancelSale,
		entity.MovementTypeReturn, entity.MovementTypeLoss, entity.MovementTypeAdjustment,
	} {
		assert.True(t, tipo.IsValid(), "tipo %s debe ser válido", tipo)
	}
	assert.False(t, entity.MovementType("TRANSFER").IsValid(), "tipo desconocido debe rechazarse")
	assert.False(t, entity.MovementType("").IsValid())
}

// TestRoleCanCreateMovement: STAFF puede todo menos ajustes; OWNER puede todo.
func TestRoleCanCreateMovement(t *testing.T) {
	assert.True(t, entity.RoleStaff.CanCreateMovement(entity.MovementTypeSaleOffline))
	assert.True(t, entity.RoleStaff.CanCreateMovement(entity.MovementTypeCancelSale))
	assert.True(t, entity.RoleStaff.CanCreateMovement(entity.MovementTypeReturn))
	assert.True(t, entity.RoleStaff.CanCreateMovement(entity.MovementTypeLoss))
	assert.False(t, entity.RoleStaff.CanCreateMovement(entity.MovementTypeAdjustment),
		"STAFF no debe poder registrar ajustes manuales")

	assert.True(t, entity.RoleOwner.CanCreateMovement(entity.MovementTypeAdjustment))

	invalido := entity.Role("admin")
	assert.False(t, invalido.CanCreateMovement(entity.MovementTypeSaleOffline),
		"un rol fuera de la enumeración no puede operar")
}

func TestParseRole(t *testing.T) {
	r, ok := entity.ParseRole("OWNER")
	assert.True(t, ok)
	assert.Equal(t, entity.RoleOwner, r)

	_, ok = entity.ParseRole("bodeguero")
	assert.False(t, ok, "roles legacy no pertenecen a la enumeración")
}
