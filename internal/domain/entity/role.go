package entity

// Role es la enumeración cerrada de roles que pueden operar sobre el ledger.
// Se modela como tipo propio (no string suelto) para que cada punto de
// autorización haga match exhaustivo.
type Role string

// Roles válidos.
const (
	RoleOwner Role = "OWNER" // dueño: todas las operaciones, incluidos ajustes
	RoleStaff Role = "STAFF" // personal: ventas, anulaciones, devoluciones y pérdidas
)

// IsValid verifica que el rol pertenezca a la enumeración.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleStaff
}

// ParseRole convierte el claim de rol del token a Role. Devuelve false si el
// valor no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// CanCreateMovement indica si el rol puede crear un movimiento del tipo dado.
// Solo OWNER puede registrar ajustes manuales.
func (r Role) CanCreateMovement(t MovementType) bool {
	switch r {
	case RoleOwner:
		return true
	case RoleStaff:
		return t != MovementTypeAdjustment
	}
	return false
}
