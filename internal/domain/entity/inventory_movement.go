package entity

import "time"

// MovementType es la enumeración cerrada de tipos de movimiento del ledger.
type MovementType string

// Tipos de movimiento y su efecto sobre el stock.
const (
	MovementTypeSaleOffline MovementType = "SALE_OFFLINE" // venta: resta qty
	MovementTypeCancelSale  MovementType = "CANCEL_SALE"  // anulación de venta: suma qty
	MovementTypeReturn      MovementType = "RETURN"       // devolución: suma qty
	MovementTypeLoss        MovementType = "LOSS"         // pérdida/merma: resta qty
	MovementTypeAdjustment  MovementType = "ADJUSTMENT"   // ajuste manual: delta con signo
)

// IsValid verifica que el tipo pertenezca a la enumeración.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSaleOffline, MovementTypeCancelSale, MovementTypeReturn,
		MovementTypeLoss, MovementTypeAdjustment:
		return true
	}
	return false
}

// Límites para el delta de un ajuste manual.
const (
	AdjustmentQtyMin = -1000
	AdjustmentQtyMax = 1000
)

// MaxNoteLength longitud máxima de la nota libre.
const MaxNoteLength = 500

// InventoryMovement es una entrada del ledger de inventario: el registro
// inmutable de un evento que afecta stock. Una vez creada nunca se actualiza
// ni se borra; el stock cacheado de un producto siempre es derivable sumando
// SignedEffect de sus entradas.
type InventoryMovement struct {
	ID             string
	Seq            int64 // secuencia monotónica (BIGSERIAL), desempata el orden por fecha
	ProductID      string
	Type           MovementType
	Qty            int    // magnitud positiva, salvo ADJUSTMENT donde es delta con signo
	UnitPriceCents *int64 // precio de venta al momento del movimiento (centavos), opcional
	Note           string // justificación libre, obligatoria en la práctica para ajustes
	ActorID        string
	CreatedAt      time.Time
}

// SignedEffect devuelve el delta entero que este movimiento aplica al stock.
// Es la única fuente de verdad de la regla de signos: ningún otro componente
// debe re-derivarla.
func (m *InventoryMovement) SignedEffect() int {
	switch m.Type {
	case MovementTypeSaleOffline, MovementTypeLoss:
		return -m.Qty
	case MovementTypeCancelSale, MovementTypeReturn:
		return m.Qty
	case MovementTypeAdjustment:
		return m.Qty // delta firmado tal cual
	}
	return 0
}
