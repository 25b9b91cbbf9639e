package entity

import "time"

// Product representa un producto del catálogo. StockCached es el total
// materializado del ledger: se recalcula en cada escritura dentro de la misma
// transacción que inserta el movimiento, nunca por fuera de los casos de uso
// de inventario.
type Product struct {
	ID          string
	SKU         string
	Name        string
	StockCached int // invariante: == suma de SignedEffect de sus movimientos, siempre >= 0
	IsActive    bool
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
