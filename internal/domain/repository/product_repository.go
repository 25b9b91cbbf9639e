package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStockCached solo debe invocarse desde los casos de uso de inventario,
// dentro de la misma transacción que inserta el movimiento correspondiente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) durante
	// toda la ventana lookup→proyección→persistencia.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStockCached(ctx context.Context, productID string, stock int) error
}
