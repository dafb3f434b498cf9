package repository

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// StockRepository puerto de stock por artículo y ubicación (locationID nil = sin ubicación).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// LockOrCreate materializa la fila (cantidad 0) si no existe y la bloquea (SELECT FOR UPDATE).
	LockOrCreate(ctx context.Context, itemID string, locationID *string) (*entity.Stock, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockDetail, error)
}
