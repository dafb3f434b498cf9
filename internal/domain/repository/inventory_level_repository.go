package repository

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// RestockItem resultado crudo del repositorio para un artículo bajo su umbral mínimo.
type RestockItem struct {
	ItemID       string
	ItemName     string
	Barcode      *string
	CategoryName *string
	Quantity     int64
	MinThreshold int64
}

// InventoryLevelRepository puerto de la cantidad actual por artículo.
// Solo el motor de conciliación escribe en él.
type InventoryLevelRepository interface {
	// Get devuelve (nil, nil) si el artículo aún no tiene nivel.
	Get(ctx context.Context, itemID string) (*entity.InventoryLevel, error)
	// LockOrCreate materializa el nivel (cantidad 0) si no existe y bloquea la fila hasta el fin de la tx.
	LockOrCreate(ctx context.Context, itemID string) (*entity.InventoryLevel, error)
	// Set hace upsert de la cantidad y refresca updated_at. Cantidad negativa -> domain.ErrNegativeQuantity.
	Set(ctx context.Context, itemID string, quantity int64) (*entity.InventoryLevel, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryLevel, error)

	// ListBelowThreshold devuelve los artículos con min_threshold > 0 cuya cantidad actual es menor,
	// ordenados por mayor déficit primero.
	ListBelowThreshold(ctx context.Context) ([]RestockItem, error)
}
