package repository

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// TransactionFilter filtros para listar transacciones. ItemID nil = todas.
type TransactionFilter struct {
	ItemID *string
}

// TransactionRepository puerto del registro de movimientos de stock.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type TransactionRepository interface {
	// Create asigna ID y CreatedAt si vienen vacíos.
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// GetForUpdate obtiene la transacción y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	Patch(ctx context.Context, id string, patch entity.TransactionPatch) error
	// Delete devuelve las filas afectadas.
	Delete(ctx context.Context, id string) (int64, error)
	// List ordena por created_at DESC.
	List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*entity.Transaction, error)
	// ListAllByItem devuelve el historial completo de un artículo (auditoría).
	ListAllByItem(ctx context.Context, itemID string) ([]*entity.Transaction, error)
}
