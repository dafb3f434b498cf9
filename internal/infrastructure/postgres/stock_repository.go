package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock por (artículo, ubicación) sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// LockOrCreate crea la fila (cantidad 0) si no existe y la bloquea para update (SELECT FOR UPDATE).
func (r *StockRepo) LockOrCreate(ctx context.Context, itemID string, locationID *string) (*entity.Stock, error) {
	if !isUUID(itemID) || !validRef(locationID) {
		return nil, domain.ErrNotFound
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stocks (id, item_id, location_id, quantity)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (item_id, COALESCE(location_id, '00000000-0000-0000-0000-000000000000'::uuid)) DO NOTHING`,
		uuid.New().String(), itemID, locationID)
	if err != nil {
		return nil, mapError("ensure stock", err)
	}
	var s entity.Stock
	err = r.q.QueryRow(ctx, `
		SELECT id, item_id, location_id, quantity, created_at, updated_at
		FROM stocks
		WHERE item_id = $1 AND location_id IS NOT DISTINCT FROM $2::uuid
		FOR UPDATE`, itemID, locationID,
	).Scan(&s.ID, &s.ItemID, &s.LocationID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError("lock stock", err)
	}
	return &s, nil
}

// UpdateQuantity fija la cantidad de una fila de stock.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrNegativeQuantity
	}
	cmd, err := r.q.Exec(ctx, `UPDATE stocks SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return mapError("update stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List stock con nombres de artículo, categoría y ubicación.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockDetail, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.item_id, s.location_id, s.quantity, s.created_at, s.updated_at,
		       i.name, i.barcode, i.category_id, c.name, l.name
		FROM stocks s
		JOIN items i ON i.id = s.item_id
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN locations l ON l.id = s.location_id
		ORDER BY s.updated_at DESC, s.id
		LIMIT $1 OFFSET $2`, lim, offset)
	if err != nil {
		return nil, mapError("list stocks", err)
	}
	defer rows.Close()

	list := make([]*entity.StockDetail, 0)
	for rows.Next() {
		var d entity.StockDetail
		if err := rows.Scan(
			&d.ID, &d.ItemID, &d.LocationID, &d.Quantity, &d.CreatedAt, &d.UpdatedAt,
			&d.ItemName, &d.Barcode, &d.CategoryID, &d.CategoryName, &d.LocationName,
		); err != nil {
			return nil, mapError("list stocks", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list stocks", err)
	}
	return list, nil
}
