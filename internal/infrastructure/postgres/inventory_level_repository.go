package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo nivel de inventario por artículo (tabla inventory).
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Get nivel actual; nil si el artículo aún no tiene fila.
func (r *InventoryLevelRepo) Get(ctx context.Context, itemID string) (*entity.InventoryLevel, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, nil
	}
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx,
		`SELECT item_id, quantity, updated_at FROM inventory WHERE item_id = $1`, itemID,
	).Scan(&l.ItemID, &l.Quantity, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get inventory", err)
	}
	return &l, nil
}

// LockOrCreate materializa la fila (cantidad 0) si no existe y la bloquea (SELECT FOR UPDATE).
// Con la fila ya creada, dos transacciones concurrentes sobre el mismo artículo se serializan aquí.
func (r *InventoryLevelRepo) LockOrCreate(ctx context.Context, itemID string) (*entity.InventoryLevel, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrNotFound
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory (item_id, quantity) VALUES ($1, 0) ON CONFLICT (item_id) DO NOTHING`, itemID)
	if err != nil {
		return nil, mapError("ensure inventory", err)
	}
	var l entity.InventoryLevel
	err = r.q.QueryRow(ctx,
		`SELECT item_id, quantity, updated_at FROM inventory WHERE item_id = $1 FOR UPDATE`, itemID,
	).Scan(&l.ItemID, &l.Quantity, &l.UpdatedAt)
	if err != nil {
		return nil, mapError("lock inventory", err)
	}
	return &l, nil
}

// Set upsert de la cantidad con updated_at = now(). Rechaza cantidades negativas.
func (r *InventoryLevelRepo) Set(ctx context.Context, itemID string, quantity int64) (*entity.InventoryLevel, error) {
	if quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	if !isUUID(itemID) {
		return nil, domain.ErrNotFound
	}
	query := `
		INSERT INTO inventory (item_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
		RETURNING item_id, quantity, updated_at`
	var l entity.InventoryLevel
	if err := r.q.QueryRow(ctx, query, itemID, quantity).Scan(&l.ItemID, &l.Quantity, &l.UpdatedAt); err != nil {
		return nil, mapError("set inventory", err)
	}
	return &l, nil
}

// List niveles materializados, actualizados más recientemente primero.
func (r *InventoryLevelRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryLevel, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, `
		SELECT item_id, quantity, updated_at FROM inventory
		ORDER BY updated_at DESC, item_id
		LIMIT $1 OFFSET $2`, lim, offset)
	if err != nil {
		return nil, mapError("list inventory", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryLevel, 0)
	for rows.Next() {
		var l entity.InventoryLevel
		if err := rows.Scan(&l.ItemID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, mapError("list inventory", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list inventory", err)
	}
	return list, nil
}

// ListBelowThreshold artículos con umbral > 0 cuya cantidad (0 si no hay fila) está por debajo.
func (r *InventoryLevelRepo) ListBelowThreshold(ctx context.Context) ([]repository.RestockItem, error) {
	query := `
		SELECT i.id, i.name, i.barcode, c.name, COALESCE(inv.quantity, 0), i.min_threshold
		FROM items i
		LEFT JOIN inventory inv ON inv.item_id = i.id
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.min_threshold > 0 AND COALESCE(inv.quantity, 0) < i.min_threshold
		ORDER BY (i.min_threshold - COALESCE(inv.quantity, 0)) DESC, i.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("list below threshold", err)
	}
	defer rows.Close()

	var list []repository.RestockItem
	for rows.Next() {
		var it repository.RestockItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Barcode, &it.CategoryName, &it.Quantity, &it.MinThreshold); err != nil {
			return nil, mapError("list below threshold", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list below threshold", err)
	}
	return list, nil
}
