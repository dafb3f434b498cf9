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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, barcode, name, category_id, note, min_threshold, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Barcode, &it.Name, &it.CategoryID, &it.Note, &it.MinThreshold, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if !validRef(item.CategoryID) {
		return domain.ErrNotFound
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, barcode, name, category_id, note, min_threshold)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, nullIfEmpty(item.Barcode), item.Name, nullIfEmpty(item.CategoryID), nullIfEmpty(item.Note), item.MinThreshold,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return mapError("insert item", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return it, nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get item", `id = $1`, id)
}

// GetByBarcode obtiene un artículo por código de barras; nil si no existe.
func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	return r.getOne(ctx, "get item by barcode", `barcode = $1`, barcode)
}

// Update actualiza un artículo existente.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	if !isUUID(item.ID) || !validRef(item.CategoryID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE items SET barcode = $2, name = $3, category_id = $4, note = $5, min_threshold = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, nullIfEmpty(item.Barcode), item.Name, nullIfEmpty(item.CategoryID), nullIfEmpty(item.Note), item.MinThreshold,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapError("update item", err)
	}
	return nil
}

// List lista artículos por nombre con paginación.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY name, id LIMIT $1 OFFSET $2`, lim, offset)
	if err != nil {
		return nil, mapError("list items", err)
	}
	defer rows.Close()

	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, mapError("list items", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list items", err)
	}
	return list, nil
}

// Delete borra el artículo; transacciones, inventario y stock caen por ON DELETE CASCADE.
func (r *ItemRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete item", err)
	}
	return cmd.RowsAffected() > 0, nil
}
