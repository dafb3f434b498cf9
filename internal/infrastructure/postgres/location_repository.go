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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones (nevera, despensa...) sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, name, room_id, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.Name, &l.RoomID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	if !validRef(l.RoomID) {
		return domain.ErrNotFound
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO locations (id, name, room_id) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		l.ID, l.Name, nullIfEmpty(l.RoomID),
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return mapError("insert location", err)
	}
	return nil
}

func (r *LocationRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return l, nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get location", `id = $1`, id)
}

func (r *LocationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	return r.getOne(ctx, "get location by name", `name = $1`, name)
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	if !isUUID(l.ID) || !validRef(l.RoomID) {
		return domain.ErrNotFound
	}
	err := r.q.QueryRow(ctx,
		`UPDATE locations SET name = $2, room_id = $3, updated_at = now() WHERE id = $1 RETURNING created_at, updated_at`,
		l.ID, l.Name, nullIfEmpty(l.RoomID),
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapError("update location", err)
	}
	return nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, mapError("list locations", err)
	}
	defer rows.Close()

	list := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, mapError("list locations", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list locations", err)
	}
	return list, nil
}

// Delete el stock de la ubicación cae por ON DELETE CASCADE.
func (r *LocationRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete location", err)
	}
	return cmd.RowsAffected() > 0, nil
}
