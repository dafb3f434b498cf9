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

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo habitaciones sobre PostgreSQL.
type RoomRepo struct {
	q Querier
}

func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

func (r *RoomRepo) Create(ctx context.Context, rm *entity.Room) error {
	if rm.ID == "" {
		rm.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO rooms (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		rm.ID, rm.Name,
	).Scan(&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return mapError("insert room", err)
	}
	return nil
}

func (r *RoomRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Room, error) {
	var rm entity.Room
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM rooms WHERE `+where, arg,
	).Scan(&rm.ID, &rm.Name, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return &rm, nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get room", `id = $1`, id)
}

func (r *RoomRepo) GetByName(ctx context.Context, name string) (*entity.Room, error) {
	return r.getOne(ctx, "get room by name", `name = $1`, name)
}

func (r *RoomRepo) Update(ctx context.Context, rm *entity.Room) error {
	if !isUUID(rm.ID) {
		return domain.ErrNotFound
	}
	err := r.q.QueryRow(ctx,
		`UPDATE rooms SET name = $2, updated_at = now() WHERE id = $1 RETURNING created_at, updated_at`,
		rm.ID, rm.Name,
	).Scan(&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapError("update room", err)
	}
	return nil
}

func (r *RoomRepo) List(ctx context.Context) ([]*entity.Room, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, mapError("list rooms", err)
	}
	defer rows.Close()

	list := make([]*entity.Room, 0)
	for rows.Next() {
		var rm entity.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, mapError("list rooms", err)
		}
		list = append(list, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list rooms", err)
	}
	return list, nil
}

func (r *RoomRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete room", err)
	}
	return cmd.RowsAffected() > 0, nil
}
