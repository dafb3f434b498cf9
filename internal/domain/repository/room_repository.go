package repository

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// RoomRepository puerto de persistencia para Room.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByName(ctx context.Context, name string) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	List(ctx context.Context) ([]*entity.Room, error)
	Delete(ctx context.Context, id string) (bool, error)
}
