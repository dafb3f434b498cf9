package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// RoomUseCase casos de uso para habitaciones.
type RoomUseCase struct {
	repo repository.RoomRepository
}

func NewRoomUseCase(repo repository.RoomRepository) *RoomUseCase {
	return &RoomUseCase{repo: repo}
}

func (uc *RoomUseCase) Create(ctx context.Context, in dto.NameRequest) (*dto.RoomResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	rm := &entity.Room{Name: name}
	if err := uc.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return toRoomResponse(rm), nil
}

func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	rm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, domain.ErrNotFound
	}
	return toRoomResponse(rm), nil
}

// GetByName busca por nombre exacto.
func (uc *RoomUseCase) GetByName(ctx context.Context, name string) (*dto.RoomResponse, error) {
	rm, err := uc.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, domain.ErrNotFound
	}
	return toRoomResponse(rm), nil
}

func (uc *RoomUseCase) List(ctx context.Context) ([]dto.RoomResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(list))
	for _, rm := range list {
		out = append(out, *toRoomResponse(rm))
	}
	return out, nil
}

func (uc *RoomUseCase) Update(ctx context.Context, id string, in dto.NameRequest) (*dto.RoomResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	rm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, domain.ErrNotFound
	}
	rm.Name = name
	if err := uc.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return toRoomResponse(rm), nil
}

// Delete devuelve false si la habitación no existía.
func (uc *RoomUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func toRoomResponse(rm *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{ID: rm.ID, Name: rm.Name, CreatedAt: rm.CreatedAt, UpdatedAt: rm.UpdatedAt}
}
