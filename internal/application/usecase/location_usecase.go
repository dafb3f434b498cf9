package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// LocationUseCase casos de uso para ubicaciones (opcionalmente dentro de una habitación).
type LocationUseCase struct {
	repo     repository.LocationRepository
	roomRepo repository.RoomRepository
}

func NewLocationUseCase(repo repository.LocationRepository, roomRepo repository.RoomRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, roomRepo: roomRepo}
}

func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.Location{Name: strings.TrimSpace(*in.Name), RoomID: emptyToNil(in.RoomID)}
	if err := uc.checkRoom(ctx, l.RoomID); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(l), nil
}

func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// Update actualización parcial: nombre y/o habitación (room_id vacío = quitar).
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.LocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		l.Name = name
	}
	if in.RoomID != nil {
		l.RoomID = emptyToNil(in.RoomID)
		if err := uc.checkRoom(ctx, l.RoomID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// Delete el stock guardado en la ubicación se elimina con ella.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *LocationUseCase) checkRoom(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	rm, err := uc.roomRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if rm == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, RoomID: l.RoomID, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
}
