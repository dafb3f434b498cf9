package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	levelRepo    repository.InventoryLevelRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	levelRepo repository.InventoryLevelRepository,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, levelRepo: levelRepo}
}

// Create crea un artículo. El nombre puede ir vacío solo si hay código de barras.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &entity.Item{
		Name:         strings.TrimSpace(in.Name),
		Barcode:      normalizeBarcodePtr(in.Barcode),
		CategoryID:   emptyToNil(in.CategoryID),
		Note:         emptyToNil(in.Note),
		MinThreshold: entity.DefaultMinThreshold,
	}
	if in.MinThreshold != nil {
		item.MinThreshold = *in.MinThreshold
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, item.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID devuelve el artículo con su categoría y cantidad actual.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := toItemResponse(item)

	var qty int64
	level, err := uc.levelRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if level != nil {
		qty = level.Quantity
	}
	resp.Quantity = &qty

	if item.CategoryID != nil {
		cat, err := uc.categoryRepo.GetByID(ctx, *item.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			resp.Category = toCategoryResponse(cat)
		}
	}
	return resp, nil
}

// GetByBarcode busca un artículo por código (normalizado).
func (uc *ItemUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ItemResponse, error) {
	code := inventory.NormalizeBarcode(barcode)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista artículos por nombre con paginación.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update actualización parcial.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Barcode != nil {
		item.Barcode = normalizeBarcodePtr(in.Barcode)
	}
	if in.CategoryID != nil {
		item.CategoryID = emptyToNil(in.CategoryID)
	}
	if in.Note != nil {
		item.Note = emptyToNil(in.Note)
	}
	if in.MinThreshold != nil {
		item.MinThreshold = *in.MinThreshold
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, item.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina el artículo con su historial, inventario y stock.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ItemUseCase) checkCategory(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	cat, err := uc.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return nil
}

func validateItem(it *entity.Item) error {
	if it.Name == "" && it.Barcode == nil {
		return domain.ErrInvalidInput
	}
	if it.MinThreshold < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func normalizeBarcodePtr(s *string) *string {
	if s == nil {
		return nil
	}
	code := inventory.NormalizeBarcode(*s)
	if code == "" {
		return nil
	}
	return &code
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           it.ID,
		Barcode:      it.Barcode,
		Name:         it.Name,
		CategoryID:   it.CategoryID,
		Note:         it.Note,
		MinThreshold: it.MinThreshold,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
