package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo niveles de inventario en memoria.
type InventoryLevelRepo struct {
	s    *Store
	inTx bool
}

// NewInventoryLevelRepository repo fuera de transacción.
func NewInventoryLevelRepository(s *Store) *InventoryLevelRepo {
	return &InventoryLevelRepo{s: s}
}

func (r *InventoryLevelRepo) Get(_ context.Context, itemID string) (*entity.InventoryLevel, error) {
	var out *entity.InventoryLevel
	err := r.s.do(r.inTx, func(st *state) error {
		if l, ok := st.levels[itemID]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *InventoryLevelRepo) LockOrCreate(_ context.Context, itemID string) (*entity.InventoryLevel, error) {
	var out *entity.InventoryLevel
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok := st.items[itemID]; !ok {
			return domain.ErrNotFound
		}
		l, ok := st.levels[itemID]
		if !ok {
			l = entity.InventoryLevel{ItemID: itemID, Quantity: 0, UpdatedAt: r.s.now()}
			st.levels[itemID] = l
		}
		out = &l
		return nil
	})
	return out, err
}

func (r *InventoryLevelRepo) Set(_ context.Context, itemID string, quantity int64) (*entity.InventoryLevel, error) {
	if quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	var out *entity.InventoryLevel
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok := st.items[itemID]; !ok {
			return domain.ErrNotFound
		}
		l := entity.InventoryLevel{ItemID: itemID, Quantity: quantity, UpdatedAt: r.s.now()}
		st.levels[itemID] = l
		out = &l
		return nil
	})
	return out, err
}

func (r *InventoryLevelRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	err := r.s.do(r.inTx, func(st *state) error {
		list := make([]*entity.InventoryLevel, 0, len(st.levels))
		for _, l := range st.levels {
			l := l
			list = append(list, &l)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
				return list[i].UpdatedAt.After(list[j].UpdatedAt)
			}
			return list[i].ItemID < list[j].ItemID
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

func (r *InventoryLevelRepo) ListBelowThreshold(_ context.Context) ([]repository.RestockItem, error) {
	var out []repository.RestockItem
	err := r.s.do(r.inTx, func(st *state) error {
		for _, it := range st.items {
			if it.MinThreshold <= 0 {
				continue
			}
			qty := st.levels[it.ID].Quantity
			if qty >= it.MinThreshold {
				continue
			}
			ri := repository.RestockItem{
				ItemID:       it.ID,
				ItemName:     it.Name,
				Barcode:      cloneStr(it.Barcode),
				Quantity:     qty,
				MinThreshold: it.MinThreshold,
			}
			if it.CategoryID != nil {
				if c, ok := st.categories[*it.CategoryID]; ok {
					ri.CategoryName = strPtr(c.Name)
				}
			}
			out = append(out, ri)
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].MinThreshold-out[i].Quantity > out[j].MinThreshold-out[j].Quantity
		})
		return nil
	})
	return out, err
}
