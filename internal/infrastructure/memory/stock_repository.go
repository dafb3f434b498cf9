package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock por (artículo, ubicación) en memoria.
type StockRepo struct {
	s    *Store
	inTx bool
}

func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

func copyStock(s entity.Stock) *entity.Stock {
	s.LocationID = cloneStr(s.LocationID)
	return &s
}

func (r *StockRepo) LockOrCreate(_ context.Context, itemID string, locationID *string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok := st.items[itemID]; !ok {
			return domain.ErrNotFound
		}
		if locationID != nil {
			if _, ok := st.locations[*locationID]; !ok {
				return domain.ErrNotFound
			}
		}
		for _, s := range st.stocks {
			if s.ItemID == itemID && sameLocation(s.LocationID, locationID) {
				out = copyStock(s)
				return nil
			}
		}
		now := r.s.now()
		s := entity.Stock{
			ID:         uuid.New().String(),
			ItemID:     itemID,
			LocationID: cloneStr(locationID),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		st.stocks[s.ID] = s
		out = copyStock(s)
		return nil
	})
	return out, err
}

func (r *StockRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrNegativeQuantity
	}
	return r.s.do(r.inTx, func(st *state) error {
		s, ok := st.stocks[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Quantity = quantity
		s.UpdatedAt = r.s.now()
		st.stocks[id] = s
		return nil
	})
}

func (r *StockRepo) List(_ context.Context, limit, offset int) ([]*entity.StockDetail, error) {
	var out []*entity.StockDetail
	err := r.s.do(r.inTx, func(st *state) error {
		list := make([]*entity.StockDetail, 0, len(st.stocks))
		for _, s := range st.stocks {
			it := st.items[s.ItemID]
			d := &entity.StockDetail{
				Stock:      *copyStock(s),
				ItemName:   it.Name,
				Barcode:    cloneStr(it.Barcode),
				CategoryID: cloneStr(it.CategoryID),
			}
			if it.CategoryID != nil {
				if c, ok := st.categories[*it.CategoryID]; ok {
					d.CategoryName = strPtr(c.Name)
				}
			}
			if s.LocationID != nil {
				if l, ok := st.locations[*s.LocationID]; ok {
					d.LocationName = strPtr(l.Name)
				}
			}
			list = append(list, d)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
				return list[i].UpdatedAt.After(list[j].UpdatedAt)
			}
			return list[i].ID < list[j].ID
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}
