package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var (
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.RoomRepository     = (*RoomRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// ItemRepo artículos en memoria.
type ItemRepo struct {
	s    *Store
	inTx bool
}

func NewItemRepository(s *Store) *ItemRepo { return &ItemRepo{s: s} }

func copyItem(it entity.Item) *entity.Item {
	it.Barcode = cloneStr(it.Barcode)
	it.CategoryID = cloneStr(it.CategoryID)
	it.Note = cloneStr(it.Note)
	return &it
}

func checkItem(st *state, item *entity.Item) error {
	if item.Barcode != nil {
		for _, other := range st.items {
			if other.ID != item.ID && other.Barcode != nil && *other.Barcode == *item.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	if item.CategoryID != nil {
		if _, ok := st.categories[*item.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.s.do(r.inTx, func(st *state) error {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if err := checkItem(st, item); err != nil {
			return err
		}
		now := r.s.now()
		item.CreatedAt, item.UpdatedAt = now, now
		st.items[item.ID] = *copyItem(*item)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.do(r.inTx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = copyItem(it)
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.do(r.inTx, func(st *state) error {
		for _, it := range st.items {
			if it.Barcode != nil && *it.Barcode == barcode {
				out = copyItem(it)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.s.do(r.inTx, func(st *state) error {
		prev, ok := st.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkItem(st, item); err != nil {
			return err
		}
		item.CreatedAt = prev.CreatedAt
		item.UpdatedAt = r.s.now()
		st.items[item.ID] = *copyItem(*item)
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.s.do(r.inTx, func(st *state) error {
		list := make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			list = append(list, copyItem(it))
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Name != list[j].Name {
				return list[i].Name < list[j].Name
			}
			return list[i].ID < list[j].ID
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

// Delete borra el artículo junto con sus transacciones, inventario y stock (ON DELETE CASCADE).
func (r *ItemRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok = st.items[id]; !ok {
			return nil
		}
		delete(st.items, id)
		delete(st.levels, id)
		for tid, t := range st.transactions {
			if t.ItemID == id {
				delete(st.transactions, tid)
				delete(st.txnSeq, tid)
			}
		}
		for sid, s := range st.stocks {
			if s.ItemID == id {
				delete(st.stocks, sid)
			}
		}
		return nil
	})
	return ok, err
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func categoryNameTaken(st *state, c *entity.Category) bool {
	for _, other := range st.categories {
		if other.ID != c.ID && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.do(r.inTx, func(st *state) error {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if categoryNameTaken(st, c) {
			return domain.ErrDuplicate
		}
		now := r.s.now()
		c.CreatedAt, c.UpdatedAt = now, now
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.do(r.inTx, func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.s.do(r.inTx, func(st *state) error {
		prev, ok := st.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if categoryNameTaken(st, c) {
			return domain.ErrDuplicate
		}
		c.CreatedAt = prev.CreatedAt
		c.UpdatedAt = r.s.now()
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.do(r.inTx, func(st *state) error {
		list := make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

// Delete deja los artículos de la categoría sin categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok = st.categories[id]; !ok {
			return nil
		}
		delete(st.categories, id)
		for iid, it := range st.items {
			if it.CategoryID != nil && *it.CategoryID == id {
				it.CategoryID = nil
				st.items[iid] = it
			}
		}
		return nil
	})
	return ok, err
}

// RoomRepo habitaciones en memoria.
type RoomRepo struct {
	s    *Store
	inTx bool
}

func NewRoomRepository(s *Store) *RoomRepo { return &RoomRepo{s: s} }

func roomNameTaken(st *state, rm *entity.Room) bool {
	for _, other := range st.rooms {
		if other.ID != rm.ID && other.Name == rm.Name {
			return true
		}
	}
	return false
}

func (r *RoomRepo) Create(_ context.Context, rm *entity.Room) error {
	return r.s.do(r.inTx, func(st *state) error {
		if rm.ID == "" {
			rm.ID = uuid.New().String()
		}
		if roomNameTaken(st, rm) {
			return domain.ErrDuplicate
		}
		now := r.s.now()
		rm.CreatedAt, rm.UpdatedAt = now, now
		st.rooms[rm.ID] = *rm
		return nil
	})
}

func (r *RoomRepo) GetByID(_ context.Context, id string) (*entity.Room, error) {
	var out *entity.Room
	err := r.s.do(r.inTx, func(st *state) error {
		if rm, ok := st.rooms[id]; ok {
			out = &rm
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) GetByName(_ context.Context, name string) (*entity.Room, error) {
	var out *entity.Room
	err := r.s.do(r.inTx, func(st *state) error {
		for _, rm := range st.rooms {
			if rm.Name == name {
				rm := rm
				out = &rm
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) Update(_ context.Context, rm *entity.Room) error {
	return r.s.do(r.inTx, func(st *state) error {
		prev, ok := st.rooms[rm.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if roomNameTaken(st, rm) {
			return domain.ErrDuplicate
		}
		rm.CreatedAt = prev.CreatedAt
		rm.UpdatedAt = r.s.now()
		st.rooms[rm.ID] = *rm
		return nil
	})
}

func (r *RoomRepo) List(_ context.Context) ([]*entity.Room, error) {
	var out []*entity.Room
	err := r.s.do(r.inTx, func(st *state) error {
		out = make([]*entity.Room, 0, len(st.rooms))
		for _, rm := range st.rooms {
			rm := rm
			out = append(out, &rm)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Delete deja las ubicaciones de la habitación sin habitación.
func (r *RoomRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok = st.rooms[id]; !ok {
			return nil
		}
		delete(st.rooms, id)
		for lid, l := range st.locations {
			if l.RoomID != nil && *l.RoomID == id {
				l.RoomID = nil
				st.locations[lid] = l
			}
		}
		return nil
	})
	return ok, err
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	s    *Store
	inTx bool
}

func NewLocationRepository(s *Store) *LocationRepo { return &LocationRepo{s: s} }

func copyLocation(l entity.Location) *entity.Location {
	l.RoomID = cloneStr(l.RoomID)
	return &l
}

func checkLocation(st *state, l *entity.Location) error {
	for _, other := range st.locations {
		if other.ID != l.ID && other.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	if l.RoomID != nil {
		if _, ok := st.rooms[*l.RoomID]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.s.do(r.inTx, func(st *state) error {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if err := checkLocation(st, l); err != nil {
			return err
		}
		now := r.s.now()
		l.CreatedAt, l.UpdatedAt = now, now
		st.locations[l.ID] = *copyLocation(*l)
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.s.do(r.inTx, func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = copyLocation(l)
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) GetByName(_ context.Context, name string) (*entity.Location, error) {
	var out *entity.Location
	err := r.s.do(r.inTx, func(st *state) error {
		for _, l := range st.locations {
			if l.Name == name {
				out = copyLocation(l)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	return r.s.do(r.inTx, func(st *state) error {
		prev, ok := st.locations[l.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkLocation(st, l); err != nil {
			return err
		}
		l.CreatedAt = prev.CreatedAt
		l.UpdatedAt = r.s.now()
		st.locations[l.ID] = *copyLocation(*l)
		return nil
	})
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.s.do(r.inTx, func(st *state) error {
		out = make([]*entity.Location, 0, len(st.locations))
		for _, l := range st.locations {
			out = append(out, copyLocation(l))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Delete borra la ubicación y el stock asociado.
func (r *LocationRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok = st.locations[id]; !ok {
			return nil
		}
		delete(st.locations, id)
		for sid, s := range st.stocks {
			if s.LocationID != nil && *s.LocationID == id {
				delete(st.stocks, sid)
			}
		}
		return nil
	})
	return ok, err
}
