// Package memory implementa los puertos de repositorio en memoria.
// Sirve para desarrollo (STORE_DRIVER=memory) y para tests; no persiste nada.
//
// Un único mutex serializa todas las operaciones. Dentro de TxRunner.Run el mutex se mantiene
// durante toda la función, y si ésta falla se restaura la foto tomada al inicio (Rollback).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	items        map[string]entity.Item
	categories   map[string]entity.Category
	rooms        map[string]entity.Room
	locations    map[string]entity.Location
	transactions map[string]entity.Transaction
	txnSeq       map[string]int64
	levels       map[string]entity.InventoryLevel
	stocks       map[string]entity.Stock
	seq          int64
}

func newState() *state {
	return &state{
		items:        map[string]entity.Item{},
		categories:   map[string]entity.Category{},
		rooms:        map[string]entity.Room{},
		locations:    map[string]entity.Location{},
		transactions: map[string]entity.Transaction{},
		txnSeq:       map[string]int64{},
		levels:       map[string]entity.InventoryLevel{},
		stocks:       map[string]entity.Stock{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.txnSeq {
		c.txnSeq[k] = v
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	c.seq = s.seq
	return c
}

// Store almacén en memoria. Los repos obtenidos con los constructores New*Repository operan
// fuera de transacción; TxRunner.Run pasa repos que ya tienen el mutex.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// SetClock fija el reloj (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// do ejecuta fn con el estado; toma el mutex salvo que ya estemos dentro de una tx.
func (s *Store) do(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func (s *Store) atomic(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	levelRepo repository.InventoryLevelRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.atomic(func() error {
		return fn(&TransactionRepo{s: s, inTx: true}, &InventoryLevelRepo{s: s, inTx: true})
	})
}

// RunStock implementa inventory.TxRunner.
func (s *Store) RunStock(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.atomic(func() error {
		return fn(&ItemRepo{s: s, inTx: true}, &LocationRepo{s: s, inTx: true}, &StockRepo{s: s, inTx: true})
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func strPtr(s string) *string { return &s }

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	return strPtr(*p)
}

func sameLocation(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
