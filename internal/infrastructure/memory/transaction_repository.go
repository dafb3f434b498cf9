package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo registro de transacciones en memoria.
type TransactionRepo struct {
	s    *Store
	inTx bool
}

// NewTransactionRepository repo fuera de transacción.
func NewTransactionRepository(s *Store) *TransactionRepo {
	return &TransactionRepo{s: s}
}

func copyTxn(t entity.Transaction) *entity.Transaction {
	t.Note = cloneStr(t.Note)
	return &t
}

func (r *TransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	return r.s.do(r.inTx, func(st *state) error {
		if _, ok := st.items[txn.ItemID]; !ok {
			return domain.ErrNotFound
		}
		if txn.ID == "" {
			txn.ID = uuid.New().String()
		}
		if txn.CreatedAt.IsZero() {
			txn.CreatedAt = r.s.now()
		}
		st.seq++
		st.transactions[txn.ID] = *copyTxn(*txn)
		st.txnSeq[txn.ID] = st.seq
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.s.do(r.inTx, func(st *state) error {
		if t, ok := st.transactions[id]; ok {
			out = copyTxn(t)
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: el mutex de la tx ya da exclusividad.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *TransactionRepo) Patch(_ context.Context, id string, patch entity.TransactionPatch) error {
	return r.s.do(r.inTx, func(st *state) error {
		t, ok := st.transactions[id]
		if !ok {
			return domain.ErrNotFound
		}
		if patch.Type != nil {
			t.Type = *patch.Type
		}
		if patch.Quantity != nil {
			t.Quantity = *patch.Quantity
		}
		if patch.Note != nil {
			if *patch.Note == "" {
				t.Note = nil
			} else {
				t.Note = strPtr(*patch.Note)
			}
		}
		st.transactions[id] = t
		return nil
	})
}

func (r *TransactionRepo) Delete(_ context.Context, id string) (int64, error) {
	var n int64
	err := r.s.do(r.inTx, func(st *state) error {
		if _, ok := st.transactions[id]; ok {
			delete(st.transactions, id)
			delete(st.txnSeq, id)
			n = 1
		}
		return nil
	})
	return n, err
}

func (r *TransactionRepo) sorted(st *state, itemID *string) []*entity.Transaction {
	list := make([]*entity.Transaction, 0, len(st.transactions))
	for _, t := range st.transactions {
		if itemID != nil && t.ItemID != *itemID {
			continue
		}
		list = append(list, copyTxn(t))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return st.txnSeq[a.ID] > st.txnSeq[b.ID]
	})
	return list
}

func (r *TransactionRepo) List(_ context.Context, filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.s.do(r.inTx, func(st *state) error {
		out = page(r.sorted(st, filter.ItemID), limit, offset)
		return nil
	})
	return out, err
}

func (r *TransactionRepo) ListAllByItem(_ context.Context, itemID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.s.do(r.inTx, func(st *state) error {
		out = r.sorted(st, &itemID)
		return nil
	})
	return out, err
}
