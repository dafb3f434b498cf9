package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	inv "github.com/jhoicas/home-inventory/internal/domain/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// DefaultMaxTries intentos por operación ante domain.ErrConcurrentUpdate.
const DefaultMaxTries = 3

// ReconciliationEngine mantiene el inventario de cada artículo coherente con sus transacciones.
// Cada Create/Update/Delete corre en una sola transacción de BD: la fila de inventario se bloquea
// (SELECT FOR UPDATE) entre la lectura y la escritura, y cualquier fallo hace Rollback de todo.
type ReconciliationEngine struct {
	txRunner TxRunner
	maxTries uint
	log      zerolog.Logger
	newBO    func() backoff.BackOff
}

// EngineOption configura el motor.
type EngineOption func(*ReconciliationEngine)

// WithMaxTries cambia el número de intentos ante conflictos de concurrencia (mínimo 1).
func WithMaxTries(n uint) EngineOption {
	return func(e *ReconciliationEngine) {
		if n > 0 {
			e.maxTries = n
		}
	}
}

// WithLogger inyecta el logger.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *ReconciliationEngine) { e.log = l }
}

// WithBackOff cambia la política de espera entre reintentos.
func WithBackOff(f func() backoff.BackOff) EngineOption {
	return func(e *ReconciliationEngine) { e.newBO = f }
}

// NewReconciliationEngine construye el motor.
func NewReconciliationEngine(txRunner TxRunner, opts ...EngineOption) *ReconciliationEngine {
	e := &ReconciliationEngine{
		txRunner: txRunner,
		maxTries: DefaultMaxTries,
		log:      zerolog.Nop(),
		newBO: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 20 * time.Millisecond
			b.MaxInterval = 500 * time.Millisecond
			return b
		},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Create persiste la transacción y aplica su efecto al inventario del artículo (piso 0).
func (e *ReconciliationEngine) Create(ctx context.Context, in entity.NewTransaction) (*entity.Transaction, error) {
	in, err := normalizeNew(in)
	if err != nil {
		return nil, err
	}

	var created *entity.Transaction
	err = e.retry(ctx, "create", func() error {
		return e.txRunner.Run(ctx, func(
			txnRepo repository.TransactionRepository,
			levelRepo repository.InventoryLevelRepository,
		) error {
			txn := &entity.Transaction{
				ItemID:   in.ItemID,
				Type:     in.Type,
				Quantity: in.Quantity,
				Note:     in.Note,
			}
			// 1. El registro se persiste antes de tocar el inventario
			if err := txnRepo.Create(ctx, txn); err != nil {
				return err
			}
			// 2-5. Lee (bloqueando), suma el efecto, recorta y escribe
			level, err := levelRepo.LockOrCreate(ctx, txn.ItemID)
			if err != nil {
				return err
			}
			newQty, err := inv.Apply(level.Quantity, inv.EffectOf(txn))
			if err != nil {
				return err
			}
			if _, err := levelRepo.Set(ctx, txn.ItemID, newQty); err != nil {
				return err
			}
			e.log.Debug().
				Str("transaction_id", txn.ID).
				Str("item_id", txn.ItemID).
				Int64("before", level.Quantity).
				Int64("after", newQty).
				Msg("transacción creada")
			created = txn
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update aplica el patch. Si cambia tipo o cantidad, revierte el efecto original y aplica el nuevo
// en un único delta, con un solo recorte sobre el resultado final.
// Devuelve domain.ErrNotFound si la transacción no existe.
func (e *ReconciliationEngine) Update(ctx context.Context, id string, patch entity.TransactionPatch) (*entity.Transaction, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	patch, err := normalizePatch(patch)
	if err != nil {
		return nil, err
	}

	var updated *entity.Transaction
	err = e.retry(ctx, "update", func() error {
		return e.txRunner.Run(ctx, func(
			txnRepo repository.TransactionRepository,
			levelRepo repository.InventoryLevelRepository,
		) error {
			original, err := txnRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if original == nil {
				return domain.ErrNotFound
			}
			if patch.IsEmpty() {
				updated = original
				return nil
			}

			delta, err := inv.CombinedDelta(original, patch)
			if err != nil {
				return err
			}
			if err := txnRepo.Patch(ctx, id, patch); err != nil {
				return err
			}

			if patch.TouchesEffect() {
				level, err := levelRepo.LockOrCreate(ctx, original.ItemID)
				if err != nil {
					return err
				}
				newQty, err := inv.Apply(level.Quantity, delta)
				if err != nil {
					return err
				}
				if _, err := levelRepo.Set(ctx, original.ItemID, newQty); err != nil {
					return err
				}
				e.log.Debug().
					Str("transaction_id", id).
					Int64("delta", delta).
					Int64("after", newQty).
					Msg("transacción actualizada")
			}

			updated, err = txnRepo.GetByID(ctx, id)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina la transacción y revierte su efecto: borrar un IN resta (piso 0), borrar un OUT suma.
// Devuelve false sin error si la transacción no existe o el borrado no afectó filas.
func (e *ReconciliationEngine) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	var deleted bool
	err := e.retry(ctx, "delete", func() error {
		deleted = false
		return e.txRunner.Run(ctx, func(
			txnRepo repository.TransactionRepository,
			levelRepo repository.InventoryLevelRepository,
		) error {
			txn, err := txnRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if txn == nil {
				return nil
			}
			rows, err := txnRepo.Delete(ctx, id)
			if err != nil {
				return err
			}
			if rows == 0 {
				return nil
			}
			level, err := levelRepo.LockOrCreate(ctx, txn.ItemID)
			if err != nil {
				return err
			}
			newQty, err := inv.Apply(level.Quantity, inv.ReverseDelta(txn))
			if err != nil {
				return err
			}
			if _, err := levelRepo.Set(ctx, txn.ItemID, newQty); err != nil {
				return err
			}
			e.log.Debug().
				Str("transaction_id", id).
				Str("item_id", txn.ItemID).
				Int64("after", newQty).
				Msg("transacción eliminada")
			deleted = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// retry reintenta op solo ante domain.ErrConcurrentUpdate; el resto de errores se devuelve tal cual.
func (e *ReconciliationEngine) retry(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := fn()
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			e.log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("conflicto de concurrencia")
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(e.newBO()), backoff.WithMaxTries(e.maxTries))
	return err
}

// normalizeNew valida la entrada y deja el tipo en su forma canónica (IN/OUT).
func normalizeNew(in entity.NewTransaction) (entity.NewTransaction, error) {
	if in.ItemID == "" || in.Quantity < 0 {
		return in, domain.ErrInvalidInput
	}
	t, ok := entity.ParseTransactionType(string(in.Type))
	if !ok {
		return in, domain.ErrInvalidInput
	}
	in.Type = t
	return in, nil
}

func normalizePatch(p entity.TransactionPatch) (entity.TransactionPatch, error) {
	if p.Quantity != nil && *p.Quantity < 0 {
		return p, domain.ErrInvalidInput
	}
	if p.Type != nil {
		t, ok := entity.ParseTransactionType(string(*p.Type))
		if !ok {
			return p, domain.ErrInvalidInput
		}
		p.Type = &t
	}
	return p, nil
}
