package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo registro de transacciones sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, item_id, type, quantity, note, created_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var typ string
	if err := row.Scan(&t.ID, &t.ItemID, &typ, &t.Quantity, &t.Note, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(typ)
	return &t, nil
}

// Create inserta la transacción; asigna ID y created_at.
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	if !isUUID(txn.ItemID) {
		return domain.ErrNotFound
	}
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, item_id, type, quantity, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, txn.ID, txn.ItemID, string(txn.Type), txn.Quantity, nullIfEmpty(txn.Note)).
		Scan(&txn.CreatedAt)
	if err != nil {
		return mapError("insert transaction", err)
	}
	return nil
}

func (r *TransactionRepo) get(ctx context.Context, op, query, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return t, nil
}

// GetByID obtiene una transacción; nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.get(ctx, "get transaction",
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.get(ctx, "get transaction for update",
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

// Patch actualiza solo los campos presentes. Nota vacía = borrar la nota.
func (r *TransactionRepo) Patch(ctx context.Context, id string, patch entity.TransactionPatch) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	var typ *string
	if patch.Type != nil {
		s := string(*patch.Type)
		typ = &s
	}
	query := `
		UPDATE transactions SET
			type     = COALESCE($2, type),
			quantity = COALESCE($3, quantity),
			note     = CASE WHEN $4::boolean THEN NULLIF($5, '') ELSE note END
		WHERE id = $1`
	var note string
	if patch.Note != nil {
		note = *patch.Note
	}
	cmd, err := r.q.Exec(ctx, query, id, typ, patch.Quantity, patch.Note != nil, note)
	if err != nil {
		return mapError("patch transaction", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la transacción y devuelve las filas afectadas.
func (r *TransactionRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return 0, mapError("delete transaction", err)
	}
	return cmd.RowsAffected(), nil
}

// List transacciones más recientes primero, opcionalmente de un artículo.
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	if !validRef(filter.ItemID) {
		return []*entity.Transaction{}, nil
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1::uuid IS NULL OR item_id = $1::uuid)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	var lim any
	if limit > 0 {
		lim = limit
	}
	return r.list(ctx, "list transactions", query, filter.ItemID, lim, offset)
}

// ListAllByItem historial completo de un artículo (auditoría).
func (r *TransactionRepo) ListAllByItem(ctx context.Context, itemID string) ([]*entity.Transaction, error) {
	if !isUUID(itemID) {
		return []*entity.Transaction{}, nil
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE item_id = $1
		ORDER BY created_at DESC, id`
	return r.list(ctx, "list item transactions", query, itemID)
}

func (r *TransactionRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}
