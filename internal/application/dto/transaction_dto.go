package dto

import (
	"time"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// CreateTransactionRequest body de POST /v1/transactions.
type CreateTransactionRequest struct {
	ItemID   string  `json:"item_id"`
	Type     string  `json:"type"` // IN | OUT, sin distinguir mayúsculas
	Quantity *int64  `json:"quantity"`
	Note     *string `json:"note"`
}

// UpdateTransactionRequest body de PUT /v1/transactions/:id. Campos ausentes no cambian.
type UpdateTransactionRequest struct {
	Type     *string `json:"type"`
	Quantity *int64  `json:"quantity"`
	Note     *string `json:"note"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ToPatch convierte la petición en patch de dominio. El tipo se valida en el motor.
func (r UpdateTransactionRequest) ToPatch() entity.TransactionPatch {
	var p entity.TransactionPatch
	if r.Type != nil {
		t := entity.TransactionType(*r.Type)
		p.Type = &t
	}
	p.Quantity = r.Quantity
	p.Note = r.Note
	return p
}

// ToTransactionResponse mapea la entidad.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		Type:      string(t.Type),
		Quantity:  t.Quantity,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}

// ToTransactionList mapea una página de transacciones.
func ToTransactionList(list []*entity.Transaction, page PageRequest) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, ToTransactionResponse(t))
	}
	return TransactionListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
