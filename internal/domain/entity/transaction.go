package entity

import (
	"strings"
	"time"
)

// TransactionType tipo cerrado de movimiento de stock.
type TransactionType string

// Tipos de transacción.
const (
	TransactionTypeIn  TransactionType = "IN"  // entrada
	TransactionTypeOut TransactionType = "OUT" // salida
)

// ParseTransactionType normaliza el tipo sin distinguir mayúsculas ("in", "In", "IN").
// Devuelve false si el valor no es IN ni OUT.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TransactionTypeIn):
		return TransactionTypeIn, true
	case string(TransactionTypeOut):
		return TransactionTypeOut, true
	}
	return "", false
}

// Transaction registro de un movimiento de stock (entrada o salida) de un artículo.
type Transaction struct {
	ID        string
	ItemID    string
	Type      TransactionType
	Quantity  int64 // magnitud, siempre >= 0
	Note      *string
	CreatedAt time.Time // se asigna al crear y no cambia
}

// NewTransaction datos para crear una transacción (sin ID ni CreatedAt).
type NewTransaction struct {
	ItemID   string
	Type     TransactionType
	Quantity int64
	Note     *string
}

// TransactionPatch cambios parciales sobre una transacción. nil = campo no enviado.
type TransactionPatch struct {
	Type     *TransactionType
	Quantity *int64
	Note     *string
}

// TouchesEffect indica si el patch modifica tipo o cantidad (y por tanto el inventario).
func (p TransactionPatch) TouchesEffect() bool {
	return p.Type != nil || p.Quantity != nil
}

// IsEmpty true si el patch no trae ningún campo.
func (p TransactionPatch) IsEmpty() bool {
	return p.Type == nil && p.Quantity == nil && p.Note == nil
}
