package entity

import "time"

// InventoryLevel representa la cantidad actual de un artículo.
// Derivado de las transacciones pero mantenido de forma incremental; nunca negativo.
type InventoryLevel struct {
	ItemID    string
	Quantity  int64
	UpdatedAt time.Time
}
