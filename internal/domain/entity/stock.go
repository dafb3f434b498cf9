package entity

import "time"

// Stock cantidad de un artículo en una ubicación (LocationID nil = sin ubicación).
type Stock struct {
	ID         string
	ItemID     string
	LocationID *string
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockDetail stock con los nombres ya resueltos para listados.
type StockDetail struct {
	Stock
	ItemName     string
	Barcode      *string
	CategoryID   *string
	CategoryName *string
	LocationName *string
}
