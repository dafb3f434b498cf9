package entity

import "time"

// DefaultMinThreshold umbral mínimo por defecto de un artículo.
const DefaultMinThreshold = 1

// Item representa un artículo del hogar. Barcode es único cuando existe.
type Item struct {
	ID           string
	Barcode      *string
	Name         string // puede estar vacío si se creó desde el escáner
	CategoryID   *string
	Note         *string
	MinThreshold int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
