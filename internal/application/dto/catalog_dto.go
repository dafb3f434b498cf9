package dto

import "time"

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Name         string  `json:"name"`
	Barcode      *string `json:"barcode"`
	CategoryID   *string `json:"category_id"`
	Note         *string `json:"note"`
	MinThreshold *int64  `json:"min_threshold"` // omitido = 1
}

// UpdateItemRequest actualización parcial. Cadena vacía en barcode/category_id/note = quitar.
type UpdateItemRequest struct {
	Name         *string `json:"name"`
	Barcode      *string `json:"barcode"`
	CategoryID   *string `json:"category_id"`
	Note         *string `json:"note"`
	MinThreshold *int64  `json:"min_threshold"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID           string            `json:"id"`
	Barcode      *string           `json:"barcode"`
	Name         string            `json:"name"`
	CategoryID   *string           `json:"category_id"`
	Category     *CategoryResponse `json:"category,omitempty"`
	Note         *string           `json:"note"`
	MinThreshold int64             `json:"min_threshold"`
	Quantity     *int64            `json:"quantity,omitempty"` // solo en GET /items/:id
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NameRequest entrada de categorías y habitaciones.
type NameRequest struct {
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RoomResponse salida de una habitación.
type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationRequest entrada para crear o actualizar una ubicación.
type LocationRequest struct {
	Name   *string `json:"name"`
	RoomID *string `json:"room_id"` // vacío = sin habitación
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RoomID    *string   `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
