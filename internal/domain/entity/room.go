package entity

import "time"

// Room representa una habitación de la casa.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
