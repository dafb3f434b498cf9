package entity

import "time"

// Location lugar concreto donde se guarda stock (estante, cajón...). Opcionalmente dentro de una Room.
type Location struct {
	ID        string
	Name      string
	RoomID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
