package entity

import "time"

// Branch representa una sucursal que recibe entregas de aceite.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
