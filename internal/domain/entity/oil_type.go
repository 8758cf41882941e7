package entity

import "time"

// OilType representa un tipo de aceite manejado por la operación (referencia para formularios y filtros).
type OilType struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
