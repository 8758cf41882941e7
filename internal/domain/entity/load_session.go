package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de carga.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// LoadSession es el libro mayor de una carga: cuántos litros de un tipo de aceite
// cargó un conductor y cuánto queda por entregar. El saldo nunca se confía de
// forma incremental; se re-deriva del conjunto completo de transacciones que
// referencian la sesión (ver ledger.ComputeBalance).
//
// RemainingLiters puede ser negativo: es un estado válido pero marcado
// (sobregiro), no un error. Las sesiones nunca se eliminan; la historia se
// conserva para auditoría.
type LoadSession struct {
	ID                string
	DriverUID         string
	DriverName        string
	BranchID          string
	OilTypeID         string
	OilTypeName       string
	TotalLoadedLiters decimal.Decimal // >= 0
	RemainingLiters   decimal.Decimal // con signo; normalmente 0..TotalLoadedLiters
	LoadCount         int             // cargas plegadas en esta sesión
	Status            string          // active, completed, cancelled
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Overdrawn indica si se registraron más litros entregados que cargados.
func (s *LoadSession) Overdrawn() bool {
	return s.RemainingLiters.IsNegative()
}
