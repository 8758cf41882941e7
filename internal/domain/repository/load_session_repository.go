package repository

import "github.com/onedelivery/onedelivery-api/internal/domain/entity"

// LoadSessionRepository define el puerto de persistencia para sesiones de carga.
// Las sesiones nunca se eliminan (auditoría); solo se actualiza su estado/saldo.
type LoadSessionRepository interface {
	Create(s *entity.LoadSession) error
	GetByID(id string) (*entity.LoadSession, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para recalcular saldo dentro de una tx.
	GetForUpdate(id string) (*entity.LoadSession, error)
	Update(s *entity.LoadSession) error
	// ListActive lista sesiones con RemainingLiters > 0; driverUID vacío = todas.
	ListActive(driverUID string) ([]*entity.LoadSession, error)
	// FindActiveByDriverAndOilType devuelve la sesión activa más reciente del conductor
	// para ese tipo de aceite (plegado de cargas). nil si no hay.
	FindActiveByDriverAndOilType(driverUID, oilTypeID string) (*entity.LoadSession, error)
	// FindActiveByBranchAndOilType heurística para registros legados sin LoadSessionID:
	// sesión activa más reciente con esa sucursal y tipo de aceite. nil si no hay.
	FindActiveByBranchAndOilType(branchID, oilTypeID string) (*entity.LoadSession, error)
}
