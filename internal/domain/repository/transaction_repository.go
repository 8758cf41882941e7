package repository

import (
	"time"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// TransactionFilter filtros de listado para auditoría y búsqueda.
type TransactionFilter struct {
	DriverUID string
	BranchID  string
	OilTypeID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository define el puerto de persistencia para transacciones.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	List(filter TransactionFilter) ([]*entity.Transaction, error)
	// ListBySession devuelve TODAS las transacciones que referencian la sesión
	// (la re-derivación del saldo nunca trabaja con subconjuntos).
	ListBySession(loadSessionID string) ([]*entity.Transaction, error)
	// UpdateEdited persiste los campos mutables con compare-and-swap sobre
	// last_edited_at: si la instantánea del editor quedó obsoleta retorna
	// domain.ErrConflict y no escribe nada.
	UpdateEdited(tx *entity.Transaction, expectedLastEditedAt *time.Time) error
}
