package ledger

import (
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro mayor: sesiones
// activas, transacciones filtradas e historial de auditoría.
type QueryUseCase struct {
	transactions repository.TransactionRepository
	sessions     repository.LoadSessionRepository
	history      repository.EditHistoryRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	transactions repository.TransactionRepository,
	sessions repository.LoadSessionRepository,
	history repository.EditHistoryRepository,
) *QueryUseCase {
	return &QueryUseCase{transactions: transactions, sessions: sessions, history: history}
}

// ActiveSessions lista sesiones con saldo restante > 0; driverUID vacío = todas.
func (uc *QueryUseCase) ActiveSessions(driverUID string) ([]*entity.LoadSession, error) {
	return uc.sessions.ListActive(driverUID)
}

// SessionByID devuelve una sesión o ErrNotFound.
func (uc *QueryUseCase) SessionByID(id string) (*entity.LoadSession, error) {
	sess, err := uc.sessions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// Transactions lista transacciones para auditoría/búsqueda.
func (uc *QueryUseCase) Transactions(f repository.TransactionFilter) ([]*entity.Transaction, error) {
	return uc.transactions.List(f)
}

// TransactionHistory lista el historial de ediciones, más recientes primero.
func (uc *QueryUseCase) TransactionHistory(transactionID string) ([]*entity.EditHistoryEntry, error) {
	tx, err := uc.transactions.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return uc.history.ListByTransaction(transactionID)
}
