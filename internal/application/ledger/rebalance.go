package ledger

import (
	"time"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// rebalanceSession re-deriva el saldo de la sesión desde el conjunto completo
// de transacciones e historial, bajo bloqueo de fila (SELECT FOR UPDATE).
// Debe ejecutarse con repositorios atados a la misma transacción de BD que la
// mutación que lo provocó.
func rebalanceSession(
	txRepo repository.TransactionRepository,
	sessionRepo repository.LoadSessionRepository,
	historyRepo repository.EditHistoryRepository,
	sessionID string,
	now time.Time,
) (*entity.LoadSession, error) {
	sess, err := sessionRepo.GetForUpdate(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	txs, err := txRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	history, err := historyRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	bal := ledger.ComputeBalance(sess.Status, txs, history)
	ledger.Apply(sess, bal, now)
	if err := sessionRepo.Update(sess); err != nil {
		return nil, err
	}
	return sess, nil
}
