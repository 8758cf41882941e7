package ledger

import (
	"context"

	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el update de la transacción, el
// append de auditoría y el recálculo del saldo de la sesión se confirman o se
// revierten juntos: nunca quedan escrituras parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		sessionRepo repository.LoadSessionRepository,
		historyRepo repository.EditHistoryRepository,
	) error) error
}
