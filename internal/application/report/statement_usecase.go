package report

import (
	"context"

	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// StatementUseCase genera el estado de cuenta PDF de una sesión de carga
// (papelería de entrega para el conductor/sucursal).
type StatementUseCase struct {
	sessions     repository.LoadSessionRepository
	transactions repository.TransactionRepository
	pdf          StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(
	sessions repository.LoadSessionRepository,
	transactions repository.TransactionRepository,
	pdf StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{sessions: sessions, transactions: transactions, pdf: pdf}
}

// SessionStatementPDF devuelve los bytes del PDF o ErrNotFound si la sesión no existe.
func (uc *StatementUseCase) SessionStatementPDF(ctx context.Context, sessionID string) ([]byte, error) {
	sess, err := uc.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.transactions.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(ctx, sess, txs)
}
