package report

import (
	"context"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// TransactionBookWriter genera el libro de transacciones (XLSX) para descarga.
// Implementado en infrastructure/excel.
type TransactionBookWriter interface {
	Write(txs []*entity.Transaction) ([]byte, error)
}

// StatementPDFGenerator genera el estado de cuenta de una sesión de carga:
// encabezado de la sesión, transacciones que la referencian y saldo derivado.
// Implementado en infrastructure/pdf.
type StatementPDFGenerator interface {
	Generate(ctx context.Context, session *entity.LoadSession, txs []*entity.Transaction) ([]byte, error)
}
