package report

import (
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// ExportUseCase exporta el libro de transacciones filtrado como XLSX.
type ExportUseCase struct {
	transactions repository.TransactionRepository
	writer       TransactionBookWriter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(transactions repository.TransactionRepository, writer TransactionBookWriter) *ExportUseCase {
	return &ExportUseCase{transactions: transactions, writer: writer}
}

// TransactionsXLSX lista las transacciones según el filtro y devuelve los bytes del archivo.
func (uc *ExportUseCase) TransactionsXLSX(f repository.TransactionFilter) ([]byte, error) {
	txs, err := uc.transactions.List(f)
	if err != nil {
		return nil, err
	}
	return uc.writer.Write(txs)
}
