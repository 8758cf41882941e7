package repository

import "github.com/onedelivery/onedelivery-api/internal/domain/entity"

// EditHistoryRepository define el puerto para el historial de ediciones (append-only).
// No hay Update ni Delete: las entradas son inmutables.
type EditHistoryRepository interface {
	Create(e *entity.EditHistoryEntry) error
	// ListByTransaction devuelve las entradas de una transacción, más recientes primero.
	ListByTransaction(transactionID string) ([]*entity.EditHistoryEntry, error)
	// ListBySession devuelve las entradas de todas las transacciones que referencian
	// la sesión; insumo de los offsets en la re-derivación del saldo.
	ListBySession(loadSessionID string) ([]*entity.EditHistoryEntry, error)
}
