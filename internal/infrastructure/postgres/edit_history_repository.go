package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

var _ repository.EditHistoryRepository = (*EditHistoryRepo)(nil)

const editHistoryColumns = `id, transaction_id, edited_by, edited_by_name, edited_at, reason,
	changes, inventory_adjustment, manual_adjustment_liters`

// EditHistoryRepo implementación sobre PostgreSQL. El historial es append-only:
// no existen Update ni Delete a propósito.
type EditHistoryRepo struct {
	q Querier
}

// NewEditHistoryRepository construye el adaptador.
func NewEditHistoryRepository(q Querier) *EditHistoryRepo {
	return &EditHistoryRepo{q: q}
}

// Create inserta una entrada de auditoría. El diff se guarda como JSONB.
func (r *EditHistoryRepo) Create(e *entity.EditHistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	query := `
		INSERT INTO transaction_edit_history (` + editHistoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		e.ID, e.TransactionID, e.EditedBy, e.EditedByName, e.EditedAt, e.Reason,
		changes, e.InventoryAdjustment, e.ManualAdjustmentLiters,
	)
	if err != nil {
		return fmt.Errorf("create edit history: %w", err)
	}
	return nil
}

// ListByTransaction devuelve las entradas de una transacción, más recientes primero.
func (r *EditHistoryRepo) ListByTransaction(transactionID string) ([]*entity.EditHistoryEntry, error) {
	query := `SELECT ` + editHistoryColumns + ` FROM transaction_edit_history
		WHERE transaction_id = $1 ORDER BY edited_at DESC`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list edit history: %w", err)
	}
	defer rows.Close()
	return scanEditHistory(rows)
}

// ListBySession devuelve, en orden cronológico, las entradas de todas las
// transacciones que referencian la sesión; de aquí salen los offsets manual/none
// que la re-derivación del saldo debe respetar.
func (r *EditHistoryRepo) ListBySession(loadSessionID string) ([]*entity.EditHistoryEntry, error) {
	query := `SELECT h.id, h.transaction_id, h.edited_by, h.edited_by_name, h.edited_at, h.reason,
			h.changes, h.inventory_adjustment, h.manual_adjustment_liters
		FROM transaction_edit_history h
		JOIN transactions t ON t.id = h.transaction_id
		WHERE t.load_session_id = $1
		ORDER BY h.edited_at ASC`
	rows, err := r.q.Query(context.Background(), query, loadSessionID)
	if err != nil {
		return nil, fmt.Errorf("list edit history by session: %w", err)
	}
	defer rows.Close()
	return scanEditHistory(rows)
}

func scanEditHistory(rows pgx.Rows) ([]*entity.EditHistoryEntry, error) {
	var list []*entity.EditHistoryEntry
	for rows.Next() {
		var e entity.EditHistoryEntry
		var changes []byte
		err := rows.Scan(
			&e.ID, &e.TransactionID, &e.EditedBy, &e.EditedByName, &e.EditedAt, &e.Reason,
			&changes, &e.InventoryAdjustment, &e.ManualAdjustmentLiters,
		)
		if err != nil {
			return nil, fmt.Errorf("scan edit history: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal changes: %w", err)
			}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
