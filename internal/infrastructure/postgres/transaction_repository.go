package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, transaction_no, type, driver_uid, driver_name, branch_id, branch_name,
	oil_type_id, oil_type_name, load_session_id, total_loaded_liters, oil_supplied_liters,
	actual_delivered_liters, start_meter_reading, end_meter_reading, status, created_at, last_edited_at`

// TransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransactionNo, t.Type, t.DriverUID, t.DriverName, t.BranchID, t.BranchName,
		t.OilTypeID, t.OilTypeName, nullIfEmpty(t.LoadSessionID),
		t.TotalLoadedLiters, t.OilSuppliedLiters, t.ActualDeliveredLiters,
		t.StartMeterReading, t.EndMeterReading, t.Status, t.CreatedAt, t.LastEditedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID; nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List lista transacciones según filtro, más recientes primero.
func (r *TransactionRepo) List(f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{}
	pos := 1
	add := func(cond string, v any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, v)
		pos++
	}
	if f.DriverUID != "" {
		add("driver_uid = $%d", f.DriverUID)
	}
	if f.BranchID != "" {
		add("branch_id = $%d", f.BranchID)
	}
	if f.OilTypeID != "" {
		add("oil_type_id = $%d", f.OilTypeID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListBySession devuelve todas las transacciones que referencian la sesión,
// en orden cronológico (insumo completo de la re-derivación del saldo).
func (r *TransactionRepo) ListBySession(loadSessionID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE load_session_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, loadSessionID)
	if err != nil {
		return nil, fmt.Errorf("list by session: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// UpdateEdited persiste los campos mutables con CAS sobre last_edited_at.
// Cero filas afectadas significa instantánea obsoleta: domain.ErrConflict.
func (r *TransactionRepo) UpdateEdited(t *entity.Transaction, expectedLastEditedAt *time.Time) error {
	query := `
		UPDATE transactions SET
			transaction_no = $2, branch_id = $3, branch_name = $4,
			oil_type_id = $5, oil_type_name = $6,
			total_loaded_liters = $7, oil_supplied_liters = $8, actual_delivered_liters = $9,
			start_meter_reading = $10, end_meter_reading = $11, status = $12,
			last_edited_at = $13
		WHERE id = $1 AND last_edited_at IS NOT DISTINCT FROM $14`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransactionNo, t.BranchID, t.BranchName, t.OilTypeID, t.OilTypeName,
		t.TotalLoadedLiters, t.OilSuppliedLiters, t.ActualDeliveredLiters,
		t.StartMeterReading, t.EndMeterReading, t.Status,
		t.LastEditedAt, expectedLastEditedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var loadSessionID *string
	err := row.Scan(
		&t.ID, &t.TransactionNo, &t.Type, &t.DriverUID, &t.DriverName, &t.BranchID, &t.BranchName,
		&t.OilTypeID, &t.OilTypeName, &loadSessionID,
		&t.TotalLoadedLiters, &t.OilSuppliedLiters, &t.ActualDeliveredLiters,
		&t.StartMeterReading, &t.EndMeterReading, &t.Status, &t.CreatedAt, &t.LastEditedAt,
	)
	if err != nil {
		return nil, err
	}
	if loadSessionID != nil {
		t.LoadSessionID = *loadSessionID
	}
	return &t, nil
}

func scanTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
