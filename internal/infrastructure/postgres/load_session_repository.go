package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

var _ repository.LoadSessionRepository = (*LoadSessionRepo)(nil)

const loadSessionColumns = `id, driver_uid, driver_name, branch_id, oil_type_id, oil_type_name,
	total_loaded_liters, remaining_liters, load_count, status, created_at, updated_at`

// LoadSessionRepo implementación sobre PostgreSQL (usable con pool o tx).
type LoadSessionRepo struct {
	q Querier
}

// NewLoadSessionRepository construye el adaptador.
func NewLoadSessionRepository(q Querier) *LoadSessionRepo {
	return &LoadSessionRepo{q: q}
}

// Create persiste una sesión de carga nueva.
func (r *LoadSessionRepo) Create(s *entity.LoadSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO load_sessions (` + loadSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.DriverUID, s.DriverName, s.BranchID, s.OilTypeID, s.OilTypeName,
		s.TotalLoadedLiters, s.RemainingLiters, s.LoadCount, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create load session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID; nil si no existe.
func (r *LoadSessionRepo) GetByID(id string) (*entity.LoadSession, error) {
	query := `SELECT ` + loadSessionColumns + ` FROM load_sessions WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila de la sesión dentro de la tx actual; así dos
// recálculos concurrentes del saldo se serializan en vez de pisarse.
func (r *LoadSessionRepo) GetForUpdate(id string) (*entity.LoadSession, error) {
	query := `SELECT ` + loadSessionColumns + ` FROM load_sessions WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// Update persiste saldo, contador de cargas y estado de la sesión.
func (r *LoadSessionRepo) Update(s *entity.LoadSession) error {
	query := `
		UPDATE load_sessions SET
			total_loaded_liters = $2, remaining_liters = $3, load_count = $4,
			status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.TotalLoadedLiters, s.RemainingLiters, s.LoadCount, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update load session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update load session: sesión %s no encontrada", s.ID)
	}
	return nil
}

// ListActive lista sesiones con litros pendientes, más recientes primero.
// driverUID vacío devuelve las de todos los conductores.
func (r *LoadSessionRepo) ListActive(driverUID string) ([]*entity.LoadSession, error) {
	query := `SELECT ` + loadSessionColumns + ` FROM load_sessions
		WHERE remaining_liters > 0 AND status != 'cancelled'`
	args := []any{}
	if driverUID != "" {
		query += ` AND driver_uid = $1`
		args = append(args, driverUID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()
	return scanLoadSessions(rows)
}

// FindActiveByDriverAndOilType devuelve la sesión activa más reciente del
// conductor para ese tipo de aceite; nil si no existe (se creará una nueva).
func (r *LoadSessionRepo) FindActiveByDriverAndOilType(driverUID, oilTypeID string) (*entity.LoadSession, error) {
	query := `SELECT ` + loadSessionColumns + ` FROM load_sessions
		WHERE driver_uid = $1 AND oil_type_id = $2 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	return r.getOne(query, driverUID, oilTypeID)
}

// FindActiveByBranchAndOilType busca la sesión activa más reciente por sucursal
// y tipo de aceite; heurística para transacciones antiguas sin sesión asociada.
func (r *LoadSessionRepo) FindActiveByBranchAndOilType(branchID, oilTypeID string) (*entity.LoadSession, error) {
	query := `SELECT ` + loadSessionColumns + ` FROM load_sessions
		WHERE branch_id = $1 AND oil_type_id = $2 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	return r.getOne(query, branchID, oilTypeID)
}

func (r *LoadSessionRepo) getOne(query string, args ...any) (*entity.LoadSession, error) {
	s, err := scanLoadSession(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get load session: %w", err)
	}
	return s, nil
}

func scanLoadSession(row pgx.Row) (*entity.LoadSession, error) {
	var s entity.LoadSession
	err := row.Scan(
		&s.ID, &s.DriverUID, &s.DriverName, &s.BranchID, &s.OilTypeID, &s.OilTypeName,
		&s.TotalLoadedLiters, &s.RemainingLiters, &s.LoadCount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanLoadSessions(rows pgx.Rows) ([]*entity.LoadSession, error) {
	var list []*entity.LoadSession
	for rows.Next() {
		s, err := scanLoadSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan load session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
