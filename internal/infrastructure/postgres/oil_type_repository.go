package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

var _ repository.OilTypeRepository = (*OilTypeRepo)(nil)

// OilTypeRepo implementación sobre PostgreSQL.
type OilTypeRepo struct {
	q Querier
}

// NewOilTypeRepository construye el adaptador.
func NewOilTypeRepository(q Querier) *OilTypeRepo {
	return &OilTypeRepo{q: q}
}

// Create persiste un tipo de aceite.
func (r *OilTypeRepo) Create(o *entity.OilType) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO oil_types (id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Name, o.Active, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create oil type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de aceite por ID; nil si no existe.
func (r *OilTypeRepo) GetByID(id string) (*entity.OilType, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM oil_types WHERE id = $1`
	var o entity.OilType
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&o.ID, &o.Name, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oil type: %w", err)
	}
	return &o, nil
}

// List devuelve todos los tipos de aceite ordenados por nombre.
func (r *OilTypeRepo) List() ([]*entity.OilType, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM oil_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list oil types: %w", err)
	}
	defer rows.Close()

	var list []*entity.OilType
	for rows.Next() {
		var o entity.OilType
		if err := rows.Scan(&o.ID, &o.Name, &o.Active, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan oil type: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
