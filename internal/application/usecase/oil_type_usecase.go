package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// OilTypeUseCase datos de referencia de tipos de aceite.
type OilTypeUseCase struct {
	repo repository.OilTypeRepository
}

// NewOilTypeUseCase construye el caso de uso.
func NewOilTypeUseCase(repo repository.OilTypeRepository) *OilTypeUseCase {
	return &OilTypeUseCase{repo: repo}
}

// Create registra un tipo de aceite.
func (uc *OilTypeUseCase) Create(in dto.OilTypeRequest) (*entity.OilType, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	o := &entity.OilType{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

// List devuelve todos los tipos de aceite.
func (uc *OilTypeUseCase) List() ([]*entity.OilType, error) {
	return uc.repo.List()
}

// GetByID devuelve un tipo de aceite o ErrNotFound.
func (uc *OilTypeUseCase) GetByID(id string) (*entity.OilType, error) {
	o, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}
