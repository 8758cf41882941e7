package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// BranchUseCase datos de referencia de sucursales para formularios y filtros.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create registra una sucursal.
func (uc *BranchUseCase) Create(in dto.BranchRequest) (*entity.Branch, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// List devuelve todas las sucursales.
func (uc *BranchUseCase) List() ([]*entity.Branch, error) {
	return uc.repo.List()
}

// GetByID devuelve una sucursal o ErrNotFound.
func (uc *BranchUseCase) GetByID(id string) (*entity.Branch, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
