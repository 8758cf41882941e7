package repository

import "github.com/onedelivery/onedelivery-api/internal/domain/entity"

// BranchRepository define el puerto para sucursales (datos de referencia).
type BranchRepository interface {
	Create(b *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	List() ([]*entity.Branch, error)
}
