package repository

import "github.com/onedelivery/onedelivery-api/internal/domain/entity"

// OilTypeRepository define el puerto para tipos de aceite (datos de referencia).
type OilTypeRepository interface {
	Create(o *entity.OilType) error
	GetByID(id string) (*entity.OilType, error)
	List() ([]*entity.OilType, error)
}
