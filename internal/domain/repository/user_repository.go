package repository

import "github.com/onedelivery/onedelivery-api/internal/domain/entity"

// UserRepository define el puerto para usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
