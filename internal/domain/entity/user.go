package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleDriver    = "driver"
	RoleBranch    = "branch"
	RoleWarehouse = "warehouse"
)

// ValidRole indica si el rol es uno de los cuatro dashboards de la aplicación.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDriver, RoleBranch, RoleWarehouse:
		return true
	}
	return false
}

// User representa un usuario del sistema. Los roles branch y warehouse
// quedan atados a una sucursal concreta vía BranchID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, driver, branch, warehouse
	BranchID     string // vacío para admin y driver
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
