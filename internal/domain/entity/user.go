package entity

import "time"

// Roles válidos para User. El conjunto es cerrado: agregar un rol exige
// definir sus permisos en authz (no hay permiso implícito).
const (
	RoleAdmin  = "ADMIN"
	RoleMSME   = "MSME"
	RoleDriver = "DRIVER"
)

// Estados de un User. Solo ACTIVE puede autenticarse.
const (
	StatusPending   = "PENDING"
	StatusActive    = "ACTIVE"
	StatusRejected  = "REJECTED"
	StatusSuspended = "SUSPENDED"
)

// ValidRole informa si r pertenece al conjunto cerrado de roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleMSME, RoleDriver:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
// CompanyID es nullable solo durante la ventana previa a la primera
// asignación de empresa; un usuario ACTIVE siempre tiene empresa.
type User struct {
	ID            string
	CompanyID     *string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // ADMIN, MSME, DRIVER
	Status        string // PENDING, ACTIVE, REJECTED, SUSPENDED
	Phone         *string
	LicenseNumber *string // solo DRIVER
	Rating        float64 // solo DRIVER, default 5.0
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
