package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "Admin"
	RoleCreator = "Creador"
	RoleAnalyst = "Analista"
)

// Estados de User.
const (
	UserActive   = "Activo"
	UserInactive = "Inactivo"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           int64
	CompanyID    int64
	CompanyName  string // solo lectura, se resuelve al listar
	Email        string
	PasswordHash string // bcrypt; valores heredados en texto plano se rehashean al iniciar sesión
	FirstName    string
	LastName     string
	Role         string // Admin, Creador, Analista
	Status       string // Activo, Inactivo
	CreatedAt    time.Time
}

// FullName nombre y apellido separados por espacio.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCreator, RoleAnalyst:
		return true
	}
	return false
}
