package dto

import "time"

// UserRequest entrada para crear o actualizar un usuario.
// Password vacío: al crear se asigna la contraseña temporal; al actualizar se conserva.
type UserRequest struct {
	EmpresaID int64  `json:"empresaID" validate:"omitempty,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Nombre    string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido  string `json:"apellido" validate:"omitempty,max=100"`
	Rol       string `json:"rol" validate:"required,oneof=Admin Creador Analista"`
	Estado    string `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
}

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	EmpresaID int64  `query:"empresaID"`
	Estado    string `query:"estado"` // Todos, Activo, Inactivo
	Q         string `query:"q"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	UsuarioID     int64     `json:"usuarioID"`
	EmpresaID     int64     `json:"empresaID"`
	EmpresaNombre string    `json:"empresaNombre"`
	Email         string    `json:"email"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Rol           string    `json:"rol"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// UserStats contadores sobre el conjunto listado.
type UserStats struct {
	Total     int `json:"total"`
	Activos   int `json:"activos"`
	Admins    int `json:"admins"`
	Creadores int `json:"creadores"`
	Analistas int `json:"analistas"`
}

// UserListResponse lista de usuarios visibles con estadísticas.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Stats UserStats      `json:"stats"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y usuario autenticado (con nombre de empresa).
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"` // segundos
	Usuario   UserResponse `json:"usuario"`
}
