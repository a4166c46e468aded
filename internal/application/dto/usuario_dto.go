package dto

import "time"

// CreateUsuarioRequest alta de empleado (nunca dueño; la empresa es la del caller).
type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=30"`
	Apellido string `json:"apellido" validate:"required,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUsuarioRequest actualización parcial. EsDueno y la empresa no son
// actualizables por diseño: no aparecen aquí.
type UpdateUsuarioRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=1,max=30"`
	Apellido *string `json:"apellido" validate:"omitempty,min=1,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Estado   *bool   `json:"estado"`
}

// UsuarioResponse salida de un usuario.
type UsuarioResponse struct {
	IDUsuario     int64     `json:"id_usuario"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Email         string    `json:"email"`
	EsDueno       bool      `json:"es_dueno"`
	Estado        bool      `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
	IDEmpresa     int64     `json:"id_empresa"`
}

// AssignRolesRequest reemplaza el conjunto de roles asignados a un usuario.
type AssignRolesRequest struct {
	RolesIDs []int64 `json:"roles_ids" validate:"required"`
}

// UsuarioConRolesResponse usuario con sus roles asignados.
type UsuarioConRolesResponse struct {
	IDUsuario int64     `json:"id_usuario"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Email     string    `json:"email"`
	EsDueno   bool      `json:"es_dueno"`
	Estado    bool      `json:"estado"`
	Roles     []RolInfo `json:"roles"`
}
