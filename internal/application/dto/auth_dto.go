package dto

// RegisterOwnerRequest alta de dueño + empresa en una sola operación.
type RegisterOwnerRequest struct {
	Nombre        string `json:"nombre" validate:"required,max=30"`
	Apellido      string `json:"apellido" validate:"required,max=30"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	NombreEmpresa string `json:"nombre_empresa" validate:"required,max=30"`
	RazonSocial   string `json:"razon_social" validate:"required,max=20"`
	NIT           string `json:"nit" validate:"required,max=20"`
	Telefono      string `json:"telefono" validate:"omitempty,max=15"`
	EmailEmpresa  string `json:"email_empresa" validate:"omitempty,email,max=50"`
	Direccion     string `json:"direccion" validate:"omitempty,max=300"`
}

// RegisterOwnerResponse resultado del registro.
type RegisterOwnerResponse struct {
	IDUsuario     int64  `json:"id_usuario"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	Email         string `json:"email"`
	EsDueno       bool   `json:"es_dueno"`
	IDEmpresa     int64  `json:"id_empresa"`
	NombreEmpresa string `json:"nombre_empresa"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida de login: el principal completo resuelto.
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UserResponse es el principal autenticado tal y como lo ven los consumidores.
type UserResponse struct {
	IDUsuario int64         `json:"id_usuario"`
	Nombre    string        `json:"nombre"`
	Apellido  string        `json:"apellido"`
	Email     string        `json:"email"`
	EsDueno   bool          `json:"es_dueno"`
	Empresa   EmpresaInfo   `json:"empresa"`
	Roles     []RolInfo     `json:"roles"`
	Permisos  []PermisoInfo `json:"permisos"`
}

// EmpresaInfo resumen de empresa dentro del principal.
type EmpresaInfo struct {
	IDEmpresa   int64  `json:"id_empresa"`
	Nombre      string `json:"nombre"`
	RazonSocial string `json:"razon_social"`
	NIT         string `json:"nit"`
}

// RolInfo resumen de rol dentro del principal.
type RolInfo struct {
	IDRol       int64  `json:"id_rol"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// PermisoInfo resumen de permiso dentro del principal.
type PermisoInfo struct {
	IDPermiso int64  `json:"id_permiso"`
	Accion    string `json:"accion"`
	Recurso   string `json:"recurso"`
}
