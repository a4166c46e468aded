package dto

// CreatePermisoRequest alta de permiso global.
type CreatePermisoRequest struct {
	Accion  string `json:"accion" validate:"required,max=30"`
	Recurso string `json:"recurso" validate:"required,max=30"`
}

// UpdatePermisoRequest actualización parcial de un permiso.
type UpdatePermisoRequest struct {
	Accion  *string `json:"accion" validate:"omitempty,min=1,max=30"`
	Recurso *string `json:"recurso" validate:"omitempty,min=1,max=30"`
}

// PermisoResponse salida de un permiso.
type PermisoResponse struct {
	IDPermiso int64  `json:"id_permiso"`
	Accion    string `json:"accion"`
	Recurso   string `json:"recurso"`
}
