package dto

// CreateRolRequest alta de rol. Puede referenciar permisos existentes por id
// y/o pedir la creación de pares (accion, recurso) nuevos; si el par ya
// existe se reutiliza en lugar de duplicarse.
type CreateRolRequest struct {
	Nombre         string                 `json:"nombre" validate:"required,max=30"`
	Descripcion    string                 `json:"descripcion" validate:"omitempty,max=300"`
	PermisosIDs    []int64                `json:"permisos_ids"`
	PermisosNuevos []CreatePermisoRequest `json:"permisos_nuevos"`
}

// UpdateRolRequest actualización parcial. PermisosIDs nil = no tocar vínculos;
// lista vacía = dejar el rol sin permisos.
type UpdateRolRequest struct {
	Nombre      *string  `json:"nombre" validate:"omitempty,min=1,max=30"`
	Descripcion *string  `json:"descripcion" validate:"omitempty,max=300"`
	PermisosIDs *[]int64 `json:"permisos_ids"`
}

// RolResponse salida de un rol con sus permisos.
type RolResponse struct {
	IDRol       int64         `json:"id_rol"`
	Nombre      string        `json:"nombre"`
	Descripcion string        `json:"descripcion,omitempty"`
	IDEmpresa   int64         `json:"id_empresa"`
	Permisos    []PermisoInfo `json:"permisos"`
}
