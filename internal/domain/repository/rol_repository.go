package repository

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/domain/entity"
)

// RolRepository define el puerto de persistencia para Rol y sus vínculos.
type RolRepository interface {
	Create(ctx context.Context, rol *entity.Rol) error
	GetByIDAndEmpresa(ctx context.Context, id, idEmpresa int64) (*entity.Rol, error)
	GetByNombreAndEmpresa(ctx context.Context, nombre string, idEmpresa int64) (*entity.Rol, error)
	ListByEmpresa(ctx context.Context, idEmpresa int64) ([]*entity.Rol, error)
	// ListByIDsAndEmpresa devuelve solo los roles que existen y pertenecen a la empresa.
	ListByIDsAndEmpresa(ctx context.Context, ids []int64, idEmpresa int64) ([]*entity.Rol, error)
	Update(ctx context.Context, rol *entity.Rol) error
	// Delete elimina el rol; los vínculos se eliminan aparte dentro de la misma tx.
	Delete(ctx context.Context, id int64) error

	// Vínculos rol-permiso (tabla roles_permisos).
	AddPermisos(ctx context.Context, idRol int64, idsPermisos []int64) error
	RemovePermisos(ctx context.Context, idRol int64) error
	// RemoveAsignaciones elimina las filas de usuarios_roles del rol.
	RemoveAsignaciones(ctx context.Context, idRol int64) error
}
