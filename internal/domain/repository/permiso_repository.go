package repository

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/domain/entity"
)

// PermisoRepository define el puerto de persistencia para Permiso.
type PermisoRepository interface {
	Create(ctx context.Context, permiso *entity.Permiso) error
	GetByID(ctx context.Context, id int64) (*entity.Permiso, error)
	GetByAccionRecurso(ctx context.Context, accion, recurso string) (*entity.Permiso, error)
	List(ctx context.Context) ([]*entity.Permiso, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Permiso, error)
	ListByRol(ctx context.Context, idRol int64) ([]*entity.Permiso, error)
	// ListByRoles carga los permisos alcanzables desde un conjunto de roles.
	// Puede devolver repetidos; el dedup por IDPermiso lo hace authz.NewPrincipal.
	ListByRoles(ctx context.Context, idsRoles []int64) ([]*entity.Permiso, error)
	Update(ctx context.Context, permiso *entity.Permiso) error
	// CountRolesUsing cuenta filas de roles_permisos que referencian el permiso.
	CountRolesUsing(ctx context.Context, idPermiso int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
