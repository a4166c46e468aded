package repository

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	GetByIDAndEmpresa(ctx context.Context, id, idEmpresa int64) (*entity.Usuario, error)
	// GetByAuthUID busca por la identidad externa emitida por el proveedor.
	GetByAuthUID(ctx context.Context, authUID string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, usuario *entity.Usuario) error
	// ListEmpleados lista los usuarios no dueños de una empresa.
	ListEmpleados(ctx context.Context, idEmpresa int64, limit, offset int) ([]*entity.Usuario, error)

	// Asignaciones usuario-rol (tabla usuarios_roles).
	ListRoles(ctx context.Context, idUsuario int64) ([]*entity.Rol, error)
	// ListRolesByEmpresa filtra además por la empresa del rol: defensa ante
	// vínculos obsoletos o cruzados entre empresas.
	ListRolesByEmpresa(ctx context.Context, idUsuario, idEmpresa int64) ([]*entity.Rol, error)
	ReplaceRoles(ctx context.Context, idUsuario int64, idsRoles []int64) error
	RemoveRol(ctx context.Context, idUsuario, idRol int64) (bool, error)
}
