package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// RolUseCase reglas de negocio para roles y sus vínculos con permisos.
//
// Cablear permisos a un rol exige permisos propios sobre el recurso
// roles_permisos, distintos de los permisos sobre roles: crear roles no
// otorga implícitamente el derecho de conectarles permisos (defensa contra
// escalada de privilegios vía creación de roles).
type RolUseCase struct {
	rolRepo     repository.RolRepository
	permisoRepo repository.PermisoRepository
	tx          TxRunner
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(rolRepo repository.RolRepository, permisoRepo repository.PermisoRepository, tx TxRunner) *RolUseCase {
	return &RolUseCase{rolRepo: rolRepo, permisoRepo: permisoRepo, tx: tx}
}

// Create crea un rol en la empresa del principal, opcionalmente con permisos
// existentes (por id) y/o pares nuevos (get-or-create por accion+recurso).
// Rol, permisos nuevos y vínculos se escriben en una sola transacción.
func (uc *RolUseCase) Create(ctx context.Context, principal *authz.Principal, in dto.CreateRolRequest) (*dto.RolResponse, error) {
	idEmpresa := principal.Empresa.IDEmpresa

	existing, err := uc.rolRepo.GetByNombreAndEmpresa(ctx, in.Nombre, idEmpresa)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	vaALinkear := len(in.PermisosIDs) > 0 || len(in.PermisosNuevos) > 0
	if vaALinkear && !principal.Puede("create", "roles_permisos") {
		return nil, fmt.Errorf("%w: create sobre roles_permisos", domain.ErrPermisoDenegado)
	}

	var rol *entity.Rol
	err = uc.tx.RunRBAC(ctx, func(rolRepo repository.RolRepository, permisoRepo repository.PermisoRepository, _ repository.UsuarioRepository) error {
		// Pares nuevos: reutilizar si el (accion, recurso) ya existe.
		idsNuevos := make([]int64, 0, len(in.PermisosNuevos))
		for _, pn := range in.PermisosNuevos {
			p, err := permisoRepo.GetByAccionRecurso(ctx, pn.Accion, pn.Recurso)
			if err != nil {
				return err
			}
			if p == nil {
				p = &entity.Permiso{Accion: pn.Accion, Recurso: pn.Recurso}
				if err := permisoRepo.Create(ctx, p); err != nil {
					return err
				}
			}
			idsNuevos = append(idsNuevos, p.IDPermiso)
		}

		todos := dedupeIDs(append(append([]int64{}, in.PermisosIDs...), idsNuevos...))
		if len(todos) > 0 {
			encontrados, err := permisoRepo.ListByIDs(ctx, todos)
			if err != nil {
				return err
			}
			if len(encontrados) != len(todos) {
				return fmt.Errorf("%w: algunos permisos no existen", domain.ErrNotFound)
			}
		}

		rol = &entity.Rol{
			Nombre:      in.Nombre,
			Descripcion: in.Descripcion,
			IDEmpresa:   idEmpresa,
		}
		if err := rolRepo.Create(ctx, rol); err != nil {
			return err
		}
		if len(todos) > 0 {
			return rolRepo.AddPermisos(ctx, rol.IDRol, todos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toRolResponse(ctx, rol)
}

// List lista los roles de la empresa con sus permisos.
func (uc *RolUseCase) List(ctx context.Context, idEmpresa int64) ([]dto.RolResponse, error) {
	roles, err := uc.rolRepo.ListByEmpresa(ctx, idEmpresa)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RolResponse, 0, len(roles))
	for _, rol := range roles {
		resp, err := uc.toRolResponse(ctx, rol)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

// Update actualiza nombre/descripción y, si PermisosIDs viene presente,
// reemplaza el conjunto de permisos del rol. El reemplazo exige update,
// delete y create sobre roles_permisos.
func (uc *RolUseCase) Update(ctx context.Context, principal *authz.Principal, idRol int64, in dto.UpdateRolRequest) (*dto.RolResponse, error) {
	idEmpresa := principal.Empresa.IDEmpresa

	rol, err := uc.rolRepo.GetByIDAndEmpresa(ctx, idRol, idEmpresa)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != nil && *in.Nombre != rol.Nombre {
		otro, err := uc.rolRepo.GetByNombreAndEmpresa(ctx, *in.Nombre, idEmpresa)
		if err != nil {
			return nil, err
		}
		if otro != nil {
			return nil, domain.ErrConflict
		}
		rol.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		rol.Descripcion = *in.Descripcion
	}

	if in.PermisosIDs != nil {
		if !principal.Puede("update", "roles_permisos") {
			return nil, fmt.Errorf("%w: update sobre roles_permisos", domain.ErrPermisoDenegado)
		}
		if !principal.Puede("delete", "roles_permisos") {
			return nil, fmt.Errorf("%w: delete sobre roles_permisos", domain.ErrPermisoDenegado)
		}
		nuevos := dedupeIDs(*in.PermisosIDs)
		if len(nuevos) > 0 {
			if !principal.Puede("create", "roles_permisos") {
				return nil, fmt.Errorf("%w: create sobre roles_permisos", domain.ErrPermisoDenegado)
			}
			encontrados, err := uc.permisoRepo.ListByIDs(ctx, nuevos)
			if err != nil {
				return nil, err
			}
			if len(encontrados) != len(nuevos) {
				return nil, fmt.Errorf("%w: algunos permisos no existen", domain.ErrNotFound)
			}
		}
		err = uc.tx.RunRBAC(ctx, func(rolRepo repository.RolRepository, _ repository.PermisoRepository, _ repository.UsuarioRepository) error {
			if err := rolRepo.Update(ctx, rol); err != nil {
				return err
			}
			if err := rolRepo.RemovePermisos(ctx, rol.IDRol); err != nil {
				return err
			}
			if len(nuevos) > 0 {
				return rolRepo.AddPermisos(ctx, rol.IDRol, nuevos)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := uc.rolRepo.Update(ctx, rol); err != nil {
			return nil, err
		}
	}

	return uc.toRolResponse(ctx, rol)
}

// Delete borra el rol y todos sus vínculos (roles_permisos y usuarios_roles)
// en una sola transacción: nunca quedan filas huérfanas.
func (uc *RolUseCase) Delete(ctx context.Context, idEmpresa, idRol int64) error {
	rol, err := uc.rolRepo.GetByIDAndEmpresa(ctx, idRol, idEmpresa)
	if err != nil {
		return err
	}
	if rol == nil {
		return domain.ErrNotFound
	}

	return uc.tx.RunRBAC(ctx, func(rolRepo repository.RolRepository, _ repository.PermisoRepository, _ repository.UsuarioRepository) error {
		if err := rolRepo.RemovePermisos(ctx, idRol); err != nil {
			return err
		}
		if err := rolRepo.RemoveAsignaciones(ctx, idRol); err != nil {
			return err
		}
		return rolRepo.Delete(ctx, idRol)
	})
}

func (uc *RolUseCase) toRolResponse(ctx context.Context, rol *entity.Rol) (*dto.RolResponse, error) {
	permisos, err := uc.permisoRepo.ListByRol(ctx, rol.IDRol)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.PermisoInfo, 0, len(permisos))
	for _, p := range permisos {
		infos = append(infos, dto.PermisoInfo{IDPermiso: p.IDPermiso, Accion: p.Accion, Recurso: p.Recurso})
	}
	return &dto.RolResponse{
		IDRol:       rol.IDRol,
		Nombre:      rol.Nombre,
		Descripcion: rol.Descripcion,
		IDEmpresa:   rol.IDEmpresa,
		Permisos:    infos,
	}, nil
}
