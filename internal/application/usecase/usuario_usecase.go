package usecase

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/application/ports"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// UsuarioUseCase reglas de negocio para empleados y sus asignaciones de rol.
// Toda operación está acotada a la empresa del principal.
type UsuarioUseCase struct {
	usuarioRepo repository.UsuarioRepository
	rolRepo     repository.RolRepository
	idp         ports.IdentityProvider
	tx          TxRunner
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(usuarioRepo repository.UsuarioRepository, rolRepo repository.RolRepository, idp ports.IdentityProvider, tx TxRunner) *UsuarioUseCase {
	return &UsuarioUseCase{usuarioRepo: usuarioRepo, rolRepo: rolRepo, idp: idp, tx: tx}
}

// Create da de alta un empleado: primero la cuenta en el proveedor de
// identidad, después la fila local. EsDueno siempre false por esta vía.
func (uc *UsuarioUseCase) Create(ctx context.Context, principal *authz.Principal, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	existing, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailRegistrado
	}

	if _, found, err := uc.idp.FindByEmail(ctx, in.Email); err == nil && found {
		return nil, domain.ErrEmailRegistrado
	}

	authUID, err := uc.idp.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	usuario := &entity.Usuario{
		AuthUID:   authUID,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Email:     in.Email,
		EsDueno:   false,
		Estado:    true,
		IDEmpresa: principal.Empresa.IDEmpresa,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// List lista los empleados (no dueños) de la empresa.
func (uc *UsuarioUseCase) List(ctx context.Context, idEmpresa int64, limit, offset int) ([]dto.UsuarioResponse, error) {
	list, err := uc.usuarioRepo.ListEmpleados(ctx, idEmpresa, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUsuarioResponse(u))
	}
	return items, nil
}

// Update aplica una actualización parcial. EsDueno y la empresa no se tocan
// nunca por esta vía. Un cambio de email pasa primero por el proveedor.
func (uc *UsuarioUseCase) Update(ctx context.Context, idEmpresa, id int64, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.usuarioRepo.GetByIDAndEmpresa(ctx, id, idEmpresa)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNotFound
	}

	if in.Email != nil && *in.Email != usuario.Email {
		otro, err := uc.usuarioRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if otro != nil && otro.IDUsuario != usuario.IDUsuario {
			return nil, domain.ErrEmailRegistrado
		}
		if authUID, found, err := uc.idp.FindByEmail(ctx, *in.Email); err == nil && found && authUID != usuario.AuthUID {
			return nil, domain.ErrEmailRegistrado
		}
		// El proveedor primero: si rechaza el cambio, la fila local no se toca.
		if err := uc.idp.UpdateUserEmail(ctx, usuario.AuthUID, *in.Email); err != nil {
			return nil, err
		}
	}

	if in.Nombre != nil {
		usuario.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		usuario.Apellido = *in.Apellido
	}
	if in.Email != nil {
		usuario.Email = *in.Email
	}
	if in.Estado != nil {
		usuario.Estado = *in.Estado
	}

	if err := uc.usuarioRepo.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Deactivate marca el empleado como inactivo. El dueño nunca se desactiva
// por esta vía.
func (uc *UsuarioUseCase) Deactivate(ctx context.Context, idEmpresa, id int64) error {
	usuario, err := uc.usuarioRepo.GetByIDAndEmpresa(ctx, id, idEmpresa)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrNotFound
	}
	if usuario.EsDueno {
		return domain.ErrEsDueno
	}
	usuario.Estado = false
	return uc.usuarioRepo.Update(ctx, usuario)
}

// AssignRoles reemplaza el conjunto de roles del usuario. Todos los roles
// deben existir y pertenecer a la misma empresa que el usuario; un rol de
// otra empresa rechaza la operación completa sin escribir ninguna fila.
func (uc *UsuarioUseCase) AssignRoles(ctx context.Context, idEmpresa, idUsuario int64, rolesIDs []int64) (*dto.UsuarioConRolesResponse, error) {
	usuario, err := uc.usuarioRepo.GetByIDAndEmpresa(ctx, idUsuario, idEmpresa)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNotFound
	}

	unicos := dedupeIDs(rolesIDs)
	if len(unicos) > 0 {
		roles, err := uc.rolRepo.ListByIDsAndEmpresa(ctx, unicos, idEmpresa)
		if err != nil {
			return nil, err
		}
		if len(roles) != len(unicos) {
			return nil, domain.ErrRolOtraEmpresa
		}
	}

	err = uc.tx.RunRBAC(ctx, func(_ repository.RolRepository, _ repository.PermisoRepository, usuarioRepo repository.UsuarioRepository) error {
		return usuarioRepo.ReplaceRoles(ctx, idUsuario, unicos)
	})
	if err != nil {
		return nil, err
	}

	return uc.conRoles(ctx, usuario)
}

// GetRoles devuelve el usuario con sus roles asignados.
func (uc *UsuarioUseCase) GetRoles(ctx context.Context, idEmpresa, idUsuario int64) (*dto.UsuarioConRolesResponse, error) {
	usuario, err := uc.usuarioRepo.GetByIDAndEmpresa(ctx, idUsuario, idEmpresa)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNotFound
	}
	return uc.conRoles(ctx, usuario)
}

// RemoveRol quita una asignación concreta usuario-rol.
func (uc *UsuarioUseCase) RemoveRol(ctx context.Context, idEmpresa, idUsuario, idRol int64) error {
	usuario, err := uc.usuarioRepo.GetByIDAndEmpresa(ctx, idUsuario, idEmpresa)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrNotFound
	}
	rol, err := uc.rolRepo.GetByIDAndEmpresa(ctx, idRol, idEmpresa)
	if err != nil {
		return err
	}
	if rol == nil {
		return domain.ErrNotFound
	}
	removed, err := uc.usuarioRepo.RemoveRol(ctx, idUsuario, idRol)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UsuarioUseCase) conRoles(ctx context.Context, usuario *entity.Usuario) (*dto.UsuarioConRolesResponse, error) {
	roles, err := uc.usuarioRepo.ListRoles(ctx, usuario.IDUsuario)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.RolInfo, 0, len(roles))
	for _, r := range roles {
		infos = append(infos, dto.RolInfo{IDRol: r.IDRol, Nombre: r.Nombre, Descripcion: r.Descripcion})
	}
	return &dto.UsuarioConRolesResponse{
		IDUsuario: usuario.IDUsuario,
		Nombre:    usuario.Nombre,
		Apellido:  usuario.Apellido,
		Email:     usuario.Email,
		EsDueno:   usuario.EsDueno,
		Estado:    usuario.Estado,
		Roles:     infos,
	}, nil
}

func dedupeIDs(ids []int64) []int64 {
	vistos := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if vistos[id] {
			continue
		}
		vistos[id] = true
		out = append(out, id)
	}
	return out
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		IDUsuario:     u.IDUsuario,
		Nombre:        u.Nombre,
		Apellido:      u.Apellido,
		Email:         u.Email,
		EsDueno:       u.EsDueno,
		Estado:        u.Estado,
		FechaCreacion: u.FechaCreacion,
		IDEmpresa:     u.IDEmpresa,
	}
}
