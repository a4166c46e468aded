package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/application/ports"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// TxRunner es el contrato mínimo de transacción que necesita el registro de
// dueño: empresa y usuario se crean juntos o no se crea ninguno.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunRegistro(ctx context.Context, fn func(
		usuarioRepo repository.UsuarioRepository,
		empresaRepo repository.EmpresaRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: resolución del principal,
// registro de dueño, login y logout.
type AuthUseCase struct {
	idp         ports.IdentityProvider
	usuarioRepo repository.UsuarioRepository
	empresaRepo repository.EmpresaRepository
	permisoRepo repository.PermisoRepository
	tx          TxRunner
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	idp ports.IdentityProvider,
	usuarioRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
	permisoRepo repository.PermisoRepository,
	tx TxRunner,
) *AuthUseCase {
	return &AuthUseCase{
		idp:         idp,
		usuarioRepo: usuarioRepo,
		empresaRepo: empresaRepo,
		permisoRepo: permisoRepo,
		tx:          tx,
	}
}

// CurrentUser resuelve el principal a partir del access token opaco.
// Solo lecturas; el resultado es inmutable para el resto de la petición.
//
// Fallos, en orden de verificación:
//   - ErrCredencialInvalida    el proveedor rechaza el token
//   - ErrProveedorNoDisponible el proveedor no responde (reintentable)
//   - ErrUsuarioNoEncontrado   identidad externa sin usuario local
//   - ErrUsuarioInactivo       usuario con estado=false
//   - ErrEmpresaInactiva       empresa inexistente o con estado=false
func (uc *AuthUseCase) CurrentUser(ctx context.Context, accessToken string) (*authz.Principal, error) {
	authUID, err := uc.idp.Validate(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrProveedorNoDisponible) {
			return nil, err
		}
		return nil, domain.ErrCredencialInvalida
	}
	if authUID == "" {
		return nil, domain.ErrCredencialInvalida
	}

	usuario, err := uc.usuarioRepo.GetByAuthUID(ctx, authUID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if !usuario.Estado {
		return nil, domain.ErrUsuarioInactivo
	}

	empresa, err := uc.empresaRepo.GetByID(ctx, usuario.IDEmpresa)
	if err != nil {
		return nil, err
	}
	if empresa == nil || !empresa.Estado {
		return nil, domain.ErrEmpresaInactiva
	}

	// Roles del usuario filtrados a su empresa: un vínculo cruzado u obsoleto
	// hacia otra empresa no aporta permisos.
	roles, err := uc.usuarioRepo.ListRolesByEmpresa(ctx, usuario.IDUsuario, empresa.IDEmpresa)
	if err != nil {
		return nil, err
	}

	var permisos []*entity.Permiso
	if len(roles) > 0 {
		ids := make([]int64, 0, len(roles))
		for _, r := range roles {
			ids = append(ids, r.IDRol)
		}
		permisos, err = uc.permisoRepo.ListByRoles(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	// Sin roles no hay permisos; eso no es un error.

	return authz.NewPrincipal(usuario, empresa, roles, permisos), nil
}

// RegisterOwner da de alta empresa + dueño. El usuario se crea primero en el
// proveedor de identidad; las dos filas locales se insertan en una sola
// transacción. Si el proveedor falla no queda ninguna fila local.
func (uc *AuthUseCase) RegisterOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.RegisterOwnerResponse, error) {
	existing, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailRegistrado
	}

	// Unicidad en el proveedor. Si la consulta falla se continúa: el propio
	// CreateUser rechaza duplicados.
	if _, found, err := uc.idp.FindByEmail(ctx, in.Email); err == nil && found {
		return nil, domain.ErrEmailRegistrado
	}

	authUID, err := uc.idp.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	var usuario *entity.Usuario
	var empresa *entity.Empresa
	err = uc.tx.RunRegistro(ctx, func(usuarioRepo repository.UsuarioRepository, empresaRepo repository.EmpresaRepository) error {
		empresa = &entity.Empresa{
			Nombre:      in.NombreEmpresa,
			RazonSocial: in.RazonSocial,
			NIT:         in.NIT,
			Telefono:    in.Telefono,
			Email:       in.EmailEmpresa,
			Direccion:   in.Direccion,
			Estado:      true,
		}
		if err := empresaRepo.Create(ctx, empresa); err != nil {
			return err
		}
		usuario = &entity.Usuario{
			AuthUID:   authUID,
			Nombre:    in.Nombre,
			Apellido:  in.Apellido,
			Email:     in.Email,
			EsDueno:   true,
			Estado:    true,
			IDEmpresa: empresa.IDEmpresa, // id asignado por el INSERT anterior dentro de la tx
		}
		return usuarioRepo.Create(ctx, usuario)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterOwnerResponse{
		IDUsuario:     usuario.IDUsuario,
		Nombre:        usuario.Nombre,
		Apellido:      usuario.Apellido,
		Email:         usuario.Email,
		EsDueno:       usuario.EsDueno,
		IDEmpresa:     empresa.IDEmpresa,
		NombreEmpresa: empresa.Nombre,
	}, nil
}

// Login autentica contra el proveedor y devuelve el principal resuelto junto
// con el access token (el handler decide el transporte: cookie o header).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, string, error) {
	creds, err := uc.idp.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrProveedorNoDisponible) {
			return nil, "", err
		}
		return nil, "", domain.ErrCredencialInvalida
	}

	principal, err := uc.CurrentUser(ctx, creds.AccessToken)
	if err != nil {
		return nil, "", err
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    ToUserResponse(principal),
	}, creds.AccessToken, nil
}

// Logout revoca la sesión en el proveedor. El fallo se ignora a propósito:
// no se rastrea revocación local, así que no hay estado que reparar.
func (uc *AuthUseCase) Logout(ctx context.Context, accessToken string) {
	_ = uc.idp.SignOut(ctx, accessToken)
}

// ToUserResponse proyecta el principal al DTO que ven los consumidores.
func ToUserResponse(p *authz.Principal) dto.UserResponse {
	roles := make([]dto.RolInfo, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, dto.RolInfo{IDRol: r.IDRol, Nombre: r.Nombre, Descripcion: r.Descripcion})
	}
	permisos := make([]dto.PermisoInfo, 0, len(p.Permisos))
	for _, pe := range p.Permisos {
		permisos = append(permisos, dto.PermisoInfo{IDPermiso: pe.IDPermiso, Accion: pe.Accion, Recurso: pe.Recurso})
	}
	return dto.UserResponse{
		IDUsuario: p.Usuario.IDUsuario,
		Nombre:    p.Usuario.Nombre,
		Apellido:  p.Usuario.Apellido,
		Email:     p.Usuario.Email,
		EsDueno:   p.Usuario.EsDueno,
		Empresa: dto.EmpresaInfo{
			IDEmpresa:   p.Empresa.IDEmpresa,
			Nombre:      p.Empresa.Nombre,
			RazonSocial: p.Empresa.RazonSocial,
			NIT:         p.Empresa.NIT,
		},
		Roles:    roles,
		Permisos: permisos,
	}
}
