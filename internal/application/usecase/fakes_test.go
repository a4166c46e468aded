package usecase_test

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/application/ports"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// store persistencia en memoria compartida por los repos fake: las tablas de
// vínculo se modelan como mapas de ids para poder verificar efectos.
type store struct {
	empresas     map[int64]*entity.Empresa
	usuarios     map[int64]*entity.Usuario
	roles        map[int64]*entity.Rol
	permisos     map[int64]*entity.Permiso
	rolPermisos  map[int64][]int64 // idRol -> ids de permisos
	usuarioRoles map[int64][]int64 // idUsuario -> ids de roles
	nextID       int64
}

func newStore() *store {
	return &store{
		empresas:     map[int64]*entity.Empresa{},
		usuarios:     map[int64]*entity.Usuario{},
		roles:        map[int64]*entity.Rol{},
		permisos:     map[int64]*entity.Permiso{},
		rolPermisos:  map[int64][]int64{},
		usuarioRoles: map[int64][]int64{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct{ s *store }

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	for _, otro := range r.s.usuarios {
		if otro.Email == u.Email {
			return domain.ErrEmailRegistrado
		}
	}
	u.IDUsuario = r.s.id()
	r.s.usuarios[u.IDUsuario] = u
	return nil
}
func (r *fakeUsuarioRepo) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	return r.s.usuarios[id], nil
}
func (r *fakeUsuarioRepo) GetByIDAndEmpresa(_ context.Context, id, idEmpresa int64) (*entity.Usuario, error) {
	u := r.s.usuarios[id]
	if u == nil || u.IDEmpresa != idEmpresa {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUsuarioRepo) GetByAuthUID(_ context.Context, authUID string) (*entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.AuthUID == authUID {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.s.usuarios[u.IDUsuario] = u
	return nil
}
func (r *fakeUsuarioRepo) ListEmpleados(_ context.Context, idEmpresa int64, _, _ int) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.s.usuarios {
		if u.IDEmpresa == idEmpresa && !u.EsDueno {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUsuarioRepo) ListRoles(_ context.Context, idUsuario int64) ([]*entity.Rol, error) {
	var out []*entity.Rol
	for _, idRol := range r.s.usuarioRoles[idUsuario] {
		if rol := r.s.roles[idRol]; rol != nil {
			out = append(out, rol)
		}
	}
	return out, nil
}
func (r *fakeUsuarioRepo) ListRolesByEmpresa(ctx context.Context, idUsuario, idEmpresa int64) ([]*entity.Rol, error) {
	todos, _ := r.ListRoles(ctx, idUsuario)
	var out []*entity.Rol
	for _, rol := range todos {
		if rol.IDEmpresa == idEmpresa {
			out = append(out, rol)
		}
	}
	return out, nil
}
func (r *fakeUsuarioRepo) ReplaceRoles(_ context.Context, idUsuario int64, idsRoles []int64) error {
	r.s.usuarioRoles[idUsuario] = append([]int64{}, idsRoles...)
	return nil
}
func (r *fakeUsuarioRepo) RemoveRol(_ context.Context, idUsuario, idRol int64) (bool, error) {
	actuales := r.s.usuarioRoles[idUsuario]
	out := actuales[:0]
	removed := false
	for _, id := range actuales {
		if id == idRol {
			removed = true
			continue
		}
		out = append(out, id)
	}
	r.s.usuarioRoles[idUsuario] = out
	return removed, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeRolRepo struct{ s *store }

func (r *fakeRolRepo) Create(_ context.Context, rol *entity.Rol) error {
	rol.IDRol = r.s.id()
	r.s.roles[rol.IDRol] = rol
	return nil
}
func (r *fakeRolRepo) GetByIDAndEmpresa(_ context.Context, id, idEmpresa int64) (*entity.Rol, error) {
	rol := r.s.roles[id]
	if rol == nil || rol.IDEmpresa != idEmpresa {
		return nil, nil
	}
	return rol, nil
}
func (r *fakeRolRepo) GetByNombreAndEmpresa(_ context.Context, nombre string, idEmpresa int64) (*entity.Rol, error) {
	for _, rol := range r.s.roles {
		if rol.Nombre == nombre && rol.IDEmpresa == idEmpresa {
			return rol, nil
		}
	}
	return nil, nil
}
func (r *fakeRolRepo) ListByEmpresa(_ context.Context, idEmpresa int64) ([]*entity.Rol, error) {
	var out []*entity.Rol
	for _, rol := range r.s.roles {
		if rol.IDEmpresa == idEmpresa {
			out = append(out, rol)
		}
	}
	return out, nil
}
func (r *fakeRolRepo) ListByIDsAndEmpresa(_ context.Context, ids []int64, idEmpresa int64) ([]*entity.Rol, error) {
	var out []*entity.Rol
	for _, id := range ids {
		if rol := r.s.roles[id]; rol != nil && rol.IDEmpresa == idEmpresa {
			out = append(out, rol)
		}
	}
	return out, nil
}
func (r *fakeRolRepo) Update(_ context.Context, rol *entity.Rol) error {
	r.s.roles[rol.IDRol] = rol
	return nil
}
func (r *fakeRolRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.roles, id)
	return nil
}
func (r *fakeRolRepo) AddPermisos(_ context.Context, idRol int64, idsPermisos []int64) error {
	r.s.rolPermisos[idRol] = append(r.s.rolPermisos[idRol], idsPermisos...)
	return nil
}
func (r *fakeRolRepo) RemovePermisos(_ context.Context, idRol int64) error {
	delete(r.s.rolPermisos, idRol)
	return nil
}
func (r *fakeRolRepo) RemoveAsignaciones(_ context.Context, idRol int64) error {
	for idUsuario, ids := range r.s.usuarioRoles {
		out := ids[:0]
		for _, id := range ids {
			if id != idRol {
				out = append(out, id)
			}
		}
		r.s.usuarioRoles[idUsuario] = out
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakePermisoRepo struct{ s *store }

func (r *fakePermisoRepo) Create(_ context.Context, p *entity.Permiso) error {
	p.IDPermiso = r.s.id()
	r.s.permisos[p.IDPermiso] = p
	return nil
}
func (r *fakePermisoRepo) GetByID(_ context.Context, id int64) (*entity.Permiso, error) {
	return r.s.permisos[id], nil
}
func (r *fakePermisoRepo) GetByAccionRecurso(_ context.Context, accion, recurso string) (*entity.Permiso, error) {
	for _, p := range r.s.permisos {
		if p.Accion == accion && p.Recurso == recurso {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePermisoRepo) List(_ context.Context) ([]*entity.Permiso, error) {
	var out []*entity.Permiso
	for _, p := range r.s.permisos {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakePermisoRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Permiso, error) {
	var out []*entity.Permiso
	for _, id := range ids {
		if p := r.s.permisos[id]; p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePermisoRepo) ListByRol(_ context.Context, idRol int64) ([]*entity.Permiso, error) {
	var out []*entity.Permiso
	for _, id := range r.s.rolPermisos[idRol] {
		if p := r.s.permisos[id]; p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePermisoRepo) ListByRoles(ctx context.Context, idsRoles []int64) ([]*entity.Permiso, error) {
	var out []*entity.Permiso
	for _, idRol := range idsRoles {
		ps, _ := r.ListByRol(ctx, idRol)
		out = append(out, ps...)
	}
	return out, nil
}
func (r *fakePermisoRepo) Update(_ context.Context, p *entity.Permiso) error {
	r.s.permisos[p.IDPermiso] = p
	return nil
}
func (r *fakePermisoRepo) CountRolesUsing(_ context.Context, idPermiso int64) (int, error) {
	count := 0
	for _, ids := range r.s.rolPermisos {
		for _, id := range ids {
			if id == idPermiso {
				count++
			}
		}
	}
	return count, nil
}
func (r *fakePermisoRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.permisos, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

// fakeTx ejecuta el callback directamente sobre el mismo store.
type fakeTx struct{ s *store }

func (t *fakeTx) RunRBAC(_ context.Context, fn func(
	repository.RolRepository,
	repository.PermisoRepository,
	repository.UsuarioRepository,
) error) error {
	return fn(&fakeRolRepo{s: t.s}, &fakePermisoRepo{s: t.s}, &fakeUsuarioRepo{s: t.s})
}

// fakeIdP doble mínimo del proveedor de identidad.
type fakeIdP struct {
	cuentas        map[string]string // email -> authUID
	createErr      error
	updateEmailErr error
}

func (f *fakeIdP) Validate(_ context.Context, _ string) (string, error) { return "", nil }
func (f *fakeIdP) SignIn(_ context.Context, _, _ string) (*ports.Credenciales, error) {
	return nil, domain.ErrCredencialInvalida
}
func (f *fakeIdP) SignOut(_ context.Context, _ string) error { return nil }
func (f *fakeIdP) CreateUser(_ context.Context, email, _ string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return "7c9e6679-7425-40de-944b-e07fc1f90ae7", nil
}
func (f *fakeIdP) UpdateUserEmail(_ context.Context, _, _ string) error { return f.updateEmailErr }
func (f *fakeIdP) FindByEmail(_ context.Context, email string) (string, bool, error) {
	uid, ok := f.cuentas[email]
	return uid, ok, nil
}

// ──────────────────────────────────────────────────────────────────────────────

// principalDe construye un principal de la empresa dada con los permisos
// indicados como pares accion:recurso.
func principalDe(idEmpresa int64, esDueno bool, pares ...[2]string) *authz.Principal {
	permisos := make([]*entity.Permiso, 0, len(pares))
	for i, par := range pares {
		permisos = append(permisos, &entity.Permiso{IDPermiso: int64(1000 + i), Accion: par[0], Recurso: par[1]})
	}
	return authz.NewPrincipal(
		&entity.Usuario{IDUsuario: 500, EsDueno: esDueno, Estado: true, IDEmpresa: idEmpresa},
		&entity.Empresa{IDEmpresa: idEmpresa, Estado: true},
		nil,
		permisos,
	)
}
