package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepository)(nil)

// UsuarioRepository implementa el puerto sobre PostgreSQL, incluyendo la
// tabla de asignaciones usuarios_roles.
type UsuarioRepository struct {
	q Querier
}

// NewUsuarioRepository acepta un pool o una transacción.
func NewUsuarioRepository(q Querier) *UsuarioRepository {
	return &UsuarioRepository{q: q}
}

const usuarioColumns = `id_usuario, auth_uid, nombre, apellido, email, es_dueno, estado, fecha_creacion, empresas_id_empresa`

func (r *UsuarioRepository) Create(ctx context.Context, usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (auth_uid, nombre, apellido, email, es_dueno, estado, empresas_id_empresa)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_usuario, fecha_creacion`

	err := r.q.QueryRow(ctx, query,
		usuario.AuthUID,
		usuario.Nombre,
		usuario.Apellido,
		usuario.Email,
		usuario.EsDueno,
		usuario.Estado,
		usuario.IDEmpresa,
	).Scan(&usuario.IDUsuario, &usuario.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailRegistrado
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id_usuario = $1`
	return r.getOne(ctx, query, id)
}

func (r *UsuarioRepository) GetByIDAndEmpresa(ctx context.Context, id, idEmpresa int64) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id_usuario = $1 AND empresas_id_empresa = $2`
	return r.getOne(ctx, query, id, idEmpresa)
}

func (r *UsuarioRepository) GetByAuthUID(ctx context.Context, authUID string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE auth_uid = $1`
	return r.getOne(ctx, query, authUID)
}

func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *entity.Usuario) error {
	// es_dueno no se toca: se fija en la creación y no hay ruta que lo cambie.
	query := `
		UPDATE usuarios
		SET nombre = $1, apellido = $2, email = $3, estado = $4
		WHERE id_usuario = $5`

	tag, err := r.q.Exec(ctx, query,
		usuario.Nombre,
		usuario.Apellido,
		usuario.Email,
		usuario.Estado,
		usuario.IDUsuario,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailRegistrado
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) ListEmpleados(ctx context.Context, idEmpresa int64, limit, offset int) ([]*entity.Usuario, error) {
	query := `
		SELECT ` + usuarioColumns + `
		FROM usuarios
		WHERE empresas_id_empresa = $1 AND es_dueno = false
		ORDER BY id_usuario
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, idEmpresa, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar empleados: %w", err)
	}
	defer rows.Close()

	var usuarios []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (r *UsuarioRepository) ListRoles(ctx context.Context, idUsuario int64) ([]*entity.Rol, error) {
	query := `
		SELECT r.id_rol, r.nombre, r.descripcion, r.empresas_id_empresa
		FROM roles r
		JOIN usuarios_roles ur ON ur.roles_id_rol = r.id_rol
		WHERE ur.usuarios_id_usuario = $1
		ORDER BY r.id_rol`

	return r.queryRoles(ctx, query, idUsuario)
}

func (r *UsuarioRepository) ListRolesByEmpresa(ctx context.Context, idUsuario, idEmpresa int64) ([]*entity.Rol, error) {
	// El filtro por empresa descarta vínculos cruzados u obsoletos.
	query := `
		SELECT r.id_rol, r.nombre, r.descripcion, r.empresas_id_empresa
		FROM roles r
		JOIN usuarios_roles ur ON ur.roles_id_rol = r.id_rol
		WHERE ur.usuarios_id_usuario = $1 AND r.empresas_id_empresa = $2
		ORDER BY r.id_rol`

	return r.queryRoles(ctx, query, idUsuario, idEmpresa)
}

// ReplaceRoles sustituye el conjunto completo de roles del usuario. El caller
// debe invocarlo dentro de una transacción para que delete+insert sea atómico.
func (r *UsuarioRepository) ReplaceRoles(ctx context.Context, idUsuario int64, idsRoles []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM usuarios_roles WHERE usuarios_id_usuario = $1`, idUsuario); err != nil {
		return fmt.Errorf("limpiar roles del usuario: %w", err)
	}
	for _, idRol := range idsRoles {
		_, err := r.q.Exec(ctx,
			`INSERT INTO usuarios_roles (usuarios_id_usuario, roles_id_rol) VALUES ($1, $2)`,
			idUsuario, idRol,
		)
		if err != nil {
			if isUniqueViolation(err) || isForeignKeyViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("asignar rol %d: %w", idRol, err)
		}
	}
	return nil
}

func (r *UsuarioRepository) RemoveRol(ctx context.Context, idUsuario, idRol int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM usuarios_roles WHERE usuarios_id_usuario = $1 AND roles_id_rol = $2`,
		idUsuario, idRol,
	)
	if err != nil {
		return false, fmt.Errorf("quitar rol: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UsuarioRepository) getOne(ctx context.Context, query string, args ...any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepository) queryRoles(ctx context.Context, query string, args ...any) ([]*entity.Rol, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar roles del usuario: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.IDRol, &rol.Nombre, &rol.Descripcion, &rol.IDEmpresa); err != nil {
			return nil, err
		}
		roles = append(roles, &rol)
	}
	return roles, rows.Err()
}

func scanUsuario(row rowScanner) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.IDUsuario,
		&u.AuthUID,
		&u.Nombre,
		&u.Apellido,
		&u.Email,
		&u.EsDueno,
		&u.Estado,
		&u.FechaCreacion,
		&u.IDEmpresa,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
