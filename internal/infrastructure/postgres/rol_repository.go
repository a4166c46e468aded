package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

var _ repository.RolRepository = (*RolRepository)(nil)

// RolRepository implementa el puerto sobre PostgreSQL, incluyendo la tabla
// de vínculos roles_permisos.
type RolRepository struct {
	q Querier
}

// NewRolRepository acepta un pool o una transacción.
func NewRolRepository(q Querier) *RolRepository {
	return &RolRepository{q: q}
}

const rolColumns = `id_rol, nombre, descripcion, empresas_id_empresa`

func (r *RolRepository) Create(ctx context.Context, rol *entity.Rol) error {
	query := `
		INSERT INTO roles (nombre, descripcion, empresas_id_empresa)
		VALUES ($1, $2, $3)
		RETURNING id_rol`

	err := r.q.QueryRow(ctx, query, rol.Nombre, rol.Descripcion, rol.IDEmpresa).Scan(&rol.IDRol)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insertar rol: %w", err)
	}
	return nil
}

func (r *RolRepository) GetByIDAndEmpresa(ctx context.Context, id, idEmpresa int64) (*entity.Rol, error) {
	query := `SELECT ` + rolColumns + ` FROM roles WHERE id_rol = $1 AND empresas_id_empresa = $2`
	return r.getOne(ctx, query, id, idEmpresa)
}

func (r *RolRepository) GetByNombreAndEmpresa(ctx context.Context, nombre string, idEmpresa int64) (*entity.Rol, error) {
	query := `SELECT ` + rolColumns + ` FROM roles WHERE nombre = $1 AND empresas_id_empresa = $2`
	return r.getOne(ctx, query, nombre, idEmpresa)
}

func (r *RolRepository) ListByEmpresa(ctx context.Context, idEmpresa int64) ([]*entity.Rol, error) {
	query := `SELECT ` + rolColumns + ` FROM roles WHERE empresas_id_empresa = $1 ORDER BY id_rol`
	return r.queryMany(ctx, query, idEmpresa)
}

func (r *RolRepository) ListByIDsAndEmpresa(ctx context.Context, ids []int64, idEmpresa int64) ([]*entity.Rol, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + rolColumns + ` FROM roles WHERE id_rol = ANY($1) AND empresas_id_empresa = $2 ORDER BY id_rol`
	return r.queryMany(ctx, query, ids, idEmpresa)
}

func (r *RolRepository) Update(ctx context.Context, rol *entity.Rol) error {
	query := `UPDATE roles SET nombre = $1, descripcion = $2 WHERE id_rol = $3 AND empresas_id_empresa = $4`

	tag, err := r.q.Exec(ctx, query, rol.Nombre, rol.Descripcion, rol.IDRol, rol.IDEmpresa)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("actualizar rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RolRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id_rol = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("eliminar rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RolRepository) AddPermisos(ctx context.Context, idRol int64, idsPermisos []int64) error {
	for _, idPermiso := range idsPermisos {
		_, err := r.q.Exec(ctx,
			`INSERT INTO roles_permisos (permisos_id_permiso, roles_id_rol) VALUES ($1, $2)`,
			idPermiso, idRol,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// Vínculo ya presente: idempotente.
				continue
			}
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("vincular permiso %d al rol %d: %w", idPermiso, idRol, err)
		}
	}
	return nil
}

func (r *RolRepository) RemovePermisos(ctx context.Context, idRol int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM roles_permisos WHERE roles_id_rol = $1`, idRol); err != nil {
		return fmt.Errorf("desvincular permisos del rol: %w", err)
	}
	return nil
}

func (r *RolRepository) RemoveAsignaciones(ctx context.Context, idRol int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM usuarios_roles WHERE roles_id_rol = $1`, idRol); err != nil {
		return fmt.Errorf("desvincular usuarios del rol: %w", err)
	}
	return nil
}

func (r *RolRepository) getOne(ctx context.Context, query string, args ...any) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(ctx, query, args...).Scan(&rol.IDRol, &rol.Nombre, &rol.Descripcion, &rol.IDEmpresa)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar rol: %w", err)
	}
	return &rol, nil
}

func (r *RolRepository) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Rol, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w", err)
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
