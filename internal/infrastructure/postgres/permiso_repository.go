package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

var _ repository.PermisoRepository = (*PermisoRepository)(nil)

// PermisoRepository implementa el puerto sobre PostgreSQL. El catálogo de
// permisos es global: ninguna consulta filtra por empresa.
type PermisoRepository struct {
	q Querier
}

// NewPermisoRepository acepta un pool o una transacción.
func NewPermisoRepository(q Querier) *PermisoRepository {
	return &PermisoRepository{q: q}
}

const permisoColumns = `id_permiso, accion, recurso`

func (r *PermisoRepository) Create(ctx context.Context, permiso *entity.Permiso) error {
	query := `INSERT INTO permisos (accion, recurso) VALUES ($1, $2) RETURNING id_permiso`

	err := r.q.QueryRow(ctx, query, permiso.Accion, permiso.Recurso).Scan(&permiso.IDPermiso)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insertar permiso: %w", err)
	}
	return nil
}

func (r *PermisoRepository) GetByID(ctx context.Context, id int64) (*entity.Permiso, error) {
	query := `SELECT ` + permisoColumns + ` FROM permisos WHERE id_permiso = $1`
	return r.getOne(ctx, query, id)
}

func (r *PermisoRepository) GetByAccionRecurso(ctx context.Context, accion, recurso string) (*entity.Permiso, error) {
	query := `SELECT ` + permisoColumns + ` FROM permisos WHERE accion = $1 AND recurso = $2`
	return r.getOne(ctx, query, accion, recurso)
}

func (r *PermisoRepository) List(ctx context.Context) ([]*entity.Permiso, error) {
	query := `SELECT ` + permisoColumns + ` FROM permisos ORDER BY recurso, accion`
	return r.queryMany(ctx, query)
}

func (r *PermisoRepository) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Permiso, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + permisoColumns + ` FROM permisos WHERE id_permiso = ANY($1) ORDER BY id_permiso`
	return r.queryMany(ctx, query, ids)
}

func (r *PermisoRepository) ListByRol(ctx context.Context, idRol int64) ([]*entity.Permiso, error) {
	query := `
		SELECT p.id_permiso, p.accion, p.recurso
		FROM permisos p
		JOIN roles_permisos rp ON rp.permisos_id_permiso = p.id_permiso
		WHERE rp.roles_id_rol = $1
		ORDER BY p.recurso, p.accion`

	return r.queryMany(ctx, query, idRol)
}

func (r *PermisoRepository) ListByRoles(ctx context.Context, idsRoles []int64) ([]*entity.Permiso, error) {
	if len(idsRoles) == 0 {
		return nil, nil
	}
	// Puede devolver el mismo permiso varias veces si llega por varios roles;
	// el dedup es responsabilidad del caller.
	query := `
		SELECT p.id_permiso, p.accion, p.recurso
		FROM permisos p
		JOIN roles_permisos rp ON rp.permisos_id_permiso = p.id_permiso
		WHERE rp.roles_id_rol = ANY($1)`

	return r.queryMany(ctx, query, idsRoles)
}

func (r *PermisoRepository) Update(ctx context.Context, permiso *entity.Permiso) error {
	query := `UPDATE permisos SET accion = $1, recurso = $2 WHERE id_permiso = $3`

	tag, err := r.q.Exec(ctx, query, permiso.Accion, permiso.Recurso, permiso.IDPermiso)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("actualizar permiso: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PermisoRepository) CountRolesUsing(ctx context.Context, idPermiso int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM roles_permisos WHERE permisos_id_permiso = $1`,
		idPermiso,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar usos del permiso: %w", err)
	}
	return count, nil
}

func (r *PermisoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM permisos WHERE id_permiso = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Todavía referenciado por roles_permisos.
			return domain.ErrPermisoEnUso
		}
		return fmt.Errorf("eliminar permiso: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PermisoRepository) getOne(ctx context.Context, query string, args ...any) (*entity.Permiso, error) {
	var p entity.Permiso
	err := r.q.QueryRow(ctx, query, args...).Scan(&p.IDPermiso, &p.Accion, &p.Recurso)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar permiso: %w", err)
	}
	return &p, nil
}

func (r *PermisoRepository) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Permiso, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar permisos: %w", err)
	}
	defer rows.Close()

	var permisos []*entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.IDPermiso, &p.Accion, &p.Recurso); err != nil {
			return nil, err
		}
		permisos = append(permisos, &p)
	}
	return permisos, rows.Err()
}
