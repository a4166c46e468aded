package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepository)(nil)

// EmpresaRepository implementa el puerto sobre PostgreSQL.
type EmpresaRepository struct {
	q Querier
}

// NewEmpresaRepository acepta un pool o una transacción.
func NewEmpresaRepository(q Querier) *EmpresaRepository {
	return &EmpresaRepository{q: q}
}

const empresaColumns = `id_empresa, nombre, razon_social, nit, telefono, email, direccion, estado, fecha_creacion`

func (r *EmpresaRepository) Create(ctx context.Context, empresa *entity.Empresa) error {
	query := `
		INSERT INTO empresas (nombre, razon_social, nit, telefono, email, direccion, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_empresa, fecha_creacion`

	err := r.q.QueryRow(ctx, query,
		empresa.Nombre,
		empresa.RazonSocial,
		empresa.NIT,
		empresa.Telefono,
		empresa.Email,
		empresa.Direccion,
		empresa.Estado,
	).Scan(&empresa.IDEmpresa, &empresa.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insertar empresa: %w", err)
	}
	return nil
}

func (r *EmpresaRepository) GetByID(ctx context.Context, id int64) (*entity.Empresa, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas WHERE id_empresa = $1`

	empresa, err := scanEmpresa(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	return empresa, nil
}

func (r *EmpresaRepository) Update(ctx context.Context, empresa *entity.Empresa) error {
	query := `
		UPDATE empresas
		SET nombre = $1, razon_social = $2, nit = $3, telefono = $4, email = $5, direccion = $6, estado = $7
		WHERE id_empresa = $8`

	tag, err := r.q.Exec(ctx, query,
		empresa.Nombre,
		empresa.RazonSocial,
		empresa.NIT,
		empresa.Telefono,
		empresa.Email,
		empresa.Direccion,
		empresa.Estado,
		empresa.IDEmpresa,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("actualizar empresa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmpresa(row rowScanner) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(
		&e.IDEmpresa,
		&e.Nombre,
		&e.RazonSocial,
		&e.NIT,
		&e.Telefono,
		&e.Email,
		&e.Direccion,
		&e.Estado,
		&e.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
