package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Auth-api/internal/application/auth"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// Ensure TxRunner implements auth.TxRunner and usecase.TxRunner.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistro inicia una transacción para el registro de dueño: empresa y
// usuario se crean juntos o se revierte todo.
func (r *TxRunner) RunRegistro(ctx context.Context, fn func(
	usuarioRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	usuarioRepo := NewUsuarioRepository(tx)
	empresaRepo := NewEmpresaRepository(tx)

	if err := fn(usuarioRepo, empresaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRBAC inicia una transacción con los repos del grafo RBAC (roles,
// permisos, asignaciones) para mutaciones multi-fila.
func (r *TxRunner) RunRBAC(ctx context.Context, fn func(
	rolRepo repository.RolRepository,
	permisoRepo repository.PermisoRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rolRepo := NewRolRepository(tx)
	permisoRepo := NewPermisoRepository(tx)
	usuarioRepo := NewUsuarioRepository(tx)

	if err := fn(rolRepo, permisoRepo, usuarioRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
