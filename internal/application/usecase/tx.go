package usecase

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// TxRunner ejecuta mutaciones del grafo RBAC dentro de una transacción:
// crear un rol con sus vínculos, reemplazar asignaciones, borrar un rol con
// limpieza de vínculos. Aplicación parcial = violación de invariante.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunRBAC(ctx context.Context, fn func(
		rolRepo repository.RolRepository,
		permisoRepo repository.PermisoRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}
