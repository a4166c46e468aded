package repository

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure. (nil, nil) cuando no existe.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id int64) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
}
