package usecase

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// PermisoUseCase reglas de negocio para el catálogo global de permisos.
// El par (accion, recurso) es único en todo el sistema, no por empresa.
type PermisoUseCase struct {
	repo repository.PermisoRepository
}

// NewPermisoUseCase construye el caso de uso.
func NewPermisoUseCase(repo repository.PermisoRepository) *PermisoUseCase {
	return &PermisoUseCase{repo: repo}
}

// Create crea un permiso. ErrConflict si el par ya existe (el chequeo previo
// y el índice único cubren la carrera entre los dos).
func (uc *PermisoUseCase) Create(ctx context.Context, in dto.CreatePermisoRequest) (*dto.PermisoResponse, error) {
	existing, err := uc.repo.GetByAccionRecurso(ctx, in.Accion, in.Recurso)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	permiso := &entity.Permiso{Accion: in.Accion, Recurso: in.Recurso}
	if err := uc.repo.Create(ctx, permiso); err != nil {
		return nil, err
	}
	return toPermisoResponse(permiso), nil
}

// List lista el catálogo completo, ordenado por recurso y accion.
func (uc *PermisoUseCase) List(ctx context.Context) ([]dto.PermisoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermisoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPermisoResponse(p))
	}
	return items, nil
}

// Get obtiene un permiso por id.
func (uc *PermisoUseCase) Get(ctx context.Context, id int64) (*dto.PermisoResponse, error) {
	permiso, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if permiso == nil {
		return nil, domain.ErrNotFound
	}
	return toPermisoResponse(permiso), nil
}

// Update actualiza accion/recurso preservando la unicidad global del par.
func (uc *PermisoUseCase) Update(ctx context.Context, id int64, in dto.UpdatePermisoRequest) (*dto.PermisoResponse, error) {
	permiso, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if permiso == nil {
		return nil, domain.ErrNotFound
	}

	accion := permiso.Accion
	recurso := permiso.Recurso
	if in.Accion != nil {
		accion = *in.Accion
	}
	if in.Recurso != nil {
		recurso = *in.Recurso
	}
	if accion != permiso.Accion || recurso != permiso.Recurso {
		otro, err := uc.repo.GetByAccionRecurso(ctx, accion, recurso)
		if err != nil {
			return nil, err
		}
		if otro != nil && otro.IDPermiso != id {
			return nil, domain.ErrConflict
		}
	}
	permiso.Accion = accion
	permiso.Recurso = recurso

	if err := uc.repo.Update(ctx, permiso); err != nil {
		return nil, err
	}
	return toPermisoResponse(permiso), nil
}

// Delete borra un permiso solo si ningún rol lo referencia; si está en uso
// la operación falla y la fila permanece.
func (uc *PermisoUseCase) Delete(ctx context.Context, id int64) error {
	permiso, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if permiso == nil {
		return domain.ErrNotFound
	}

	enUso, err := uc.repo.CountRolesUsing(ctx, id)
	if err != nil {
		return err
	}
	if enUso > 0 {
		return domain.ErrPermisoEnUso
	}
	return uc.repo.Delete(ctx, id)
}

func toPermisoResponse(p *entity.Permiso) *dto.PermisoResponse {
	if p == nil {
		return nil
	}
	return &dto.PermisoResponse{IDPermiso: p.IDPermiso, Accion: p.Accion, Recurso: p.Recurso}
}
