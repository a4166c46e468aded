package usecase

import (
	"context"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	"github.com/jhoicas/Auth-api/internal/domain/repository"
)

// EmpresaUseCase reglas de negocio sobre la empresa del caller.
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso con el puerto de persistencia.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Get obtiene la empresa por id.
func (uc *EmpresaUseCase) Get(ctx context.Context, id int64) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	return toEmpresaResponse(empresa), nil
}

// Update aplica una actualización parcial: solo los campos presentes en el
// patch se copian sobre la entidad.
func (uc *EmpresaUseCase) Update(ctx context.Context, id int64, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}

	mergeEmpresa(empresa, in)

	if err := uc.repo.Update(ctx, empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// Deactivate marca la empresa como inactiva. Las empresas nunca se borran.
func (uc *EmpresaUseCase) Deactivate(ctx context.Context, id int64) error {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if empresa == nil {
		return domain.ErrNotFound
	}
	empresa.Estado = false
	return uc.repo.Update(ctx, empresa)
}

func mergeEmpresa(e *entity.Empresa, in dto.UpdateEmpresaRequest) {
	if in.Nombre != nil {
		e.Nombre = *in.Nombre
	}
	if in.RazonSocial != nil {
		e.RazonSocial = *in.RazonSocial
	}
	if in.NIT != nil {
		e.NIT = *in.NIT
	}
	if in.Telefono != nil {
		e.Telefono = *in.Telefono
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Direccion != nil {
		e.Direccion = *in.Direccion
	}
	if in.Estado != nil {
		e.Estado = *in.Estado
	}
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpresaResponse{
		IDEmpresa:     e.IDEmpresa,
		Nombre:        e.Nombre,
		RazonSocial:   e.RazonSocial,
		NIT:           e.NIT,
		Telefono:      e.Telefono,
		Email:         e.Email,
		Direccion:     e.Direccion,
		Estado:        e.Estado,
		FechaCreacion: e.FechaCreacion,
	}
}
