package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP.
//
// Credencial rechazada y usuario local inexistente comparten el mismo cuerpo
// 401 genérico: la respuesta no debe revelar si una cuenta existe.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrCredencialInvalida), errors.Is(err, domain.ErrUsuarioNoEncontrado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrProveedorNoDisponible):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDP_UNAVAILABLE", Message: "proveedor de identidad no disponible, reintente"})
	case errors.Is(err, domain.ErrUsuarioInactivo):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "cuenta de usuario desactivada"})
	case errors.Is(err, domain.ErrEmpresaInactiva):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "COMPANY_INACTIVE", Message: "empresa desactivada"})
	case errors.Is(err, domain.ErrPermisoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrSoloDueno):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación reservada al dueño de la empresa"})
	case errors.Is(err, domain.ErrEsDueno):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OWNER_PROTECTED", Message: "la cuenta del dueño no puede desactivarse por esta vía"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailRegistrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrRolOtraEmpresa):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ROLE_WRONG_COMPANY", Message: "uno o más roles no pertenecen a la empresa"})
	case errors.Is(err, domain.ErrPermisoEnUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERMISSION_IN_USE", Message: "el permiso está asignado a uno o más roles"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
