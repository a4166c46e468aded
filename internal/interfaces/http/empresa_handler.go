package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
)

// EmpresaHandler maneja la empresa del caller. No hay :id en las rutas: la
// empresa siempre es la del principal, nunca una arbitraria.
type EmpresaHandler struct {
	uc *usecase.EmpresaUseCase
}

// NewEmpresaHandler construye el handler de empresa.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// Get godoc
// @Summary      Empresa del caller
// @Tags         empresa
// @Produce      json
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/empresa [get]
func (h *EmpresaHandler) Get(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	out, err := h.uc.Get(c.UserContext(), principal.Empresa.IDEmpresa)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (parcial)
// @Tags         empresa
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateEmpresaRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/empresa [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	var in dto.UpdateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), principal.Empresa.IDEmpresa, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar empresa (soft delete)
// @Tags         empresa
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/empresa [delete]
func (h *EmpresaHandler) Deactivate(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if err := h.uc.Deactivate(c.UserContext(), principal.Empresa.IDEmpresa); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Empresa desactivada"})
}
