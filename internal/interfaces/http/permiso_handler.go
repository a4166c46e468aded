package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
)

// PermisoHandler maneja el catálogo global de permisos. Las mutaciones son
// solo para dueños (guard en el router); la lectura es para cualquier
// principal autenticado.
type PermisoHandler struct {
	uc *usecase.PermisoUseCase
}

// NewPermisoHandler construye el handler de permisos.
func NewPermisoHandler(uc *usecase.PermisoUseCase) *PermisoHandler {
	return &PermisoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear permiso global
// @Tags         permisos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermisoRequest  true  "accion, recurso"
// @Success      201   {object}  dto.PermisoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permisos [post]
func (h *PermisoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermisoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Accion == "" || in.Recurso == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "accion y recurso son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar catálogo de permisos
// @Tags         permisos
// @Produce      json
// @Success      200  {array}  dto.PermisoResponse
// @Router       /api/permisos [get]
func (h *PermisoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener permiso por id
// @Tags         permisos
// @Produce      json
// @Param        id  path  int  true  "id del permiso"
// @Success      200  {object}  dto.PermisoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [get]
func (h *PermisoHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar permiso (parcial)
// @Tags         permisos
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "id del permiso"
// @Param        body  body  dto.UpdatePermisoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.PermisoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [patch]
func (h *PermisoHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdatePermisoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar permiso (rechazado si algún rol lo usa)
// @Tags         permisos
// @Produce      json
// @Param        id  path  int  true  "id del permiso"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [delete]
func (h *PermisoHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permiso eliminado"})
}
