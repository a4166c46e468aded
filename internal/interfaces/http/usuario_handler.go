package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
)

// UsuarioHandler maneja empleados y sus asignaciones de rol, siempre dentro
// de la empresa del principal.
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler de usuarios.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "datos del empleado"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" || in.Apellido == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, apellido, email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empleados de la empresa
// @Tags         usuarios
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	principal := GetPrincipal(c)
	out, err := h.uc.List(c.UserContext(), principal.Empresa.IDEmpresa, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado (parcial)
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "id del usuario"
// @Param        body  body  dto.UpdateUsuarioRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [patch]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.Update(c.UserContext(), principal.Empresa.IDEmpresa, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar empleado (soft delete)
// @Tags         usuarios
// @Produce      json
// @Param        id  path  int  true  "id del usuario"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	principal := GetPrincipal(c)
	if err := h.uc.Deactivate(c.UserContext(), principal.Empresa.IDEmpresa, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Usuario desactivado"})
}

// AssignRoles godoc
// @Summary      Reemplazar roles del usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "id del usuario"
// @Param        body  body  dto.AssignRolesRequest  true  "ids de roles de la empresa"
// @Success      200   {object}  dto.UsuarioConRolesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/roles [post]
func (h *UsuarioHandler) AssignRoles(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AssignRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RolesIDs == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "roles_ids es requerido (lista vacía = quitar todos los roles)"})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.AssignRoles(c.UserContext(), principal.Empresa.IDEmpresa, id, in.RolesIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRoles godoc
// @Summary      Roles asignados al usuario
// @Tags         usuarios
// @Produce      json
// @Param        id  path  int  true  "id del usuario"
// @Success      200  {object}  dto.UsuarioConRolesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/roles [get]
func (h *UsuarioHandler) GetRoles(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.GetRoles(c.UserContext(), principal.Empresa.IDEmpresa, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveRol godoc
// @Summary      Quitar un rol del usuario
// @Tags         usuarios
// @Produce      json
// @Param        id      path  int  true  "id del usuario"
// @Param        id_rol  path  int  true  "id del rol"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/roles/{id_rol} [delete]
func (h *UsuarioHandler) RemoveRol(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	idRol, err := parseID(c, "id_rol")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id_rol inválido"})
	}
	principal := GetPrincipal(c)
	if err := h.uc.RemoveRol(c.UserContext(), principal.Empresa.IDEmpresa, id, idRol); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rol removido del usuario"})
}

// parseID lee un parámetro de ruta como id entero positivo.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}
