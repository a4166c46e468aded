package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/dto"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
)

// LocalPrincipal key del principal resuelto en c.Locals.
const LocalPrincipal = "principal"

// PrincipalResolver resuelve el principal a partir del access token opaco.
// Lo implementa auth.AuthUseCase; los tests usan un stub.
type PrincipalResolver interface {
	CurrentUser(ctx context.Context, accessToken string) (*authz.Principal, error)
}

// AuthMiddleware extrae la credencial (header Authorization o cookie), la
// resuelve a un principal completo una sola vez por petición y lo deja en
// c.Locals. Los guards posteriores deciden sobre ese snapshot inmutable.
func AuthMiddleware(resolver PrincipalResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c, cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		principal, err := resolver.CurrentUser(c.UserContext(), token)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (tras AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) *authz.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}

// RequirePermission exige que el principal tenga (accion, recurso). El dueño
// pasa siempre. La denegación nombra el par exigido para facilitar el
// diagnóstico; eso no filtra información porque el recurso viene de la ruta.
func RequirePermission(accion, recurso string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if !principal.Puede(accion, recurso) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permiso denegado: se requiere " + accion + " sobre " + recurso,
			})
		}
		return c.Next()
	}
}

// RequireOwner exige que el principal sea el dueño de la empresa.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if !principal.EsDueno() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación reservada al dueño de la empresa"})
		}
		return c.Next()
	}
}

// extractToken busca la credencial primero en el header Authorization
// (Bearer) y después en la cookie HTTP-only.
func extractToken(c *fiber.Ctx, cookieName string) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(cookieName)
}
