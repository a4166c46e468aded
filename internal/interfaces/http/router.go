package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auth-api/internal/application/auth"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
	"github.com/jhoicas/Auth-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	EmpresaUC *usecase.EmpresaUseCase
	UsuarioUC *usecase.UsuarioUseCase
	RolUC     *usecase.RolUseCase
	PermisoUC *usecase.PermisoUseCase
	AuthCfg   config.AuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.AuthCfg)
	authGroup.Post("/register-owner", authHandler.RegisterOwner)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas: el middleware resuelve el principal una vez y los
	// guards por ruta deciden sobre ese snapshot.
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, deps.AuthCfg.CookieName))

	protected.Get("/auth/me", authHandler.Me)

	// Empresa del caller (singular: nunca se accede a una empresa ajena)
	empresa := protected.Group("/empresa")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresa.Get("/", RequirePermission("read", "empresas"), empresaHandler.Get)
	empresa.Put("/", RequirePermission("update", "empresas"), empresaHandler.Update)
	empresa.Delete("/", RequireOwner(), empresaHandler.Deactivate)

	// Usuarios (empleados de la empresa)
	usuarios := protected.Group("/usuarios")
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Post("/", RequirePermission("create", "usuarios"), usuarioHandler.Create)
	usuarios.Get("/", RequirePermission("read", "usuarios"), usuarioHandler.List)
	usuarios.Patch("/:id", RequirePermission("update", "usuarios"), usuarioHandler.Update)
	usuarios.Delete("/:id", RequirePermission("delete", "usuarios"), usuarioHandler.Deactivate)
	usuarios.Post("/:id/roles", RequirePermission("update", "usuarios"), usuarioHandler.AssignRoles)
	usuarios.Get("/:id/roles", RequirePermission("read", "usuarios"), usuarioHandler.GetRoles)
	usuarios.Delete("/:id/roles/:id_rol", RequirePermission("update", "usuarios"), usuarioHandler.RemoveRol)

	// Roles de la empresa. El doble chequeo sobre roles_permisos al cablear
	// permisos vive en el caso de uso, no aquí.
	roles := protected.Group("/roles")
	rolHandler := NewRolHandler(deps.RolUC)
	roles.Post("/", RequirePermission("create", "roles"), rolHandler.Create)
	roles.Get("/", RequirePermission("read", "roles"), rolHandler.List)
	roles.Patch("/:id", RequirePermission("update", "roles"), rolHandler.Update)
	roles.Delete("/:id", RequirePermission("delete", "roles"), rolHandler.Delete)

	// Catálogo global de permisos: lectura para cualquier autenticado,
	// mutación solo para dueños.
	permisos := protected.Group("/permisos")
	permisoHandler := NewPermisoHandler(deps.PermisoUC)
	permisos.Get("/", permisoHandler.List)
	permisos.Get("/:id", permisoHandler.Get)
	permisos.Post("/", RequireOwner(), permisoHandler.Create)
	permisos.Patch("/:id", RequireOwner(), permisoHandler.Update)
	permisos.Delete("/:id", RequireOwner(), permisoHandler.Delete)
}
