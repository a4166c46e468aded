package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Auth-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCookieName = "auth_tokens"

// stubResolver implementa PrincipalResolver con respuestas fijas por token.
type stubResolver struct {
	principales map[string]*authz.Principal
	errs        map[string]error
}

func (s *stubResolver) CurrentUser(_ context.Context, accessToken string) (*authz.Principal, error) {
	if err, ok := s.errs[accessToken]; ok {
		return nil, err
	}
	if p, ok := s.principales[accessToken]; ok {
		return p, nil
	}
	return nil, domain.ErrCredencialInvalida
}

// principalConPermisos construye un principal no dueño con los pares dados.
func principalConPermisos(pares ...[2]string) *authz.Principal {
	permisos := make([]*entity.Permiso, 0, len(pares))
	for i, par := range pares {
		permisos = append(permisos, &entity.Permiso{IDPermiso: int64(i + 1), Accion: par[0], Recurso: par[1]})
	}
	return authz.NewPrincipal(
		&entity.Usuario{IDUsuario: 1, Estado: true, IDEmpresa: 7},
		&entity.Empresa{IDEmpresa: 7, Estado: true},
		[]*entity.Rol{{IDRol: 1, Nombre: "operador", IDEmpresa: 7}},
		permisos,
	)
}

func principalDueno() *authz.Principal {
	return authz.NewPrincipal(
		&entity.Usuario{IDUsuario: 2, EsDueno: true, Estado: true, IDEmpresa: 7},
		&entity.Empresa{IDEmpresa: 7, Estado: true},
		nil, nil,
	)
}

// buildTestApp construye una app Fiber mínima con el middleware de auth y el
// guard indicado delante de un handler dummy.
func buildTestApp(resolver apphttp.PrincipalResolver, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(resolver, testCookieName)}
	if guard != nil {
		handlers = append(handlers, guard)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"ok": true, "id_usuario": p.Usuario.IDUsuario})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — resolución del principal
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenPorHeader(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token-valido": principalConPermisos(),
	}}
	app := buildTestApp(resolver, nil)

	resp := doRequest(t, app, "Bearer token-valido", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
}

func TestAuthMiddleware_TokenPorCookie(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token-cookie": principalConPermisos(),
	}}
	app := buildTestApp(resolver, nil)

	resp := doRequest(t, app, "", "token-cookie")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la cookie HTTP-only debe servir como transporte de la credencial")
}

func TestAuthMiddleware_SinCredencial_Retorna401(t *testing.T) {
	app := buildTestApp(&stubResolver{}, nil)

	resp := doRequest(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRechazado_Retorna401Generico(t *testing.T) {
	// Credencial inválida y usuario local inexistente deben producir el mismo
	// cuerpo: la respuesta no revela si la cuenta existe.
	resolver := &stubResolver{errs: map[string]error{
		"token-malo":        domain.ErrCredencialInvalida,
		"token-sin-usuario": domain.ErrUsuarioNoEncontrado,
	}}
	app := buildTestApp(resolver, nil)

	respMalo := doRequest(t, app, "Bearer token-malo", "")
	defer respMalo.Body.Close()
	respSinUsuario := doRequest(t, app, "Bearer token-sin-usuario", "")
	defer respSinUsuario.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, respMalo.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respSinUsuario.StatusCode)

	bodyMalo, _ := io.ReadAll(respMalo.Body)
	bodySinUsuario, _ := io.ReadAll(respSinUsuario.Body)
	assert.Equal(t, string(bodyMalo), string(bodySinUsuario),
		"ambos fallos deben tener un cuerpo indistinguible")
}

func TestAuthMiddleware_ProveedorCaido_Retorna503(t *testing.T) {
	resolver := &stubResolver{errs: map[string]error{
		"token-x": domain.ErrProveedorNoDisponible,
	}}
	app := buildTestApp(resolver, nil)

	resp := doRequest(t, app, "Bearer token-x", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"proveedor caído es reintentable: 503, no 401")
}

func TestAuthMiddleware_UsuarioInactivo_Retorna403(t *testing.T) {
	resolver := &stubResolver{errs: map[string]error{
		"token-inactivo": domain.ErrUsuarioInactivo,
		"token-empresa":  domain.ErrEmpresaInactiva,
	}}
	app := buildTestApp(resolver, nil)

	respUsuario := doRequest(t, app, "Bearer token-inactivo", "")
	defer respUsuario.Body.Close()
	respEmpresa := doRequest(t, app, "Bearer token-empresa", "")
	defer respEmpresa.Body.Close()

	assert.Equal(t, http.StatusForbidden, respUsuario.StatusCode)
	assert.Equal(t, http.StatusForbidden, respEmpresa.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission / RequireOwner
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermisoPasa(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token": principalConPermisos([2]string{"read", "usuarios"}),
	}}
	app := buildTestApp(resolver, apphttp.RequirePermission("read", "usuarios"))

	resp := doRequest(t, app, "Bearer token", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token": principalConPermisos([2]string{"read", "usuarios"}),
	}}
	app := buildTestApp(resolver, apphttp.RequirePermission("delete", "usuarios"))

	resp := doRequest(t, app, "Bearer token", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "delete",
		"la denegación debe nombrar la acción exigida")
	assert.Contains(t, string(body), "usuarios",
		"la denegación debe nombrar el recurso exigido")
}

func TestRequirePermission_DuenoPasaSinPermisos(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token-dueno": principalDueno(),
	}}
	app := buildTestApp(resolver, apphttp.RequirePermission("delete", "roles"))

	resp := doRequest(t, app, "Bearer token-dueno", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el dueño pasa cualquier guard de permiso sin permisos explícitos")
}

func TestRequireOwner_NoDueno_Retorna403(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token": principalConPermisos([2]string{"create", "permisos"}),
	}}
	app := buildTestApp(resolver, apphttp.RequireOwner())

	resp := doRequest(t, app, "Bearer token", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"tener permisos sobre el recurso no sustituye la condición de dueño")
}

func TestRequireOwner_DuenoPasa(t *testing.T) {
	resolver := &stubResolver{principales: map[string]*authz.Principal{
		"token-dueno": principalDueno(),
	}}
	app := buildTestApp(resolver, apphttp.RequireOwner())

	resp := doRequest(t, app, "Bearer token-dueno", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
