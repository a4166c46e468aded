// Package identity implementa el puerto IdentityProvider contra la API de
// Supabase Auth (GoTrue). Las contraseñas viven solo en el proveedor: este
// servicio nunca las almacena ni las verifica localmente.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Auth-api/internal/application/ports"
	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/pkg/config"
	"github.com/jhoicas/Auth-api/pkg/token"
)

var _ ports.IdentityProvider = (*SupabaseClient)(nil)

// TTL máximo de una validación cacheada; el exp del token lo puede acortar.
const validationCacheTTL = 5 * time.Minute

// SupabaseClient habla con los endpoints de GoTrue. Las validaciones de token
// se cachean (token -> authUID) para no golpear al proveedor en cada request.
type SupabaseClient struct {
	baseURL        string
	serviceRoleKey string
	httpClient     *http.Client
	validaciones   *gocache.Cache
}

// NewSupabaseClient construye el cliente con el timeout configurado.
func NewSupabaseClient(cfg config.IdPConfig) *SupabaseClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SupabaseClient{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		serviceRoleKey: cfg.ServiceRoleKey,
		httpClient:     &http.Client{Timeout: timeout},
		validaciones:   gocache.New(validationCacheTTL, 10*time.Minute),
	}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         gotrueUser `json:"user"`
}

// Validate verifica el access token contra GoTrue y devuelve el authUID.
// Los aciertos se sirven desde caché con TTL acotado por el exp del token.
func (c *SupabaseClient) Validate(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", domain.ErrCredencialInvalida
	}
	if cached, ok := c.validaciones.Get(accessToken); ok {
		return cached.(string), nil
	}

	var user gotrueUser
	status, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", domain.ErrCredencialInvalida
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		return "", fmt.Errorf("proveedor devolvió un id inválido: %w", err)
	}

	ttl := validationCacheTTL
	if exp, err := token.ExpiryOf(accessToken); err == nil {
		if resto := time.Until(exp); resto < ttl {
			ttl = resto
		}
	}
	if ttl > 0 {
		c.validaciones.Set(accessToken, user.ID, ttl)
	}
	return user.ID, nil
}

// SignIn autentica con el grant de password y devuelve los tokens de sesión.
func (c *SupabaseClient) SignIn(ctx context.Context, email, password string) (*ports.Credenciales, error) {
	body := map[string]string{"email": email, "password": password}

	var session gotrueSession
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		// GoTrue responde 400 tanto para email inexistente como para password
		// incorrecta; no distinguimos para no filtrar existencia de cuentas.
		return nil, domain.ErrCredencialInvalida
	}
	return &ports.Credenciales{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		AuthUID:      session.User.ID,
	}, nil
}

// SignOut revoca la sesión. La entrada cacheada se invalida aunque el
// proveedor falle: localmente ese token deja de considerarse válido.
func (c *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	c.validaciones.Delete(accessToken)

	status, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return domain.ErrCredencialInvalida
	}
	return nil
}

// CreateUser da de alta la cuenta vía el endpoint admin, con el email ya
// confirmado (el alta la hace el dueño o el servicio, no el usuario final).
func (c *SupabaseClient) CreateUser(ctx context.Context, email, password string) (string, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var user gotrueUser
	status, err := c.doAdmin(ctx, http.MethodPost, "/auth/v1/admin/users", body, &user)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		// ok
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return "", domain.ErrEmailRegistrado
	default:
		return "", fmt.Errorf("crear usuario en el proveedor: status %d", status)
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		return "", fmt.Errorf("proveedor devolvió un id inválido: %w", err)
	}
	return user.ID, nil
}

// UpdateUserEmail cambia el email de la cuenta en el proveedor.
func (c *SupabaseClient) UpdateUserEmail(ctx context.Context, authUID, email string) error {
	body := map[string]any{"email": email, "email_confirm": true}

	status, err := c.doAdmin(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(authUID), body, nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return domain.ErrUsuarioNoEncontrado
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return domain.ErrEmailRegistrado
	default:
		return fmt.Errorf("actualizar email en el proveedor: status %d", status)
	}
}

// FindByEmail consulta el endpoint admin filtrando por email.
func (c *SupabaseClient) FindByEmail(ctx context.Context, email string) (string, bool, error) {
	var out struct {
		Users []gotrueUser `json:"users"`
	}
	path := "/auth/v1/admin/users?email=" + url.QueryEscape(email)
	status, err := c.doAdmin(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return "", false, err
	}
	if status != http.StatusOK {
		return "", false, fmt.Errorf("buscar usuario en el proveedor: status %d", status)
	}
	for _, u := range out.Users {
		if strings.EqualFold(u.Email, email) {
			return u.ID, true, nil
		}
	}
	return "", false, nil
}

// do ejecuta una request con apikey y, si bearer != "", Authorization Bearer.
// Errores de red/timeout y 5xx se mapean a ErrProveedorNoDisponible.
func (c *SupabaseClient) do(ctx context.Context, method, path, bearer string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("construir request: %w", err)
	}
	req.Header.Set("apikey", c.serviceRoleKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrProveedorNoDisponible, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return resp.StatusCode, fmt.Errorf("%w: status %d", domain.ErrProveedorNoDisponible, resp.StatusCode)
	}
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decodificar respuesta del proveedor: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// doAdmin autentica con la service role key como bearer.
func (c *SupabaseClient) doAdmin(ctx context.Context, method, path string, body, out any) (int, error) {
	return c.do(ctx, method, path, c.serviceRoleKey, body, out)
}
