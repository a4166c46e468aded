package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auth-api/internal/domain"
	"github.com/jhoicas/Auth-api/pkg/config"
)

const testAuthUID = "0f8fad5b-d9cb-469f-a165-70867728950e"

func newTestClient(t *testing.T, handler http.HandlerFunc) *SupabaseClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSupabaseClient(config.IdPConfig{
		URL:            server.URL,
		ServiceRoleKey: "service-role-key",
		TimeoutSeconds: 2,
	})
}

func TestValidate_TokenValido(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "service-role-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + testAuthUID + `","email":"ana@acme.com"}`))
	})

	authUID, err := client.Validate(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, testAuthUID, authUID)
}

func TestValidate_CacheaResultado(t *testing.T) {
	llamadas := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + testAuthUID + `"}`))
	})

	for i := 0; i < 3; i++ {
		authUID, err := client.Validate(context.Background(), "token-abc")
		require.NoError(t, err)
		assert.Equal(t, testAuthUID, authUID)
	}
	assert.Equal(t, 1, llamadas, "la segunda y tercera validación deben salir de caché")
}

func TestValidate_TokenRechazado(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Validate(context.Background(), "token-malo")
	assert.ErrorIs(t, err, domain.ErrCredencialInvalida)
}

func TestValidate_ProveedorCaido(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Validate(context.Background(), "token-abc")
	assert.ErrorIs(t, err, domain.ErrProveedorNoDisponible)
}

func TestValidate_TokenVacio(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe llegar al proveedor con token vacío")
	})

	_, err := client.Validate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrCredencialInvalida)
}

func TestSignIn_CredencialesValidas(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","user":{"id":"` + testAuthUID + `"}}`))
	})

	creds, err := client.SignIn(context.Background(), "ana@acme.com", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, "at-1", creds.AccessToken)
	assert.Equal(t, "rt-1", creds.RefreshToken)
	assert.Equal(t, testAuthUID, creds.AuthUID)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := client.SignIn(context.Background(), "ana@acme.com", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrCredencialInvalida)
}

func TestSignOut_InvalidaCache(t *testing.T) {
	llamadasUser := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/user":
			llamadasUser++
			_, _ = w.Write([]byte(`{"id":"` + testAuthUID + `"}`))
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	})

	_, err := client.Validate(context.Background(), "token-abc")
	require.NoError(t, err)
	require.NoError(t, client.SignOut(context.Background(), "token-abc"))

	// Tras el logout la validación vuelve a consultar al proveedor.
	_, err = client.Validate(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, 2, llamadasUser)
}

func TestCreateUser_EmailYaRegistrado(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-role-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, err := client.CreateUser(context.Background(), "ana@acme.com", "secreta123")
	assert.ErrorIs(t, err, domain.ErrEmailRegistrado)
}

func TestCreateUser_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + testAuthUID + `","email":"ana@acme.com"}`))
	})

	authUID, err := client.CreateUser(context.Background(), "ana@acme.com", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, testAuthUID, authUID)
}

func TestCreateUser_IDInvalido(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"no-es-uuid"}`))
	})

	_, err := client.CreateUser(context.Background(), "ana@acme.com", "secreta123")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrProveedorNoDisponible))
}

func TestFindByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		if r.URL.Query().Get("email") == "ana@acme.com" {
			_, _ = w.Write([]byte(`{"users":[{"id":"` + testAuthUID + `","email":"ana@acme.com"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"users":[]}`))
	})

	authUID, found, err := client.FindByEmail(context.Background(), "ana@acme.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testAuthUID, authUID)

	_, found, err = client.FindByEmail(context.Background(), "nadie@acme.com")
	require.NoError(t, err)
	assert.False(t, found)
}
