package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auth-api/pkg/token"
)

func firmar(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	// La firma es irrelevante: el paquete lee claims sin verificar.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clave-cualquiera"))
	require.NoError(t, err)
	return signed
}

func TestExpiryOf(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	tok := firmar(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := token.ExpiryOf(tok)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestExpiryOf_SinExp(t *testing.T) {
	tok := firmar(t, jwt.RegisteredClaims{Subject: "alguien"})

	_, err := token.ExpiryOf(tok)
	assert.Error(t, err)
}

func TestExpiryOf_NoEsJWT(t *testing.T) {
	_, err := token.ExpiryOf("token-opaco-cualquiera")
	assert.Error(t, err)
}

func TestSubjectOf(t *testing.T) {
	tok := firmar(t, jwt.RegisteredClaims{Subject: "0f8fad5b-d9cb-469f-a165-70867728950e"})

	sub, err := token.SubjectOf(tok)
	require.NoError(t, err)
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", sub)
}

func TestSubjectOf_SinSub(t *testing.T) {
	tok := firmar(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now())})

	_, err := token.SubjectOf(tok)
	assert.Error(t, err)
}
