// Package token extrae claims de un access token SIN verificar la firma.
// La verificación es responsabilidad del proveedor de identidad; aquí solo se
// leen exp y sub para acotar TTLs de caché y para trazas. Nunca usar estos
// valores como decisión de autenticación.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpiryOf devuelve el instante de expiración declarado en el token.
// Error si el token no es un JWT parseable o no declara exp.
func ExpiryOf(tokenString string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, fmt.Errorf("token: parsear: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token: sin claim exp")
	}
	return claims.ExpiresAt.Time, nil
}

// SubjectOf devuelve el claim sub (identidad externa declarada) sin verificar.
func SubjectOf(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return "", fmt.Errorf("token: parsear: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token: sin claim sub")
	}
	return claims.Subject, nil
}
