// Package jwt emite y valida los tokens de acceso del API. El token carga la
// identidad completa que el middleware necesita para autorizar una petición
// sin ir a la base: usuario, empresa (tenant) y rol.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret firma o validación intentada sin secret configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// ErrInvalidClaims el token se validó pero los claims no son los del API.
var ErrInvalidClaims = errors.New("jwt: claims inválidos")

// Claims del API: además de los registrados, user_id y company_id delimitan el
// tenant de cada petición y role alimenta el RBAC (admin, bodeguero, vendedor)
// sin consulta adicional.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token HS256 con la identidad del usuario. expMinutes
// cuenta desde ahora; un valor negativo produce un token ya vencido.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y vigencia y devuelve la identidad del token. Solo se
// acepta HS256: un token firmado con otro método (incluido "none") es inválido.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", ErrInvalidClaims
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
