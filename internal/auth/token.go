package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Hour

// GenerateToken signs a bearer token for an authenticated administrator.
func GenerateToken(secret string, administratorID int64, email string) (string, error) {
	claims := jwt.MapClaims{
		"id":    administratorID,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a bearer token, returning the
// administrator identity it carries.
func ValidateToken(secret, tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid id claim")
	}
	email, _ := claims["email"].(string)
	return int64(id), email, nil
}
