package utils

import (
	"fmt"
	"time"

	"medika-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT issues an HS256 bearer token carrying the user id and role.
// Token issuance itself lives in the identity service; this is here for the
// expiry policy and for tests exercising the middleware.
func GenerateJWT(userID, role, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	return tokenString, nil
}

// ParseJWT verifies an HS256 token and returns the user id and role claims.
func ParseJWT(tokenString, secret string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", exceptions.ErrTokenInvalidOrExpired(nil)
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return "", "", exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("token has no subject claim"))
	}
	return userID, role, nil
}
