// Package auth implements the stateless token service: HS256-signed JWTs
// carrying the user id and an authenticated flag, plus the request-scoped
// identity value the gate middleware attaches for resolvers to inspect.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claim set and the identity the token proves.
type Claims struct {
	jwt.RegisteredClaims
	UserID          string `json:"userId"`
	IsAuthenticated bool   `json:"isAuth"`
}

// GenerateToken signs a token for userID that expires after validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:          userID,
		IsAuthenticated: true,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks signature integrity and expiry. Any malformed, expired
// or mis-signed token yields ok == false; verification failure is a normal
// outcome, never an error the caller has to distinguish.
func VerifyToken(tokenString string, secretKey []byte) (userID string, ok bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid || !claims.IsAuthenticated {
		return "", false
	}

	return claims.UserID, true
}
