package auth

import (
	"errors"
	"time"

	"coachpay/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are what the identity service puts in staff tokens. This service
// only validates them; issuing real user tokens is the identity service's
// job. GenerateAccessToken exists for job/CLI tokens and tests.
type Claims struct {
	StaffID  uint   `json:"staff_id"`
	Email    string `json:"email"`
	Position string `json:"position"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(cfg *config.JWTConfig, staffID uint, email, position string) (string, error) {
	claims := Claims{
		StaffID:  staffID,
		Email:    email,
		Position: position,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.AccessSecret))
}

var ErrInvalidToken = errors.New("invalid token")

func ParseAccessToken(cfg *config.JWTConfig, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.AccessSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
