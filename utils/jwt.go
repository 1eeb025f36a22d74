package utils

import (
	"errors"
	"log"
	"time"

	"ClassVault/config"

	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	TeamNumber int  `json:"team_number"`
	IsAdmin    bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// GenerateToken creates a session JWT for a resolved team identity.
func GenerateToken(teamNumber int, isAdmin bool) (string, error) {
	claims := Claims{
		TeamNumber: teamNumber,
		IsAdmin:    isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		log.Println("Error signing token:", err)
		return "", err
	}
	return tokenString, nil
}

// VerifyToken parses and validates a session JWT.
func VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
