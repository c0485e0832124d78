package jwt

import (
	"time"

	"github.com/delfruit/catalog/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a new JWT for a given user. The isAdmin claim is
// what downstream middleware uses to build the authorization context.
func GenerateToken(userID int64, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
