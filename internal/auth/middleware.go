// Package auth resolves a caller's identity from a bearer token into an
// access.Context attached to the request. Token verification happens here
// and nowhere else; everything downstream treats the context as trusted.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/delfruit/catalog/internal/access"
	"github.com/delfruit/catalog/internal/config"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
)

const contextKey = "accessContext"

// OptionalMiddleware inspects for a token and attaches the resolved context
// if one is present and valid, but does not fail when the token is missing
// or invalid; the request proceeds as anonymous.
func OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctx, ok := contextFromHeader(c.GetHeader("Authorization")); ok {
			c.Set(contextKey, ctx)
		}
		c.Next()
	}
}

// RequiredMiddleware rejects requests without a resolved identity.
// It must be used AFTER OptionalMiddleware.
func RequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ContextFrom(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// AdminMiddleware rejects non-administrator callers. It must be used AFTER
// OptionalMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ContextFrom(c)
		if !ctx.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !ctx.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// ContextFrom returns the request's access context, or the anonymous
// context when none was resolved.
func ContextFrom(c *gin.Context) access.Context {
	if v, exists := c.Get(contextKey); exists {
		if ctx, ok := v.(access.Context); ok {
			return ctx
		}
	}
	return access.Anonymous()
}

func contextFromHeader(authHeader string) (access.Context, bool) {
	if authHeader == "" {
		return access.Anonymous(), false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return access.Anonymous(), false
	}

	token, err := gojwt.Parse(parts[1], func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return access.Anonymous(), false
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return access.Anonymous(), false
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return access.Anonymous(), false
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return access.ForUser(int64(sub), isAdmin), true
}
