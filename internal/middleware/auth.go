// Package middleware holds the gin middleware that runs in front of the recipe routes
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/types"
)

// Context keys set by the middleware chain
const (
	ClaimsKey = "claims"
	UserKey   = "user"
	UserIDKey = "user_id"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator, catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, catalog, http.StatusUnauthorized, "MISSING_TOKEN")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, catalog, http.StatusUnauthorized, "INVALID_TOKEN")
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			abort(c, catalog, http.StatusUnauthorized, "INVALID_TOKEN")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// abort stops the chain with a localized {code, message} body
func abort(c *gin.Context, catalog *i18n.Catalog, status int, code string) {
	lang := catalog.Match(c.GetHeader("Accept-Language"))
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Code:    code,
		Message: catalog.Message(lang, code),
	})
}
