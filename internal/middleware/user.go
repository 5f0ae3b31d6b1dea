package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/types"
)

// UserProvisioner loads a user, creating it on first sight
type UserProvisioner interface {
	Ensure(ctx context.Context, user *models.User) error
}

// EnsureUser resolves the token claims to a stored user and puts it in the
// context under UserKey. Must run after AuthMiddleware.
func EnsureUser(users UserProvisioner, catalog *i18n.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ClaimsKey)
		claims, ok := val.(*types.TokenClaims)
		if !exists || !ok {
			abort(c, catalog, http.StatusUnauthorized, "MISSING_TOKEN")
			return
		}

		user := &models.User{ID: claims.UserID, Username: claims.Username}
		if err := users.Ensure(c.Request.Context(), user); err != nil {
			logger.Error("failed to provision user", zap.String("user_id", claims.UserID.String()), zap.Error(err))
			abort(c, catalog, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID.String())
		c.Next()
	}
}

// CurrentUser returns the user resolved by EnsureUser
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
