package service

import (
	"github.com/sanchezegido/recipedia/internal/models"
)

// IsUnauthorized reports whether user may not mutate recipe
func IsUnauthorized(recipe *models.Recipe, user *models.User) bool {
	return recipe.UserID != user.ID
}

// authorize returns an unauthorized error carrying code when user does not own recipe
func authorize(recipe *models.Recipe, user *models.User, code string) error {
	if IsUnauthorized(recipe, user) {
		return &Error{Kind: KindUnauthorized, Code: code}
	}
	return nil
}
