package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure loads the user with user.ID, creating it from user when absent.
// The stored row is copied back into user.
func (r *UserRepository) Ensure(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Where(models.User{ID: user.ID}).
		Attrs(models.User{Username: user.Username}).
		FirstOrCreate(user).Error
	return translate("ensure user", err)
}
