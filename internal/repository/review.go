package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Exists reports whether userID already reviewed recipeID
func (r *ReviewRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	if err != nil {
		return false, translate("check review", err)
	}
	return n > 0, nil
}

// Create inserts review
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Omit("User").Create(review).Error
	return translate("create review", err)
}

// CountForRecipe returns how many reviews recipeID has
func (r *ReviewRepository) CountForRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("recipe_id = ?", recipeID).Count(&n).Error
	if err != nil {
		return 0, translate("count reviews", err)
	}
	return n, nil
}
