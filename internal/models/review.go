package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's opinion of one recipe. The (user, recipe) pair is unique.
type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `gorm:"size:255;not null" json:"comment"`
	Rating    float32   `gorm:"not null" json:"rating"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_recipe" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_recipe;index" json:"recipe_id"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
