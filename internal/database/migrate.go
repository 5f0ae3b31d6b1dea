package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/internal/models"
)

// Models lists every table the service owns, parents first
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Review{},
	}
}

// Migrate brings the schema, unique indexes included, up to date
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
