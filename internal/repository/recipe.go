package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/search"
)

// Page is one page of recipes plus the number of recipes matching overall
type Page struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
}

// scalarColumns are the recipe columns an update may overwrite
var scalarColumns = []string{
	"name", "description", "steps", "difficulty", "kitchen", "rations", "time", "type", "updated_at",
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// withAssociations preloads everything a recipe representation needs
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.created_at") }).
		Preload("Reviews.User")
}

// FindByID loads a recipe with its owner, ingredients, tags and reviews
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := withAssociations(r.db.WithContext(ctx)).First(&recipe, "recipes.id = ?", id).Error
	if err != nil {
		return nil, translate("find recipe", err)
	}
	return &recipe, nil
}

// FindAll returns one page of every recipe in the default order
func (r *RecipeRepository) FindAll(ctx context.Context, page int) (*Page, error) {
	return r.FindBy(ctx, search.Criteria{Page: page})
}

// FindBy returns the requested page of recipes matching c and the total match count
func (r *RecipeRepository) FindBy(ctx context.Context, c search.Criteria) (*Page, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(filterScope(c))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, translate("count recipes", err)
	}

	page := &Page{Recipes: []models.Recipe{}, Total: total}
	if total == 0 || int64(c.Offset()) >= total {
		return page, nil
	}

	err := withAssociations(base()).
		Scopes(orderScope(c), pageScope(c)).
		Find(&page.Recipes).Error
	if err != nil {
		return nil, translate("find recipes", err)
	}
	return page, nil
}

// ExistsByName reports whether another recipe already uses name
func (r *RecipeRepository) ExistsByName(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("name = ?", name)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translate("check recipe name", err)
	}
	return n > 0, nil
}

// Create inserts recipe together with its ingredients and tags
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Omit("User", "Reviews").Create(recipe).Error
	return translate("create recipe", err)
}

// Update overwrites the scalar columns of recipe, leaving collections alone
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return translate("update recipe", updateScalars(r.db.WithContext(ctx), recipe))
}

// Replace overwrites the scalar columns and swaps the ingredient and tag
// collections for the ones on recipe, atomically
func (r *RecipeRepository) Replace(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateScalars(tx, recipe); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		for i := range recipe.Tags {
			recipe.Tags[i].ID = 0
			recipe.Tags[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(recipe.Tags) > 0 {
			if err := tx.Create(&recipe.Tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate("replace recipe", err)
}

func updateScalars(db *gorm.DB, recipe *models.Recipe) error {
	return db.Model(recipe).Select(scalarColumns).Updates(recipe).Error
}

// Delete removes recipe and everything hanging off it
func (r *RecipeRepository) Delete(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.Review{}, &models.Ingredient{}, &models.Tag{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
	return translate("delete recipe", err)
}

// AddIngredient appends name to the recipe's ingredients
func (r *RecipeRepository) AddIngredient(ctx context.Context, recipeID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).Create(&models.Ingredient{RecipeID: recipeID, Name: name}).Error
	return translate("add ingredient", err)
}

// RemoveIngredient deletes name, matched without case, from the recipe's ingredients if present
func (r *RecipeRepository) RemoveIngredient(ctx context.Context, recipeID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND LOWER(name) = LOWER(?)", recipeID, name).
		Delete(&models.Ingredient{}).Error
	return translate("remove ingredient", err)
}

// AddTag tags the recipe with name
func (r *RecipeRepository) AddTag(ctx context.Context, recipeID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).Create(&models.Tag{RecipeID: recipeID, Name: name}).Error
	return translate("add tag", err)
}

// RemoveTag deletes the tag name, matched without case, from the recipe if present
func (r *RecipeRepository) RemoveTag(ctx context.Context, recipeID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND LOWER(name) = LOWER(?)", recipeID, name).
		Delete(&models.Tag{}).Error
	return translate("remove tag", err)
}
