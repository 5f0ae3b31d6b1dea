package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/types"
)

// RecipeStore is the persistence the recipe service needs
type RecipeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	FindAll(ctx context.Context, page int) (*repository.Page, error)
	FindBy(ctx context.Context, c search.Criteria) (*repository.Page, error)
	ExistsByName(ctx context.Context, name string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Replace(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipe *models.Recipe) error
	AddIngredient(ctx context.Context, recipeID uuid.UUID, name string) error
	RemoveIngredient(ctx context.Context, recipeID uuid.UUID, name string) error
	AddTag(ctx context.Context, recipeID uuid.UUID, name string) error
	RemoveTag(ctx context.Context, recipeID uuid.UUID, name string) error
}

// ReviewStore persists reviews
type ReviewStore interface {
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Create(ctx context.Context, review *models.Review) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, user *models.User, req *types.RecipeRequest) (*models.Recipe, error)
	RetrieveRecipe(ctx context.Context, id string, media cache.MediaType) ([]byte, error)
	UpdateRecipe(ctx context.Context, id string, user *models.User, req *types.RecipeRequest) error
	PartialUpdateRecipe(ctx context.Context, id string, user *models.User, body map[string]json.RawMessage) error
	DeleteRecipe(ctx context.Context, id string, user *models.User) error
	ListRecipes(ctx context.Context, page int, media cache.MediaType) ([]byte, error)
	SearchRecipes(ctx context.Context, params search.Params, media cache.MediaType) ([]byte, error)
	AddIngredient(ctx context.Context, id string, user *models.User, ingredient string) error
	DeleteIngredient(ctx context.Context, id string, user *models.User, ingredient string) error
	AddTag(ctx context.Context, id string, user *models.User, tag string) error
	DeleteTag(ctx context.Context, id string, user *models.User, tag string) error
	AddReview(ctx context.Context, id string, user *models.User, req *types.ReviewRequest) error
}

// ITokenService validates and mints bearer tokens
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
}
