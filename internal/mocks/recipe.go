package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, user *models.User, req *types.RecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// RetrieveRecipe mocks the RetrieveRecipe method
func (m *MockRecipeService) RetrieveRecipe(ctx context.Context, id string, media cache.MediaType) ([]byte, error) {
	args := m.Called(ctx, id, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id string, user *models.User, req *types.RecipeRequest) error {
	return m.Called(ctx, id, user, req).Error(0)
}

// PartialUpdateRecipe mocks the PartialUpdateRecipe method
func (m *MockRecipeService) PartialUpdateRecipe(ctx context.Context, id string, user *models.User, body map[string]json.RawMessage) error {
	return m.Called(ctx, id, user, body).Error(0)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id string, user *models.User) error {
	return m.Called(ctx, id, user).Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, page int, media cache.MediaType) ([]byte, error) {
	args := m.Called(ctx, page, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, params search.Params, media cache.MediaType) ([]byte, error) {
	args := m.Called(ctx, params, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// AddIngredient mocks the AddIngredient method
func (m *MockRecipeService) AddIngredient(ctx context.Context, id string, user *models.User, ingredient string) error {
	return m.Called(ctx, id, user, ingredient).Error(0)
}

// DeleteIngredient mocks the DeleteIngredient method
func (m *MockRecipeService) DeleteIngredient(ctx context.Context, id string, user *models.User, ingredient string) error {
	return m.Called(ctx, id, user, ingredient).Error(0)
}

// AddTag mocks the AddTag method
func (m *MockRecipeService) AddTag(ctx context.Context, id string, user *models.User, tag string) error {
	return m.Called(ctx, id, user, tag).Error(0)
}

// DeleteTag mocks the DeleteTag method
func (m *MockRecipeService) DeleteTag(ctx context.Context, id string, user *models.User, tag string) error {
	return m.Called(ctx, id, user, tag).Error(0)
}

// AddReview mocks the AddReview method
func (m *MockRecipeService) AddReview(ctx context.Context, id string, user *models.User, req *types.ReviewRequest) error {
	return m.Called(ctx, id, user, req).Error(0)
}
